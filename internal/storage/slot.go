package storage

// Slot is a single named durable location holding the whole card
// collection as one document. Read reports ok=false when the slot has
// never been written, which callers treat as an empty collection.
type Slot interface {
	Read() (data []byte, ok bool, err error)
	Write(data []byte) error
}
