package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileSlot stores the document as a single JSON file under the data
// directory. Writes go through a temp file and rename, so readers never
// observe a half-written document.
type FileSlot struct {
	path string
}

// NewFileSlot initializes a file-backed slot named name inside dir,
// creating the directory if needed.
func NewFileSlot(dir, name string) (*FileSlot, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &FileSlot{path: filepath.Join(dir, name+".json")}, nil
}

func (s *FileSlot) Read() ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot: %w", err)
	}
	return data, true, nil
}

func (s *FileSlot) Write(data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace slot: %w", err)
	}
	return nil
}
