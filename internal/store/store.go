package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mkotov/card-wallet/internal/barcode"
	"github.com/mkotov/card-wallet/internal/brand"
	"github.com/mkotov/card-wallet/internal/models"
	"github.com/mkotov/card-wallet/internal/storage"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNotFound is returned when an operation addresses an id that is
	// not in the collection.
	ErrNotFound = errors.New("card not found")
	// ErrMissingFields is returned by Create when storeName or cardNumber
	// is empty.
	ErrMissingFields = errors.New("storeName and cardNumber are required")
	// ErrInvalidFormat is returned when an import document does not parse
	// as a sequence of records at all.
	ErrInvalidFormat = errors.New("invalid import format")
)

// LogoResolver resolves a best-effort logo URL for a store name. An empty
// result means no logo; it is never an error.
type LogoResolver interface {
	Resolve(ctx context.Context, storeName string) string
}

// Store is the exclusive owner of the durable card collection. Every
// operation is an independent read-document/mutate/write-document cycle
// against the slot; there is no in-memory cache and no locking. Two
// overlapping writers race at the document level and the later snapshot
// wins, which is the accepted boundary for a single foreground user.
type Store struct {
	slot  storage.Slot
	log   *logrus.Logger
	logos LogoResolver

	now   func() time.Time
	newID func() string
}

// New initializes a card store. logos may be nil to disable remote logo
// resolution entirely.
func New(slot storage.Slot, log *logrus.Logger, logos LogoResolver) *Store {
	return &Store{
		slot:  slot,
		log:   log,
		logos: logos,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// load reads the whole collection. An absent, unreadable or corrupt slot
// degrades to the empty collection so reads can never crash a caller.
func (s *Store) load() []models.Card {
	data, ok, err := s.slot.Read()
	if err != nil {
		s.log.Warnf("Failed to read card slot, treating as empty: %v", err)
		return nil
	}
	if !ok || len(data) == 0 {
		return nil
	}
	var cards []models.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		s.log.Warnf("Card slot is corrupt, treating as empty: %v", err)
		return nil
	}
	return cards
}

// save writes the whole collection back in one atomic document write.
func (s *Store) save(cards []models.Card) error {
	if cards == nil {
		cards = []models.Card{}
	}
	data, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("failed to encode cards: %w", err)
	}
	if err := s.slot.Write(data); err != nil {
		return fmt.Errorf("failed to persist cards: %w", err)
	}
	return nil
}

// List returns the sorted view of the collection. The order is recomputed
// on every call: favorites first, then recently used before never used
// (more recent first), then newest created first.
func (s *Store) List() []models.Card {
	cards := s.load()
	sort.SliceStable(cards, func(i, j int) bool {
		return viewLess(cards[i], cards[j])
	})
	return cards
}

func viewLess(a, b models.Card) bool {
	if a.IsFavorite != b.IsFavorite {
		return a.IsFavorite
	}
	if (a.LastUsedAt != nil) != (b.LastUsedAt != nil) {
		return a.LastUsedAt != nil
	}
	if a.LastUsedAt != nil && *a.LastUsedAt != *b.LastUsedAt {
		return *a.LastUsedAt > *b.LastUsedAt
	}
	return a.CreatedAt > b.CreatedAt
}

// Get returns the card with the given id, or ErrNotFound.
func (s *Store) Get(id string) (models.Card, error) {
	for _, c := range s.load() {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Card{}, ErrNotFound
}

// Create adds a new card. The barcode format is inferred from the card
// number unless a valid tag was supplied, the brand color is resolved
// synchronously, and the logo lookup (when enabled) runs before the
// single atomic append — so the record becomes visible to List only once
// fully populated.
func (s *Store) Create(ctx context.Context, in models.CreateCardInput) (models.Card, error) {
	if in.StoreName == "" || in.CardNumber == "" {
		return models.Card{}, ErrMissingFields
	}

	format := in.BarcodeFormat
	if !format.Valid() {
		format = barcode.Infer(in.CardNumber)
	}

	logoURL := ""
	if s.logos != nil {
		logoURL = s.logos.Resolve(ctx, in.StoreName)
	}

	card := models.Card{
		ID:            s.newID(),
		StoreName:     in.StoreName,
		CardNumber:    in.CardNumber,
		BarcodeFormat: format,
		LogoURL:       logoURL,
		BrandColor:    brand.Resolve(in.StoreName),
		IsFavorite:    false,
		CreatedAt:     s.now().UnixMilli(),
		LastUsedAt:    nil,
	}

	cards := append(s.load(), card)
	if err := s.save(cards); err != nil {
		return models.Card{}, err
	}

	s.log.Infof("Card created: %s (%s)", card.StoreName, card.BarcodeFormat)
	return card, nil
}

// Update merges the supplied patch fields into an existing card. It never
// re-derives the barcode format or brand color.
func (s *Store) Update(id string, patch models.CardPatch) (models.Card, error) {
	cards := s.load()
	for i := range cards {
		if cards[i].ID != id {
			continue
		}
		if patch.StoreName != nil {
			cards[i].StoreName = *patch.StoreName
		}
		if patch.CardNumber != nil {
			cards[i].CardNumber = *patch.CardNumber
		}
		if patch.BarcodeFormat != nil && patch.BarcodeFormat.Valid() {
			cards[i].BarcodeFormat = *patch.BarcodeFormat
		}
		if patch.LogoURL != nil {
			cards[i].LogoURL = *patch.LogoURL
		}
		if patch.IsFavorite != nil {
			cards[i].IsFavorite = *patch.IsFavorite
		}
		if err := s.save(cards); err != nil {
			return models.Card{}, err
		}
		return cards[i], nil
	}
	return models.Card{}, ErrNotFound
}

// Delete removes a card permanently. It reports whether a record was
// removed; an unknown id is a normal false outcome, not an error.
func (s *Store) Delete(id string) (bool, error) {
	cards := s.load()
	for i := range cards {
		if cards[i].ID == id {
			cards = append(cards[:i], cards[i+1:]...)
			if err := s.save(cards); err != nil {
				return false, err
			}
			s.log.Infof("Card deleted: %s", id)
			return true, nil
		}
	}
	return false, nil
}

// ToggleFavorite flips the favorite flag and returns the new state, or
// ErrNotFound for an unknown id.
func (s *Store) ToggleFavorite(id string) (bool, error) {
	cards := s.load()
	for i := range cards {
		if cards[i].ID == id {
			cards[i].IsFavorite = !cards[i].IsFavorite
			if err := s.save(cards); err != nil {
				return false, err
			}
			return cards[i].IsFavorite, nil
		}
	}
	return false, ErrNotFound
}

// MarkUsed stamps the card's lastUsedAt with the current time, or returns
// ErrNotFound for an unknown id.
func (s *Store) MarkUsed(id string) error {
	cards := s.load()
	for i := range cards {
		if cards[i].ID == id {
			ts := s.now().UnixMilli()
			cards[i].LastUsedAt = &ts
			return s.save(cards)
		}
	}
	return ErrNotFound
}

// Wipe removes every record unconditionally. Wiping an already empty
// collection succeeds.
func (s *Store) Wipe() error {
	if err := s.save(nil); err != nil {
		return err
	}
	s.log.Info("Card collection wiped")
	return nil
}
