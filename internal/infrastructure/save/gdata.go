package save

import (
	"fmt"

	"github.com/quasilyte/gdata"

	"github.com/younwookim/duskblade/internal/domain/entity"
)

// itemStore is the subset of *gdata.Manager used by GDataStore
type itemStore interface {
	SaveItem(itemKey string, data []byte) error
	LoadItem(itemKey string) ([]byte, error)
	DeleteItem(itemKey string) error
}

// GDataStore keeps the checkpoint as a JSON item in the per-user data
// directory managed by gdata.
type GDataStore struct {
	items itemStore
	slot  string
}

// OpenGData opens the gdata storage of appName and returns a store for slot
func OpenGData(appName, slot string) (*GDataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open game data: %w", err)
	}
	return newGDataStore(m, slot), nil
}

func newGDataStore(items itemStore, slot string) *GDataStore {
	if slot == "" {
		slot = DefaultSlot
	}
	return &GDataStore{items: items, slot: slot}
}

// Slot returns the item key the checkpoint is stored under
func (s *GDataStore) Slot() string {
	return s.slot
}

// Save overwrites the slot with data
func (s *GDataStore) Save(data entity.GameData) error {
	raw, err := encode(data)
	if err != nil {
		return err
	}
	if err := s.items.SaveItem(s.slot, raw); err != nil {
		return fmt.Errorf("failed to save item %q: %w", s.slot, err)
	}
	return nil
}

// Load returns the checkpoint in the slot, or ErrNoSave
func (s *GDataStore) Load() (*entity.GameData, error) {
	raw, err := s.items.LoadItem(s.slot)
	if err != nil {
		return nil, fmt.Errorf("failed to load item %q: %w", s.slot, err)
	}
	return decode(raw)
}

// Clear deletes the slot. Clearing an empty slot is not an error.
func (s *GDataStore) Clear() error {
	if err := s.items.DeleteItem(s.slot); err != nil {
		return fmt.Errorf("failed to clear item %q: %w", s.slot, err)
	}
	return nil
}
