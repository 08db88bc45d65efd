// Package save persists session checkpoints to a named save slot.
package save

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/younwookim/duskblade/internal/domain/entity"
)

// ErrNoSave is returned by Load when the slot holds no checkpoint
var ErrNoSave = errors.New("save: no checkpoint in slot")

// DefaultSlot is the slot used when none is given
const DefaultSlot = "checkpoint"

// Store reads and writes the checkpoint of one save slot.
// Every Store also satisfies session.Saver.
type Store interface {
	Save(data entity.GameData) error
	Load() (*entity.GameData, error)
}

func encode(data entity.GameData) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	return raw, nil
}

func decode(raw []byte) (*entity.GameData, error) {
	if len(raw) == 0 {
		return nil, ErrNoSave
	}
	var data entity.GameData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint: %w", err)
	}
	return &data, nil
}
