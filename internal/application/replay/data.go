package replay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/younwookim/duskblade/internal/domain/entity"
)

// Version is the current replay format version
const Version = "2.0"

var (
	// ErrVersion is returned for replays written by an incompatible format
	ErrVersion = errors.New("replay: unsupported version")
	// ErrFrames is returned when frame numbers are not 0, 1, 2, ...
	ErrFrames = errors.New("replay: frames out of sequence")
)

// FrameInput records input state for a single frame
type FrameInput struct {
	F int  `json:"f"`           // Frame number
	L bool `json:"l,omitempty"` // Left
	R bool `json:"r,omitempty"` // Right
	S bool `json:"s,omitempty"` // Sprint
	J bool `json:"j,omitempty"` // Jump
	A bool `json:"a,omitempty"` // Attack
}

// ReplayData contains all data needed to replay a game session.
// Start is the checkpoint the run began from, nil for a fresh run.
type ReplayData struct {
	Version   string           `json:"version"`
	Seed      int64            `json:"seed"`
	DT        float64          `json:"dt"`
	Start     *entity.GameData `json:"start,omitempty"`
	StartTime string           `json:"startTime"`
	Frames    []FrameInput     `json:"frames"`
}

// Validate checks that the replay can be played back: same major version
// and one frame per tick with no gaps.
func (d *ReplayData) Validate() error {
	if major(d.Version) != major(Version) {
		return fmt.Errorf("%w: %q", ErrVersion, d.Version)
	}
	for i, f := range d.Frames {
		if f.F != i {
			return fmt.Errorf("%w: frame %d at position %d", ErrFrames, f.F, i)
		}
	}
	return nil
}

func major(v string) string {
	m, _, _ := strings.Cut(v, ".")
	return m
}
