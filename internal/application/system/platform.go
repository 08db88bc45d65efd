package system

import (
	"github.com/younwookim/duskblade/internal/domain/entity"
)

// PlatformSystem advances moving platforms. It is the single writer of
// platform bounds within a tick and runs before any character.
type PlatformSystem struct{}

// NewPlatformSystem creates a new platform system
func NewPlatformSystem() *PlatformSystem {
	return &PlatformSystem{}
}

// Update moves every moving platform of stage by dt seconds and keeps the
// obstacle index in step. index may be nil.
func (s *PlatformSystem) Update(stage *entity.Stage, index *ObstacleIndex, dt float64) {
	if stage == nil {
		return
	}

	moved := false
	for _, o := range stage.Obstacles {
		if o.Kind != entity.KindMovingPlatform {
			continue
		}
		if o.Advance(dt) != 0 {
			moved = true
		}
	}

	if moved && index != nil {
		index.Sync()
	}
}
