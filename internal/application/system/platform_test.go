package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/duskblade/internal/domain/entity"
)

func TestPlatformSystem_Update(t *testing.T) {
	t.Run("moves only moving platforms", func(t *testing.T) {
		stage := createIndexedStage()
		sys := NewPlatformSystem()
		before := make([]entity.Rect, len(stage.Obstacles))
		for i, o := range stage.Obstacles {
			before[i] = o.Bounds
		}

		sys.Update(stage, nil, 0.5)

		for i, o := range stage.Obstacles {
			if o.Kind == entity.KindMovingPlatform {
				assert.InDelta(t, before[i].X+60, o.Bounds.X, 1e-3)
				assert.Equal(t, before[i].Y, o.Bounds.Y)
				continue
			}
			assert.Equal(t, before[i], o.Bounds)
		}
	})

	t.Run("oscillates around its origin", func(t *testing.T) {
		stage := createIndexedStage()
		sys := NewPlatformSystem()
		lift := stage.MovingPlatforms()[0]

		minX, maxX := lift.Bounds.X, lift.Bounds.X
		for i := 0; i < 6*60; i++ {
			sys.Update(stage, nil, 1.0/60.0)
			if lift.Bounds.X < minX {
				minX = lift.Bounds.X
			}
			if lift.Bounds.X > maxX {
				maxX = lift.Bounds.X
			}
		}

		assert.InDelta(t, lift.OriginX-192, minX, 3)
		assert.InDelta(t, lift.OriginX+192, maxX, 3)
	})

	t.Run("nil stage is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() {
			NewPlatformSystem().Update(nil, nil, 0.1)
		})
	})
}
