package entity

import (
	"errors"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ErrInvalidLayout is returned when a level grid cannot be turned into a stage
var ErrInvalidLayout = errors.New("invalid level layout")

// ObstacleKind tags the interaction semantics of an obstacle
type ObstacleKind int

const (
	KindPlatform ObstacleKind = iota
	KindHazard
	KindPickup
	KindMovingPlatform
)

// String returns the string representation of the kind
func (k ObstacleKind) String() string {
	switch k {
	case KindPlatform:
		return "Platform"
	case KindHazard:
		return "Hazard"
	case KindPickup:
		return "Pickup"
	case KindMovingPlatform:
		return "MovingPlatform"
	default:
		return "Unknown"
	}
}

// Obstacle is one collidable object of a level.
// Index is the raster position in the level grid and fixes iteration order.
type Obstacle struct {
	Bounds Rect
	Kind   ObstacleKind
	Index  int

	Damage    int  // KindHazard
	Heal      int  // KindPickup
	Collected bool // KindPickup

	// KindMovingPlatform
	OriginX float64
	motion  *gween.Sequence
}

// NewPlatform creates a static solid obstacle
func NewPlatform(bounds Rect, index int) *Obstacle {
	return &Obstacle{Bounds: bounds, Kind: KindPlatform, Index: index}
}

// NewHazard creates a damaging, non-blocking obstacle
func NewHazard(bounds Rect, index, damage int) *Obstacle {
	return &Obstacle{Bounds: bounds, Kind: KindHazard, Index: index, Damage: damage}
}

// NewPickup creates a collectible that heals on contact
func NewPickup(bounds Rect, index, heal int) *Obstacle {
	return &Obstacle{Bounds: bounds, Kind: KindPickup, Index: index, Heal: heal}
}

// NewMovingPlatform creates a solid platform oscillating horizontally between
// OriginX-reach and OriginX+reach at speed pixels per second.
func NewMovingPlatform(bounds Rect, index int, reach, speed float64) *Obstacle {
	o := &Obstacle{Bounds: bounds, Kind: KindMovingPlatform, Index: index, OriginX: bounds.X}
	if reach <= 0 || speed <= 0 {
		return o
	}

	origin := float32(bounds.X)
	half := float32(reach / speed)
	o.motion = gween.NewSequence(
		gween.New(origin, origin+float32(reach), half, ease.Linear),
		gween.New(origin+float32(reach), origin-float32(reach), 2*half, ease.Linear),
		gween.New(origin-float32(reach), origin, half, ease.Linear),
	)
	return o
}

// Solid reports whether the obstacle blocks movement
func (o *Obstacle) Solid() bool {
	return o.Kind == KindPlatform || o.Kind == KindMovingPlatform
}

// Probeable reports whether AI ground and wall probes see the obstacle
func (o *Obstacle) Probeable() bool {
	return o.Kind != KindPickup
}

// Collect marks a pickup as collected. It returns false if the obstacle is
// not a pickup or was already collected.
func (o *Obstacle) Collect() bool {
	if o.Kind != KindPickup || o.Collected {
		return false
	}
	o.Collected = true
	return true
}

// Advance moves a moving platform along its oscillation and returns the
// horizontal displacement applied. Other kinds never move.
func (o *Obstacle) Advance(dt float64) float64 {
	if o.motion == nil {
		return 0
	}

	x, _, done := o.motion.Update(float32(dt))
	if done {
		o.motion.Reset()
	}

	dx := float64(x) - o.Bounds.X
	o.Bounds.X = float64(x)
	return dx
}

// Stage is a level built from a layout grid.
// Obstacles are in row-major raster order.
type Stage struct {
	Name        string
	Width       float64
	Height      float64
	TileSize    float64
	Obstacles   []*Obstacle
	PlayerSpawn Vec2
	EnemySpawns []Vec2
	EnemyCount  int
}

// MovingPlatforms returns the moving platforms in raster order
func (s *Stage) MovingPlatforms() []*Obstacle {
	var out []*Obstacle
	for _, o := range s.Obstacles {
		if o.Kind == KindMovingPlatform {
			out = append(out, o)
		}
	}
	return out
}

// Count returns the number of obstacles of the given kind
func (s *Stage) Count(kind ObstacleKind) int {
	n := 0
	for _, o := range s.Obstacles {
		if o.Kind == kind {
			n++
		}
	}
	return n
}
