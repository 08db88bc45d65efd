package system

import (
	"github.com/younwookim/duskblade/internal/domain/entity"
	"github.com/younwookim/duskblade/internal/infrastructure/config"
)

// supportTolerance is how far a resting body's feet may sit from a platform
// top and still count as standing on it.
const supportTolerance = 0.5

// PhysicsSystem integrates gravity and resolves collisions against obstacles
type PhysicsSystem struct {
	config *config.Tuning
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.Tuning) *PhysicsSystem {
	return &PhysicsSystem{config: cfg}
}

// SetConfig swaps the tuning between ticks
func (s *PhysicsSystem) SetConfig(cfg *config.Tuning) {
	s.config = cfg
}

// Resolve moves the character by its velocity, one axis at a time, and
// returns the resolved position. Hazards and pickups never block.
// The horizontal position is clamped to the world; vertical is not.
func (s *PhysicsSystem) Resolve(c *entity.Character, obstacles []*entity.Obstacle, worldWidth float64) entity.Vec2 {
	// Gravity is unbounded
	if !c.Grounded {
		c.Velocity.Y += s.config.Physics.Gravity
	}
	c.Grounded = false

	pos := c.Position
	pos.X = s.moveX(c, pos, obstacles)
	pos.Y = s.moveY(c, pos, obstacles)

	if !c.Grounded && c.Velocity.Y == 0 {
		if top, ok := s.support(c, pos, obstacles); ok {
			pos.Y = top - c.Height
			c.Grounded = true
		}
	}

	if worldWidth > 0 {
		pos.X = clamp(pos.X, -c.Inset, worldWidth-c.Width+c.Inset)
	}

	c.Position = pos
	return pos
}

// moveX runs the horizontal pass. The last blocking obstacle in order wins.
func (s *PhysicsSystem) moveX(c *entity.Character, pos entity.Vec2, obstacles []*entity.Obstacle) float64 {
	vx := c.Velocity.X
	pos.X += vx
	rect := c.CollisionRect(pos)
	x := pos.X

	for _, o := range obstacles {
		if !rect.Intersects(o.Bounds) {
			continue
		}
		switch o.Kind {
		case entity.KindHazard:
			s.touchHazard(c, o)
		case entity.KindPickup:
			s.touchPickup(c, o)
		case entity.KindPlatform, entity.KindMovingPlatform:
			if vx > 0 {
				x = o.Bounds.Left() - c.Width + c.Inset
			} else if vx < 0 {
				x = o.Bounds.Right() - c.Inset
			}
		}
	}

	return x
}

// moveY runs the vertical pass. Landing and ceiling hits zero the vertical
// velocity, so the first blocking obstacle in order wins.
func (s *PhysicsSystem) moveY(c *entity.Character, pos entity.Vec2, obstacles []*entity.Obstacle) float64 {
	pos.Y += c.Velocity.Y
	rect := c.CollisionRect(pos)
	y := pos.Y

	for _, o := range obstacles {
		if !rect.Intersects(o.Bounds) {
			continue
		}
		switch o.Kind {
		case entity.KindHazard:
			s.touchHazard(c, o)
		case entity.KindPickup:
			s.touchPickup(c, o)
		case entity.KindPlatform, entity.KindMovingPlatform:
			if c.Velocity.Y > 0 {
				// Land on top
				y = o.Bounds.Top() - c.Height
				c.Grounded = true
				c.Velocity.Y = 0
			} else if c.Velocity.Y < 0 {
				// Hit the underside
				y = o.Bounds.Bottom()
				c.Velocity.Y = 0
			}
		}
	}

	return y
}

// support finds a solid surface directly under a body that is not moving
// vertically, so resting bodies stay grounded between ticks.
func (s *PhysicsSystem) support(c *entity.Character, pos entity.Vec2, obstacles []*entity.Obstacle) (float64, bool) {
	rect := c.CollisionRect(pos)
	for _, o := range obstacles {
		if !o.Solid() {
			continue
		}
		if rect.Right() <= o.Bounds.Left() || o.Bounds.Right() <= rect.Left() {
			continue
		}
		if abs(rect.Bottom()-o.Bounds.Top()) <= supportTolerance {
			return o.Bounds.Top(), true
		}
	}
	return 0, false
}

// touchHazard damages the character once per hurt window and knocks it away
// from the hazard.
func (s *PhysicsSystem) touchHazard(c *entity.Character, o *entity.Obstacle) {
	damage := o.Damage
	if damage <= 0 {
		damage = s.config.Hazard.Damage
	}
	if !c.TakeDamage(damage, false) {
		return
	}

	dir := sign(c.Center().X - o.Bounds.Center().X)
	if dir == 0 {
		dir = -c.Facing
	}
	c.Velocity.X = float64(dir) * s.config.Hazard.Knockback
}

// touchPickup collects a pickup for characters that can take it
func (s *PhysicsSystem) touchPickup(c *entity.Character, o *entity.Obstacle) {
	if !c.Stats.CollectsPickups || c.IsDead() {
		return
	}
	if !o.Collect() {
		return
	}

	heal := o.Heal
	if heal <= 0 {
		heal = s.config.Pickup.Heal
	}
	c.Heal(heal)
	c.Emit(entity.EventPickup)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
