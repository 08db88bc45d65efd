package system

import (
	"github.com/younwookim/duskblade/internal/domain/entity"
)

// CombatSystem builds melee hitboxes and arbitrates hits.
// A swing lands at most one hit on at most one opponent.
type CombatSystem struct {
	// Event callbacks
	OnHit func(attacker, target *entity.Character)
}

// NewCombatSystem creates a new combat system
func NewCombatSystem() *CombatSystem {
	return &CombatSystem{}
}

// StartSwing begins a new swing and its cooldown
func (s *CombatSystem) StartSwing(c *entity.Character) {
	c.AttackTimer = c.Stats.AttackDuration
	c.AttackCooldown = c.Stats.AttackCooldown
	c.HitLandedThisSwing = false
	c.ChangeState(entity.StateAttacking)
	c.Emit(entity.EventSwingStarted)
}

// Hitbox returns the melee hitbox: half the collision width, reaching from
// the collision center toward the facing direction. The left box is the
// mirror of the right one about the center, so it starts at the collision
// rect's left edge rather than half a width beyond it.
func (s *CombatSystem) Hitbox(c *entity.Character) entity.Rect {
	r := c.CollisionRect(c.Position)
	half := r.W / 2
	hb := entity.Rect{X: r.X + half, Y: r.Y, W: half, H: r.H}
	if !c.FacingRight() {
		hb.X = r.X
	}
	return hb
}

// ResolveSwing tests the hitbox of an active swing against opponents in
// order and damages the first one it overlaps. It returns the target hit,
// or nil when the swing is inactive, already landed, or missed this tick.
func (s *CombatSystem) ResolveSwing(attacker *entity.Character, opponents []*entity.Character) *entity.Character {
	if !attacker.Attacking() || attacker.HitLandedThisSwing {
		return nil
	}

	hb := s.Hitbox(attacker)
	for _, target := range opponents {
		if target == nil || target == attacker || target.IsDead() || target.Health() <= 0 {
			continue
		}
		if !hb.Intersects(target.Bounds()) {
			continue
		}

		target.TakeDamage(attacker.Stats.AttackDamage, true)
		attacker.HitLandedThisSwing = true
		attacker.Emit(entity.EventHitLanded)
		if s.OnHit != nil {
			s.OnHit(attacker, target)
		}
		return target
	}

	return nil
}
