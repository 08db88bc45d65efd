package system

import (
	"github.com/younwookim/duskblade/internal/domain/entity"
)

// hurtFriction damps knockback while a character is in its hurt window
const hurtFriction = 0.9

// CharacterSystem drives the per-tick state machine of one character:
// timers, intent, physics, combat, then death and display state.
type CharacterSystem struct {
	physics *PhysicsSystem
	combat  *CombatSystem
}

// NewCharacterSystem creates a new character system
func NewCharacterSystem(physics *PhysicsSystem, combat *CombatSystem) *CharacterSystem {
	return &CharacterSystem{
		physics: physics,
		combat:  combat,
	}
}

// Update advances c by one tick of dt seconds. opponents is the roster the
// character's swings are tested against, in arbitration order. Events are
// not cleared here; the caller clears them once per tick.
func (s *CharacterSystem) Update(c *entity.Character, intent Intent, stage *entity.Stage, opponents []*entity.Character, dt float64) {
	c.Tick()

	if c.IsDead() {
		s.updateDead(c, stage, dt)
		return
	}

	// Health reached zero outside this character's own update
	if c.Health() <= 0 {
		c.Die()
		return
	}

	s.updateTimers(c, dt)
	s.applyIntent(c, intent)

	wasGrounded := c.Grounded
	s.physics.Resolve(c, stage.Obstacles, stage.Width)
	if c.Grounded && !wasGrounded {
		c.Emit(entity.EventLanded)
	}

	if c.Attacking() && !c.HitLandedThisSwing {
		s.combat.ResolveSwing(c, opponents)
	}

	if c.Health() <= 0 {
		c.Die()
		return
	}

	s.refreshState(c)
}

// updateDead runs the death timer. Dead bodies still fall.
func (s *CharacterSystem) updateDead(c *entity.Character, stage *entity.Stage, dt float64) {
	c.Velocity.X = 0
	s.physics.Resolve(c, stage.Obstacles, stage.Width)

	if c.DeathTimer > 0 {
		c.DeathTimer -= dt
	}
	if c.DeathTimer > 0 {
		return
	}

	if c.Stats.RespawnOnDeath {
		c.Respawn()
		return
	}
	c.MarkRemovable()
}

// updateTimers counts down the hurt, attack and cooldown timers and runs
// passive regeneration.
func (s *CharacterSystem) updateTimers(c *entity.Character, dt float64) {
	if c.HurtTimer > 0 {
		c.HurtTimer -= dt
		if c.HurtTimer < 0 {
			c.HurtTimer = 0
		}
	}

	if c.AttackCooldown > 0 {
		c.AttackCooldown -= dt
		if c.AttackCooldown < 0 {
			c.AttackCooldown = 0
		}
	}

	if c.AttackTimer > 0 {
		c.AttackTimer -= dt
		if c.AttackTimer <= 0 {
			c.AttackTimer = 0
			if !c.HitLandedThisSwing {
				c.Emit(entity.EventSwingWhiffed)
			}
		}
	}

	switch {
	case c.Stats.RegenInterval <= 0:
	case c.Health() >= c.MaxHealth():
		// The interval starts over from the first tick below max health
		c.RegenTimer = 0
	default:
		c.RegenTimer += dt
		if c.RegenTimer >= c.Stats.RegenInterval {
			c.RegenTimer -= c.Stats.RegenInterval
			c.Heal(c.Stats.RegenAmount)
		}
	}
}

// applyIntent turns the intent into velocity, jumps and swing starts
func (s *CharacterSystem) applyIntent(c *entity.Character, intent Intent) {
	hurt := c.IsInvulnerable()

	if hurt {
		c.Velocity.X *= hurtFriction
		c.Sprinting = false
	} else {
		c.Velocity.X = float64(intent.MoveX) * c.Stats.Speed
		c.Sprinting = intent.Sprint && intent.MoveX != 0
		if c.Sprinting {
			c.Velocity.X *= c.Stats.SprintMultiplier
		}
		if intent.MoveX != 0 {
			c.Face(intent.MoveX)
		} else {
			c.Face(intent.Face)
		}
	}

	if intent.Jump && c.Grounded && !hurt {
		c.Velocity.Y = -c.Stats.JumpPower
		c.Grounded = false
		c.Emit(entity.EventJumped)
	}

	if intent.Attack && c.AttackCooldown <= 0 && !c.Attacking() {
		s.combat.StartSwing(c)
	}
}

// refreshState picks the display state by priority:
// Attacking, Hurt, airborne, then grounded movement.
func (s *CharacterSystem) refreshState(c *entity.Character) {
	switch {
	case c.Attacking():
		c.ChangeState(entity.StateAttacking)
	case c.IsInvulnerable():
		c.ChangeState(entity.StateHurt)
	case !c.Grounded:
		switch {
		case c.Velocity.Y < 0:
			c.ChangeState(entity.StateJumping)
		case c.Velocity.Y > 0 || c.State() != entity.StateJumping:
			c.ChangeState(entity.StateFalling)
		}
	case c.Velocity.X == 0:
		c.ChangeState(entity.StateIdle)
	case c.Sprinting:
		c.ChangeState(entity.StateSprinting)
	default:
		c.ChangeState(entity.StateWalking)
	}
}
