package system

import (
	"math/rand"

	"github.com/younwookim/duskblade/internal/domain/entity"
	"github.com/younwookim/duskblade/internal/infrastructure/config"
)

// EnemyAI turns the relative position of a target into an enemy's intent
type EnemyAI struct {
	config *config.Tuning
	rng    *rand.Rand
}

// NewEnemyAI creates a new enemy AI. rng drives roaming durations and facing.
func NewEnemyAI(cfg *config.Tuning, rng *rand.Rand) *EnemyAI {
	return &EnemyAI{
		config: cfg,
		rng:    rng,
	}
}

// SetConfig swaps the tuning between ticks
func (ai *EnemyAI) SetConfig(cfg *config.Tuning) {
	ai.config = cfg
}

// RoamDuration returns a random walk or idle phase length
func (ai *EnemyAI) RoamDuration() float64 {
	lo, hi := ai.config.AI.RoamMinDuration, ai.config.AI.RoamMaxDuration
	if hi <= lo {
		return lo
	}
	return lo + ai.rng.Float64()*(hi-lo)
}

// Decide selects the AI state of e and returns its intent for this tick.
// A missing or dead target degrades to roaming.
func (ai *EnemyAI) Decide(e *entity.Enemy, target *entity.Character, probe Prober, dt float64) Intent {
	if e == nil || e.Character == nil || e.IsDead() {
		return Intent{}
	}

	e.Brain.State = ai.selectState(e, target)

	switch e.Brain.State {
	case entity.AIChasing:
		return ai.chase(e, target, probe)
	case entity.AIAttacking:
		return ai.attack(e, target)
	default:
		return ai.roam(e, probe, dt)
	}
}

func (ai *EnemyAI) selectState(e *entity.Enemy, target *entity.Character) entity.AIState {
	if target == nil || target.IsDead() {
		return entity.AIRoaming
	}

	cfg := ai.config.AI
	dx := target.Center().X - e.Center().X
	dy := target.Center().Y - e.Center().Y

	if abs(dx) > cfg.DetectionRange || abs(dy) > cfg.DetectionRange*cfg.VerticalFactor {
		return entity.AIRoaming
	}
	if !ai.inFront(e, dx) {
		return entity.AIRoaming
	}
	if abs(dx) <= cfg.MeleeRange && abs(dy) <= cfg.MeleeRange {
		return entity.AIAttacking
	}
	return entity.AIChasing
}

// inFront reports whether a target dx away is on the facing side.
// A hurt enemy notices targets behind it too.
func (ai *EnemyAI) inFront(e *entity.Enemy, dx float64) bool {
	return dx*float64(e.Facing) >= 0 || e.IsInvulnerable()
}

// roam alternates walk and idle phases
func (ai *EnemyAI) roam(e *entity.Enemy, probe Prober, dt float64) Intent {
	b := &e.Brain

	if b.Idle {
		b.IdleTimer += dt
		if b.IdleTimer < b.IdleDuration {
			return Intent{}
		}
		b.Idle = false
		b.WalkTimer = 0
		b.WalkDuration = ai.RoamDuration()
		if ai.rng.Intn(2) == 0 {
			e.Face(entity.FacingLeft)
		} else {
			e.Face(entity.FacingRight)
		}
	} else {
		b.WalkTimer += dt
		if b.WalkTimer >= b.WalkDuration {
			b.Idle = true
			b.IdleTimer = 0
			b.IdleDuration = ai.RoamDuration()
			return Intent{}
		}
	}

	intent := Intent{MoveX: e.Facing}
	intent.Jump = ai.shouldJump(e, probe)
	return intent
}

// chase runs toward the target outside the dead zone
func (ai *EnemyAI) chase(e *entity.Enemy, target *entity.Character, probe Prober) Intent {
	dx := target.Center().X - e.Center().X
	if abs(dx) <= ai.config.AI.ChaseDeadZone {
		return Intent{}
	}

	intent := Intent{MoveX: sign(dx), Sprint: true}
	// Probe in the direction of travel
	e.Face(intent.MoveX)
	intent.Jump = ai.shouldJump(e, probe)
	return intent
}

// attack swings at a target in front and turns toward one behind
func (ai *EnemyAI) attack(e *entity.Enemy, target *entity.Character) Intent {
	dx := target.Center().X - e.Center().X
	if dx*float64(e.Facing) < 0 {
		return Intent{Face: sign(dx)}
	}
	if e.AttackCooldown <= 0 && !e.Attacking() {
		return Intent{Attack: true}
	}
	return Intent{}
}

func (ai *EnemyAI) shouldJump(e *entity.Enemy, probe Prober) bool {
	if probe == nil {
		return false
	}
	return !ai.GroundAhead(e.Character, probe) || ai.WallAhead(e.Character, probe)
}

// GroundAhead probes just below and ahead of the feet.
// A grounded character always sees ground beneath itself.
func (ai *EnemyAI) GroundAhead(c *entity.Character, probe Prober) bool {
	if c.Grounded {
		return true
	}
	cfg := ai.config.AI
	r := c.CollisionRect(c.Position)
	return probe.Probe(ai.ahead(c, r, r.Bottom()+cfg.ProbeGap, cfg.GroundProbeSize))
}

// WallAhead probes just ahead at mid height
func (ai *EnemyAI) WallAhead(c *entity.Character, probe Prober) bool {
	r := c.CollisionRect(c.Position)
	return probe.Probe(ai.ahead(c, r, r.Top()+r.H/2, ai.config.AI.WallProbeSize))
}

func (ai *EnemyAI) ahead(c *entity.Character, r entity.Rect, y, size float64) entity.Rect {
	gap := ai.config.AI.ProbeGap
	x := r.Right() + gap
	if !c.FacingRight() {
		x = r.Left() - gap - size
	}
	return entity.Rect{X: x, Y: y, W: size, H: size}
}
