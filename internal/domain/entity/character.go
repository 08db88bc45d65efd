package entity

// Role selects who drives a character
type Role int

const (
	RolePlayer Role = iota
	RoleEnemy
)

// String returns the string representation of the role
func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "Player"
	case RoleEnemy:
		return "Enemy"
	default:
		return "Unknown"
	}
}

// Stats holds the tuning of a character.
// Speeds are in pixels per tick, durations in seconds.
type Stats struct {
	MaxHealth        int
	Speed            float64
	SprintMultiplier float64
	JumpPower        float64

	AttackDamage   int
	AttackDuration float64
	AttackCooldown float64

	HurtDuration  float64
	DeathDuration float64

	// Passive regeneration, disabled when RegenInterval is zero
	RegenInterval float64
	RegenAmount   int

	CollectsPickups bool
	RespawnOnDeath  bool
}

// Character is a player or enemy body with health, timers and a behavior state.
type Character struct {
	Body
	Role  Role
	Stats Stats
	Spawn Vec2

	// Timers count down in seconds
	HurtTimer      float64
	AttackTimer    float64
	AttackCooldown float64
	DeathTimer     float64
	RegenTimer     float64

	HitLandedThisSwing bool
	Sprinting          bool

	health        int
	state         CharacterState
	previousState CharacterState
	stateTicks    int
	removable     bool
	events        Event
}

// NewCharacter creates a character with full health in Idle at spawn
func NewCharacter(role Role, stats Stats, spawn Vec2, width, height, inset float64) *Character {
	return &Character{
		Body: Body{
			Position: spawn,
			Width:    width,
			Height:   height,
			Facing:   FacingRight,
			Inset:    inset,
		},
		Role:          role,
		Stats:         stats,
		Spawn:         spawn,
		health:        stats.MaxHealth,
		state:         StateIdle,
		previousState: StateIdle,
	}
}

// NewCharacterFromSnapshot creates a character whose health and position come
// from a saved snapshot. Transient timers start neutral.
func NewCharacterFromSnapshot(role Role, stats Stats, spawn Vec2, width, height, inset float64, snap Snapshot) *Character {
	c := NewCharacter(role, stats, spawn, width, height, inset)
	c.Restore(snap)
	return c
}

// Health returns the current health
func (c *Character) Health() int { return c.health }

// MaxHealth returns the configured maximum health
func (c *Character) MaxHealth() int { return c.Stats.MaxHealth }

// State returns the current state
func (c *Character) State() CharacterState { return c.state }

// PreviousState returns the state before the last transition
func (c *Character) PreviousState() CharacterState { return c.previousState }

// StateTicks returns the number of updates spent in the current state
func (c *Character) StateTicks() int { return c.stateTicks }

// IsDead reports whether the character is in the Dead state
func (c *Character) IsDead() bool { return c.state == StateDead }

// Removable reports whether a dead enemy can be dropped from the roster
func (c *Character) Removable() bool { return c.removable }

// IsInvulnerable reports whether the character is inside its hurt window
func (c *Character) IsInvulnerable() bool { return c.HurtTimer > 0 }

// Attacking reports whether a swing is active
func (c *Character) Attacking() bool { return c.AttackTimer > 0 }

// ChangeState moves the character to s. Same-state calls are a no-op and
// Dead refuses every change until respawn or removal.
func (c *Character) ChangeState(s CharacterState) bool {
	if c.state == s || c.state == StateDead {
		return false
	}
	c.setState(s)
	return true
}

func (c *Character) setState(s CharacterState) {
	c.previousState = c.state
	c.state = s
	c.stateTicks = 0
}

// Tick advances the per-state counter by one update
func (c *Character) Tick() {
	c.stateTicks++
}

// TakeDamage applies amount if the character is alive and either not
// invulnerable or ignoreInvulnerability is set. It reports whether damage
// was applied.
func (c *Character) TakeDamage(amount int, ignoreInvulnerability bool) bool {
	if c.health <= 0 || c.state == StateDead {
		return false
	}
	if c.IsInvulnerable() && !ignoreInvulnerability {
		return false
	}

	c.health -= amount
	if c.health < 0 {
		c.health = 0
	}
	c.HurtTimer = c.Stats.HurtDuration
	c.ChangeState(StateHurt)
	c.Emit(EventHurt)
	return true
}

// Heal restores up to amount health, clamped to MaxHealth, and returns the
// amount actually restored. Dead characters cannot heal.
func (c *Character) Heal(amount int) int {
	if amount <= 0 || c.state == StateDead || c.health <= 0 {
		return 0
	}
	before := c.health
	c.health += amount
	if c.health > c.Stats.MaxHealth {
		c.health = c.Stats.MaxHealth
	}
	healed := c.health - before
	if healed > 0 {
		c.Emit(EventHealed)
	}
	return healed
}

// SetStats swaps the tuning and clamps health to the new MaxHealth
func (c *Character) SetStats(stats Stats) {
	c.Stats = stats
	c.health = min(c.health, stats.MaxHealth)
}

// Die enters the Dead state and starts the death timer
func (c *Character) Die() {
	if c.state == StateDead {
		return
	}
	c.health = 0
	c.HurtTimer = 0
	c.AttackTimer = 0
	c.Velocity.X = 0
	c.DeathTimer = c.Stats.DeathDuration
	c.setState(StateDead)
	c.Emit(EventDied)
}

// Respawn puts a dead character back at its spawn point with full health
func (c *Character) Respawn() {
	c.Position = c.Spawn
	c.Velocity = Vec2{}
	c.Grounded = false
	c.health = c.Stats.MaxHealth
	c.resetTimers()
	c.setState(StateIdle)
	c.Emit(EventRespawned)
}

// MarkRemovable flags a dead character for removal from its roster
func (c *Character) MarkRemovable() {
	if c.state == StateDead {
		c.removable = true
	}
}

func (c *Character) resetTimers() {
	c.HurtTimer = 0
	c.AttackTimer = 0
	c.AttackCooldown = 0
	c.DeathTimer = 0
	c.RegenTimer = 0
	c.HitLandedThisSwing = false
	c.Sprinting = false
}

// Emit raises a one-shot event
func (c *Character) Emit(e Event) {
	c.events |= e
}

// Events returns the events raised since the last update began
func (c *Character) Events() Event {
	return c.events
}

// HasEvent reports whether e was raised since the last update began
func (c *Character) HasEvent(e Event) bool {
	return c.events.Has(e)
}

// ClearEvents drops all pending events
func (c *Character) ClearEvents() {
	c.events = 0
}
