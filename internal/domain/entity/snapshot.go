package entity

// Snapshot is the persisted state of one character
type Snapshot struct {
	Health int     `json:"health" yaml:"health"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
}

// GameData is a checkpoint of a whole session
type GameData struct {
	Player  Snapshot   `json:"player" yaml:"player"`
	Enemies []Snapshot `json:"enemies" yaml:"enemies"`
	Level   int        `json:"level" yaml:"level"`
}

// Snapshot captures health and position
func (c *Character) Snapshot() Snapshot {
	return Snapshot{Health: c.health, X: c.Position.X, Y: c.Position.Y}
}

// Restore overrides health and position from s and resets every transient
// timer. The character comes back Idle and airborne.
func (c *Character) Restore(s Snapshot) {
	c.health = s.Health
	if c.health > c.Stats.MaxHealth {
		c.health = c.Stats.MaxHealth
	}
	if c.health < 0 {
		c.health = 0
	}
	c.Position = Vec2{X: s.X, Y: s.Y}
	c.Velocity = Vec2{}
	c.Grounded = false
	c.removable = false
	c.events = 0
	c.resetTimers()
	c.state = StateIdle
	c.previousState = StateIdle
	c.stateTicks = 0
}
