package entity

// AIState is the decision layer of an enemy, above its behavior state
type AIState int

const (
	AIRoaming AIState = iota
	AIChasing
	AIAttacking
)

// String returns the string representation of the AI state
func (s AIState) String() string {
	switch s {
	case AIRoaming:
		return "Roaming"
	case AIChasing:
		return "Chasing"
	case AIAttacking:
		return "Attacking"
	default:
		return "Unknown"
	}
}

// Brain holds the roaming memory of an enemy
type Brain struct {
	State AIState

	Idle         bool
	WalkTimer    float64
	WalkDuration float64
	IdleTimer    float64
	IdleDuration float64
}

// Enemy is an AI-driven character
type Enemy struct {
	*Character
	Brain Brain
}

// NewEnemy wraps a character with a fresh brain.
// The first roaming walk lasts walkDuration seconds.
func NewEnemy(c *Character, walkDuration float64) *Enemy {
	return &Enemy{
		Character: c,
		Brain:     Brain{State: AIRoaming, WalkDuration: walkDuration},
	}
}
