package state

// GameState represents the current state of a play session
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateLevelClear
	StateVictory
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateLevelClear:
		return "LevelClear"
	case StateVictory:
		return "Victory"
	default:
		return "Unknown"
	}
}

// Simulating reports whether ticks advance the simulation in this state
func (s GameState) Simulating() bool {
	return s == StatePlaying || s == StateLevelClear
}
