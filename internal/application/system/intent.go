package system

// Intent is what a controller asks a character to do for one tick.
// The player's intent comes from input, an enemy's from EnemyAI.
type Intent struct {
	MoveX  int // -1 left, 0 none, 1 right
	Face   int // facing override used only when MoveX is zero
	Sprint bool
	Jump   bool
	Attack bool
}

// Idle reports whether the intent asks for nothing
func (i Intent) Idle() bool {
	return i == Intent{}
}

func sign(x float64) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
