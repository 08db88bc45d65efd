package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSystem handles player input
type InputSystem struct{}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// InputState holds the current input state
type InputState struct {
	Left   bool
	Right  bool
	Sprint bool
	Jump   bool
	Attack bool
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Left:   ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:  ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Sprint: ebiten.IsKeyPressed(ebiten.KeyShiftLeft),
		Jump: ebiten.IsKeyPressed(ebiten.KeySpace) ||
			ebiten.IsKeyPressed(ebiten.KeyW) ||
			ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Attack: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
			inpututil.IsKeyJustPressed(ebiten.KeyJ),
	}
}

// Intent converts raw input into a character intent.
// Holding both directions cancels out.
func (in InputState) Intent() Intent {
	intent := Intent{
		Sprint: in.Sprint,
		Jump:   in.Jump,
		Attack: in.Attack,
	}
	if in.Left {
		intent.MoveX--
	}
	if in.Right {
		intent.MoveX++
	}
	return intent
}
