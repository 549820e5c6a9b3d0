package system

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// InputState holds the fighting keys held during one frame
type InputState struct {
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Jump    bool
	Attack  bool
	Special bool
	Grab    bool
	Dodge   bool
}

// Any reports whether any key is held
func (in InputState) Any() bool {
	return in.Left || in.Right || in.Up || in.Down || in.Jump ||
		in.Attack || in.Special || in.Grab || in.Dodge
}

// InputSource supplies the keys for the next frame
type InputSource interface {
	GetInput() InputState
}

// InputSystem reads the fighting keys from the keyboard
type InputSystem struct{}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Left:    ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right:   ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Up:      ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Down:    ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		Jump:    ebiten.IsKeyPressed(ebiten.KeySpace),
		Attack:  ebiten.IsKeyPressed(ebiten.KeyJ),
		Special: ebiten.IsKeyPressed(ebiten.KeyK),
		Grab:    ebiten.IsKeyPressed(ebiten.KeyL),
		Dodge:   ebiten.IsKeyPressed(ebiten.KeyShift),
	}
}
