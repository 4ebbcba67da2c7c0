package ui2d

// InputState is the pointer as seen by the 2D layer, in window points.
type InputState struct {
	MouseX        float32
	MouseY        float32
	MouseLeftDown bool
}

// Move records a new pointer position.
func (i *InputState) Move(x, y float32) {
	i.MouseX, i.MouseY = x, y
}

// IsMouseInRect checks if the mouse is within a rectangle.
func (i *InputState) IsMouseInRect(r Rect) bool {
	return r.Contains(i.MouseX, i.MouseY)
}

// ButtonState is the visual state of a button.
type ButtonState int

const (
	ButtonNormal ButtonState = iota
	ButtonHover
	ButtonActive
)

// StateFor returns the button state for r. pressed marks a press that started
// inside r and has not been released yet.
func (i *InputState) StateFor(r Rect, pressed bool) ButtonState {
	switch {
	case pressed && i.MouseLeftDown:
		return ButtonActive
	case i.IsMouseInRect(r):
		return ButtonHover
	default:
		return ButtonNormal
	}
}
