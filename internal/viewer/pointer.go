package viewer

import (
	gomath "math"

	"github.com/Faultbox/melonview/pkg/math"
)

// Rotation constants, radians.
const (
	// YawPerPixel is the yaw added per pixel of horizontal drag.
	YawPerPixel = 0.01
	// PitchPerPixel is the pitch added per pixel of vertical drag.
	PitchPerPixel = 0.005
	// MaxPitch bounds the pitch in both directions.
	MaxPitch = gomath.Pi / 3
	// IdleSpin is the yaw added every frame while no drag is in progress.
	IdleSpin = 0.005
)

// PointerState tracks an in-progress drag.
type PointerState struct {
	Dragging bool
	LastX    float32
	LastY    float32
}

// PointerDown starts a drag at (x, y).
func (v *Viewer) PointerDown(x, y float32) {
	v.pointer = PointerState{Dragging: true, LastX: x, LastY: y}
}

// PointerMove rotates the model by the distance moved since the last event.
// It is ignored unless a drag is in progress.
func (v *Viewer) PointerMove(x, y float32) {
	if !v.pointer.Dragging {
		return
	}
	dx := x - v.pointer.LastX
	dy := y - v.pointer.LastY

	v.group.Rotation.Y += dx * YawPerPixel
	v.group.Rotation.X += dy * PitchPerPixel
	v.group.Rotation.X = math.Clamp(v.group.Rotation.X, -MaxPitch, MaxPitch)

	v.pointer.LastX = x
	v.pointer.LastY = y
}

// PointerUp ends any drag. Release, leave, touch end and touch cancel all map here.
func (v *Viewer) PointerUp() {
	v.pointer.Dragging = false
}
