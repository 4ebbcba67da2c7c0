// Package camera provides the perspective camera used to view the scene.
package camera

import (
	"github.com/Faultbox/melonview/pkg/math"
)

// Perspective is a perspective-projection camera looking at a fixed target.
type Perspective struct {
	FOV    float32 // Vertical field of view, degrees
	Aspect float32 // Width / height
	Near   float32
	Far    float32

	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	projection math.Mat4
}

// NewPerspective creates a camera and computes its projection.
func NewPerspective(fov, aspect, near, far float32) *Perspective {
	c := &Perspective{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     math.Vec3{X: 0, Y: 1, Z: 0},
	}
	c.UpdateProjection()
	return c
}

// SetAspect sets the aspect ratio from a viewport size and recomputes the projection.
// A zero height leaves the camera unchanged (minimized window).
func (c *Perspective) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
	c.UpdateProjection()
}

// UpdateProjection recomputes the projection matrix after FOV, Aspect, Near or Far change.
func (c *Perspective) UpdateProjection() {
	c.projection = math.Perspective(math.Degrees(c.FOV), c.Aspect, c.Near, c.Far)
}

// LookAt points the camera at target.
func (c *Perspective) LookAt(target math.Vec3) {
	c.Target = target
}

// ProjectionMatrix returns the cached projection matrix.
func (c *Perspective) ProjectionMatrix() math.Mat4 {
	return c.projection
}

// ViewMatrix returns the view matrix for this camera.
func (c *Perspective) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}
