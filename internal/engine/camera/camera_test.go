package camera

import (
	"testing"

	"github.com/Faultbox/melonview/pkg/math"
)

func TestSetAspect(t *testing.T) {
	c := NewPerspective(45, 1, 0.1, 1000)

	c.SetAspect(1600, 900)
	if want := float32(1600) / 900; c.Aspect != want {
		t.Errorf("Aspect = %v, want %v", c.Aspect, want)
	}

	// Projection x scale is f / aspect, y scale is f
	p := c.ProjectionMatrix()
	if got := p[5] / p[0]; got < c.Aspect-1e-4 || got > c.Aspect+1e-4 {
		t.Errorf("projection ratio = %v, want %v", got, c.Aspect)
	}
}

func TestSetAspectIgnoresEmptyViewport(t *testing.T) {
	c := NewPerspective(45, 2, 0.1, 1000)
	before := c.ProjectionMatrix()

	c.SetAspect(800, 0)
	if c.Aspect != 2 || c.ProjectionMatrix() != before {
		t.Errorf("zero-height resize changed camera: aspect %v", c.Aspect)
	}
}

func TestViewMatrixMovesTargetInFront(t *testing.T) {
	c := NewPerspective(45, 1, 0.1, 1000)
	c.Position = math.Vec3{X: 0, Y: 3, Z: 8}
	c.LookAt(math.Vec3{})

	// The target lies on the view axis, in front of the camera (negative Z in view space)
	p := c.ViewMatrix().TransformPoint([3]float32{0, 0, 0})
	if p[0] > 1e-5 || p[0] < -1e-5 || p[1] > 1e-5 || p[1] < -1e-5 {
		t.Errorf("target off axis in view space: %v", p)
	}
	if p[2] >= 0 {
		t.Errorf("target behind camera: z = %v", p[2])
	}
}
