package lighting

import (
	"image/color"
	gomath "math"
	"testing"

	"github.com/Faultbox/melonview/pkg/math"
)

func near(a, b, eps float32) bool {
	return gomath.Abs(float64(a-b)) <= float64(eps)
}

func TestSRGBToLinear(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{1, 1},
		{0.04, 0.04 / 12.92},
		{0.5, 0.21404},
	}
	for _, tt := range tests {
		if got := SRGBToLinear(tt.in); !near(got, tt.want, 1e-4) {
			t.Errorf("SRGBToLinear(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewHemisphere(t *testing.T) {
	h := NewHemisphere(color.RGBA{255, 255, 255, 255}, color.RGBA{0x44, 0x44, 0x44, 255}, 1)
	if h.Sky != [3]float32{1, 1, 1} {
		t.Errorf("Sky = %v, want white", h.Sky)
	}
	if h.Ground[0] >= float32(0x44)/255 {
		t.Errorf("Ground = %v, want linearized (darker than sRGB value)", h.Ground)
	}
}

func TestDirectionalDirection(t *testing.T) {
	d := NewDirectional(color.RGBA{255, 255, 255, 255}, 1, math.Vec3{X: 5, Y: 10, Z: 7.5})
	dir := d.Direction()

	l := float32(gomath.Sqrt(5*5 + 10*10 + 7.5*7.5))
	want := [3]float32{5 / l, 10 / l, 7.5 / l}
	for i := range dir {
		if !near(dir[i], want[i], 1e-5) {
			t.Fatalf("Direction() = %v, want %v", dir, want)
		}
	}
}

func TestShadowMatrixCoversBounds(t *testing.T) {
	d := NewDirectional(color.RGBA{255, 255, 255, 255}, 1, math.Vec3{X: 5, Y: 10, Z: 7.5})
	bounds := math.Box3{
		Min: math.Vec3{X: -6, Y: -2, Z: -6},
		Max: math.Vec3{X: 6, Y: 1, Z: 6},
	}
	m := d.ShadowMatrix(bounds)

	// Every corner must land inside the light's clip volume
	for _, x := range []float32{bounds.Min.X, bounds.Max.X} {
		for _, y := range []float32{bounds.Min.Y, bounds.Max.Y} {
			for _, z := range []float32{bounds.Min.Z, bounds.Max.Z} {
				p := m.TransformPoint([3]float32{x, y, z})
				for i, c := range p {
					if c < -1 || c > 1 {
						t.Errorf("corner (%v,%v,%v) axis %d = %v outside clip volume", x, y, z, i, c)
					}
				}
			}
		}
	}
}

func TestShadowMatrixEmptyBounds(t *testing.T) {
	d := NewDirectional(color.RGBA{255, 255, 255, 255}, 1, math.Vec3{Y: 1})
	if got := d.ShadowMatrix(math.EmptyBox()); got != math.Identity() {
		t.Errorf("ShadowMatrix(empty) = %v, want identity", got)
	}
}
