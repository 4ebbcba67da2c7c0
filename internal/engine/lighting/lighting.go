// Package lighting provides the scene's light sources and the directional shadow projection.
package lighting

import (
	"image/color"

	"github.com/Faultbox/melonview/pkg/math"
)

// Hemisphere is an ambient light that blends between a sky color above and a
// ground color below, weighted by the surface normal's Y component.
type Hemisphere struct {
	Sky       [3]float32 // Linear RGB
	Ground    [3]float32 // Linear RGB
	Intensity float32
}

// NewHemisphere creates a hemisphere light from sRGB colors.
func NewHemisphere(sky, ground color.RGBA, intensity float32) *Hemisphere {
	return &Hemisphere{
		Sky:       LinearRGB(sky),
		Ground:    LinearRGB(ground),
		Intensity: intensity,
	}
}

// Directional is a light infinitely far away shining from Position towards Target.
type Directional struct {
	Color      [3]float32 // Linear RGB
	Intensity  float32
	Position   math.Vec3
	Target     math.Vec3
	CastShadow bool
}

// NewDirectional creates a directional light at position aimed at the origin.
func NewDirectional(c color.RGBA, intensity float32, position math.Vec3) *Directional {
	return &Directional{
		Color:     LinearRGB(c),
		Intensity: intensity,
		Position:  position,
	}
}

// Direction returns the normalized direction from the target towards the light.
func (d *Directional) Direction() [3]float32 {
	return d.Position.Sub(d.Target).Normalize().Array()
}
