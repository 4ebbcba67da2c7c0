package lighting

import (
	"image/color"
	gomath "math"
)

// SRGBToLinear converts one sRGB-encoded channel in [0,1] to linear light.
func SRGBToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return float32(gomath.Pow((float64(c)+0.055)/1.055, 2.4))
}

// LinearRGB converts an 8-bit sRGB color to linear RGB floats.
func LinearRGB(c color.RGBA) [3]float32 {
	return [3]float32{
		SRGBToLinear(float32(c.R) / 255),
		SRGBToLinear(float32(c.G) / 255),
		SRGBToLinear(float32(c.B) / 255),
	}
}
