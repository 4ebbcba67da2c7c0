// Package texture provides CPU-side texture images and the procedural stripe generator.
package texture

import (
	"image"
	"image/color"
)

// Wrap is the texture coordinate wrap mode.
type Wrap int

const (
	ClampToEdge Wrap = iota
	Repeat
)

// Texture is an immutable RGBA image plus sampling parameters.
// The renderer uploads it once and caches the GL handle by pointer.
type Texture struct {
	Image *image.RGBA
	WrapS Wrap
	WrapT Wrap
	// SRGB marks the pixel data as sRGB-encoded color.
	SRGB bool
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (int, int) {
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Stripes generates a size×size texture of count horizontal bands alternating
// between dark and light, starting with dark at the top. Both axes repeat.
func Stripes(size, count int, dark, light color.RGBA) *Texture {
	if count < 1 {
		count = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		c := dark
		if StripeIndex(y, size, count)%2 == 1 {
			c = light
		}
		row := img.Pix[y*img.Stride : y*img.Stride+size*4]
		for x := 0; x < size; x++ {
			row[x*4+0] = c.R
			row[x*4+1] = c.G
			row[x*4+2] = c.B
			row[x*4+3] = c.A
		}
	}
	return &Texture{Image: img, WrapS: Repeat, WrapT: Repeat, SRGB: true}
}

// StripeIndex returns which band row y falls into.
func StripeIndex(y, size, count int) int {
	return y * count / size
}
