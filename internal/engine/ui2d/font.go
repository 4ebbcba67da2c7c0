package ui2d

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const atlasColumns = 16

// Atlas is a grid of fixed-size glyphs rasterized from a bitmap face.
// Glyphs are white with coverage in the alpha channel.
type Atlas struct {
	Image  *image.RGBA
	GlyphW int
	GlyphH int

	index    map[rune]int
	fallback int
}

// atlasRunes lists printable ASCII and Latin-1.
func atlasRunes() []rune {
	var runes []rune
	for r := rune(0x20); r < 0x7f; r++ {
		runes = append(runes, r)
	}
	for r := rune(0xa0); r <= 0xff; r++ {
		runes = append(runes, r)
	}
	return runes
}

// NewAtlas rasterizes runes from a monospace face into an atlas.
func NewAtlas(face font.Face, runes []rune) *Atlas {
	m := face.Metrics()
	adv, _ := face.GlyphAdvance('M')
	a := &Atlas{
		GlyphW: adv.Ceil(),
		GlyphH: m.Height.Ceil(),
		index:  make(map[rune]int, len(runes)),
	}

	rows := (len(runes) + atlasColumns - 1) / atlasColumns
	a.Image = image.NewRGBA(image.Rect(0, 0, atlasColumns*a.GlyphW, rows*a.GlyphH))

	d := &font.Drawer{Dst: a.Image, Src: image.White, Face: face}
	for i, r := range runes {
		col, row := i%atlasColumns, i/atlasColumns
		d.Dot = fixed.P(col*a.GlyphW, row*a.GlyphH+m.Ascent.Ceil())
		d.DrawString(string(r))
		a.index[r] = i
	}
	if i, ok := a.index['?']; ok {
		a.fallback = i
	}
	return a
}

// DefaultAtlas returns the 7x13 fixed bitmap font atlas.
func DefaultAtlas() *Atlas {
	return NewAtlas(basicfont.Face7x13, atlasRunes())
}

// Has reports whether r has its own glyph.
func (a *Atlas) Has(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// GlyphRect returns the pixel rectangle of r's cell. Missing runes use '?'.
func (a *Atlas) GlyphRect(r rune) image.Rectangle {
	i, ok := a.index[r]
	if !ok {
		i = a.fallback
	}
	x := (i % atlasColumns) * a.GlyphW
	y := (i / atlasColumns) * a.GlyphH
	return image.Rect(x, y, x+a.GlyphW, y+a.GlyphH)
}

// GetGlyphUV returns texture coordinates of r's cell.
func (a *Atlas) GetGlyphUV(r rune) (u0, v0, u1, v1 float32) {
	rect := a.GlyphRect(r)
	w := float32(a.Image.Bounds().Dx())
	h := float32(a.Image.Bounds().Dy())
	return float32(rect.Min.X) / w, float32(rect.Min.Y) / h, float32(rect.Max.X) / w, float32(rect.Max.Y) / h
}

// MeasureText returns the size of text drawn at scale. Newlines start new lines.
func (a *Atlas) MeasureText(text string, scale float32) (float32, float32) {
	if text == "" {
		return 0, 0
	}
	lines, widest, cur := 1, 0, 0
	for _, r := range text {
		if r == '\n' {
			lines++
			cur = 0
			continue
		}
		cur++
		widest = max(widest, cur)
	}
	return float32(widest*a.GlyphW) * scale, float32(lines*a.GlyphH) * scale
}

// Font is an atlas uploaded as a GL texture.
type Font struct {
	*Atlas
	textureID uint32
}

// NewFont rasterizes the default atlas and uploads it.
func NewFont() *Font {
	f := &Font{Atlas: DefaultAtlas()}
	img := f.Image

	gl.GenTextures(1, &f.textureID)
	gl.BindTexture(gl.TEXTURE_2D, f.textureID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	// Nearest keeps the bitmap crisp at integer scales
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return f
}

// TextureID returns the GL texture holding the atlas.
func (f *Font) TextureID() uint32 {
	return f.textureID
}

// GlyphSize returns the cell size in pixels.
func (f *Font) GlyphSize() (int, int) {
	return f.GlyphW, f.GlyphH
}

// Close releases the texture.
func (f *Font) Close() {
	if f.textureID != 0 {
		gl.DeleteTextures(1, &f.textureID)
		f.textureID = 0
	}
}
