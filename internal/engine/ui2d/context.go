package ui2d

import "fmt"

// Padding inside panels and buttons, in points.
const Padding = float32(10)

// Context draws themed widgets through a Renderer.
type Context struct {
	renderer *Renderer
	scale    float32
}

// NewContext creates a renderer for a width x height point window. scale is the
// text scale applied to the 7x13 font.
func NewContext(width, height int, scale float32) (*Context, error) {
	r, err := New(width, height)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	if scale <= 0 {
		scale = 1
	}
	return &Context{renderer: r, scale: scale}, nil
}

// Close releases resources.
func (c *Context) Close() {
	if c.renderer != nil {
		c.renderer.Close()
		c.renderer = nil
	}
}

// Resize updates the screen size.
func (c *Context) Resize(width, height int) {
	c.renderer.Resize(width, height)
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.renderer.Begin()
}

// End flushes the frame.
func (c *Context) End() {
	c.renderer.End()
}

// MeasureText returns the size of text at the context's scale.
func (c *Context) MeasureText(text string) (float32, float32) {
	return c.renderer.MeasureText(text, c.scale)
}

// Panel draws a background panel.
func (c *Context) Panel(r Rect) {
	c.renderer.DrawPanel(r.X, r.Y, r.W, r.H, ColorPanelBg, ColorPanelBorder)
}

// Label draws text with its top-left corner at x, y.
func (c *Context) Label(x, y float32, text string, color Color) {
	c.renderer.DrawText(x, y, text, c.scale, color)
}

// Button draws a button with its label centered.
func (c *Context) Button(r Rect, label string, state ButtonState) {
	color := ColorButtonNormal
	switch state {
	case ButtonHover:
		color = ColorButtonHover
	case ButtonActive:
		color = ColorButtonActive
	}

	c.renderer.DrawRect(r.X, r.Y, r.W, r.H, color)
	c.renderer.DrawRectOutline(r.X, r.Y, r.W, r.H, 1, ColorPanelBorder)

	textW, textH := c.MeasureText(label)
	c.Label(r.X+(r.W-textW)/2, r.Y+(r.H-textH)/2, label, ColorText)
}

// Rect is a simple rectangle struct.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d float32) Rect {
	return Rect{r.X + d, r.Y + d, max(r.W-2*d, 0), max(r.H-2*d, 0)}
}
