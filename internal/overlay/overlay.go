// Package overlay draws the static info card and link button above the scene
// and claims pointer presses that land on them.
package overlay

import (
	"go.uber.org/zap"

	"github.com/Faultbox/melonview/internal/config"
	"github.com/Faultbox/melonview/internal/engine/input"
	"github.com/Faultbox/melonview/internal/engine/ui2d"
	"github.com/Faultbox/melonview/internal/logger"
)

// Layout constants in window points.
const (
	Margin  = float32(16)
	LineGap = float32(4)
)

// Painter draws overlay widgets. *ui2d.Context implements it.
type Painter interface {
	Panel(r ui2d.Rect)
	Label(x, y float32, text string, color ui2d.Color)
	Button(r ui2d.Rect, label string, state ui2d.ButtonState)
	MeasureText(text string) (float32, float32)
}

// Opener opens a URL in the system browser.
type Opener func(url string) error

// Overlay is the card in the top-left corner and the link button in the
// bottom-right corner. It never touches viewer state.
type Overlay struct {
	cfg     config.OverlayConfig
	measure func(string) (float32, float32)
	open    Opener
	log     *zap.Logger

	card   ui2d.Rect
	button ui2d.Rect
	lineH  float32

	input   ui2d.InputState
	pressed bool
	opened  int
}

// New lays out the overlay for a width x height point window.
func New(cfg config.OverlayConfig, p Painter, open Opener, width, height int) *Overlay {
	o := &Overlay{
		cfg:     cfg,
		measure: p.MeasureText,
		open:    open,
		log:     logger.Named("overlay"),
		input:   ui2d.InputState{MouseX: -1, MouseY: -1},
	}
	o.Layout(width, height)
	return o
}

// Layout recomputes widget rectangles for a new window size.
func (o *Overlay) Layout(width, height int) {
	_, o.lineH = o.measure("M")

	var cardW float32
	for _, line := range o.cfg.CardLines {
		w, _ := o.measure(line)
		cardW = max(cardW, w)
	}
	if n := len(o.cfg.CardLines); n > 0 {
		o.card = ui2d.Rect{
			X: Margin,
			Y: Margin,
			W: cardW + 2*ui2d.Padding,
			H: o.textBlockHeight(n) + 2*ui2d.Padding,
		}
	} else {
		o.card = ui2d.Rect{}
	}

	lines := o.buttonLines()
	if len(lines) == 0 {
		o.button = ui2d.Rect{}
		return
	}
	var btnW float32
	for _, line := range lines {
		w, _ := o.measure(line)
		btnW = max(btnW, w)
	}
	btnW += 2 * ui2d.Padding
	btnH := o.textBlockHeight(len(lines)) + 2*ui2d.Padding
	o.button = ui2d.Rect{
		X: float32(width) - Margin - btnW,
		Y: float32(height) - Margin - btnH,
		W: btnW,
		H: btnH,
	}
}

func (o *Overlay) textBlockHeight(lines int) float32 {
	return float32(lines)*o.lineH + float32(lines-1)*LineGap
}

func (o *Overlay) buttonLines() []string {
	var lines []string
	if o.cfg.LinkLabel != "" {
		lines = append(lines, o.cfg.LinkLabel)
	}
	if o.cfg.LinkURL != "" {
		lines = append(lines, o.cfg.LinkURL)
	}
	return lines
}

// Card returns the info card rectangle. It is empty when there are no lines.
func (o *Overlay) Card() ui2d.Rect {
	return o.card
}

// Button returns the link button rectangle.
func (o *Overlay) Button() ui2d.Rect {
	return o.button
}

// Hit reports whether a point lies on an overlay element.
func (o *Overlay) Hit(x, y float32) bool {
	return o.card.Contains(x, y) || o.button.Contains(x, y)
}

// Opened returns how many times the link was opened.
func (o *Overlay) Opened() int {
	return o.opened
}

// Handle updates overlay state from e and reports whether e was consumed.
// Consumed events must not reach the viewer. Only presses are ever consumed:
// releases and cancels always pass through so the viewer can end a drag.
func (o *Overlay) Handle(e input.Event) bool {
	switch e.Type {
	case input.EventResize:
		o.Layout(e.Width, e.Height)

	case input.EventPointerDown:
		o.input.Move(e.Point())
		o.input.MouseLeftDown = true
		if o.button.Contains(e.X, e.Y) {
			o.pressed = true
			return true
		}
		return o.card.Contains(e.X, e.Y)

	case input.EventPointerMove:
		o.input.Move(e.Point())

	case input.EventPointerUp, input.EventTouchEnd:
		o.input.Move(e.Point())
		o.input.MouseLeftDown = false
		if o.pressed && o.button.Contains(e.X, e.Y) {
			o.openLink()
		}
		o.pressed = false

	case input.EventPointerLeave, input.EventTouchCancel:
		o.input = ui2d.InputState{MouseX: -1, MouseY: -1}
		o.pressed = false
	}
	return false
}

func (o *Overlay) openLink() {
	if o.cfg.LinkURL == "" || o.open == nil {
		return
	}
	o.opened++
	if err := o.open(o.cfg.LinkURL); err != nil {
		o.log.Warn("failed to open link", zap.String("url", o.cfg.LinkURL), zap.Error(err))
		return
	}
	o.log.Info("opened link", zap.String("url", o.cfg.LinkURL))
}

// Draw paints the card and the button.
func (o *Overlay) Draw(p Painter) {
	if len(o.cfg.CardLines) > 0 {
		p.Panel(o.card)
		o.drawLines(p, o.card, o.cfg.CardLines, ui2d.ColorText)
	}

	if lines := o.buttonLines(); len(lines) > 0 {
		p.Button(o.button, "", o.input.StateFor(o.button, o.pressed))
		o.drawLines(p, o.button, lines[:1], ui2d.ColorText)
		if len(lines) > 1 {
			inner := o.button
			inner.Y += o.lineH + LineGap
			o.drawLines(p, inner, lines[1:], ui2d.ColorTextDim)
		}
	}
}

func (o *Overlay) drawLines(p Painter, r ui2d.Rect, lines []string, color ui2d.Color) {
	inner := r.Inset(ui2d.Padding)
	y := inner.Y
	for _, line := range lines {
		p.Label(inner.X, y, line, color)
		y += o.lineH + LineGap
	}
}
