// Package input turns SDL events into the viewer's normalized pointer, resize and
// key events, and fans them out to registered handlers.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a normalized input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventPointerLeave
	EventTouchEnd
	EventTouchCancel
)

var eventNames = [...]string{
	EventNone:         "none",
	EventQuit:         "quit",
	EventResize:       "resize",
	EventKeyDown:      "keydown",
	EventPointerDown:  "pointerdown",
	EventPointerMove:  "pointermove",
	EventPointerUp:    "pointerup",
	EventPointerLeave: "pointerleave",
	EventTouchEnd:     "touchend",
	EventTouchCancel:  "touchcancel",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is a processed input event. X and Y are window coordinates in points for
// both mouse and touch input.
type Event struct {
	Type   EventType
	Key    sdl.Keycode
	Width  int
	Height int
	X      float32
	Y      float32
	Touch  bool
}

// Point returns the pointer position carried by the event.
func (e Event) Point() (x, y float32) {
	return e.X, e.Y
}

// Sizer reports the window client size, used to scale normalized touch coordinates.
type Sizer interface {
	Size() (int, int)
}

// Input polls SDL and keeps the events of the last Update.
type Input struct {
	sizer  Sizer
	events []Event

	// finger tracks the single touch point that drives the pointer; -1 when none.
	finger sdl.FingerID
}

// New creates a new input handler. sizer may be nil when touch input is not needed.
func New(sizer Sizer) *Input {
	sdl.SetHint(sdl.HINT_TOUCH_MOUSE_EVENTS, "0")
	return &Input{
		sizer:  sizer,
		events: make([]Event, 0, 16),
		finger: -1,
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := i.Translate(event); ok {
			i.events = append(i.events, e)
			if e.Type == EventQuit {
				quit = true
			}
		}
	}
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Translate converts one SDL event. The second result is false for events the
// viewer does not use.
func (i *Input) Translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return Event{Type: EventResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		case sdl.WINDOWEVENT_LEAVE:
			return Event{Type: EventPointerLeave}, true
		case sdl.WINDOWEVENT_FOCUS_LOST:
			// A touch sequence interrupted by the system.
			if i.finger >= 0 {
				i.finger = -1
				return Event{Type: EventTouchCancel, Touch: true}, true
			}
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			return Event{Type: EventKeyDown, Key: e.Keysym.Sym}, true
		}

	case *sdl.MouseMotionEvent:
		if e.Which == sdl.TOUCH_MOUSEID {
			return Event{}, false
		}
		return Event{Type: EventPointerMove, X: float32(e.X), Y: float32(e.Y)}, true

	case *sdl.MouseButtonEvent:
		if e.Which == sdl.TOUCH_MOUSEID || e.Button != sdl.BUTTON_LEFT {
			return Event{}, false
		}
		t := EventPointerUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = EventPointerDown
		}
		return Event{Type: t, X: float32(e.X), Y: float32(e.Y)}, true

	case *sdl.TouchFingerEvent:
		return i.translateTouch(e)
	}

	return Event{}, false
}

// translateTouch maps the first finger down to the pointer and ignores the rest.
func (i *Input) translateTouch(e *sdl.TouchFingerEvent) (Event, bool) {
	switch e.Type {
	case sdl.FINGERDOWN:
		if i.finger >= 0 {
			return Event{}, false
		}
		i.finger = e.FingerID
		x, y := i.touchPoint(e)
		return Event{Type: EventPointerDown, X: x, Y: y, Touch: true}, true

	case sdl.FINGERMOTION:
		if e.FingerID != i.finger {
			return Event{}, false
		}
		x, y := i.touchPoint(e)
		return Event{Type: EventPointerMove, X: x, Y: y, Touch: true}, true

	case sdl.FINGERUP:
		if e.FingerID != i.finger {
			return Event{}, false
		}
		i.finger = -1
		x, y := i.touchPoint(e)
		return Event{Type: EventTouchEnd, X: x, Y: y, Touch: true}, true
	}
	return Event{}, false
}

// touchPoint scales SDL's normalized [0,1] finger position to window points.
func (i *Input) touchPoint(e *sdl.TouchFingerEvent) (float32, float32) {
	if i.sizer == nil {
		return e.X, e.Y
	}
	w, h := i.sizer.Size()
	return e.X * float32(w), e.Y * float32(h)
}
