package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

type fixedSize struct{ w, h int }

func (f fixedSize) Size() (int, int) { return f.w, f.h }

func TestTranslateMouse(t *testing.T) {
	in := New(fixedSize{800, 600})

	tests := []struct {
		name  string
		event sdl.Event
		want  Event
		ok    bool
	}{
		{
			name:  "left button down",
			event: &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 100, Y: 120},
			want:  Event{Type: EventPointerDown, X: 100, Y: 120},
			ok:    true,
		},
		{
			name:  "left button up",
			event: &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, X: 5, Y: 6},
			want:  Event{Type: EventPointerUp, X: 5, Y: 6},
			ok:    true,
		},
		{
			name:  "right button ignored",
			event: &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_RIGHT},
			ok:    false,
		},
		{
			name:  "motion",
			event: &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 150, Y: 100},
			want:  Event{Type: EventPointerMove, X: 150, Y: 100},
			ok:    true,
		},
		{
			name:  "synthetic touch mouse ignored",
			event: &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, Which: sdl.TOUCH_MOUSEID},
			ok:    false,
		},
		{
			name:  "resize",
			event: &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 1024, Data2: 768},
			want:  Event{Type: EventResize, Width: 1024, Height: 768},
			ok:    true,
		},
		{
			name:  "leave",
			event: &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_LEAVE},
			want:  Event{Type: EventPointerLeave},
			ok:    true,
		},
		{
			name:  "quit",
			event: &sdl.QuitEvent{Type: sdl.QUIT},
			want:  Event{Type: EventQuit},
			ok:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := in.Translate(tt.event)
			if ok != tt.ok {
				t.Fatalf("Translate() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Translate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTranslateSingleTouch(t *testing.T) {
	in := New(fixedSize{800, 600})

	down, ok := in.Translate(&sdl.TouchFingerEvent{Type: sdl.FINGERDOWN, FingerID: 7, X: 0.5, Y: 0.25})
	if !ok || down.Type != EventPointerDown || !down.Touch {
		t.Fatalf("finger down = %+v, %v", down, ok)
	}
	if x, y := down.Point(); x != 400 || y != 150 {
		t.Errorf("finger down point = (%v, %v), want (400, 150)", x, y)
	}

	// A second finger does not steal the pointer
	if _, ok := in.Translate(&sdl.TouchFingerEvent{Type: sdl.FINGERDOWN, FingerID: 8}); ok {
		t.Error("second finger down should be ignored")
	}
	if _, ok := in.Translate(&sdl.TouchFingerEvent{Type: sdl.FINGERMOTION, FingerID: 8}); ok {
		t.Error("second finger motion should be ignored")
	}

	move, ok := in.Translate(&sdl.TouchFingerEvent{Type: sdl.FINGERMOTION, FingerID: 7, X: 0.25, Y: 0.5})
	if !ok || move.Type != EventPointerMove || move.X != 200 || move.Y != 300 {
		t.Errorf("finger move = %+v, %v", move, ok)
	}

	up, ok := in.Translate(&sdl.TouchFingerEvent{Type: sdl.FINGERUP, FingerID: 7})
	if !ok || up.Type != EventTouchEnd {
		t.Errorf("finger up = %+v, %v", up, ok)
	}
}

func TestTouchCancelOnFocusLost(t *testing.T) {
	in := New(fixedSize{800, 600})
	focusLost := &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_LOST}

	if _, ok := in.Translate(focusLost); ok {
		t.Error("focus lost without an active touch should be ignored")
	}

	in.Translate(&sdl.TouchFingerEvent{Type: sdl.FINGERDOWN, FingerID: 1})
	got, ok := in.Translate(focusLost)
	if !ok || got.Type != EventTouchCancel {
		t.Errorf("focus lost during touch = %+v, %v; want touchcancel", got, ok)
	}
}

func TestDispatcher(t *testing.T) {
	d := NewDispatcher()

	var calls []string
	removeA := d.On(EventPointerDown, func(Event) { calls = append(calls, "a") })
	d.On(EventPointerDown, func(Event) { calls = append(calls, "b") })
	d.On(EventResize, func(Event) { calls = append(calls, "resize") })

	d.Dispatch(Event{Type: EventPointerDown})
	if len(calls) != 2 || calls[0] != "a" || calls[1] != "b" {
		t.Fatalf("calls = %v, want [a b]", calls)
	}

	removeA()
	removeA() // second call is a no-op
	calls = nil
	d.Dispatch(Event{Type: EventPointerDown})
	if len(calls) != 1 || calls[0] != "b" {
		t.Errorf("after remove calls = %v, want [b]", calls)
	}

	if got := d.Total(); got != 2 {
		t.Errorf("Total() = %d, want 2", got)
	}
	if got := d.Count(EventPointerUp); got != 0 {
		t.Errorf("Count(pointerup) = %d, want 0", got)
	}
}

func TestDispatcherSelfRemoval(t *testing.T) {
	d := NewDispatcher()

	n := 0
	var remove func()
	remove = d.On(EventPointerMove, func(Event) {
		n++
		remove()
	})

	d.Dispatch(Event{Type: EventPointerMove})
	d.Dispatch(Event{Type: EventPointerMove})
	if n != 1 {
		t.Errorf("handler ran %d times, want 1", n)
	}
}

func TestEventTypeString(t *testing.T) {
	if got := EventTouchCancel.String(); got != "touchcancel" {
		t.Errorf("String() = %q, want touchcancel", got)
	}
	if got := EventType(99).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
}
