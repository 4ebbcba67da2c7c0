package app

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/Faultbox/melonview/internal/assets"
	"github.com/Faultbox/melonview/internal/config"
	"github.com/Faultbox/melonview/internal/engine/camera"
	"github.com/Faultbox/melonview/internal/engine/input"
	"github.com/Faultbox/melonview/internal/engine/mesh"
	"github.com/Faultbox/melonview/internal/engine/ui2d"
	"github.com/Faultbox/melonview/internal/overlay"
	"github.com/Faultbox/melonview/internal/scene"
	"github.com/Faultbox/melonview/internal/viewer"
)

type fakeContainer struct{ w, h int }

func (c fakeContainer) Size() (int, int)         { return c.w, c.h }
func (c fakeContainer) DrawableSize() (int, int) { return c.w, c.h }

type fakeRenderer struct{ w, h int }

func (r *fakeRenderer) SetPixelRatio(float32)                    {}
func (r *fakeRenderer) SetSize(w, h int)                         { r.w, r.h = w, h }
func (r *fakeRenderer) Size() (int, int)                         { return r.w, r.h }
func (r *fakeRenderer) Render(*scene.Scene, *camera.Perspective) {}
func (r *fakeRenderer) Dispose()                                 {}

type fakePainter struct{}

func (fakePainter) Panel(ui2d.Rect)                            {}
func (fakePainter) Label(float32, float32, string, ui2d.Color) {}
func (fakePainter) Button(ui2d.Rect, string, ui2d.ButtonState) {}
func (fakePainter) MeasureText(s string) (float32, float32) {
	return float32(utf8.RuneCountInString(s) * 7), 13
}

type routed struct {
	v      *viewer.Viewer
	o      *overlay.Overlay
	events *input.Dispatcher
	urls   []string
}

func setup(t *testing.T) *routed {
	t.Helper()
	cfg := config.Default()
	r := &routed{events: input.NewDispatcher()}

	var err error
	r.v, err = viewer.Mount(context.Background(), viewer.Options{
		Container:  fakeContainer{800, 600},
		Renderer:   &fakeRenderer{},
		Dispatcher: r.events,
		Scene:      cfg.Scene,
		Asset:      cfg.Asset,
		Load:       assets.NewFuture[[]*mesh.Mesh](),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(r.v.Teardown)

	r.o = overlay.New(cfg.Overlay, fakePainter{}, func(url string) error {
		r.urls = append(r.urls, url)
		return nil
	}, 800, 600)
	return r
}

func (r *routed) send(events ...input.Event) {
	for _, e := range events {
		route(r.o, r.events, e)
	}
}

func TestButtonPressDoesNotDrag(t *testing.T) {
	r := setup(t)
	b := r.o.Button()
	x, y := b.X+b.W/2, b.Y+b.H/2

	r.send(
		input.Event{Type: input.EventPointerDown, X: x, Y: y},
		input.Event{Type: input.EventPointerMove, X: x - 50, Y: y - 50},
	)
	if r.v.Pointer().Dragging {
		t.Fatal("press on the link button started a drag")
	}
	if r.v.Yaw() != 0 || r.v.Pitch() != 0 {
		t.Errorf("rotation changed: yaw %v pitch %v", r.v.Yaw(), r.v.Pitch())
	}

	r.send(
		input.Event{Type: input.EventPointerMove, X: x, Y: y},
		input.Event{Type: input.EventPointerUp, X: x, Y: y},
	)
	if len(r.urls) != 1 {
		t.Errorf("opened %d links, want 1", len(r.urls))
	}
}

func TestCardPressDoesNotDrag(t *testing.T) {
	r := setup(t)
	c := r.o.Card()

	r.send(
		input.Event{Type: input.EventPointerDown, X: c.X + 5, Y: c.Y + 5},
		input.Event{Type: input.EventPointerMove, X: c.X + 105, Y: c.Y + 5},
	)
	if r.v.Pointer().Dragging || r.v.Yaw() != 0 {
		t.Errorf("card press reached the viewer: %+v yaw %v", r.v.Pointer(), r.v.Yaw())
	}
}

func TestScenePressDrags(t *testing.T) {
	r := setup(t)

	r.send(
		input.Event{Type: input.EventPointerDown, X: 400, Y: 300},
		input.Event{Type: input.EventPointerMove, X: 450, Y: 300},
	)
	if !r.v.Pointer().Dragging {
		t.Fatal("scene press did not start a drag")
	}
	if got := r.v.Yaw(); got < 0.499 || got > 0.501 {
		t.Errorf("yaw = %v, want 0.5", got)
	}

	// releasing over the button ends the drag and opens nothing
	b := r.o.Button()
	r.send(input.Event{Type: input.EventPointerUp, X: b.X + 1, Y: b.Y + 1})
	if r.v.Pointer().Dragging {
		t.Error("release over the button did not end the drag")
	}
	if len(r.urls) != 0 {
		t.Errorf("opened %v", r.urls)
	}
}

func TestRouteWithoutOverlay(t *testing.T) {
	d := input.NewDispatcher()
	n := 0
	d.On(input.EventPointerDown, func(input.Event) { n++ })

	if !route(nil, d, input.Event{Type: input.EventPointerDown}) {
		t.Error("event not dispatched")
	}
	if n != 1 {
		t.Errorf("handler called %d times", n)
	}
}

func TestReleaseAfterButtonPressEndsSceneDrag(t *testing.T) {
	r := setup(t)
	b := r.o.Button()

	// mouse holds the link button while a finger drags the scene
	r.send(
		input.Event{Type: input.EventPointerDown, X: b.X + b.W/2, Y: b.Y + b.H/2},
		input.Event{Type: input.EventPointerDown, X: 400, Y: 300, Touch: true},
		input.Event{Type: input.EventPointerMove, X: 420, Y: 300, Touch: true},
	)
	if !r.v.Pointer().Dragging {
		t.Fatal("touch on the scene did not start a drag")
	}

	r.send(input.Event{Type: input.EventPointerUp, X: 400, Y: 300})
	if r.v.Pointer().Dragging {
		t.Error("release did not force the viewer idle")
	}
	if len(r.urls) != 0 {
		t.Errorf("release outside the button opened %v", r.urls)
	}
}
