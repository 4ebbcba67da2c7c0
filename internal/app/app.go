// Package app wires the window, input, viewer and overlay into one frame loop.
package app

import (
	"context"
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/melonview/internal/config"
	"github.com/Faultbox/melonview/internal/engine/debug"
	"github.com/Faultbox/melonview/internal/engine/frame"
	"github.com/Faultbox/melonview/internal/engine/input"
	"github.com/Faultbox/melonview/internal/engine/renderer"
	"github.com/Faultbox/melonview/internal/engine/ui2d"
	"github.com/Faultbox/melonview/internal/engine/window"
	"github.com/Faultbox/melonview/internal/logger"
	"github.com/Faultbox/melonview/internal/overlay"
	"github.com/Faultbox/melonview/internal/viewer"
)

// overlayTextScale applies to the 7x13 bitmap font, in points.
const overlayTextScale = 1

// App is the running viewer application.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	events   *input.Dispatcher
	ui       *ui2d.Context
	overlay  *overlay.Overlay
	viewer   *viewer.Viewer
	loop     *frame.Loop
	shots    *debug.ScreenshotCapture

	capture bool
	closed  bool
}

// New opens the window and mounts the viewer. The model starts loading in the
// background; ctx bounds that request.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		cfg:    cfg,
		log:    logger.Named("app"),
		events: input.NewDispatcher(),
		loop:   frame.New(),
		shots:  debug.NewScreenshotCapture("screenshots", "melonview-"+logger.Session()[:8]),
	}

	a.log.Info("initializing",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window just created.
	w, h := a.window.Size()
	a.renderer, err = renderer.New(renderer.Config{
		Width:         w,
		Height:        h,
		Shadows:       cfg.Scene.Shadows,
		ShadowMapSize: cfg.Scene.ShadowMapSize,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.ui, err = ui2d.NewContext(w, h, overlayTextScale)
	if err != nil {
		a.renderer.Dispose()
		a.window.Close()
		return nil, fmt.Errorf("failed to create overlay renderer: %w", err)
	}
	a.overlay = overlay.New(cfg.Overlay, a.ui, window.OpenURL, w, h)

	a.input = input.New(a.window)

	a.viewer, err = viewer.Mount(ctx, viewer.Options{
		Container:  a.window,
		Renderer:   a.renderer,
		Dispatcher: a.events,
		Scene:      cfg.Scene,
		Asset:      cfg.Asset,
	})
	if err != nil {
		a.ui.Close()
		a.renderer.Dispose()
		a.window.Close()
		return nil, fmt.Errorf("failed to mount viewer: %w", err)
	}

	a.log.Info("initialized")
	return a, nil
}

// Run drives frames until the window is closed, Escape is pressed or ctx ends.
// The viewer is torn down before Run returns.
func (a *App) Run(ctx context.Context) error {
	defer a.viewer.Teardown()
	return a.loop.Run(ctx, a.frame)
}

// Stop ends the loop after the current frame.
func (a *App) Stop() {
	a.loop.Stop()
}

func (a *App) frame(frame.Frame) error {
	if a.input.Update() {
		a.loop.Stop()
	}
	for _, e := range a.input.Events() {
		a.handle(e)
	}
	if a.loop.Stopped() {
		return nil
	}

	a.viewer.Frame()

	a.ui.Begin()
	a.overlay.Draw(a.ui)
	a.ui.End()

	if a.capture {
		a.capture = false
		a.screenshot()
	}

	a.window.SwapBuffers()
	return nil
}

func (a *App) handle(e input.Event) {
	switch e.Type {
	case input.EventQuit:
		a.loop.Stop()
		return
	case input.EventKeyDown:
		a.handleKey(e.Key)
		return
	case input.EventResize:
		w, h := a.window.Size()
		a.ui.Resize(w, h)
	}
	route(a.overlay, a.events, e)
}

func (a *App) handleKey(key sdl.Keycode) {
	switch key {
	case sdl.K_ESCAPE:
		a.log.Info("escape pressed, quitting")
		a.loop.Stop()
	case sdl.K_F12:
		a.capture = true
	}
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases everything New acquired. It is idempotent.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.log.Info("closing")

	if a.viewer != nil {
		a.viewer.Teardown()
	}
	if a.ui != nil {
		a.ui.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
