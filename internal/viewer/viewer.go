// Package viewer implements the interactive watermelon scene: it owns the scene,
// camera and renderer, turns pointer input into model rotation and spins the
// model while idle.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/melonview/internal/assets"
	"github.com/Faultbox/melonview/internal/config"
	"github.com/Faultbox/melonview/internal/engine/camera"
	"github.com/Faultbox/melonview/internal/engine/input"
	"github.com/Faultbox/melonview/internal/engine/lighting"
	"github.com/Faultbox/melonview/internal/engine/mesh"
	"github.com/Faultbox/melonview/internal/engine/texture"
	"github.com/Faultbox/melonview/internal/logger"
	"github.com/Faultbox/melonview/internal/scene"
	"github.com/Faultbox/melonview/pkg/math"
)

// Scene constants.
const (
	CameraNear = 0.1
	CameraFar  = 1000

	FloorRadius   = 6
	FloorSegments = 64
	FloorY        = -2

	StripeSize  = 512
	StripeCount = 14

	// TargetSize is the largest dimension of the model after normalization.
	TargetSize = 3
	// RestY is the vertical offset applied after centering the model.
	RestY = -0.5
)

var (
	cameraPosition = math.Vec3{X: 0, Y: 3, Z: 8}
	sunPosition    = math.Vec3{X: 5, Y: 10, Z: 7.5}
	skyColor       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	groundColor    = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	sunColor       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// ErrNoContainer is returned by Mount when Options has no container.
var ErrNoContainer = errors.New("viewer: container is nil")

// Renderer draws a scene through a camera onto the container's surface.
type Renderer interface {
	SetPixelRatio(ratio float32)
	SetSize(width, height int)
	Size() (int, int)
	Render(s *scene.Scene, cam *camera.Perspective)
	Dispose()
}

// Container is the surface the viewer renders into.
type Container interface {
	// Size returns the client size in points.
	Size() (int, int)
	// DrawableSize returns the framebuffer size in pixels.
	DrawableSize() (int, int)
}

// Options configures Mount.
type Options struct {
	Container  Container
	Renderer   Renderer
	Dispatcher *input.Dispatcher
	Scene      config.SceneConfig
	Asset      config.AssetConfig

	// Fetcher loads the model; defaults to a fetcher for Asset.BaseURL.
	Fetcher *assets.Fetcher
	// Load overrides the asynchronous model load.
	Load *assets.Future[[]*mesh.Mesh]
}

// Viewer is a mounted scene.
type Viewer struct {
	log       *zap.Logger
	container Container
	renderer  Renderer
	events    *input.Dispatcher
	removers  []func()

	scene    *scene.Scene
	camera   *camera.Perspective
	group    *scene.Node
	model    *scene.Node
	material *scene.Material

	pointer PointerState

	load     *assets.Future[[]*mesh.Mesh]
	loadURL  string
	loadDone bool

	torn bool
}

// Mount builds the scene, starts the model load and registers input handlers.
func Mount(ctx context.Context, opts Options) (*Viewer, error) {
	if opts.Container == nil {
		return nil, ErrNoContainer
	}
	if opts.Renderer == nil {
		return nil, errors.New("viewer: renderer is nil")
	}

	colors, err := parseColors(opts.Scene)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		log:       logger.Named("viewer"),
		container: opts.Container,
		renderer:  opts.Renderer,
		events:    opts.Dispatcher,
	}

	v.scene = scene.New(colors.background)

	w, h := v.container.Size()
	fov := opts.Scene.FOV
	if fov <= 0 {
		fov = 45
	}
	v.camera = camera.NewPerspective(fov, aspect(w, h), CameraNear, CameraFar)
	v.camera.Position = cameraPosition
	v.camera.LookAt(math.Vec3{})

	v.renderer.SetPixelRatio(pixelRatio(v.container))
	v.renderer.SetSize(w, h)

	v.scene.Hemisphere = lighting.NewHemisphere(skyColor, groundColor, 1)
	v.scene.Sun = lighting.NewDirectional(sunColor, 1, sunPosition)
	v.scene.Sun.CastShadow = opts.Scene.Shadows

	floor := scene.NewMesh("floor", mesh.Circle(FloorRadius, FloorSegments), scene.NewMatte(colors.floor))
	floor.Position.Y = FloorY
	floor.ReceiveShadow = true
	v.scene.Add(floor)

	stripes := texture.Stripes(StripeSize, StripeCount, colors.stripeDark, colors.stripeLight)
	v.material = scene.NewTextured(stripes)

	v.group = scene.NewGroup("model-group")
	v.scene.Add(v.group)

	v.load = opts.Load
	if v.load == nil {
		fetcher := opts.Fetcher
		if fetcher == nil {
			fetcher = assets.NewFetcher(opts.Asset.BaseURL)
		}
		v.loadURL = fetcher.Resolve(opts.Asset.Filename)
		v.load = assets.LoadAsync(ctx, fetcher, opts.Asset.Filename, decodeModel)
	}

	if v.events != nil {
		v.register()
	}

	v.log.Info("viewer mounted",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.String("asset", v.loadURL),
	)
	return v, nil
}

func (v *Viewer) register() {
	on := func(t input.EventType, h func(input.Event)) {
		v.removers = append(v.removers, v.events.On(t, h))
	}
	on(input.EventResize, func(input.Event) { v.Resize() })
	on(input.EventPointerDown, func(e input.Event) { v.PointerDown(e.X, e.Y) })
	on(input.EventPointerMove, func(e input.Event) { v.PointerMove(e.X, e.Y) })
	on(input.EventPointerUp, func(input.Event) { v.PointerUp() })
	on(input.EventPointerLeave, func(input.Event) { v.PointerUp() })
	on(input.EventTouchEnd, func(input.Event) { v.PointerUp() })
	on(input.EventTouchCancel, func(input.Event) { v.PointerUp() })
}

// Frame advances one animation step and renders. It spins the model when no
// drag is in progress and applies a finished model load first.
func (v *Viewer) Frame() {
	if v.torn {
		return
	}
	v.pollLoad()
	if !v.pointer.Dragging {
		v.group.Rotation.Y += IdleSpin
	}
	v.renderer.Render(v.scene, v.camera)
}

// Resize re-reads the container size and updates the camera and renderer.
func (v *Viewer) Resize() {
	w, h := v.container.Size()
	v.camera.SetAspect(w, h)
	v.renderer.SetPixelRatio(pixelRatio(v.container))
	v.renderer.SetSize(w, h)
	v.log.Debug("resized", zap.Int("width", w), zap.Int("height", h))
}

// Teardown removes every input handler and disposes the renderer. It is idempotent.
func (v *Viewer) Teardown() {
	if v.torn {
		return
	}
	v.torn = true
	for _, remove := range v.removers {
		remove()
	}
	v.removers = nil
	v.renderer.Dispose()
	v.log.Info("viewer torn down")
}

// Scene returns the viewer's scene.
func (v *Viewer) Scene() *scene.Scene { return v.scene }

// Camera returns the viewer's camera.
func (v *Viewer) Camera() *camera.Perspective { return v.camera }

// Group returns the node the model is attached to.
func (v *Viewer) Group() *scene.Node { return v.group }

// Model returns the loaded model, or nil while loading or after a failed load.
func (v *Viewer) Model() *scene.Node { return v.model }

// Pointer returns the current pointer state.
func (v *Viewer) Pointer() PointerState { return v.pointer }

// Yaw returns the model group's rotation around Y in radians.
func (v *Viewer) Yaw() float32 { return v.group.Rotation.Y }

// Pitch returns the model group's rotation around X in radians.
func (v *Viewer) Pitch() float32 { return v.group.Rotation.X }

func aspect(w, h int) float32 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return float32(w) / float32(h)
}

func pixelRatio(c Container) float32 {
	w, _ := c.Size()
	dw, _ := c.DrawableSize()
	if w <= 0 || dw <= 0 {
		return 1
	}
	return float32(dw) / float32(w)
}

type sceneColors struct {
	background  color.RGBA
	floor       color.RGBA
	stripeDark  color.RGBA
	stripeLight color.RGBA
}

func parseColors(c config.SceneConfig) (sceneColors, error) {
	var out sceneColors
	for _, p := range []struct {
		name string
		hex  string
		dst  *color.RGBA
	}{
		{"background", c.Background, &out.background},
		{"floor", c.FloorColor, &out.floor},
		{"stripe dark", c.StripeDark, &out.stripeDark},
		{"stripe light", c.StripeLight, &out.stripeLight},
	} {
		col, err := config.ParseHexColor(p.hex)
		if err != nil {
			return out, fmt.Errorf("%s color: %w", p.name, err)
		}
		*p.dst = col
	}
	return out, nil
}
