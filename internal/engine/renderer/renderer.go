// Package renderer draws a scene graph with OpenGL: lit meshes, a directional
// shadow map and sRGB output to the window's default framebuffer.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/melonview/internal/engine/camera"
	"github.com/Faultbox/melonview/internal/engine/lighting"
	"github.com/Faultbox/melonview/internal/engine/mesh"
	"github.com/Faultbox/melonview/internal/engine/renderer/shaders"
	"github.com/Faultbox/melonview/internal/engine/shader"
	"github.com/Faultbox/melonview/internal/engine/shadow"
	"github.com/Faultbox/melonview/internal/engine/texture"
	"github.com/Faultbox/melonview/internal/logger"
	"github.com/Faultbox/melonview/internal/scene"
	"github.com/Faultbox/melonview/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width         int
	Height        int
	Shadows       bool
	ShadowMapSize int32
}

// Renderer handles all OpenGL scene rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	pixelRatio float32
	width      int // points
	height     int

	program   *shader.Program
	shadowMap *shadow.Map

	meshes      map[*mesh.Mesh]*gpuMesh
	textures    map[*texture.Texture]uint32
	fallbackTex uint32

	disposed bool
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:     cfg,
		log:        logger.Named("renderer"),
		pixelRatio: 1,
		width:      cfg.Width,
		height:     cfg.Height,
		meshes:     make(map[*mesh.Mesh]*gpuMesh),
		textures:   make(map[*texture.Texture]uint32),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	r.program, err = shader.NewProgram(shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}

	if cfg.Shadows {
		r.shadowMap, err = shadow.NewMap(cfg.ShadowMapSize)
		if err != nil {
			// Shadows are cosmetic; render without them
			r.log.Warn("shadow map unavailable", zap.Error(err))
			r.shadowMap = nil
		}
	}

	r.createFallbackTexture()
	return r, nil
}

func (r *Renderer) createFallbackTexture() {
	gl.GenTextures(1, &r.fallbackTex)
	gl.BindTexture(gl.TEXTURE_2D, r.fallbackTex)
	white := []uint8{255, 255, 255, 255}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(white))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// SetPixelRatio sets drawable pixels per point.
func (r *Renderer) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		ratio = 1
	}
	r.pixelRatio = ratio
}

// PixelRatio returns drawable pixels per point.
func (r *Renderer) PixelRatio() float32 {
	return r.pixelRatio
}

// SetSize sets the output size in points.
func (r *Renderer) SetSize(width, height int) {
	r.width = width
	r.height = height
}

// Size returns the output size in points.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// DrawableSize returns the output size in pixels.
func (r *Renderer) DrawableSize() (int, int) {
	return int(float32(r.width)*r.pixelRatio + 0.5), int(float32(r.height)*r.pixelRatio + 0.5)
}

// Render draws s as seen by cam into the default framebuffer.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Perspective) {
	if r.disposed {
		return
	}

	dw, dh := r.DrawableSize()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(dw), int32(dh))

	lightViewProj := math.Identity()
	shadows := r.shadowMap.IsValid() && s.Sun != nil && s.Sun.CastShadow
	if shadows {
		lightViewProj = s.Sun.ShadowMatrix(s.ShadowBounds())
		r.renderShadowPass(s, lightViewProj)
	}

	gl.Enable(gl.FRAMEBUFFER_SRGB)
	gl.Enable(gl.MULTISAMPLE)
	bg := lighting.LinearRGB(s.Background)
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.BLEND)

	p := r.program
	p.Use()
	viewProj := cam.ProjectionMatrix().Mul(cam.ViewMatrix())
	p.SetMat4("uViewProj", viewProj)
	p.SetMat4("uLightViewProj", lightViewProj)
	p.SetVec3("uCameraPos", cam.Position.Array())
	r.setLights(s)

	p.SetInt("uTexture", 0)
	p.SetInt("uShadowMap", 1)
	p.SetBool("uShadowsEnabled", shadows)
	if shadows {
		r.shadowMap.BindTexture(gl.TEXTURE1)
	}

	s.EachMesh(func(n *scene.Node, world math.Mat4) {
		gm := r.upload(n.Mesh)
		if gm == nil {
			return
		}
		r.setMaterial(n.Material)
		p.SetBool("uReceiveShadow", n.ReceiveShadow)
		p.SetMat4("uModel", world)
		gm.draw()
	})

	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	gl.Disable(gl.FRAMEBUFFER_SRGB)
}

func (r *Renderer) renderShadowPass(s *scene.Scene, lightViewProj math.Mat4) {
	r.shadowMap.Begin(lightViewProj)
	s.EachMesh(func(n *scene.Node, world math.Mat4) {
		if !n.CastShadow {
			return
		}
		if gm := r.upload(n.Mesh); gm != nil {
			r.shadowMap.Draw(world, gm.vao, gm.indexCount)
		}
	})
	r.shadowMap.End()
}

func (r *Renderer) setLights(s *scene.Scene) {
	p := r.program
	if h := s.Hemisphere; h != nil {
		p.SetVec3("uSkyColor", h.Sky)
		p.SetVec3("uGroundColor", h.Ground)
		p.SetFloat("uHemiIntensity", h.Intensity)
	} else {
		p.SetFloat("uHemiIntensity", 0)
	}
	if sun := s.Sun; sun != nil {
		p.SetVec3("uSunDir", sun.Direction())
		p.SetVec3("uSunColor", sun.Color)
		p.SetFloat("uSunIntensity", sun.Intensity)
	} else {
		p.SetFloat("uSunIntensity", 0)
	}
}

func (r *Renderer) setMaterial(mat *scene.Material) {
	p := r.program
	if mat == nil {
		mat = scene.NewMatte(defaultColor)
	}
	p.SetVec3("uColor", lighting.LinearRGB(mat.Color))
	p.SetFloat("uRoughness", mat.Roughness)

	tex := r.fallbackTex
	if mat.Map != nil {
		tex = r.uploadTexture(mat.Map)
	}
	p.SetBool("uUseTexture", mat.Map != nil)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.DrawableSize()
	pixels := make([]byte, w*h*4)
	if w == 0 || h == 0 {
		return pixels, w, h
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Dispose releases every GPU resource owned by the renderer. It is idempotent.
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.log.Info("disposing renderer",
		zap.Int("meshes", len(r.meshes)),
		zap.Int("textures", len(r.textures)),
	)

	for m, gm := range r.meshes {
		gm.destroy()
		delete(r.meshes, m)
	}
	for t, id := range r.textures {
		gl.DeleteTextures(1, &id)
		delete(r.textures, t)
	}
	if r.fallbackTex != 0 {
		gl.DeleteTextures(1, &r.fallbackTex)
		r.fallbackTex = 0
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	if r.program != nil {
		r.program.Delete()
	}
}
