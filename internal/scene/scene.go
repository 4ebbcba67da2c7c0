// Package scene provides the scene graph drawn by the renderer: nodes, materials and lights.
package scene

import (
	"image/color"

	"github.com/Faultbox/melonview/internal/engine/lighting"
	"github.com/Faultbox/melonview/internal/engine/texture"
	"github.com/Faultbox/melonview/pkg/math"
)

// Material describes how a mesh surface is shaded.
type Material struct {
	Color color.RGBA       // Base color, sRGB
	Map   *texture.Texture // Optional; multiplied with Color
	// Roughness in [0,1]; 1 is fully matte.
	Roughness float32
}

// NewMatte creates an untextured matte material.
func NewMatte(c color.RGBA) *Material {
	return &Material{Color: c, Roughness: 1}
}

// NewTextured creates a material that samples tex.
func NewTextured(tex *texture.Texture) *Material {
	return &Material{
		Color:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Map:       tex,
		Roughness: 0.6,
	}
}

// Scene is the root of everything the renderer draws.
type Scene struct {
	Background color.RGBA // sRGB
	Hemisphere *lighting.Hemisphere
	Sun        *lighting.Directional

	root *Node
}

// New creates an empty scene with the given background color.
func New(background color.RGBA) *Scene {
	return &Scene{
		Background: background,
		root:       NewGroup("root"),
	}
}

// Add attaches a node to the scene root.
func (s *Scene) Add(n *Node) {
	s.root.Add(n)
}

// Remove detaches a node from the scene root.
func (s *Scene) Remove(n *Node) bool {
	return s.root.Remove(n)
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// EachMesh calls fn for every visible drawable node with its world matrix.
func (s *Scene) EachMesh(fn func(n *Node, world math.Mat4)) {
	s.root.Traverse(math.Identity(), func(n *Node, world math.Mat4) {
		if n.Mesh != nil {
			fn(n, world)
		}
	})
}

// Bounds returns the world-space box of all visible geometry.
func (s *Scene) Bounds() math.Box3 {
	return s.root.BoundingBox()
}

// ShadowBounds returns the world-space box of geometry that casts or receives shadows.
func (s *Scene) ShadowBounds() math.Box3 {
	box := math.EmptyBox()
	s.EachMesh(func(n *Node, world math.Mat4) {
		if n.CastShadow || n.ReceiveShadow {
			box = box.Union(n.Mesh.Bounds.Transform(world))
		}
	})
	return box
}
