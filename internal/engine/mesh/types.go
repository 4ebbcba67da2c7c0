// Package mesh provides CPU-side triangle meshes: OBJ conversion and generated floor geometry.
package mesh

import (
	"github.com/Faultbox/melonview/pkg/math"
)

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh holds triangle data ready for GPU upload.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   math.Box3
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// computeBounds recalculates Bounds from the vertex positions.
func (m *Mesh) computeBounds() {
	b := math.EmptyBox()
	for i := range m.Vertices {
		b = b.ExpandByPoint(math.V3(m.Vertices[i].Position))
	}
	m.Bounds = b
}
