package mesh

import (
	gomath "math"
)

// Circle builds a flat disc of the given radius in the XZ plane, facing +Y.
// Vertex 0 is the center; the rim has segments+1 vertices so the seam gets its own UV.
func Circle(radius float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{Name: "circle"}
	up := [3]float32{0, 1, 0}

	m.Vertices = append(m.Vertices, Vertex{
		Position: [3]float32{0, 0, 0},
		Normal:   up,
		TexCoord: [2]float32{0.5, 0.5},
	})
	for i := 0; i <= segments; i++ {
		theta := 2 * gomath.Pi * float64(i) / float64(segments)
		cos := float32(gomath.Cos(theta))
		sin := float32(gomath.Sin(theta))
		m.Vertices = append(m.Vertices, Vertex{
			Position: [3]float32{radius * cos, 0, -radius * sin},
			Normal:   up,
			TexCoord: [2]float32{(cos + 1) / 2, (sin + 1) / 2},
		})
	}
	// Counter-clockwise seen from above
	for i := 1; i <= segments; i++ {
		m.Indices = append(m.Indices, 0, uint32(i), uint32(i+1))
	}
	m.computeBounds()
	return m
}
