package mesh

import (
	"errors"
	"fmt"
	"io"
	gomath "math"
	"strings"

	"github.com/g3n/engine/loader/obj"

	"github.com/Faultbox/melonview/pkg/math"
)

// ErrEmpty is returned when an OBJ file yields no usable triangles.
var ErrEmpty = errors.New("mesh: no triangles")

// DecodeOBJ parses Wavefront OBJ data and converts every object into a Mesh.
// Material libraries are ignored; the viewer assigns its own material.
func DecodeOBJ(r io.Reader) ([]*Mesh, error) {
	dec, err := obj.DecodeReader(r, strings.NewReader(""))
	if err != nil {
		return nil, fmt.Errorf("decode obj: %w", err)
	}
	return FromOBJ(dec)
}

// FromOBJ converts decoded OBJ objects into meshes, one per object.
// Polygons are fan-triangulated. Faces without normals get a flat face normal,
// and objects without texture coordinates get a cylindrical mapping around Y.
func FromOBJ(dec *obj.Decoder) ([]*Mesh, error) {
	positions := dec.Vertices
	normals := dec.Normals
	uvs := dec.Uvs

	posCount := len(positions) / 3
	normCount := len(normals) / 3
	uvCount := len(uvs) / 2

	var meshes []*Mesh
	for oi := range dec.Objects {
		o := &dec.Objects[oi]
		m := &Mesh{Name: o.Name}
		needUVs := false

		for _, face := range o.Faces {
			if len(face.Vertices) < 3 {
				continue
			}
			valid := true
			for _, vi := range face.Vertices {
				if vi < 0 || vi >= posCount {
					valid = false
					break
				}
			}
			if !valid {
				continue
			}

			corner := func(i int) Vertex {
				vi := face.Vertices[i]
				v := Vertex{Position: [3]float32{positions[vi*3], positions[vi*3+1], positions[vi*3+2]}}
				if i < len(face.Normals) {
					if ni := face.Normals[i]; ni >= 0 && ni < normCount {
						v.Normal = [3]float32{normals[ni*3], normals[ni*3+1], normals[ni*3+2]}
					}
				}
				hasUV := false
				if i < len(face.Uvs) {
					if ti := face.Uvs[i]; ti >= 0 && ti < uvCount {
						v.TexCoord = [2]float32{uvs[ti*2], uvs[ti*2+1]}
						hasUV = true
					}
				}
				if !hasUV {
					needUVs = true
				}
				return v
			}

			// Fan triangulation around the first corner
			for k := 1; k+1 < len(face.Vertices); k++ {
				tri := [3]Vertex{corner(0), corner(k), corner(k + 1)}
				if !setFlatNormal(&tri) {
					continue
				}
				base := uint32(len(m.Vertices))
				m.Vertices = append(m.Vertices, tri[0], tri[1], tri[2])
				m.Indices = append(m.Indices, base, base+1, base+2)
			}
		}

		if len(m.Indices) == 0 {
			continue
		}
		m.computeBounds()
		if needUVs {
			cylindricalUVs(m)
		}
		meshes = append(meshes, m)
	}

	if len(meshes) == 0 {
		return nil, ErrEmpty
	}
	return meshes, nil
}

// degenerateSine is the smallest |sin| of the angle between two triangle
// edges for the triangle to count as non-degenerate.
const degenerateSine = 1e-6

// setFlatNormal fills missing normals with the triangle's face normal.
// Returns false for degenerate triangles, measured relative to edge length.
func setFlatNormal(tri *[3]Vertex) bool {
	p0 := math.V3(tri[0].Position)
	e1 := math.V3(tri[1].Position).Sub(p0)
	e2 := math.V3(tri[2].Position).Sub(p0)
	n := e1.Cross(e2)
	scale := e1.Length() * e2.Length()
	if scale == 0 || n.Length() <= degenerateSine*scale {
		return false
	}
	flat := n.Normalize().Array()
	for i := range tri {
		if tri[i].Normal == ([3]float32{}) {
			tri[i].Normal = flat
		}
	}
	return true
}

// cylindricalUVs maps every vertex onto a cylinder around the Y axis of the mesh bounds.
// U runs along the height and V around the circumference, so horizontal texture bands
// become stripes running pole to pole.
func cylindricalUVs(m *Mesh) {
	center := m.Bounds.Center()
	height := m.Bounds.Size().Y
	for i := range m.Vertices {
		p := m.Vertices[i].Position
		angle := gomath.Atan2(float64(p[2]-center.Z), float64(p[0]-center.X))
		v := float32(angle/(2*gomath.Pi) + 0.5)
		var u float32
		if height > 0 {
			u = (p[1] - m.Bounds.Min.Y) / height
		}
		m.Vertices[i].TexCoord = [2]float32{u, v}
	}
}
