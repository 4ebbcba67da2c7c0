package mesh

import (
	"errors"
	gomath "math"
	"strings"
	"testing"
)

const cubeOBJ = `# unit cube, quads, no normals or uvs
o cube
v -0.5 -0.5 -0.5
v  0.5 -0.5 -0.5
v  0.5  0.5 -0.5
v -0.5  0.5 -0.5
v -0.5 -0.5  0.5
v  0.5 -0.5  0.5
v  0.5  0.5  0.5
v -0.5  0.5  0.5
f 1 4 3 2
f 5 6 7 8
f 1 2 6 5
f 4 8 7 3
f 1 5 8 4
f 2 3 7 6
`

const texturedOBJ = `o tri
v 0 0 0
v 1 0 0
v 0 1 0
vt 0.25 0.75
vt 0.5 0.5
vt 0.75 0.25
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
o second
v 0 0 1
v 2 0 1
v 0 2 1
f 4 5 6
`

func TestDecodeOBJCube(t *testing.T) {
	meshes, err := DecodeOBJ(strings.NewReader(cubeOBJ))
	if err != nil {
		t.Fatalf("DecodeOBJ() error = %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("got %d meshes, want 1", len(meshes))
	}
	m := meshes[0]

	// 6 quads fan into 12 triangles
	if got := m.TriangleCount(); got != 12 {
		t.Errorf("TriangleCount() = %d, want 12", got)
	}
	if got := m.Bounds.Size(); got.X != 1 || got.Y != 1 || got.Z != 1 {
		t.Errorf("Bounds size = %+v, want 1x1x1", got)
	}

	for i, v := range m.Vertices {
		n := v.Normal
		l := n[0]*n[0] + n[1]*n[1] + n[2]*n[2]
		if l < 0.99 || l > 1.01 {
			t.Fatalf("vertex %d normal %v is not unit length", i, n)
		}
		if v.TexCoord[0] < 0 || v.TexCoord[0] > 1 || v.TexCoord[1] < 0 || v.TexCoord[1] > 1 {
			t.Fatalf("vertex %d uv %v outside [0,1]", i, v.TexCoord)
		}
	}
}

func TestDecodeOBJTinyScale(t *testing.T) {
	tiny := strings.ReplaceAll(cubeOBJ, "0.5", "0.000005")
	meshes, err := DecodeOBJ(strings.NewReader(tiny))
	if err != nil {
		t.Fatalf("DecodeOBJ() error = %v", err)
	}
	m := meshes[0]
	if got := m.TriangleCount(); got != 12 {
		t.Fatalf("TriangleCount() = %d, want 12", got)
	}
	for i, v := range m.Vertices {
		n := v.Normal
		l := n[0]*n[0] + n[1]*n[1] + n[2]*n[2]
		if l < 0.99 || l > 1.01 {
			t.Fatalf("vertex %d normal %v is not unit length", i, n)
		}
	}
}

func TestDecodeOBJDropsDegenerate(t *testing.T) {
	const src = `o mixed
v 0 0 0
v 1000 0 0
v 2000 0 0
v 0 1000 0
f 1 2 3
f 1 2 4
`
	meshes, err := DecodeOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeOBJ() error = %v", err)
	}
	if got := meshes[0].TriangleCount(); got != 1 {
		t.Errorf("TriangleCount() = %d, want 1 (collinear face dropped)", got)
	}
}

func TestFlatNormalsPointOutward(t *testing.T) {
	meshes, err := DecodeOBJ(strings.NewReader(cubeOBJ))
	if err != nil {
		t.Fatalf("DecodeOBJ() error = %v", err)
	}
	m := meshes[0]

	// Every face of a convex cube centered at the origin faces away from it
	for i := 0; i < len(m.Indices); i += 3 {
		v := m.Vertices[m.Indices[i]]
		var c [3]float32
		for k := 0; k < 3; k++ {
			p := m.Vertices[m.Indices[i+k]].Position
			c[0] += p[0] / 3
			c[1] += p[1] / 3
			c[2] += p[2] / 3
		}
		dot := c[0]*v.Normal[0] + c[1]*v.Normal[1] + c[2]*v.Normal[2]
		if dot <= 0 {
			t.Errorf("triangle %d normal %v points inward", i/3, v.Normal)
		}
	}
}

func TestDecodeOBJKeepsFileAttributes(t *testing.T) {
	meshes, err := DecodeOBJ(strings.NewReader(texturedOBJ))
	if err != nil {
		t.Fatalf("DecodeOBJ() error = %v", err)
	}
	if len(meshes) != 2 {
		t.Fatalf("got %d meshes, want 2", len(meshes))
	}

	tri := meshes[0]
	if tri.Name != "tri" {
		t.Errorf("Name = %q, want tri", tri.Name)
	}
	wantUV := [][2]float32{{0.25, 0.75}, {0.5, 0.5}, {0.75, 0.25}}
	for i, v := range tri.Vertices {
		if v.TexCoord != wantUV[i] {
			t.Errorf("vertex %d uv = %v, want %v", i, v.TexCoord, wantUV[i])
		}
		if v.Normal != [3]float32{0, 0, 1} {
			t.Errorf("vertex %d normal = %v, want file normal", i, v.Normal)
		}
	}

	// The second object has neither normals nor uvs
	second := meshes[1]
	if second.Vertices[0].Normal != [3]float32{0, 0, 1} {
		t.Errorf("flat normal = %v, want +Z", second.Vertices[0].Normal)
	}
}

func TestDecodeOBJEmpty(t *testing.T) {
	_, err := DecodeOBJ(strings.NewReader("# nothing here\nv 0 0 0\n"))
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("error = %v, want ErrEmpty", err)
	}
}

func TestCircle(t *testing.T) {
	tests := []struct {
		name     string
		radius   float32
		segments int
		wantTris int
	}{
		{"floor", 6, 64, 64},
		{"small", 1, 8, 8},
		{"clamped segments", 2, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Circle(tt.radius, tt.segments)
			if got := m.TriangleCount(); got != tt.wantTris {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.wantTris)
			}

			size := m.Bounds.Size()
			if gomath.Abs(float64(size.X-2*tt.radius)) > 1e-4 || size.Y != 0 {
				t.Errorf("Bounds size = %+v, want diameter %v and zero height", size, 2*tt.radius)
			}

			for i, v := range m.Vertices {
				if v.Normal != [3]float32{0, 1, 0} {
					t.Fatalf("vertex %d normal = %v, want +Y", i, v.Normal)
				}
			}

			// Winding is counter-clockwise seen from above
			for i := 0; i < len(m.Indices); i += 3 {
				p0 := m.Vertices[m.Indices[i]].Position
				p1 := m.Vertices[m.Indices[i+1]].Position
				p2 := m.Vertices[m.Indices[i+2]].Position
				ny := (p1[2]-p0[2])*(p2[0]-p0[0]) - (p1[0]-p0[0])*(p2[2]-p0[2])
				if ny <= 0 {
					t.Fatalf("triangle %d winds clockwise", i/3)
				}
			}
		})
	}
}
