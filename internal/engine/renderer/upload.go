package renderer

import (
	"image/color"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/melonview/internal/engine/mesh"
	"github.com/Faultbox/melonview/internal/engine/texture"
)

var defaultColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}

// gpuMesh is a mesh uploaded to vertex and index buffers.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

func (gm *gpuMesh) draw() {
	gl.BindVertexArray(gm.vao)
	gl.DrawElements(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, nil)
}

func (gm *gpuMesh) destroy() {
	if gm.vao != 0 {
		gl.DeleteVertexArrays(1, &gm.vao)
	}
	if gm.vbo != 0 {
		gl.DeleteBuffers(1, &gm.vbo)
	}
	if gm.ebo != 0 {
		gl.DeleteBuffers(1, &gm.ebo)
	}
}

// upload returns the GPU copy of m, creating it on first use.
func (r *Renderer) upload(m *mesh.Mesh) *gpuMesh {
	if gm, ok := r.meshes[m]; ok {
		return gm
	}
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return nil
	}

	gm := &gpuMesh{indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	vertexSize := int(unsafe.Sizeof(mesh.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.meshes[m] = gm
	r.log.Debug("mesh uploaded",
		zap.String("name", m.Name),
		zap.Int("triangles", m.TriangleCount()),
	)
	return gm
}

// uploadTexture returns the GL texture for t, creating it on first use.
func (r *Renderer) uploadTexture(t *texture.Texture) uint32 {
	if id, ok := r.textures[t]; ok {
		return id
	}

	w, h := t.Size()
	internal := int32(gl.RGBA8)
	if t.SRGB {
		internal = gl.SRGB8_ALPHA8
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&t.Image.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapMode(t.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapMode(t.WrapT))
	gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, 8.0)

	r.textures[t] = id
	return id
}

func wrapMode(w texture.Wrap) int32 {
	if w == texture.Repeat {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}
