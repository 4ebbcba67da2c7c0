// Package shaders provides embedded GLSL shader sources for scene rendering.
package shaders

import _ "embed"

// MeshVertexShader is the vertex shader for lit meshes.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader shades meshes with hemisphere and directional light plus shadows.
//
//go:embed mesh.frag
var MeshFragmentShader string
