// Package shaders provides embedded GLSL shader sources for the shadow depth pass.
package shaders

import _ "embed"

// DepthVertexShader transforms positions into light clip space.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader is empty; only depth is written.
//
//go:embed depth.frag
var DepthFragmentShader string
