package lighting

import (
	gomath "math"

	"github.com/Faultbox/melonview/pkg/math"
)

// ShadowMatrix computes the light view-projection that covers bounds for a
// directional shadow map. An empty box yields the identity matrix.
func (d *Directional) ShadowMatrix(bounds math.Box3) math.Mat4 {
	if bounds.IsEmpty() {
		return math.Identity()
	}
	return DirectionalLightMatrix(d.Direction(), bounds)
}

// DirectionalLightMatrix computes view-projection for shadow map.
// lightDir is the normalized direction TO the light.
func DirectionalLightMatrix(lightDir [3]float32, bounds math.Box3) math.Mat4 {
	center := bounds.Center()
	radius := bounds.Radius()
	if radius < 1e-3 {
		radius = 1e-3
	}

	// Position light far enough to encompass entire scene
	lightDistance := radius * 2.0
	lightPos := center.Add(math.V3(lightDir).Scale(lightDistance))

	// Avoid an up vector parallel with the light direction
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	if gomath.Abs(float64(lightDir[1])) > 0.99 {
		up = math.Vec3{X: 0, Y: 0, Z: 1}
	}

	view := math.LookAt(lightPos, center, up)

	// Padding avoids edge artifacts
	padding := radius * 0.1
	halfSize := radius + padding
	far := lightDistance + radius + padding

	proj := math.Ortho(-halfSize, halfSize, -halfSize, halfSize, 0.1, far)

	return proj.Mul(view)
}
