package viewer

import (
	"bytes"

	"go.uber.org/zap"

	"github.com/Faultbox/melonview/internal/engine/mesh"
	"github.com/Faultbox/melonview/internal/scene"
	"github.com/Faultbox/melonview/pkg/math"
)

func decodeModel(data []byte) ([]*mesh.Mesh, error) {
	return mesh.DecodeOBJ(bytes.NewReader(data))
}

// pollLoad applies the model load result the first frame it is available.
func (v *Viewer) pollLoad() {
	if v.loadDone || v.load == nil {
		return
	}
	res, ok := v.load.Poll()
	if !ok {
		return
	}
	v.loadDone = true

	if res.Err != nil {
		v.log.Error("model load failed", zap.String("url", v.loadURL), zap.Error(res.Err))
		return
	}

	model := v.buildModel(res.Val)
	Normalize(model, TargetSize, RestY)
	v.group.Add(model)
	v.model = model

	size := model.BoundingBox().Size()
	v.log.Info("model loaded",
		zap.String("url", v.loadURL),
		zap.Int("parts", len(res.Val)),
		zap.Float32("width", size.X),
		zap.Float32("height", size.Y),
		zap.Float32("depth", size.Z),
	)
}

func (v *Viewer) buildModel(parts []*mesh.Mesh) *scene.Node {
	model := scene.NewGroup("model")
	for _, m := range parts {
		n := scene.NewMesh(m.Name, m, v.material)
		n.CastShadow = true
		n.ReceiveShadow = true
		model.Add(n)
	}
	return model
}

// Normalize scales n uniformly so its largest dimension equals size, centers
// it at the origin of its parent space and then lifts it by restY.
// A node without geometry is left unchanged.
func Normalize(n *scene.Node, size, restY float32) {
	box := n.BoundingBox()
	maxDim := box.MaxDimension()
	if box.IsEmpty() || maxDim <= 0 {
		return
	}

	n.SetScalar(size / maxDim)

	center := n.BoundingBox().Center()
	n.Position = n.Position.Sub(center)
	n.Position = n.Position.Add(math.Vec3{Y: restY})
}
