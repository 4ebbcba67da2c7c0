package scene

import (
	"github.com/Faultbox/melonview/internal/engine/mesh"
	"github.com/Faultbox/melonview/pkg/math"
)

// Node is an element of the scene graph. A node with a Mesh is drawable;
// a node without one is a group that only carries a transform.
type Node struct {
	Name string

	Position math.Vec3
	Rotation math.Vec3 // Euler angles in radians, applied X then Y
	Scale    math.Vec3

	Mesh          *mesh.Mesh
	Material      *Material
	CastShadow    bool
	ReceiveShadow bool
	Visible       bool

	parent   *Node
	children []*Node
}

// NewGroup creates an empty transform node.
func NewGroup(name string) *Node {
	return &Node{
		Name:    name,
		Scale:   math.Vec3{X: 1, Y: 1, Z: 1},
		Visible: true,
	}
}

// NewMesh creates a drawable node.
func NewMesh(name string, m *mesh.Mesh, mat *Material) *Node {
	n := NewGroup(name)
	n.Mesh = m
	n.Material = mat
	return n
}

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. Returns false if child was not attached to n.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Children returns the direct children of n.
func (n *Node) Children() []*Node {
	return n.children
}

// Parent returns the node n is attached to, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// SetScalar sets a uniform scale.
func (n *Node) SetScalar(s float32) {
	n.Scale = math.Vec3{X: s, Y: s, Z: s}
}

// LocalMatrix returns Translate * RotateX * RotateY * Scale.
func (n *Node) LocalMatrix() math.Mat4 {
	m := math.Translate(n.Position.X, n.Position.Y, n.Position.Z)
	m = m.Mul(math.RotateX(n.Rotation.X))
	m = m.Mul(math.RotateY(n.Rotation.Y))
	return m.Mul(math.Scale(n.Scale.X, n.Scale.Y, n.Scale.Z))
}

// WorldMatrix returns the transform from n's local space to world space.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// Traverse calls fn for n and every visible descendant with its world matrix.
// parent is the world matrix of n's parent.
func (n *Node) Traverse(parent math.Mat4, fn func(n *Node, world math.Mat4)) {
	if !n.Visible {
		return
	}
	world := parent.Mul(n.LocalMatrix())
	fn(n, world)
	for _, c := range n.children {
		c.Traverse(world, fn)
	}
}

// BoundingBox returns the box enclosing every mesh under n, expressed in the
// coordinate space of n's parent. It is empty when n holds no geometry.
func (n *Node) BoundingBox() math.Box3 {
	box := math.EmptyBox()
	n.Traverse(math.Identity(), func(c *Node, world math.Mat4) {
		if c.Mesh != nil {
			box = box.Union(c.Mesh.Bounds.Transform(world))
		}
	})
	return box
}
