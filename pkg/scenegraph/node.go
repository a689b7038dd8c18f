// Package scenegraph implements the transformed object hierarchy rays are
// traced against: each Node owns an affine transform, an optional
// geometric object and material, and a list of children. Transform
// composition is by ray-pushdown and hit-pullup (§4.D) rather than a
// global matrix stack — every node only ever needs its own transform and
// its immediate parent's frame.
package scenegraph

import (
	"github.com/avellis/pathtracer/pkg/core"
	"github.com/avellis/pathtracer/pkg/geometry"
	"github.com/avellis/pathtracer/pkg/material"
	"github.com/go-gl/mathgl/mgl64"
)

// Node is one element of the scene hierarchy.
type Node struct {
	ToParent    mgl64.Mat4
	ToParentInv mgl64.Mat4

	Object   geometry.Shape    // nil for a pure grouping/transform node
	Material material.Material // nil when Object is nil or emits no material response

	Children []*Node
}

// NewNode builds a node from its to-parent transform. The inverse is
// computed once at construction since every ray traced through this node
// needs it.
func NewNode(toParent mgl64.Mat4, object geometry.Shape, mat material.Material) *Node {
	return &Node{
		ToParent:    toParent,
		ToParentInv: toParent.Inv(),
		Object:      object,
		Material:    mat,
	}
}

// AddChild appends a child node, taking ownership of it.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// ToNodeCoords transforms a ray from this node's parent frame into this
// node's local frame.
func (n *Node) ToNodeCoords(ray core.Ray) core.Ray {
	return core.NewRay(
		transformPoint(n.ToParentInv, ray.Origin),
		transformDir(n.ToParentInv, ray.Direction),
	)
}

// FromNodeCoords lifts a HitInfo produced in this node's local frame back
// into its parent's frame. P transforms as a point; N and GN transform as
// directions and are renormalized (uniform scale is assumed — the spec's
// transform model does not call out a separate normal matrix).
func (n *Node) FromNodeCoords(hit *core.HitInfo) {
	hit.P = transformPoint(n.ToParent, hit.P)
	hit.N = transformDir(n.ToParent, hit.N).Normalize()
	hit.GN = transformDir(n.ToParent, hit.GN).Normalize()
}

func transformPoint(m mgl64.Mat4, v core.Vec3) core.Vec3 {
	r := m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 1})
	return core.NewVec3(r[0], r[1], r[2])
}

func transformDir(m mgl64.Mat4, v core.Vec3) core.Vec3 {
	r := m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0})
	return core.NewVec3(r[0], r[1], r[2])
}
