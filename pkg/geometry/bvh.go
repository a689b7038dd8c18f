package geometry

import "github.com/avellis/pathtracer/pkg/core"

// BVHNode is one node of the bounding volume hierarchy: either an internal
// node with two children, or a leaf holding a face-index list (here, the
// slice of Shapes assigned to it).
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Shape // non-nil only for leaf nodes
}

// BVH accelerates ray intersection against a set of shapes (typically
// triangles) via a binary tree of axis-aligned bounding boxes.
type BVH struct {
	Root *BVHNode
}

// leafThreshold bounds the number of shapes stored in a single leaf before
// the builder splits further.
const leafThreshold = 8

// NewBVH builds a BVH over shapes using midpoint splits along the longest
// axis of each node's bounds. The input slice is copied so the caller's
// slice is never mutated by the recursive partition step.
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{Root: nil}
	}
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)
	return &BVH{Root: buildBVH(shapesCopy)}
}

func buildBVH(shapes []Shape) *BVHNode {
	bbox := shapes[0].BoundingBox()
	for i := 1; i < len(shapes); i++ {
		bbox = bbox.Union(shapes[i].BoundingBox())
	}

	if len(shapes) <= leafThreshold {
		return &BVHNode{BoundingBox: bbox, Shapes: shapes}
	}

	axis := bbox.LongestAxis()
	splitPos := axisValue(bbox.Min, axis)+axisValue(bbox.Max, axis)
	splitPos *= 0.5

	if axisValue(bbox.Max, axis) <= axisValue(bbox.Min, axis) {
		return &BVHNode{BoundingBox: bbox, Shapes: shapes}
	}

	left, right := partition(shapes, axis, splitPos)
	if len(left) == 0 || len(right) == 0 {
		return &BVHNode{BoundingBox: bbox, Shapes: shapes}
	}

	return &BVHNode{
		BoundingBox: bbox,
		Left:        buildBVH(left),
		Right:       buildBVH(right),
	}
}

func axisValue(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func partition(shapes []Shape, axis int, splitPos float64) ([]Shape, []Shape) {
	var left, right []Shape
	for _, shape := range shapes {
		center := shape.BoundingBox().Center()
		if axisValue(center, axis) < splitPos {
			left = append(left, shape)
		} else {
			right = append(right, shape)
		}
	}
	return left, right
}

// Hit tests the ray against the BVH, filling hit with the closest
// intersection found within [tMin, tMax].
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64, hit *core.HitInfo) bool {
	if bvh.Root == nil {
		return false
	}
	return bvh.hitNode(bvh.Root, ray, tMin, tMax, hit)
}

// hitNode recurses into both children of an internal node (no front-to-back
// ordering is required: every node that the slab test does not reject is
// descended into, and hit's shrinking tMax keeps the search correct
// regardless of visit order).
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64, hit *core.HitInfo) bool {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return false
	}

	if node.Shapes != nil {
		hitAnything := false
		closestSoFar := tMax
		for _, shape := range node.Shapes {
			if shape.Hit(ray, tMin, closestSoFar, hit) {
				hitAnything = true
				closestSoFar = hit.Z
			}
		}
		return hitAnything
	}

	hitAnything := false
	closestSoFar := tMax

	if node.Left != nil && bvh.hitNode(node.Left, ray, tMin, closestSoFar, hit) {
		hitAnything = true
		closestSoFar = hit.Z
	}
	if node.Right != nil && bvh.hitNode(node.Right, ray, tMin, closestSoFar, hit) {
		hitAnything = true
	}

	return hitAnything
}

// BoundingBox returns the overall bounds of the BVH.
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}
