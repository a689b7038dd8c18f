// Package geometry implements the primitive intersection tests the scene
// graph dispatches into: unit sphere, unit square, and triangle meshes
// accelerated by a BVH. All primitives live in local (untransformed) space;
// translation, rotation and scale are applied by the enclosing
// scenegraph.Node before a ray reaches these Hit implementations.
package geometry

import "github.com/avellis/pathtracer/pkg/core"

// Shape is implemented by anything a scene-graph node can hold as its
// geometric object. Hit follows a pointer-fill/bool-return convention
// rather than allocating and returning a *core.HitInfo: the same HitInfo is
// threaded through a chain of Hit calls (BVH leaf, tree traversal, shadow
// probe) so hit.Z only ever shrinks, which is what makes closest-hit
// monotonicity directly testable.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64, hit *core.HitInfo) bool
	BoundingBox() core.AABB
}

// bias keeps near-self intersections (e.g. a shadow ray leaving a surface)
// from re-hitting the surface it started on.
const bias = 2e-3
