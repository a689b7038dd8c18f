package geometry

import (
	"math"

	"github.com/avellis/pathtracer/pkg/core"
)

// Plane is the unit square lying in the local z=0 plane, |x|<=1, |y|<=1.
// A finite quad light or area emitter is built by placing one of these at
// the leaf of a scenegraph.Node with the desired transform, rather than by
// parametrizing width/height here.
type Plane struct{}

// NewPlane returns the shared unit-square primitive.
func NewPlane() *Plane {
	return &Plane{}
}

// Hit solves for the local z=0 crossing and bounds-checks the result
// against the unit square.
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64, hit *core.HitInfo) bool {
	if math.Abs(ray.Direction.Z) < bias {
		return false
	}

	t := -ray.Origin.Z / ray.Direction.Z
	if t <= bias || t < tMin || t > tMax || t >= hit.Z {
		return false
	}

	localP := ray.At(t)
	if math.Abs(localP.X) > 1 || math.Abs(localP.Y) > 1 {
		return false
	}

	normal := core.NewVec3(0, 0, 1)

	hit.Z = t
	hit.P = localP
	hit.N = normal
	hit.GN = normal
	hit.Front = ray.Direction.Z < 0
	hit.UVW = core.NewVec3((localP.X+1)/2, (localP.Y+1)/2, 0)
	hit.IsLight = false
	hit.Light = nil
	hit.Node = nil

	return true
}

// BoundingBox returns the flattened [-1,1]x[-1,1]x{0} bounds, thickened
// slightly so the BVH's slab test never degenerates on a zero-extent axis.
func (p *Plane) BoundingBox() core.AABB {
	const thickness = 1e-4
	return core.NewAABB(
		core.NewVec3(-1, -1, -thickness),
		core.NewVec3(1, 1, thickness),
	)
}
