package geometry

import (
	"math"

	"github.com/avellis/pathtracer/pkg/core"
)

// Sphere is the unit sphere centered at the local-frame origin. Scale and
// position come entirely from the enclosing scenegraph.Node's transform;
// the sphere itself carries no center or radius.
type Sphere struct{}

// NewSphere returns the shared unit-sphere primitive.
func NewSphere() *Sphere {
	return &Sphere{}
}

// Hit solves |p+td|^2=1 in local space. The nearer root is preferred but
// only accepted if t>bias; otherwise the farther root is tried (marking a
// back-face hit), matching the spec's "both faces are valid" contract for a
// closed solid — a ray starting inside the sphere (e.g. exiting after
// refraction) must still find its exit point.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, hit *core.HitInfo) bool {
	p := ray.Origin
	d := ray.Direction

	a := d.Dot(d)
	halfB := p.Dot(d)
	c := p.Dot(p) - 1

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}

	// Grazing rays (ray direction nearly tangent to the sphere at the
	// origin-facing point) are treated as misses rather than risking a
	// near-degenerate normal. The same test also rejects any ray whose origin
	// is its own point of closest approach to the center, the center itself
	// included.
	if math.Abs(p.Dot(d)) <= bias {
		return false
	}

	sqrtD := math.Sqrt(discriminant)

	front := true
	root := (-halfB - sqrtD) / a
	if root <= bias || root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		front = false
		if root <= bias || root < tMin || root > tMax {
			return false
		}
	}

	if root >= hit.Z {
		return false
	}

	localP := ray.At(root)

	hit.Z = root
	hit.P = localP
	hit.N = localP
	hit.GN = localP
	hit.Front = front
	hit.UVW = core.NewVec3(
		math.Atan2(localP.Y, localP.X)/(2*math.Pi),
		math.Asin(clamp(localP.Z, -1, 1))/math.Pi+0.5,
		0.5,
	)
	hit.IsLight = false
	hit.Light = nil
	hit.Node = nil

	return true
}

// BoundingBox returns the [-1,1]^3 bounds of the unit sphere.
func (s *Sphere) BoundingBox() core.AABB {
	return core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
