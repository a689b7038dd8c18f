package geometry

import (
	"math"

	"github.com/avellis/pathtracer/pkg/core"
)

// Triangle is a single triangle within a TriangleMesh, carrying optional
// per-vertex shading normals and texture coordinates for interpolation.
type Triangle struct {
	V0, V1, V2    core.Vec3
	N0, N1, N2    core.Vec3 // shading normals; equal to nStar when the mesh has no custom normals
	UV0, UV1, UV2 core.Vec2

	nStar core.Vec3 // unnormalized geometric normal: (v1-v0)x(v2-v0)
	bbox  core.AABB
}

// NewTriangle builds a triangle with flat (face) shading normals and no
// texture coordinates.
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	nStar := v1.Subtract(v0).Cross(v2.Subtract(v0))
	n := nStar.Normalize()
	return &Triangle{
		V0: v0, V1: v1, V2: v2,
		N0: n, N1: n, N2: n,
		nStar: nStar,
		bbox:  core.NewAABBFromPoints(v0, v1, v2),
	}
}

// NewTriangleSmooth builds a triangle with custom per-vertex normals and
// texture coordinates, for meshes using interpolated (Phong) shading.
func NewTriangleSmooth(v0, v1, v2, n0, n1, n2 core.Vec3, uv0, uv1, uv2 core.Vec2) *Triangle {
	return &Triangle{
		V0: v0, V1: v1, V2: v2,
		N0: n0, N1: n1, N2: n2,
		UV0: uv0, UV1: uv1, UV2: uv2,
		nStar: v1.Subtract(v0).Cross(v2.Subtract(v0)),
		bbox:  core.NewAABBFromPoints(v0, v1, v2),
	}
}

const triangleParallelEps = 2e-5

// Hit implements the planar-projection barycentric test: intersect the
// ray with the triangle's plane, then project triangle and hit point onto
// the axis-aligned plane orthogonal to n*'s largest component and compare
// signed sub-triangle areas rather than the Möller–Trumbore edge tests.
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, hit *core.HitInfo) bool {
	d := ray.Direction
	nDotD := t.nStar.Dot(d)
	if math.Abs(nDotD) < triangleParallelEps {
		return false
	}

	tHit := t.V0.Subtract(ray.Origin).Dot(t.nStar) / nDotD
	if tHit <= bias || tHit < tMin || tHit > tMax || tHit >= hit.Z {
		return false
	}

	hitPoint := ray.At(tHit)

	axis := dominantAxis(t.nStar)
	p0x, p0y := project2D(t.V0, axis)
	p1x, p1y := project2D(t.V1, axis)
	p2x, p2y := project2D(t.V2, axis)
	hx, hy := project2D(hitPoint, axis)

	total := signedArea2D(p0x, p0y, p1x, p1y, p2x, p2y)
	if total == 0 {
		return false
	}

	b0 := signedArea2D(p1x, p1y, p2x, p2y, hx, hy)
	b1 := signedArea2D(p2x, p2y, p0x, p0y, hx, hy)
	b2 := signedArea2D(p0x, p0y, p1x, p1y, hx, hy)

	if !sameSign(total, b0) || !sameSign(total, b1) || !sameSign(total, b2) {
		return false
	}

	w0, w1, w2 := b0/total, b1/total, b2/total

	shadingN := t.N0.Multiply(w0).Add(t.N1.Multiply(w1)).Add(t.N2.Multiply(w2)).Normalize()
	gn := t.nStar.Normalize()
	uv := core.NewVec2(
		w0*t.UV0.X+w1*t.UV1.X+w2*t.UV2.X,
		w0*t.UV0.Y+w1*t.UV1.Y+w2*t.UV2.Y,
	)

	hit.Z = tHit
	hit.P = hitPoint
	hit.N = shadingN
	hit.GN = gn
	hit.Front = nDotD < 0
	hit.UVW = core.NewVec3(uv.X, uv.Y, 0)
	hit.IsLight = false
	hit.Light = nil
	hit.Node = nil

	return true
}

// BoundingBox returns the triangle's precomputed bounding box.
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// dominantAxis returns the index (0=x,1=y,2=z) of v's largest-magnitude
// component.
func dominantAxis(v core.Vec3) int {
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	if ax >= ay && ax >= az {
		return 0
	}
	if ay >= az {
		return 1
	}
	return 2
}

// project2D drops the dominant axis, returning the other two components in
// a fixed (axis-independent) order.
func project2D(v core.Vec3, axis int) (float64, float64) {
	switch axis {
	case 0:
		return v.Y, v.Z
	case 1:
		return v.Z, v.X
	default:
		return v.X, v.Y
	}
}

func signedArea2D(ax, ay, bx, by, cx, cy float64) float64 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

func sameSign(a, b float64) bool {
	return (a >= 0) == (b >= 0)
}
