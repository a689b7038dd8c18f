package geometry

import (
	"math"
	"testing"

	"github.com/avellis/pathtracer/pkg/core"
)

func TestTriangle_HitCenter(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	)
	ray := core.NewRay(core.NewVec3(0, -0.3, 5), core.NewVec3(0, 0, -1))
	hit := core.NewHitInfo()
	if !tri.Hit(ray, 0.001, math.Inf(1), &hit) {
		t.Fatal("expected a hit through the triangle's interior")
	}
	if math.Abs(hit.Z-5) > 1e-9 {
		t.Errorf("Z = %v, want 5", hit.Z)
	}
}

func TestTriangle_MissOutside(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	)
	ray := core.NewRay(core.NewVec3(5, 5, 5), core.NewVec3(0, 0, -1))
	hit := core.NewHitInfo()
	if tri.Hit(ray, 0.001, math.Inf(1), &hit) {
		t.Fatal("expected a miss outside the triangle's footprint")
	}
}

func TestTriangle_ParallelRayMisses(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(1, 0, 0))
	hit := core.NewHitInfo()
	if tri.Hit(ray, 0.001, math.Inf(1), &hit) {
		t.Fatal("expected a miss for a ray parallel to the triangle's plane")
	}
}

func TestTriangle_SmoothNormalInterpolation(t *testing.T) {
	n0 := core.NewVec3(0, 0, 1)
	n1 := core.NewVec3(0, 0, 1)
	n2 := core.NewVec3(0, 0, 1)
	tri := NewTriangleSmooth(
		core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0),
		n0, n1, n2,
		core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0.5, 1),
	)
	ray := core.NewRay(core.NewVec3(0, -0.3, 5), core.NewVec3(0, 0, -1))
	hit := core.NewHitInfo()
	if !tri.Hit(ray, 0.001, math.Inf(1), &hit) {
		t.Fatal("expected a hit")
	}
	if hit.N.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("N = %v, want (0,0,1)", hit.N)
	}
}
