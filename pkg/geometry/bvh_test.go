package geometry

import (
	"math"
	"testing"

	"github.com/avellis/pathtracer/pkg/core"
)

type testSphereAt struct {
	center core.Vec3
}

func (s testSphereAt) Hit(ray core.Ray, tMin, tMax float64, hit *core.HitInfo) bool {
	local := core.NewRay(ray.Origin.Subtract(s.center), ray.Direction)
	return (&Sphere{}).Hit(local, tMin, tMax, hit)
}

func (s testSphereAt) BoundingBox() core.AABB {
	return core.NewAABB(s.center.Subtract(core.NewVec3(1, 1, 1)), s.center.Add(core.NewVec3(1, 1, 1)))
}

func TestBVH_EmptyMisses(t *testing.T) {
	bvh := NewBVH(nil)
	hit := core.NewHitInfo()
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	if bvh.Hit(ray, 0.001, math.Inf(1), &hit) {
		t.Fatal("expected a miss on an empty BVH")
	}
}

func TestBVH_FindsClosestAmongMany(t *testing.T) {
	var shapes []Shape
	for i := 0; i < 50; i++ {
		shapes = append(shapes, testSphereAt{center: core.NewVec3(0, 0, float64(i)*3)})
	}
	bvh := NewBVH(shapes)

	ray := core.NewRay(core.NewVec3(0, 0, 1000), core.NewVec3(0, 0, -1))
	hit := core.NewHitInfo()
	if !bvh.Hit(ray, 0.001, math.Inf(1), &hit) {
		t.Fatal("expected a hit")
	}

	// the farthest sphere (center z=147) is the nearest to the ray origin
	// at z=1000; its front-face hit distance is 1000-147-1=852
	if math.Abs(hit.Z-852) > 1e-6 {
		t.Errorf("Z = %v, want 852", hit.Z)
	}
}

func TestBVH_ZNonIncreasingAcrossHits(t *testing.T) {
	var shapes []Shape
	for i := 0; i < 10; i++ {
		shapes = append(shapes, testSphereAt{center: core.NewVec3(0, 0, float64(i)*3)})
	}
	bvh := NewBVH(shapes)

	ray := core.NewRay(core.NewVec3(0, 0, 100), core.NewVec3(0, 0, -1))
	hit := core.NewHitInfo()
	prevZ := math.Inf(1)
	bvh.Hit(ray, 0.001, prevZ, &hit)
	if hit.Z > prevZ {
		t.Errorf("hit.Z = %v increased past initial %v", hit.Z, prevZ)
	}
}
