package geometry

import (
	"math"
	"testing"

	"github.com/avellis/pathtracer/pkg/core"
)

func TestPlane_HitWithinSquare(t *testing.T) {
	p := NewPlane()
	ray := core.NewRay(core.NewVec3(0.25, 0.5, 3), core.NewVec3(0, 0, -1))
	hit := core.NewHitInfo()
	if !p.Hit(ray, 0.001, math.Inf(1), &hit) {
		t.Fatal("expected a hit")
	}
	if math.Abs(hit.Z-3) > 1e-9 {
		t.Errorf("Z = %v, want 3", hit.Z)
	}
	wantUVW := core.NewVec3(1.25/2, 1.5/2, 0)
	if hit.UVW.Subtract(wantUVW).Length() > 1e-9 {
		t.Errorf("UVW = %v, want %v", hit.UVW, wantUVW)
	}
}

func TestPlane_MissOutsideSquare(t *testing.T) {
	p := NewPlane()
	ray := core.NewRay(core.NewVec3(2, 0, 3), core.NewVec3(0, 0, -1))
	hit := core.NewHitInfo()
	if p.Hit(ray, 0.001, math.Inf(1), &hit) {
		t.Fatal("expected a miss outside the unit square")
	}
}

func TestPlane_GrazingMiss(t *testing.T) {
	p := NewPlane()
	ray := core.NewRay(core.NewVec3(0, 0, 0.0001), core.NewVec3(1, 0, 1e-9))
	hit := core.NewHitInfo()
	if p.Hit(ray, 0.001, math.Inf(1), &hit) {
		t.Fatal("expected a miss for a ray nearly parallel to the plane")
	}
}
