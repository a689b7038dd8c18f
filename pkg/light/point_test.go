package light

import (
	"math"
	"testing"

	"github.com/avellis/pathtracer/pkg/core"
)

type fixedRNG struct{ v float64 }

func (f fixedRNG) Float64() float64 { return f.v }

func TestPointLight_IntersectRay_HitsSphere(t *testing.T) {
	pl := NewPointLight(core.NewVec3(0, 0, -5), 1.0, core.NewVec3(10, 10, 10))
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	hit := core.NewHitInfo()

	if !pl.IntersectRay(ray, 0, math.Inf(1), &hit) {
		t.Fatal("expected a hit")
	}
	if !hit.IsLight || hit.Light != pl {
		t.Error("expected hit.IsLight and hit.Light to reference the light")
	}
	if math.Abs(hit.Z-4) > 1e-9 {
		t.Errorf("Z = %v, want 4", hit.Z)
	}
}

func TestPointLight_IntersectRay_Misses(t *testing.T) {
	pl := NewPointLight(core.NewVec3(10, 10, 10), 1.0, core.NewVec3(1, 1, 1))
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	hit := core.NewHitInfo()

	if pl.IntersectRay(ray, 0, math.Inf(1), &hit) {
		t.Error("expected a miss")
	}
}

func TestPointLight_GenerateSample_DeltaFastPath(t *testing.T) {
	pl := NewPointLight(core.NewVec3(0, 0, -5), 0, core.NewVec3(4, 4, 4))
	dir, sample, ok := pl.GenerateSample(core.Vec3{}, fixedRNG{0.5})
	if !ok {
		t.Fatal("expected ok")
	}
	if sample.Prob != 1 {
		t.Errorf("Prob = %v, want 1 for a delta light", sample.Prob)
	}
	want := core.NewVec3(0, 0, -5)
	if dir.Subtract(want).Length() > 1e-9 {
		t.Errorf("dir = %v, want %v", dir, want)
	}
	wantMult := pl.Intensity.Multiply(1 / 25.0)
	if sample.Mult.Subtract(wantMult).Length() > 1e-9 {
		t.Errorf("Mult = %v, want %v", sample.Mult, wantMult)
	}
}

func TestPointLight_GenerateSample_FiniteSizeStaysWithinDisk(t *testing.T) {
	pl := NewPointLight(core.NewVec3(0, 0, -5), 0.5, core.NewVec3(4, 4, 4))
	p := core.Vec3{}
	dir, sample, ok := pl.GenerateSample(p, fixedRNG{0.5})
	if !ok {
		t.Fatal("expected ok")
	}
	if sample.Prob <= 0 {
		t.Errorf("Prob = %v, want > 0", sample.Prob)
	}
	samplePoint := p.Add(dir)
	if samplePoint.Subtract(pl.Position).Length() > pl.Size+1e-9 {
		t.Errorf("sample point %v lies outside the light's disk of radius %v", samplePoint, pl.Size)
	}
}

func TestPointLight_GetSampleInfo_MatchesHitGeometry(t *testing.T) {
	pl := NewPointLight(core.NewVec3(0, 0, -5), 0.5, core.NewVec3(4, 4, 4))
	p := core.Vec3{}
	dir := core.NewVec3(0, 0, -1)

	sample := pl.GetSampleInfo(p, dir)
	if sample.Prob <= 0 {
		t.Errorf("Prob = %v, want > 0 for a direction that hits the light", sample.Prob)
	}
}

func TestPointLight_GetSampleInfo_MissDirectionIsVoid(t *testing.T) {
	pl := NewPointLight(core.NewVec3(0, 0, -5), 0.5, core.NewVec3(4, 4, 4))
	sample := pl.GetSampleInfo(core.Vec3{}, core.NewVec3(1, 0, 0))
	if sample.Prob != 0 {
		t.Errorf("Prob = %v, want 0 for a direction that misses", sample.Prob)
	}
}
