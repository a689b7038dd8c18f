package light

import (
	"math"

	"github.com/avellis/pathtracer/pkg/core"
)

// bias matches the grazing-incidence rejection epsilon used throughout
// pkg/geometry's primitive intersection tests.
const bias = 2e-3

// PointLight is a spherical area light of radius Size centered at Position,
// radiating Intensity uniformly in all directions. Size == 0 degenerates it
// into a classic delta point light.
type PointLight struct {
	Position  core.Vec3
	Size      float64
	Intensity core.Vec3
}

// NewPointLight builds a point light. A Size of 0 produces a delta light
// (no finite-area disk to sample).
func NewPointLight(position core.Vec3, size float64, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Size: size, Intensity: intensity}
}

// IntersectRay tests a ray against the light's emissive sphere, following
// the same bias/root-selection policy as geometry.Sphere.Hit.
func (pl *PointLight) IntersectRay(ray core.Ray, tMin, tMax float64, hit *core.HitInfo) bool {
	oc := ray.Origin.Subtract(pl.Position)
	d := ray.Direction

	a := d.Dot(d)
	halfB := oc.Dot(d)
	c := oc.Dot(oc) - pl.Size*pl.Size

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}
	if math.Abs(oc.Dot(d)) <= bias {
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

	p := ray.At(root)
	n := p.Subtract(pl.Position).Normalize()

	hit.Z = root
	hit.P = p
	hit.N = n
	hit.GN = n
	hit.Front = front
	hit.UVW = core.Vec3{}
	hit.IsLight = true
	hit.Light = pl
	hit.Node = nil

	return true
}

// GenerateSample draws a direction from p towards a uniformly sampled point
// on the light's apparent disk, per the effective-radius formulation.
//
// Size == 0 is a delta light: skip the disk entirely and return the exact
// direction to Position with prob=1, since the general r_eff formula below
// divides by Size and is undefined at Size == 0.
func (pl *PointLight) GenerateSample(p core.Vec3, rng core.RNG) (core.Vec3, core.DirSample, bool) {
	delta := pl.Position.Subtract(p)
	distSq := delta.LengthSquared()

	if pl.Size == 0 {
		if distSq == 0 {
			return core.Vec3{}, core.VoidSample(), false
		}
		mult := pl.Intensity.Multiply(1 / distSq)
		return delta, core.DirSample{Prob: 1, Mult: mult, Lobe: core.LobeNone}, true
	}

	dist := math.Sqrt(distSq)
	rEff := pl.Size * math.Sqrt(distSq-pl.Size*pl.Size) / dist

	axis := delta.Multiply(1 / dist)
	tangent, bitangent := core.OrthonormalBasis(axis)
	disk := core.SamplePointInUnitDisk(core.NewVec2(rng.Float64(), rng.Float64()))
	samplePoint := pl.Position.
		Add(tangent.Multiply(disk.X * pl.Size)).
		Add(bitangent.Multiply(disk.Y * pl.Size))

	dir := samplePoint.Subtract(p)
	prob := 1 / (math.Pi * rEff * rEff)
	mult := pl.Intensity.Multiply(1 / dir.LengthSquared())

	return dir, core.DirSample{Prob: prob, Mult: mult, Lobe: core.LobeNone}, true
}

// GetSampleInfo evaluates the prob/mult a material-sampled dir would have
// produced, for MIS weighting against GenerateSample.
func (pl *PointLight) GetSampleInfo(p core.Vec3, dir core.Vec3) core.DirSample {
	if pl.Size == 0 {
		return core.VoidSample()
	}

	ray := core.NewRay(p, dir)
	hit := core.NewHitInfo()
	if !pl.IntersectRay(ray, bias, math.Inf(1), &hit) {
		return core.VoidSample()
	}

	distSq := pl.Position.Subtract(p).LengthSquared()
	dist := math.Sqrt(distSq)
	rEff := pl.Size * math.Sqrt(distSq-pl.Size*pl.Size) / dist

	hitDistSq := hit.P.Subtract(p).LengthSquared()
	prob := 2 * rEff * rEff / hitDistSq
	mult := pl.Intensity.Multiply(4 * math.Pi * rEff * rEff / hitDistSq)

	return core.DirSample{Prob: prob, Mult: mult, Lobe: core.LobeNone}
}

func (pl *PointLight) IsRenderable() bool  { return true }
func (pl *PointLight) IsPhotonSource() bool { return false }
