package light

import (
	"math"

	"github.com/avellis/pathtracer/pkg/core"
)

// SpotLight is a PointLight restricted to a cone: a spherical area light at
// Position, radius Size, that only emits within HalfAngle radians of
// Direction.
type SpotLight struct {
	Position  core.Vec3
	Size      float64
	Intensity core.Vec3
	Direction core.Vec3 // unit vector, the cone's axis
	HalfAngle float64   // radians
}

// NewSpotLight builds a spot light from a from/to aim pair (matching the
// conventional from/to/coneAngle light authoring form) and a half-angle in
// degrees.
func NewSpotLight(from, to, intensity core.Vec3, size, halfAngleDegrees float64) *SpotLight {
	return &SpotLight{
		Position:  from,
		Size:      size,
		Intensity: intensity,
		Direction: to.Subtract(from).Normalize(),
		HalfAngle: halfAngleDegrees * math.Pi / 180,
	}
}

// IntersectRay restricts the underlying sphere intersection to rays
// approaching from within the cone, and to hit points whose angular offset
// from the axis is within HalfAngle.
func (sl *SpotLight) IntersectRay(ray core.Ray, tMin, tMax float64, hit *core.HitInfo) bool {
	reversed := ray.Direction.Negate().Normalize()
	if reversed.Dot(sl.Direction) <= 0 {
		return false
	}

	oc := ray.Origin.Subtract(sl.Position)
	d := ray.Direction

	a := d.Dot(d)
	halfB := oc.Dot(d)
	c := oc.Dot(oc) - sl.Size*sl.Size

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}
	if math.Abs(oc.Dot(d)) <= bias {
		return false
	}

	sqrtD := math.Sqrt(discriminant)
	cosHalfAngle := math.Cos(sl.HalfAngle)

	tryRoot := func(root float64) (core.Vec3, core.Vec3, bool) {
		if root <= bias || root < tMin || root > tMax || root >= hit.Z {
			return core.Vec3{}, core.Vec3{}, false
		}
		p := ray.At(root)
		n := p.Subtract(sl.Position).Normalize()
		if n.Dot(sl.Direction) < cosHalfAngle {
			return core.Vec3{}, core.Vec3{}, false
		}
		return p, n, true
	}

	root := (-halfB - sqrtD) / a
	front := true
	p, n, ok := tryRoot(root)
	if !ok {
		root = (-halfB + sqrtD) / a
		front = false
		p, n, ok = tryRoot(root)
		if !ok {
			return false
		}
	}

	hit.Z = root
	hit.P = p
	hit.N = n
	hit.GN = n
	hit.Front = front
	hit.UVW = core.Vec3{}
	hit.IsLight = true
	hit.Light = sl
	hit.Node = nil

	return true
}

// GenerateSample rejects shading points outside the cone, otherwise samples
// the point light's apparent disk with r_eff = sin(HalfAngle): an angular
// (unitless) effective radius, consistent with the inverse-square
// formulation used for GenerateSample/GetSampleInfo below.
func (sl *SpotLight) GenerateSample(p core.Vec3, rng core.RNG) (core.Vec3, core.DirSample, bool) {
	toP := p.Subtract(sl.Position)
	dist := toP.Length()
	if dist == 0 {
		return core.Vec3{}, core.VoidSample(), false
	}
	cosAngle := toP.Multiply(1 / dist).Dot(sl.Direction)
	if cosAngle < math.Cos(sl.HalfAngle) {
		return core.Vec3{}, core.VoidSample(), false
	}

	sinHalfAngle := math.Sin(sl.HalfAngle)
	radius := sl.Size * sinHalfAngle

	tangent, bitangent := core.OrthonormalBasis(sl.Direction)
	disk := core.SamplePointInUnitDisk(core.NewVec2(rng.Float64(), rng.Float64()))
	samplePoint := sl.Position.
		Add(tangent.Multiply(disk.X * radius)).
		Add(bitangent.Multiply(disk.Y * radius))

	dir := samplePoint.Subtract(p)
	prob := 1 / (math.Pi * sinHalfAngle * sinHalfAngle)
	mult := sl.Intensity.Multiply(1 / dir.LengthSquared())

	return dir, core.DirSample{Prob: prob, Mult: mult, Lobe: core.LobeNone}, true
}

// GetSampleInfo mirrors PointLight.GetSampleInfo with r_eff = sin(HalfAngle).
func (sl *SpotLight) GetSampleInfo(p core.Vec3, dir core.Vec3) core.DirSample {
	ray := core.NewRay(p, dir)
	hit := core.NewHitInfo()
	if !sl.IntersectRay(ray, bias, math.Inf(1), &hit) {
		return core.VoidSample()
	}

	sinHalfAngle := math.Sin(sl.HalfAngle)
	hitDistSq := hit.P.Subtract(p).LengthSquared()
	prob := 2 * sinHalfAngle * sinHalfAngle / hitDistSq
	mult := sl.Intensity.Multiply(4 * math.Pi * sinHalfAngle * sinHalfAngle / hitDistSq)

	return core.DirSample{Prob: prob, Mult: mult, Lobe: core.LobeNone}
}

func (sl *SpotLight) IsRenderable() bool  { return true }
func (sl *SpotLight) IsPhotonSource() bool { return false }
