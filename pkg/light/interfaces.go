// Package light implements the renderable point and spot light sources used
// for next-event estimation, plus their ray-intersection surface so they can
// also be hit directly by camera and material-sampled rays.
package light

import "github.com/avellis/pathtracer/pkg/core"

// Light is a light source a ray can either hit directly or be sampled
// towards for next-event estimation.
type Light interface {
	// IntersectRay tests whether ray hits this light's emissive surface in
	// (tMin, tMax), writing into hit and shrinking hit.Z the same way a
	// geometry.Shape does. hit.IsLight and hit.Light are set on success.
	IntersectRay(ray core.Ray, tMin, tMax float64, hit *core.HitInfo) bool

	// GenerateSample draws a direction from p towards the light for next
	// event estimation, returning the direction (unnormalized: its length
	// is meaningful for the inverse-square term), the sample's prob/mult,
	// and ok=false if no valid sample exists from p (e.g. p outside a spot
	// light's cone).
	GenerateSample(p core.Vec3, rng core.RNG) (dir core.Vec3, sample core.DirSample, ok bool)

	// GetSampleInfo evaluates this light's prob/mult for an externally
	// chosen direction from p, for MIS weighting against material sampling.
	// Returns a zero-prob sample if dir does not reach the light.
	GetSampleInfo(p core.Vec3, dir core.Vec3) core.DirSample

	// IsRenderable reports whether this light's surface should appear in
	// camera/material rays (true for area-like point/spot lights).
	IsRenderable() bool

	// IsPhotonSource reports whether this light seeds the (unused) photon
	// subsystem; declared for interface parity, never true here.
	IsPhotonSource() bool
}
