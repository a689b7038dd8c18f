package core

import "math"

// HitInfo carries the result of a ray-scene intersection query as it is
// threaded through successive Hit calls. Z starts at +Inf and is
// monotonically non-increasing across any sequence of intersection tests
// that share the same HitInfo.
//
// Light and Node are typed as any to avoid an import cycle: core is the
// lowest-level package, while the concrete light.Light and scenegraph.Node
// types depend on core. Callers type-assert to the concrete type.
type HitInfo struct {
	Z     float64 // hit distance along the ray
	P     Vec3    // hit point
	N     Vec3    // shading normal
	GN    Vec3    // geometric normal
	UVW   Vec3    // barycentric/uv coordinates
	Front bool    // true iff the ray entered the front face

	IsLight bool
	Light   any // light.Light, set only when IsLight is true
	Node    any // scenegraph.Node that owns the hit object, if any
}

// NewHitInfo returns the default-constructed state: Z=+Inf, no references.
func NewHitInfo() HitInfo {
	return HitInfo{Z: math.Inf(1)}
}

// SamplerInfo carries the current pixel, the current sample index within
// that pixel, the current hit record, and the per-thread RNG handle. It is
// mutated as a path progresses through the integrator.
type SamplerInfo struct {
	PixelI, PixelJ int
	SampleIndex    int
	Hit            HitInfo
	V              Vec3 // view direction: -ray direction, normalized
	RNG            RNG
}

// RNG is the minimal per-thread random source the integrator and BSDFs need.
// pkg/rng.Source implements this; it is declared here (rather than imported)
// because core must not depend on pkg/rng's Halton-table machinery.
type RNG interface {
	Float64() float64
}
