package rng

import "math/rand"

// Source is the per-thread random source every worker owns exclusively.
// It wraps math/rand with a seed derived from the pixel index being
// rendered, so re-rendering the same pixel index reproduces the same path
// regardless of which worker or how many workers drew it.
type Source struct {
	r *rand.Rand
}

// NewSource seeds a new Source. Callers derive seed from the pixel index
// (e.g. j*width+i) rather than wall-clock time, per the determinism
// invariant: worker count must not affect a pixel's result.
func NewSource(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform sample in [0,1). Implements core.RNG.
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// UintN returns a uniform sample in [0,n).
func (s *Source) UintN(n uint32) uint32 {
	return uint32(s.r.Int63n(int64(n)))
}
