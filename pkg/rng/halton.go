// Package rng provides the low-discrepancy sampler tables (Halton sequences)
// and the per-thread uniform random source the renderer draws pixel, lens,
// and scattering samples from.
package rng

import (
	"math"

	"github.com/avellis/pathtracer/pkg/core"
)

type haltonSample struct {
	X, Y, R, Theta float64
}

// Table is a one-shot-initialized table of low-discrepancy
// samples: for i in [0,sampleMax), X=Halton(i,2), Y=Halton(i,3),
// R=Halton(i,5), Theta=Halton(i,7). Immutable after construction, so it is
// safe to read concurrently from every rendering worker without
// synchronization.
type Table struct {
	samples []haltonSample
}

// NewTable builds a Table of the given size. Call once per sample budget;
// an engine that supports multiple sample budgets owns one Table per size.
func NewTable(sampleMax int) *Table {
	samples := make([]haltonSample, sampleMax)
	for i := 0; i < sampleMax; i++ {
		samples[i] = haltonSample{
			X:     halton(i, 2),
			Y:     halton(i, 3),
			R:     halton(i, 5),
			Theta: halton(i, 7),
		}
	}
	return &Table{samples: samples}
}

// halton computes the i-th term of the radical-inverse (Halton) sequence in
// the given prime base.
func halton(i, base int) float64 {
	f := 1.0
	r := 0.0
	for i > 0 {
		f /= float64(base)
		r += f * float64(i%base)
		i /= base
	}
	return r
}

// GetSample returns the n-th pixel sample, offset by a per-pixel phase `off`
// and folded into [0,1) by modulo. off decorrelates neighboring pixels that
// would otherwise share identical stratification.
func (t *Table) GetSample(n int, off core.Vec2) core.Vec2 {
	s := t.samples[n%len(t.samples)]
	return core.NewVec2(wrap01(s.X+off.X), wrap01(s.Y+off.Y))
}

// GetDiskSample returns the n-th lens/area sample mapped onto a disk of
// radius R, offset by a per-pixel phase `off`. Radius uses sqrt-stratified
// area sampling with reflection folding when the offset radius exceeds 1.
func (t *Table) GetDiskSample(n int, off core.Vec2, radius float64) core.Vec2 {
	s := t.samples[n%len(t.samples)]

	r := math.Sqrt(s.R) + off.X
	if r > 1 {
		r = 2 - r
	}

	theta := wrap01(s.Theta + off.Y)
	angle := 2 * math.Pi * theta

	return core.NewVec2(radius*r*math.Cos(angle), radius*r*math.Sin(angle))
}

func wrap01(x float64) float64 {
	x = math.Mod(x, 1.0)
	if x < 0 {
		x += 1.0
	}
	return x
}
