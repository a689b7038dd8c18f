package material

import "github.com/avellis/pathtracer/pkg/core"

// Microfacet is declared for interface parity but intentionally
// unimplemented: only Blinn is required for feature parity with the
// integrator.
type Microfacet struct{}

func (m *Microfacet) GenerateSample(rayIn core.Ray, sInfo *core.SamplerInfo) (core.Vec3, core.DirSample, bool) {
	return core.Vec3{}, core.VoidSample(), false
}

func (m *Microfacet) GetSampleInfo(dir core.Vec3, sInfo *core.SamplerInfo) core.DirSample {
	return core.VoidSample()
}
