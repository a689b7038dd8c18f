package material

import "github.com/avellis/pathtracer/pkg/core"

// Phong is declared for interface parity but intentionally unimplemented:
// only Blinn is required for feature parity with the integrator.
type Phong struct{}

func (p *Phong) GenerateSample(rayIn core.Ray, sInfo *core.SamplerInfo) (core.Vec3, core.DirSample, bool) {
	return core.Vec3{}, core.VoidSample(), false
}

func (p *Phong) GetSampleInfo(dir core.Vec3, sInfo *core.SamplerInfo) core.DirSample {
	return core.VoidSample()
}
