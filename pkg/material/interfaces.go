// Package material implements the layered Blinn BSDF: diffuse, glossy
// reflection and glossy refraction lobes selected by channel-weight-driven
// Russian roulette, plus the textured-channel (ColorSource) machinery the
// Blinn lobes read their per-point values from.
package material

import "github.com/avellis/pathtracer/pkg/core"

// Material is implemented by every surface shading model. GenerateSample
// draws an outgoing direction and returns false when no usable direction
// was produced (the emission-leaf case): the caller still uses the
// returned DirSample.Mult as the reported radiance, but must not recurse
// along dir. GetSampleInfo evaluates the same model's prob/mult for an
// externally chosen direction (used for MIS against light sampling).
type Material interface {
	GenerateSample(rayIn core.Ray, sInfo *core.SamplerInfo) (dir core.Vec3, sample core.DirSample, ok bool)
	GetSampleInfo(dir core.Vec3, sInfo *core.SamplerInfo) core.DirSample
}
