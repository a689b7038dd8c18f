package material

import (
	"math"

	"github.com/avellis/pathtracer/pkg/core"
)

// Blinn is a single layered material with three lobes — diffuse,
// glossy specular reflection, and glossy refraction — chosen by
// channel-weight-driven Russian roulette, plus a separate emission
// channel. It is the only Material variant this package fully implements;
// see phong.go and microfacet.go for the declared-but-unimplemented
// placeholders.
type Blinn struct {
	Diffuse    ColorSource
	Specular   ColorSource
	Refraction ColorSource
	Glossiness ColorSource // scalar per point; the Evaluate().X component is used
	IOR        float64
	Emission   ColorSource

	// RefractionGlossiness is an optional second exponent for the
	// transmission lobe, carried over from the original's split
	// reflection/refraction Blinn exponents. Nil means "use Glossiness
	// for both lobes", which is the common case.
	RefractionGlossiness ColorSource
}

// NewBlinn builds a Blinn material; any nil channel defaults to black
// (SolidColor{0,0,0}), except Glossiness which defaults to a moderate 20.
func NewBlinn(diffuse, specular, refraction, glossiness, emission ColorSource, ior float64) *Blinn {
	black := NewSolidColor(core.Vec3{})
	if diffuse == nil {
		diffuse = black
	}
	if specular == nil {
		specular = black
	}
	if refraction == nil {
		refraction = black
	}
	if glossiness == nil {
		glossiness = NewSolidColor(core.NewVec3(20, 20, 20))
	}
	if emission == nil {
		emission = black
	}
	return &Blinn{
		Diffuse:    diffuse,
		Specular:   specular,
		Refraction: refraction,
		Glossiness: glossiness,
		IOR:        ior,
		Emission:   emission,
	}
}

func maxComponent(v core.Vec3) float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

func isBlack(v core.Vec3) bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// finiteOrBlack guards an emission evaluation against NaN per spec §7: a
// light inset inside its own radius (see pkg/light's Sqrt(distSq-size*size))
// can hand back a NaN here, and nothing downstream neutralizes it — Vec3's
// own Clamp propagates NaN through Go's min/max builtins rather than
// removing it.
func finiteOrBlack(v core.Vec3) core.Vec3 {
	if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z) {
		return core.Vec3{}
	}
	return v
}

// channelWeights evaluates all per-point channel values at the hit and
// applies the spec's normalize-when-sum-exceeds-one rule, which reserves
// probability mass for the emission/absorption channel.
func (b *Blinn) channelWeights(uv core.Vec2, p core.Vec3) (d, r, trans float64, diffuseColor, specColor, transColor core.Vec3, reflectGlossiness, refractGlossiness float64) {
	diffuseColor = b.Diffuse.Evaluate(uv, p)
	specColor = b.Specular.Evaluate(uv, p)
	transColor = b.Refraction.Evaluate(uv, p)
	reflectGlossiness = b.Glossiness.Evaluate(uv, p).X
	refractGlossiness = reflectGlossiness
	if b.RefractionGlossiness != nil {
		refractGlossiness = b.RefractionGlossiness.Evaluate(uv, p).X
	}

	d = maxComponent(diffuseColor)
	r = maxComponent(specColor)
	trans = maxComponent(transColor)

	sum := d + r + trans
	if sum >= 1 {
		norm := 1.0 / (2 * sum)
		d *= norm
		r *= norm
		trans *= norm
	}
	return
}

// GenerateSample draws a lobe by channel-weight Russian roulette and
// samples an outgoing direction from it, per spec §4.F.
func (b *Blinn) GenerateSample(rayIn core.Ray, sInfo *core.SamplerInfo) (core.Vec3, core.DirSample, bool) {
	hit := sInfo.Hit
	uv := core.NewVec2(hit.UVW.X, hit.UVW.Y)

	d, r, trans, diffuseColor, specColor, transColor, reflectG, refractG := b.channelWeights(uv, hit.P)

	N := hit.N
	u := sInfo.RNG.Float64()

	if u < d {
		xi := sInfo.RNG.Float64()
		cosTheta := math.Sqrt(1 - xi)
		dir := core.SampleCosineHemisphere(N, core.NewVec2(sInfo.RNG.Float64(), xi)).Normalize()

		return dir, core.DirSample{
			Prob: d * cosTheta / math.Pi,
			Mult: diffuseColor.Multiply(cosTheta / math.Pi),
			Lobe: core.LobeDiffuse,
		}, true
	}

	nPrime := N
	eta := 1.0 / b.IOR
	if !hit.Front {
		nPrime = N.Negate()
		eta = b.IOR
	}

	V := sInfo.V
	tangent, bitangent := core.OrthonormalBasis(nPrime)

	sampleHalfVector := func(g float64) (h core.Vec3, cosThetaH float64) {
		xi := sInfo.RNG.Float64()
		cosThetaH = math.Pow(1-xi, 1/(g+1))
		sinThetaH := math.Sqrt(1 - cosThetaH*cosThetaH)
		phi := 2 * math.Pi * sInfo.RNG.Float64()
		h = tangent.Multiply(sinThetaH * math.Cos(phi)).
			Add(bitangent.Multiply(sinThetaH * math.Sin(phi))).
			Add(nPrime.Multiply(cosThetaH))
		return h.Normalize(), cosThetaH
	}

	if u < d+r {
		h, cosThetaH := sampleHalfVector(reflectG)
		dir := V.Negate().Add(h.Multiply(2 * h.Dot(V))).Normalize()
		cosOut := dir.Dot(nPrime)
		if cosOut < 0 {
			return dir, core.VoidSample(), false
		}
		nh := nPrime.Dot(h)
		return dir, core.DirSample{
			Prob: r * (reflectG + 1) / (8 * math.Pi) * math.Pow(cosThetaH, reflectG+1),
			Mult: specColor.Multiply(math.Pow(nh, reflectG) * (reflectG + 2) / (8 * math.Pi)),
			Lobe: core.LobeSpecular,
		}, true
	}

	if u < d+r+trans {
		h, cosThetaH := sampleHalfVector(refractG)
		k := V.Dot(h)
		c2 := 1 - eta*eta*(1-k*k)
		if c2 < 0 || h.Dot(V) < 0 {
			return N, core.VoidSample(), false
		}
		dir := V.Negate().Multiply(eta).Subtract(h.Multiply(math.Sqrt(c2) - eta*k)).Normalize()
		nh := nPrime.Dot(h)
		return dir, core.DirSample{
			Prob: trans * (refractG + 1) / (8 * math.Pi) * math.Pow(cosThetaH, refractG+1),
			Mult: transColor.Multiply(math.Pow(nh, refractG) * (refractG + 2) / (8 * math.Pi)),
			Lobe: core.LobeTransmission,
		}, true
	}

	emission := finiteOrBlack(b.Emission.Evaluate(uv, hit.P))
	return N, core.DirSample{Prob: 0, Mult: emission, Lobe: core.LobeNone}, false
}

// GetSampleInfo evaluates this material's prob/mult for an externally
// chosen direction (used by the integrator's MIS weighting against light
// sampling), per spec §4.F.
func (b *Blinn) GetSampleInfo(dir core.Vec3, sInfo *core.SamplerInfo) core.DirSample {
	hit := sInfo.Hit
	uv := core.NewVec2(hit.UVW.X, hit.UVW.Y)
	d, r, trans, diffuseColor, specColor, transColor, reflectG, refractG := b.channelWeights(uv, hit.P)

	N := hit.N
	V := sInfo.V

	prob := 0.0
	mult := core.Vec3{}

	sameSide := (V.Dot(N) > 0) == (dir.Dot(N) > 0)

	if sameSide {
		cosOut := dir.Dot(N)
		if cosOut > 0 {
			prob += d * cosOut / math.Pi
			mult = mult.Add(diffuseColor.Multiply(cosOut / math.Pi))
		}

		hSum := V.Add(dir)
		if hSum.Length() > 1e-12 {
			h := hSum.Normalize()
			nPrime := N
			if !hit.Front {
				nPrime = N.Negate()
			}
			cosThetaH := nPrime.Dot(h)
			if cosThetaH > 0 {
				prob += r * (reflectG + 1) / (8 * math.Pi) * math.Pow(cosThetaH, reflectG+1)
				mult = mult.Add(specColor.Multiply(math.Pow(cosThetaH, reflectG) * (reflectG + 2) / (8 * math.Pi)))
			}
		}
	} else {
		nPrime := N
		eta := 1.0 / b.IOR
		if !hit.Front {
			nPrime = N.Negate()
			eta = b.IOR
		}

		hSum := dir.Add(V.Multiply(eta))
		if hSum.Length() > 1e-12 {
			h := hSum.Normalize()
			cosThetaH := nPrime.Dot(h)
			if cosThetaH > 0 {
				prob += trans * (refractG + 1) / (8 * math.Pi) * math.Pow(cosThetaH, refractG+1)
				mult = mult.Add(transColor.Multiply(math.Pow(cosThetaH, refractG) * (refractG + 2) / (8 * math.Pi)))
			}
		}
	}

	emission := finiteOrBlack(b.Emission.Evaluate(uv, hit.P))
	if !isBlack(emission) {
		mult = mult.Add(emission)
		prob += 1 - d - r - trans
	}

	return core.DirSample{Prob: prob, Mult: mult, Lobe: core.LobeNone}
}
