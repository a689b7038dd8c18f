// Package scene assembles a Camera, a scenegraph.Node hierarchy, a light
// list, a participating medium, and the two "nothing was hit" fallbacks
// (background and environment) into the single record the renderer and
// integrator traverse.
package scene

import (
	"github.com/avellis/pathtracer/pkg/camera"
	"github.com/avellis/pathtracer/pkg/core"
	"github.com/avellis/pathtracer/pkg/light"
	"github.com/avellis/pathtracer/pkg/material"
	"github.com/avellis/pathtracer/pkg/scenegraph"
)

// Medium describes a homogeneous participating medium filling all of world
// space: absorption and scattering coefficients per unit distance.
// SigmaT is their sum, the extinction coefficient the integrator's
// free-flight distance sampling draws against.
type Medium struct {
	SigmaA float64
	SigmaS float64
}

// SigmaT returns the extinction coefficient, sigmaA + sigmaS.
func (m Medium) SigmaT() float64 {
	return m.SigmaA + m.SigmaS
}

// Environment is evaluated along a ray direction when a path escapes the
// scene on any bounce after the first. Unlike Background, it has no notion
// of screen position — it models light arriving from infinitely far away.
type Environment interface {
	EvalEnvironment(dir core.Vec3) core.Vec3
}

// UniformEnvironment returns the same color for every direction.
type UniformEnvironment struct {
	Color core.Vec3
}

// EvalEnvironment implements Environment.
func (u UniformEnvironment) EvalEnvironment(dir core.Vec3) core.Vec3 {
	return u.Color
}

// GradientEnvironment lerps between a Bottom (straight down) and Top
// (straight up) color by the ray's Y component, the same sky formula the teacher's infinite-light
// grounded on.
type GradientEnvironment struct {
	Bottom core.Vec3
	Top    core.Vec3
}

// EvalEnvironment implements Environment.
func (g GradientEnvironment) EvalEnvironment(dir core.Vec3) core.Vec3 {
	unit := dir.Normalize()
	t := 0.5 * (unit.Y + 1.0)
	return g.Bottom.Multiply(1 - t).Add(g.Top.Multiply(t))
}

// Scene is the fully assembled description a render pass walks: the camera
// that generates primary rays, the transformed geometry hierarchy, every
// light (renderable or not), the medium filling empty space, and the two
// escape-case fallbacks.
type Scene struct {
	Camera *camera.Camera
	Root   *scenegraph.Node
	Lights []light.Light
	Medium Medium

	// Background is sampled by pixel UV only for a bounce-zero path that
	// never reaches a surface (a direct camera-ray miss, or medium
	// absorption before any hit). Reusing material.ColorSource keeps this
	// on the same textured-channel machinery as every Blinn channel
	// instead of inventing a parallel image/texture abstraction.
	Background material.ColorSource

	// Environment is sampled by ray direction for every other escape.
	Environment Environment
}

// RenderableLights returns the subset of Lights that participate in direct
// visibility and next-event estimation, filtering out any photon-only
// source. In this integrator every light is either renderable or absent
// from the light list, so this is currently the whole slice, but the
// filter is kept so a future photon-source-only light doesn't silently
// enter camera-visible NEE sampling.
func (s *Scene) RenderableLights() []light.Light {
	renderable := make([]light.Light, 0, len(s.Lights))
	for _, l := range s.Lights {
		if l.IsRenderable() {
			renderable = append(renderable, l)
		}
	}
	return renderable
}
