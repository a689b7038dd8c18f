// Package camera builds the camera-to-world basis and generates primary
// rays per §4.I: Halton-stratified anti-aliasing across the pixel footprint
// and a lens-disk offset for depth of field.
package camera

import (
	"math"

	"github.com/avellis/pathtracer/pkg/core"
	"github.com/avellis/pathtracer/pkg/rng"
)

// Config is the camera portion of a scene file: position, view direction,
// up vector, vertical field of view in degrees, focal distance, lens
// radius (depth of field), output encoding, and image dimensions.
type Config struct {
	Position    core.Vec3
	Direction   core.Vec3
	Up          core.Vec3
	FOVDegrees  float64
	FocalDist   float64
	Dof         float64
	SRGB        bool
	ImageWidth  int
	ImageHeight int
}

// Camera holds the orthonormal camera-to-world basis and the derived
// image-plane extent used by every primary ray this frame casts.
type Camera struct {
	Position core.Vec3
	U, V, W  core.Vec3 // right, up, backward (camera looks down -W)

	FocalDist   float64
	Dof         float64
	SRGB        bool
	ImageWidth  int
	ImageHeight int

	camW, camH float64
}

// New builds a Camera from a Config. The basis follows the same
// lookfrom/lookat convention as the teacher's original camera: W points
// from the scene back toward the eye, U is to the camera's right, V
// completes the right-handed frame.
func New(cfg Config) *Camera {
	forward := cfg.Direction.Normalize()
	w := forward.Negate()
	u := cfg.Up.Cross(w).Normalize()
	v := w.Cross(u)

	aspect := float64(cfg.ImageWidth) / float64(cfg.ImageHeight)
	fovRad := cfg.FOVDegrees * math.Pi / 180
	camH := 2 * cfg.FocalDist * math.Tan(fovRad/2)
	camW := camH * aspect

	return &Camera{
		Position:    cfg.Position,
		U:           u,
		V:           v,
		W:           w,
		FocalDist:   cfg.FocalDist,
		Dof:         cfg.Dof,
		SRGB:        cfg.SRGB,
		ImageWidth:  cfg.ImageWidth,
		ImageHeight: cfg.ImageHeight,
		camW:        camW,
		camH:        camH,
	}
}

// localToWorld rotates a camera-space vector into world space by the
// camera's basis. This is the module's one genuine use of
// github.com/golang/geo's r3.Vector; pkg/geometry's ray-primitive intersection
// math is otherwise all done on core.Vec3 (see DESIGN.md's pkg/geometry
// entry for why that hot loop stays on core.Vec3 instead).
func (c *Camera) localToWorld(v core.Vec3) core.Vec3 {
	sum := c.U.ToR3().Mul(v.X).Add(c.V.ToR3().Mul(v.Y)).Add(c.W.ToR3().Mul(v.Z))
	return core.Vec3FromR3(sum)
}

// CamRayDest computes the image-plane destination point, in camera-local
// space, for the n-th sample of pixel (i,j), offset by the pixel's
// Halton phase.
func (c *Camera) CamRayDest(i, j, n int, off core.Vec2, table *rng.Table) core.Vec3 {
	s := table.GetSample(n, off)
	ndcX := (float64(i) + s.X) / float64(c.ImageWidth)
	ndcY := (float64(j) + s.Y) / float64(c.ImageHeight)

	localX := (ndcX - 0.5) * c.camW
	localY := (0.5 - ndcY) * c.camH

	return core.NewVec3(localX, localY, -c.FocalDist)
}

// CameraRay generates the n-th primary ray through pixel (i,j). pixOff and
// dofOff are the pixel's per-pixel phases for the anti-alias and lens
// samples respectively, drawn once by the scheduler and reused across every
// sample of that pixel.
//
// The ray's direction is deliberately left unnormalized: destination is the
// image-plane point the ray aims at, so t=1 lands exactly there, matching
// the convention pkg/scenegraph and pkg/light's next-event-estimation rays
// rely on.
func (c *Camera) CameraRay(i, j, n int, pixOff, dofOff core.Vec2, table *rng.Table) core.Ray {
	destLocal := c.CamRayDest(i, j, n, pixOff, table)

	lens := table.GetDiskSample(n, dofOff, c.Dof)
	origin := c.Position.Add(c.U.Multiply(lens.X)).Add(c.V.Multiply(lens.Y))

	destination := c.localToWorld(destLocal).Add(c.Position)
	direction := destination.Subtract(origin)

	return core.NewRay(origin, direction)
}
