package scene

import (
	"github.com/avellis/pathtracer/pkg/camera"
	"github.com/avellis/pathtracer/pkg/core"
	"github.com/avellis/pathtracer/pkg/geometry"
	"github.com/avellis/pathtracer/pkg/light"
	"github.com/avellis/pathtracer/pkg/material"
	"github.com/avellis/pathtracer/pkg/scenegraph"
	"github.com/go-gl/mathgl/mgl64"
)

// PlaneNode places pkg/geometry's unit square (local [-1,1]x[-1,1] at z=0)
// at center, spanning 2*halfU along uAxis and 2*halfV along vAxis. The
// node's local z axis becomes uAxis cross vAxis, so the plane's shading
// normal comes out perpendicular to the quad as expected; Plane.Hit treats
// both faces as valid, so the sign of that cross product only affects
// which direction hit.N reports, not whether the quad can be hit.
//
// This is the scene-graph equivalent of the teacher's geometry.NewQuad(
// corner, u, v, material): a quad authored by two edge vectors and a
// corner/center rather than a width/height/rotation triple.
func PlaneNode(center, uAxis, vAxis core.Vec3, halfU, halfV float64, mat material.Material) *scenegraph.Node {
	u := uAxis.Normalize()
	v := vAxis.Normalize()
	n := u.Cross(v).Normalize()

	toParent := mgl64.Mat4{
		u.X * halfU, u.Y * halfU, u.Z * halfU, 0,
		v.X * halfV, v.Y * halfV, v.Z * halfV, 0,
		n.X, n.Y, n.Z, 0,
		center.X, center.Y, center.Z, 1,
	}
	return scenegraph.NewNode(toParent, geometry.NewPlane(), mat)
}

// SphereNode places pkg/geometry's unit sphere at center with the given
// radius.
func SphereNode(center core.Vec3, radius float64, mat material.Material) *scenegraph.Node {
	toParent := mgl64.Translate3D(center.X, center.Y, center.Z).Mul4(mgl64.Scale3D(radius, radius, radius))
	return scenegraph.NewNode(toParent, geometry.NewSphere(), mat)
}

// NewDefaultScene builds a small showcase scene: a ground quad, three
// spheres spanning the diffuse/glossy/refractive corners of the Blinn
// model, one point light, and a sky/ground gradient environment —
// structurally the same "ground + a few spheres + one light + a gradient
// sky" shape as the teacher's NewDefaultScene, rebuilt on scenegraph.Node
// and the Blinn material instead of the teacher's flat shape list and
// Lambertian/Metal/Dielectric material set.
func NewDefaultScene() *Scene {
	cam := camera.New(camera.Config{
		Position:    core.NewVec3(0, 0.75, 2),
		Direction:   core.NewVec3(0, -0.25, -3).Normalize(),
		Up:          core.NewVec3(0, 1, 0),
		FOVDegrees:  40,
		FocalDist:   1,
		Dof:         0.05,
		SRGB:        true,
		ImageWidth:  400,
		ImageHeight: 225,
	})

	black := material.NewSolidColor(core.Vec3{})

	diffuseGreen := &material.Blinn{
		Diffuse:    material.NewSolidColor(core.NewVec3(0.48, 0.48, 0.0)),
		Specular:   black,
		Refraction: black,
		Glossiness: material.NewSolidColor(core.NewVec3(20, 20, 20)),
		Emission:   black,
	}
	glossyRed := &material.Blinn{
		Diffuse:    material.NewSolidColor(core.NewVec3(0.39, 0.15, 0.12)),
		Specular:   material.NewSolidColor(core.NewVec3(0.3, 0.3, 0.3)),
		Refraction: black,
		Glossiness: material.NewSolidColor(core.NewVec3(80, 80, 80)),
		Emission:   black,
	}
	glassClear := &material.Blinn{
		Diffuse:    black,
		Specular:   material.NewSolidColor(core.NewVec3(0.05, 0.05, 0.05)),
		Refraction: material.NewSolidColor(core.NewVec3(0.95, 0.95, 0.95)),
		Glossiness: material.NewSolidColor(core.NewVec3(200, 200, 200)),
		IOR:        1.5,
		Emission:   black,
	}
	metalSilver := &material.Blinn{
		Diffuse:    black,
		Specular:   material.NewSolidColor(core.NewVec3(0.8, 0.8, 0.8)),
		Refraction: black,
		Glossiness: material.NewSolidColor(core.NewVec3(300, 300, 300)),
		Emission:   black,
	}

	root := scenegraph.NewNode(mgl64.Ident4(), nil, nil)
	root.AddChild(PlaneNode(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1),
		5000, 5000,
		diffuseGreen,
	))
	root.AddChild(SphereNode(core.NewVec3(0, 0.5, -1), 0.5, glossyRed))
	root.AddChild(SphereNode(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver))
	root.AddChild(SphereNode(core.NewVec3(1, 0.5, -1), 0.5, glassClear))

	pl := light.NewPointLight(core.NewVec3(3, 5, 1.5), 0.5, core.NewVec3(40, 38, 34))

	return &Scene{
		Camera:      cam,
		Root:        root,
		Lights:      []light.Light{pl},
		Medium:      Medium{},
		Background:  material.NewSolidColor(core.NewVec3(0.5, 0.7, 1.0)),
		Environment: GradientEnvironment{Bottom: core.NewVec3(1, 1, 1), Top: core.NewVec3(0.5, 0.7, 1.0)},
	}
}

// NewCornellScene builds the classic 555-unit Cornell box — red/green side
// walls, white floor/ceiling/back wall, and a single point light set just
// below the ceiling — grounded on the teacher's NewCornellScene wall
// layout and dimensions, rebuilt with PlaneNode quads under a
// scenegraph.Node hierarchy and Blinn diffuse materials instead of
// Lambertian geometry.Quads.
func NewCornellScene() *Scene {
	const boxSize = 555.0
	half := boxSize / 2

	cam := camera.New(camera.Config{
		Position:    core.NewVec3(278, 278, -800),
		Direction:   core.NewVec3(0, 0, 1),
		Up:          core.NewVec3(0, 1, 0),
		FOVDegrees:  40,
		FocalDist:   800,
		Dof:         0,
		SRGB:        true,
		ImageWidth:  400,
		ImageHeight: 400,
	})

	black := material.NewSolidColor(core.Vec3{})
	diffuse := func(c core.Vec3) *material.Blinn {
		return &material.Blinn{
			Diffuse:    material.NewSolidColor(c),
			Specular:   black,
			Refraction: black,
			Glossiness: material.NewSolidColor(core.NewVec3(20, 20, 20)),
			Emission:   black,
		}
	}
	white := diffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := diffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := diffuse(core.NewVec3(0.12, 0.45, 0.15))

	root := scenegraph.NewNode(mgl64.Ident4(), nil, nil)

	floor := PlaneNode(core.NewVec3(half, 0, half), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), half, half, white)
	ceiling := PlaneNode(core.NewVec3(half, boxSize, half), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), half, half, white)
	back := PlaneNode(core.NewVec3(half, half, boxSize), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), half, half, white)
	leftWall := PlaneNode(core.NewVec3(0, half, half), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), half, half, red)
	rightWall := PlaneNode(core.NewVec3(boxSize, half, half), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), half, half, green)

	root.AddChild(floor)
	root.AddChild(ceiling)
	root.AddChild(back)
	root.AddChild(leftWall)
	root.AddChild(rightWall)

	tallBox := SphereNode(core.NewVec3(185, 165, 169), 80, white)
	shortBox := SphereNode(core.NewVec3(370, 82, 351), 82, white)
	root.AddChild(tallBox)
	root.AddChild(shortBox)

	pl := light.NewPointLight(core.NewVec3(278, boxSize-50, 279.5), 30, core.NewVec3(15, 15, 15))

	return &Scene{
		Camera:      cam,
		Root:        root,
		Lights:      []light.Light{pl},
		Medium:      Medium{},
		Background:  black,
		Environment: UniformEnvironment{Color: core.Vec3{}},
	}
}
