// Package sceneio is the external scene-file parser boundary: a minimal
// XML dialect covering the camera, the transformed object hierarchy, the
// light list, and the background/environment fallbacks a Scene needs. It
// is deliberately thin — enough for the CLI to load a real scene file by,
// not a faithful reimplementation of any particular scene-description
// grammar — grounded on the teacher's pkg/loaders package convention of
// "a loader lives in its own package and returns (*T, error)".
package sceneio

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/avellis/pathtracer/pkg/camera"
	"github.com/avellis/pathtracer/pkg/core"
	"github.com/avellis/pathtracer/pkg/light"
	"github.com/avellis/pathtracer/pkg/material"
	"github.com/avellis/pathtracer/pkg/scene"
	"github.com/avellis/pathtracer/pkg/scenegraph"
	"github.com/go-gl/mathgl/mgl64"
)

type xmlCamera struct {
	Pos       string  `xml:"pos,attr"`
	Dir       string  `xml:"dir,attr"`
	Up        string  `xml:"up,attr"`
	FOV       float64 `xml:"fov,attr"`
	FocalDist float64 `xml:"focalDist,attr"`
	Dof       float64 `xml:"dof,attr"`
	SRGB      bool    `xml:"srgb,attr"`
	Width     int     `xml:"width,attr"`
	Height    int     `xml:"height,attr"`
}

type xmlMedium struct {
	SigmaA float64 `xml:"sigmaA,attr"`
	SigmaS float64 `xml:"sigmaS,attr"`
}

type xmlBackground struct {
	Color string `xml:"color,attr"`
	Image string `xml:"image,attr"`
}

type xmlEnvironment struct {
	Type   string `xml:"type,attr"`
	Color  string `xml:"color,attr"`
	Bottom string `xml:"bottom,attr"`
	Top    string `xml:"top,attr"`
}

type xmlBlinn struct {
	ID                   string  `xml:"id,attr"`
	Diffuse              string  `xml:"diffuse,attr"`
	Specular             string  `xml:"specular,attr"`
	Refraction           string  `xml:"refraction,attr"`
	Emission             string  `xml:"emission,attr"`
	Glossiness           float64 `xml:"glossiness,attr"`
	RefractionGlossiness float64 `xml:"refractionGlossiness,attr"`
	IOR                  float64 `xml:"ior,attr"`
}

type xmlPointLight struct {
	Pos       string  `xml:"pos,attr"`
	Size      float64 `xml:"size,attr"`
	Intensity string  `xml:"intensity,attr"`
}

type xmlSpotLight struct {
	From      string  `xml:"from,attr"`
	To        string  `xml:"to,attr"`
	Intensity string  `xml:"intensity,attr"`
	Size      float64 `xml:"size,attr"`
	HalfAngle float64 `xml:"halfAngle,attr"`
}

// xmlNode mirrors scenegraph.Node: an optional transform, an optional
// object (sphere/plane leaf), and any number of nested child nodes.
// encoding/xml's struct-tag unmarshaling handles this self-referential
// shape directly, so the loader needs no hand-rolled token walking.
type xmlNode struct {
	Translate string `xml:"translate,attr"`
	Scale     string `xml:"scale,attr"`

	Spheres []xmlSphere `xml:"sphere"`
	Planes  []xmlPlane  `xml:"plane"`
	Nodes   []xmlNode   `xml:"node"`
}

type xmlSphere struct {
	Translate string  `xml:"translate,attr"`
	Radius    float64 `xml:"radius,attr"`
	Material  string  `xml:"material,attr"`
}

type xmlPlane struct {
	Center   string  `xml:"center,attr"`
	U        string  `xml:"u,attr"`
	V        string  `xml:"v,attr"`
	HalfU    float64 `xml:"halfU,attr"`
	HalfV    float64 `xml:"halfV,attr"`
	Material string  `xml:"material,attr"`
}

type xmlScene struct {
	XMLName     xml.Name        `xml:"scene"`
	Camera      xmlCamera       `xml:"camera"`
	Medium      *xmlMedium      `xml:"medium"`
	Background  *xmlBackground  `xml:"background"`
	Environment *xmlEnvironment `xml:"environment"`
	Materials   struct {
		Blinn []xmlBlinn `xml:"blinn"`
	} `xml:"materials"`
	Lights struct {
		Point []xmlPointLight `xml:"point"`
		Spot  []xmlSpotLight  `xml:"spot"`
	} `xml:"lights"`
	Root xmlNode `xml:"root"`
}

// LoadSceneXML parses a scene file into a fully assembled *scene.Scene.
func LoadSceneXML(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sceneio: open %s: %w", path, err)
	}
	defer f.Close()

	var doc xmlScene
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("sceneio: parse %s: %w", path, err)
	}

	cam, err := buildCamera(doc.Camera)
	if err != nil {
		return nil, fmt.Errorf("sceneio: camera: %w", err)
	}

	materials, err := buildMaterials(doc.Materials.Blinn)
	if err != nil {
		return nil, fmt.Errorf("sceneio: materials: %w", err)
	}

	root, err := buildNode(doc.Root, materials)
	if err != nil {
		return nil, fmt.Errorf("sceneio: root: %w", err)
	}

	lights, err := buildLights(doc.Lights.Point, doc.Lights.Spot)
	if err != nil {
		return nil, fmt.Errorf("sceneio: lights: %w", err)
	}

	medium := scene.Medium{}
	if doc.Medium != nil {
		medium = scene.Medium{SigmaA: doc.Medium.SigmaA, SigmaS: doc.Medium.SigmaS}
	}

	background, err := buildBackground(doc.Background)
	if err != nil {
		return nil, fmt.Errorf("sceneio: background: %w", err)
	}

	environment, err := buildEnvironment(doc.Environment)
	if err != nil {
		return nil, fmt.Errorf("sceneio: environment: %w", err)
	}

	return &scene.Scene{
		Camera:      cam,
		Root:        root,
		Lights:      lights,
		Medium:      medium,
		Background:  background,
		Environment: environment,
	}, nil
}

func buildCamera(c xmlCamera) (*camera.Camera, error) {
	pos, err := parseVec3(c.Pos)
	if err != nil {
		return nil, fmt.Errorf("pos: %w", err)
	}
	dir, err := parseVec3OrDefault(c.Dir, core.NewVec3(0, 0, -1))
	if err != nil {
		return nil, fmt.Errorf("dir: %w", err)
	}
	up, err := parseVec3OrDefault(c.Up, core.NewVec3(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("up: %w", err)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("width and height must be positive, got %dx%d", c.Width, c.Height)
	}
	fov := c.FOV
	if fov <= 0 {
		fov = 40
	}
	focalDist := c.FocalDist
	if focalDist <= 0 {
		focalDist = 1
	}
	return camera.New(camera.Config{
		Position:    pos,
		Direction:   dir,
		Up:          up,
		FOVDegrees:  fov,
		FocalDist:   focalDist,
		Dof:         c.Dof,
		SRGB:        c.SRGB,
		ImageWidth:  c.Width,
		ImageHeight: c.Height,
	}), nil
}

func buildMaterials(blinns []xmlBlinn) (map[string]material.Material, error) {
	out := make(map[string]material.Material, len(blinns))
	for _, b := range blinns {
		if b.ID == "" {
			return nil, fmt.Errorf("blinn material missing id")
		}
		diffuse, err := colorSourceOrBlack(b.Diffuse)
		if err != nil {
			return nil, fmt.Errorf("material %s: diffuse: %w", b.ID, err)
		}
		specular, err := colorSourceOrBlack(b.Specular)
		if err != nil {
			return nil, fmt.Errorf("material %s: specular: %w", b.ID, err)
		}
		refraction, err := colorSourceOrBlack(b.Refraction)
		if err != nil {
			return nil, fmt.Errorf("material %s: refraction: %w", b.ID, err)
		}
		emission, err := colorSourceOrBlack(b.Emission)
		if err != nil {
			return nil, fmt.Errorf("material %s: emission: %w", b.ID, err)
		}
		glossiness := b.Glossiness
		if glossiness <= 0 {
			glossiness = 20
		}
		blinn := &material.Blinn{
			Diffuse:    diffuse,
			Specular:   specular,
			Refraction: refraction,
			Glossiness: material.NewSolidColor(core.NewVec3(glossiness, glossiness, glossiness)),
			IOR:        b.IOR,
			Emission:   emission,
		}
		if b.RefractionGlossiness > 0 {
			blinn.RefractionGlossiness = material.NewSolidColor(core.NewVec3(b.RefractionGlossiness, b.RefractionGlossiness, b.RefractionGlossiness))
		}
		out[b.ID] = blinn
	}
	return out, nil
}

func buildNode(n xmlNode, materials map[string]material.Material) (*scenegraph.Node, error) {
	transform := mgl64.Ident4()
	if n.Translate != "" {
		t, err := parseVec3(n.Translate)
		if err != nil {
			return nil, fmt.Errorf("translate: %w", err)
		}
		transform = mgl64.Translate3D(t.X, t.Y, t.Z)
	}
	if n.Scale != "" {
		sc, err := parseVec3(n.Scale)
		if err != nil {
			return nil, fmt.Errorf("scale: %w", err)
		}
		transform = transform.Mul4(mgl64.Scale3D(sc.X, sc.Y, sc.Z))
	}

	node := scenegraph.NewNode(transform, nil, nil)

	for _, sp := range n.Spheres {
		mat, ok := materials[sp.Material]
		if !ok {
			return nil, fmt.Errorf("sphere references unknown material %q", sp.Material)
		}
		center := core.Vec3{}
		if sp.Translate != "" {
			v, err := parseVec3(sp.Translate)
			if err != nil {
				return nil, fmt.Errorf("sphere translate: %w", err)
			}
			center = v
		}
		radius := sp.Radius
		if radius <= 0 {
			radius = 1
		}
		node.AddChild(scene.SphereNode(center, radius, mat))
	}

	for _, pl := range n.Planes {
		mat, ok := materials[pl.Material]
		if !ok {
			return nil, fmt.Errorf("plane references unknown material %q", pl.Material)
		}
		center, err := parseVec3OrDefault(pl.Center, core.Vec3{})
		if err != nil {
			return nil, fmt.Errorf("plane center: %w", err)
		}
		u, err := parseVec3OrDefault(pl.U, core.NewVec3(1, 0, 0))
		if err != nil {
			return nil, fmt.Errorf("plane u: %w", err)
		}
		v, err := parseVec3OrDefault(pl.V, core.NewVec3(0, 0, 1))
		if err != nil {
			return nil, fmt.Errorf("plane v: %w", err)
		}
		halfU, halfV := pl.HalfU, pl.HalfV
		if halfU <= 0 {
			halfU = 1
		}
		if halfV <= 0 {
			halfV = 1
		}
		node.AddChild(scene.PlaneNode(center, u, v, halfU, halfV, mat))
	}

	for _, child := range n.Nodes {
		childNode, err := buildNode(child, materials)
		if err != nil {
			return nil, err
		}
		node.AddChild(childNode)
	}

	return node, nil
}

func buildLights(points []xmlPointLight, spots []xmlSpotLight) ([]light.Light, error) {
	lights := make([]light.Light, 0, len(points)+len(spots))
	for _, p := range points {
		pos, err := parseVec3(p.Pos)
		if err != nil {
			return nil, fmt.Errorf("point light pos: %w", err)
		}
		intensity, err := parseVec3(p.Intensity)
		if err != nil {
			return nil, fmt.Errorf("point light intensity: %w", err)
		}
		lights = append(lights, light.NewPointLight(pos, p.Size, intensity))
	}
	for _, sp := range spots {
		from, err := parseVec3(sp.From)
		if err != nil {
			return nil, fmt.Errorf("spot light from: %w", err)
		}
		to, err := parseVec3(sp.To)
		if err != nil {
			return nil, fmt.Errorf("spot light to: %w", err)
		}
		intensity, err := parseVec3(sp.Intensity)
		if err != nil {
			return nil, fmt.Errorf("spot light intensity: %w", err)
		}
		halfAngle := sp.HalfAngle
		if halfAngle <= 0 {
			halfAngle = 30
		}
		lights = append(lights, light.NewSpotLight(from, to, intensity, sp.Size, halfAngle))
	}
	return lights, nil
}

func buildBackground(b *xmlBackground) (material.ColorSource, error) {
	if b == nil {
		return material.NewSolidColor(core.Vec3{}), nil
	}
	if b.Image != "" {
		tex, err := material.LoadImageTexture(b.Image)
		if err != nil {
			return nil, fmt.Errorf("image: %w", err)
		}
		return tex, nil
	}
	c, err := parseVec3OrDefault(b.Color, core.Vec3{})
	if err != nil {
		return nil, fmt.Errorf("color: %w", err)
	}
	return material.NewSolidColor(c), nil
}

func buildEnvironment(e *xmlEnvironment) (scene.Environment, error) {
	if e == nil {
		return scene.UniformEnvironment{}, nil
	}
	switch e.Type {
	case "gradient":
		bottom, err := parseVec3(e.Bottom)
		if err != nil {
			return nil, fmt.Errorf("bottom: %w", err)
		}
		top, err := parseVec3(e.Top)
		if err != nil {
			return nil, fmt.Errorf("top: %w", err)
		}
		return scene.GradientEnvironment{Bottom: bottom, Top: top}, nil
	case "uniform", "":
		c, err := parseVec3OrDefault(e.Color, core.Vec3{})
		if err != nil {
			return nil, fmt.Errorf("color: %w", err)
		}
		return scene.UniformEnvironment{Color: c}, nil
	default:
		return nil, fmt.Errorf("unknown environment type %q", e.Type)
	}
}

func colorSourceOrBlack(s string) (material.ColorSource, error) {
	if s == "" {
		return material.NewSolidColor(core.Vec3{}), nil
	}
	v, err := parseVec3(s)
	if err != nil {
		return nil, err
	}
	return material.NewSolidColor(v), nil
}

// parseVec3 parses a "x,y,z" attribute value.
func parseVec3(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected \"x,y,z\", got %q", s)
	}
	var out [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		out[i] = v
	}
	return core.NewVec3(out[0], out[1], out[2]), nil
}

func parseVec3OrDefault(s string, def core.Vec3) (core.Vec3, error) {
	if s == "" {
		return def, nil
	}
	return parseVec3(s)
}
