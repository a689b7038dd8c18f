package sceneio

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTempScene(t *testing.T, xmlBody string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.xml")
	if err := os.WriteFile(path, []byte(xmlBody), 0o644); err != nil {
		t.Fatalf("writing temp scene: %v", err)
	}
	return path
}

const minimalScene = `<?xml version="1.0"?>
<scene>
  <camera pos="0,1,3" dir="0,0,-1" up="0,1,0" fov="40" focalDist="1" dof="0" srgb="true" width="16" height="9"/>
  <materials>
    <blinn id="white" diffuse="0.8,0.8,0.8" glossiness="20"/>
  </materials>
  <lights>
    <point pos="0,5,0" size="0.5" intensity="10,10,10"/>
  </lights>
  <background color="0.1,0.1,0.1"/>
  <environment type="gradient" bottom="1,1,1" top="0.5,0.7,1.0"/>
  <root>
    <plane center="0,0,0" u="1,0,0" v="0,0,1" halfU="10" halfV="10" material="white"/>
    <node translate="0,1,0">
      <sphere translate="0,0,0" radius="1" material="white"/>
    </node>
  </root>
</scene>`

func TestLoadSceneXML_ParsesMinimalScene(t *testing.T) {
	path := writeTempScene(t, minimalScene)

	s, err := LoadSceneXML(path)
	if err != nil {
		t.Fatalf("LoadSceneXML: %v", err)
	}

	if s.Camera == nil {
		t.Fatal("expected a camera")
	}
	if s.Camera.ImageWidth != 16 || s.Camera.ImageHeight != 9 {
		t.Errorf("camera dims = %dx%d, want 16x9", s.Camera.ImageWidth, s.Camera.ImageHeight)
	}
	if len(s.Lights) != 1 {
		t.Fatalf("expected 1 light, got %d", len(s.Lights))
	}
	if s.Root == nil || len(s.Root.Children) != 2 {
		t.Fatalf("expected root with 2 children (plane + nested node), got %v", s.Root)
	}
	if s.Background == nil {
		t.Fatal("expected a background color source")
	}
	if s.Environment == nil {
		t.Fatal("expected an environment")
	}
}

func TestLoadSceneXML_MissingFileReturnsError(t *testing.T) {
	if _, err := LoadSceneXML("/nonexistent/path/scene.xml"); err == nil {
		t.Fatal("expected an error for a nonexistent scene file")
	}
}

func TestLoadSceneXML_UnknownMaterialReferenceIsAnError(t *testing.T) {
	const badScene = `<?xml version="1.0"?>
<scene>
  <camera pos="0,0,0" dir="0,0,-1" up="0,1,0" width="4" height="4"/>
  <root>
    <sphere translate="0,0,0" radius="1" material="doesnotexist"/>
  </root>
</scene>`
	path := writeTempScene(t, badScene)

	if _, err := LoadSceneXML(path); err == nil {
		t.Fatal("expected an error for an unknown material reference")
	}
}

func TestLoadSceneXML_ImageBackedBackground(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "bg.png")

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 1, color.RGBA{G: 255, A: 255})
	f, err := os.Create(imgPath)
	if err != nil {
		t.Fatalf("creating background image: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("encoding background image: %v", err)
	}
	f.Close()

	sceneXML := `<?xml version="1.0"?>
<scene>
  <camera pos="0,0,0" dir="0,0,-1" up="0,1,0" width="4" height="4"/>
  <background image="` + imgPath + `"/>
  <root/>
</scene>`
	scenePath := writeTempScene(t, sceneXML)

	s, err := LoadSceneXML(scenePath)
	if err != nil {
		t.Fatalf("LoadSceneXML: %v", err)
	}
	if s.Background == nil {
		t.Fatal("expected an image-backed background")
	}
}

func TestLoadSceneXML_DefaultsEnvironmentAndBackgroundWhenAbsent(t *testing.T) {
	const noEnvScene = `<?xml version="1.0"?>
<scene>
  <camera pos="0,0,0" dir="0,0,-1" up="0,1,0" width="4" height="4"/>
  <root/>
</scene>`
	path := writeTempScene(t, noEnvScene)

	s, err := LoadSceneXML(path)
	if err != nil {
		t.Fatalf("LoadSceneXML: %v", err)
	}
	if s.Background == nil {
		t.Error("expected a default (black) background")
	}
	if s.Environment == nil {
		t.Error("expected a default (black uniform) environment")
	}
}
