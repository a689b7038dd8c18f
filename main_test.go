package main

import (
	"os"
	"path/filepath"
	"testing"
)

const tinyScene = `<?xml version="1.0"?>
<scene>
  <camera pos="0,0,2" dir="0,0,-1" up="0,1,0" fov="40" focalDist="1" dof="0" srgb="true" width="3" height="2"/>
  <materials>
    <blinn id="white" diffuse="0.8,0.8,0.8" glossiness="20"/>
  </materials>
  <lights>
    <point pos="0,2,2" size="0.2" intensity="5,5,5"/>
  </lights>
  <background color="0.2,0.2,0.2"/>
  <environment type="uniform" color="0.2,0.2,0.2"/>
  <root>
    <sphere translate="0,0,-1" radius="0.5" material="white"/>
  </root>
</scene>`

func writeTinyScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.xml")
	if err := os.WriteFile(path, []byte(tinyScene), 0o644); err != nil {
		t.Fatalf("writing scene: %v", err)
	}
	return path
}

func TestRun_WrongArgCountReturnsExitCode1(t *testing.T) {
	if got := run(nil); got != 1 {
		t.Errorf("run(nil) = %d, want 1", got)
	}
	if got := run([]string{"a", "b", "c"}); got != 1 {
		t.Errorf("run(3 args) = %d, want 1", got)
	}
}

func TestRun_MissingSceneFileReturnsExitCode1(t *testing.T) {
	if got := run([]string{"/nonexistent/scene.xml"}); got != 1 {
		t.Errorf("run(missing scene) = %d, want 1", got)
	}
}

func TestRun_ViewportModeReturnsExitCode0(t *testing.T) {
	scenePath := writeTinyScene(t)
	if got := run([]string{scenePath}); got != 0 {
		t.Errorf("run(scene only) = %d, want 0", got)
	}
}

func TestRun_HeadlessRenderWritesPNGAndReturnsExitCode0(t *testing.T) {
	scenePath := writeTinyScene(t)
	outPath := filepath.Join(t.TempDir(), "out.png")

	if got := run([]string{"-samples", "2", scenePath, outPath}); got != 0 {
		t.Fatalf("run(render) = %d, want 0", got)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("expected output PNG to exist: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty PNG output")
	}
}

func TestRun_UnwritableOutputReturnsExitCode1(t *testing.T) {
	scenePath := writeTinyScene(t)
	badOut := filepath.Join(t.TempDir(), "nosuchdir", "out.png")

	if got := run([]string{"-samples", "1", scenePath, badOut}); got != 1 {
		t.Errorf("run(unwritable output) = %d, want 1", got)
	}
}
