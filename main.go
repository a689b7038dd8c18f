// Command pathtracer renders a scene file. Per the CLI contract:
// `pathtracer SCENE.xml` loads the scene and prints its image size without
// opening any viewport or rendering; `pathtracer SCENE.xml
// OUT.png` renders headlessly and writes a PNG. Exit 0 on success, exit 1
// on argc out of range or a fatal I/O error.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/avellis/pathtracer/pkg/renderer"
	"github.com/avellis/pathtracer/pkg/sceneio"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run implements the CLI contract and returns the process exit code,
// factored out from main so it can be exercised by tests without exiting
// the test binary itself.
func run(args []string) int {
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	sampleFlag := fs.Int("samples", 64, "samples per pixel")
	workerFlag := fs.Int("workers", 0, "render worker count (0 = half the hardware threads)")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	positional := fs.Args()
	if len(positional) < 1 || len(positional) > 2 {
		fmt.Fprintln(os.Stderr, "usage: pathtracer SCENE.xml [OUT.png]")
		return 1
	}

	scenePath := positional[0]
	s, err := sceneio.LoadSceneXML(scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading scene %s: %v\n", scenePath, err)
		return 1
	}

	if len(positional) == 1 {
		fmt.Printf("scene %s loaded (%dx%d); live viewport is out of scope, nothing to display\n",
			scenePath, s.Camera.ImageWidth, s.Camera.ImageHeight)
		return 0
	}

	outPath := positional[1]
	fb := renderer.NewFramebuffer(s.Camera.ImageWidth, s.Camera.ImageHeight)
	sch := renderer.NewScheduler(s, fb, *sampleFlag, *workerFlag)
	sch.Render()

	if err := sceneio.WritePNG(outPath, fb); err != nil {
		fmt.Fprintf(os.Stderr, "writing %s: %v\n", outPath, err)
		return 1
	}

	fmt.Printf("rendered %s -> %s\n", scenePath, outPath)
	return 0
}
