package sceneio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/avellis/pathtracer/pkg/renderer"
)

// WritePNG encodes a framebuffer's RGB plane to a PNG file, the same
// image/png.Encode(file, img) pattern the teacher's main.go uses to save
// a rendered frame.
func WritePNG(path string, fb *renderer.Framebuffer) error {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for j := 0; j < fb.Height; j++ {
		for i := 0; i < fb.Width; i++ {
			idx := j*fb.Width + i
			img.Set(i, j, color.RGBA{
				R: fb.RGB[idx*3],
				G: fb.RGB[idx*3+1],
				B: fb.RGB[idx*3+2],
				A: 255,
			})
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sceneio: create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("sceneio: encode %s: %w", path, err)
	}
	return nil
}
