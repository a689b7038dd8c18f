package renderer

import "sync/atomic"

// Framebuffer holds the three output buffers the scheduler writes to —
// RGB24 color, a float depth buffer, and an integer per-pixel sample
// count — plus the atomic count of pixels completed so far. Every index
// is claimed by exactly one worker via the scheduler's atomic counter, so
// no buffer write needs its own lock.
type Framebuffer struct {
	Width, Height int

	RGB     []uint8  // row-major, top-left origin, 3 bytes per pixel
	Z       []float64
	Samples []int

	renderedPixels int64 // atomic; see RenderedPixels/MarkPixelRendered
}

// NewFramebuffer allocates a zeroed framebuffer for a width x height image.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:   width,
		Height:  height,
		RGB:     make([]uint8, width*height*3),
		Z:       make([]float64, width*height),
		Samples: make([]int, width*height),
	}
}

// WritePixel stores one pixel's final color, depth, and sample count. Each
// pixel index is written exactly once by exactly one worker, so this needs
// no synchronization of its own.
func (fb *Framebuffer) WritePixel(i, j int, rgb8 [3]uint8, z float64, samples int) {
	idx := j*fb.Width + i
	fb.RGB[idx*3+0] = rgb8[0]
	fb.RGB[idx*3+1] = rgb8[1]
	fb.RGB[idx*3+2] = rgb8[2]
	fb.Z[idx] = z
	fb.Samples[idx] = samples
}

// MarkPixelRendered atomically increments the completed-pixel count and
// reports whether this increment was the one that completed the image.
// Using sync/atomic rather than a plain int field gives the
// release/acquire ordering the spec calls out: a worker reading
// RenderedPixels() after another worker's MarkPixelRendered is guaranteed
// to observe that worker's buffer writes, since both go through the
// atomic.
func (fb *Framebuffer) MarkPixelRendered() (done bool) {
	n := atomic.AddInt64(&fb.renderedPixels, 1)
	return n >= int64(fb.Width*fb.Height)
}

// RenderedPixels returns the number of pixels completed so far.
func (fb *Framebuffer) RenderedPixels() int64 {
	return atomic.LoadInt64(&fb.renderedPixels)
}
