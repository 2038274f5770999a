package raster

import "tiny-raytracer/internal/mathutil"

// FrameBuffer holds one linear color per pixel, row-major from the top-left.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []mathutil.Color // len = W*H
}

// NewFrameBuffer allocates a black framebuffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Pix:    make([]mathutil.Color, w*h),
	}
}

// At returns the color of pixel (x, y).
func (fb *FrameBuffer) At(x, y int) mathutil.Color {
	return fb.Pix[y*fb.Width+x]
}

// Row returns the slice of pixels in row y. Rows never overlap, so distinct
// rows may be written concurrently.
func (fb *FrameBuffer) Row(y int) []mathutil.Color {
	return fb.Pix[y*fb.Width : (y+1)*fb.Width]
}
