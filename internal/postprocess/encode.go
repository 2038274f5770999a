package postprocess

import (
	"image"

	"tiny-raytracer/internal/raster"
)

// ToNRGBA converts a framebuffer to an opaque 8-bit image. Each pixel is
// hue-preserving clamped and then quantized channel by channel.
func ToNRGBA(fb *raster.FrameBuffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		off := y * img.Stride
		for x, c := range fb.Row(y) {
			rgb := c.Clamp().Bytes()
			i := off + x*4
			img.Pix[i] = rgb[0]
			img.Pix[i+1] = rgb[1]
			img.Pix[i+2] = rgb[2]
			img.Pix[i+3] = 255
		}
	}
	return img
}
