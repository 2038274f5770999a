package postprocess

import (
	"bytes"
	"image"
	"os"
	"testing"

	"tiny-raytracer/internal/encode"
	"tiny-raytracer/internal/raster"
	"tiny-raytracer/internal/scene"
	"tiny-raytracer/internal/tracer"
)

// testdata/reference_128x96.ppm is a golden single-precision render of the
// default scene at 128x96.
func TestDefaultSceneMatchesReference(t *testing.T) {
	want, err := encode.DecodeFile("testdata/reference_128x96.ppm")
	if err != nil {
		t.Fatal(err)
	}

	opts := raster.DefaultOptions()
	opts.Width, opts.Height = 128, 96
	fb, err := raster.Render(scene.Default(), tracer.DefaultOptions(), opts)
	if err != nil {
		t.Fatal(err)
	}
	got := ToNRGBA(fb)

	wantPix := want.(*image.NRGBA).Pix
	off, maxDelta := 0, 0
	for i := 0; i < len(got.Pix); i += 4 {
		d := 0
		for c := 0; c < 3; c++ {
			d = max(d, absDiffInt(int(got.Pix[i+c]), int(wantPix[i+c])))
		}
		maxDelta = max(maxDelta, d)
		if d > 0 {
			off++
		}
	}
	// Double precision shading drifts by at most a quantization step.
	if maxDelta > 2 || off > len(got.Pix)/4/100 {
		t.Errorf("%d pixels differ from the golden image, max channel delta %d", off, maxDelta)
	}
}

func TestReferenceHeaderLayout(t *testing.T) {
	ref, err := os.ReadFile("testdata/reference_128x96.ppm")
	if err != nil {
		t.Fatal(err)
	}

	fb := raster.NewFrameBuffer(128, 96)
	var buf bytes.Buffer
	if err := encode.EncodePPM(&buf, ToNRGBA(fb)); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != len(ref) {
		t.Fatalf("encoded length %d, golden length %d", buf.Len(), len(ref))
	}
	header := []byte("P6\n128 96\n255\n")
	if !bytes.Equal(buf.Bytes()[:len(header)], ref[:len(header)]) {
		t.Errorf("header %q, want %q", buf.Bytes()[:len(header)], ref[:len(header)])
	}
}

func absDiffInt(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
