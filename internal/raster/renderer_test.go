package raster

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"tiny-raytracer/internal/mathutil"
	"tiny-raytracer/internal/scene"
	"tiny-raytracer/internal/tracer"
)

func smallOptions(w, h int) Options {
	opts := DefaultOptions()
	opts.Width, opts.Height = w, h
	return opts
}

func TestRenderEmptySceneIsBackground(t *testing.T) {
	topts := tracer.DefaultOptions()
	fb, err := Render(&scene.Scene{}, topts, smallOptions(40, 30))
	if err != nil {
		t.Fatal(err)
	}
	if len(fb.Pix) != 40*30 {
		t.Fatalf("len(Pix) = %d, want %d", len(fb.Pix), 40*30)
	}
	for i, c := range fb.Pix {
		if c != topts.Background {
			t.Fatalf("pixel %d = %v, want background", i, c)
		}
	}
}

func TestRenderWorkerCountDoesNotChangeImage(t *testing.T) {
	topts := tracer.DefaultOptions()
	opts := smallOptions(64, 48)

	opts.Workers = 1
	serial, err := Render(scene.Default(), topts, opts)
	if err != nil {
		t.Fatal(err)
	}
	opts.Workers = 7
	parallel, err := Render(scene.Default(), topts, opts)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(serial, parallel); diff != "" {
		t.Errorf("parallel render differs (-serial +parallel):\n%s", diff)
	}
}

func TestRenderDefaultSceneCorners(t *testing.T) {
	topts := tracer.DefaultOptions()
	fb, err := Render(scene.Default(), topts, smallOptions(128, 96))
	if err != nil {
		t.Fatal(err)
	}
	// The top-left corner looks up and left past every sphere.
	if got := fb.At(0, 0); got != topts.Background {
		t.Errorf("top-left = %v, want background", got)
	}
	// The glass sphere sits just below and left of the center.
	if got := fb.At(58, 55); got == topts.Background {
		t.Error("pixel over the glass sphere shows the background")
	}
}

func TestRenderDiffuseSphereFalloff(t *testing.T) {
	matte := scene.Material{
		DiffuseColor:     mathutil.Color{0.8, 0.8, 0.8},
		Albedo:           scene.Albedo{Diffuse: 1},
		SpecularExponent: 10,
		RefractiveIndex:  1,
	}
	sc := &scene.Scene{
		Spheres: []scene.Sphere{{Center: mathutil.Vec3{0, 0, -10}, Radius: 3, Material: matte}},
		Lights:  []scene.Light{{Position: mathutil.Vec3{0, 0, 5}, Intensity: 1}},
	}
	topts := tracer.DefaultOptions()
	fb, err := Render(sc, topts, smallOptions(64, 64))
	if err != nil {
		t.Fatal(err)
	}

	row := 32
	hits := 0
	prev := math.Inf(1)
	for i := 32; i < 64; i++ {
		c := fb.At(i, row)
		if c == topts.Background {
			break
		}
		hits++
		// Any reflected or refracted background would tint the channels apart.
		if c[0] != c[1] || c[1] != c[2] {
			t.Fatalf("pixel %d = %v is not a pure diffuse gray", i, c)
		}
		if c[0] > prev {
			t.Errorf("brightness rises from %v to %v at pixel %d", prev, c[0], i)
		}
		prev = c[0]

		mirror := fb.At(63-i, row)
		if math.Abs(mirror[0]-c[0]) > 1e-12 {
			t.Errorf("pixels %d and %d not symmetric: %v vs %v", i, 63-i, c, mirror)
		}
	}
	if hits < 5 {
		t.Fatalf("only %d pixels hit the sphere", hits)
	}
}

func TestRenderGradient(t *testing.T) {
	opts := smallOptions(4, 2)
	opts.Mode = ModeGradient
	fb, err := Render(nil, tracer.DefaultOptions(), opts)
	if err != nil {
		t.Fatal(err)
	}
	want := []mathutil.Color{
		{0, 0, 0}, {0, 0.25, 0}, {0, 0.5, 0}, {0, 0.75, 0},
		{0.5, 0, 0}, {0.5, 0.25, 0}, {0.5, 0.5, 0}, {0.5, 0.75, 0},
	}
	if diff := cmp.Diff(want, fb.Pix); diff != "" {
		t.Errorf("gradient mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderFlat(t *testing.T) {
	sc := &scene.Scene{Spheres: []scene.Sphere{{Center: mathutil.Vec3{0, 0, -10}, Radius: 3, Material: scene.RedRubber}}}
	opts := smallOptions(9, 9)
	opts.Mode = ModeFlat
	topts := tracer.DefaultOptions()
	fb, err := Render(sc, topts, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := fb.At(4, 4); got != scene.RedRubber.DiffuseColor {
		t.Errorf("center = %v, want %v", got, scene.RedRubber.DiffuseColor)
	}
	if got := fb.At(0, 0); got != topts.Background {
		t.Errorf("corner = %v, want background", got)
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	bad := &scene.Scene{Spheres: []scene.Sphere{{Radius: -1, Material: scene.Ivory}}}
	if _, err := Render(bad, tracer.DefaultOptions(), smallOptions(8, 8)); err == nil {
		t.Error("invalid scene accepted")
	}
	if _, err := Render(scene.Default(), tracer.DefaultOptions(), smallOptions(0, 8)); err == nil {
		t.Error("zero width accepted")
	}
}

func TestRenderLogsProgress(t *testing.T) {
	var buf bytes.Buffer
	opts := smallOptions(64, 48)
	opts.Workers = 1
	opts.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	opts.ProgressEvery = time.Nanosecond

	if _, err := Render(scene.Default(), tracer.DefaultOptions(), opts); err != nil {
		t.Fatal(err)
	}
	// The ticker may not fire before a fast render finishes; only check the
	// shape of whatever was logged.
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line != "" && !strings.Contains(line, "render progress") {
			t.Errorf("unexpected log line %q", line)
		}
	}
}

func TestCameraCenterLooksDownZ(t *testing.T) {
	cam := NewCamera(11, 7, math.Pi/2)
	got := cam.Direction(5, 3)
	if diff := cmp.Diff(mathutil.Vec3{0, 0, -1}, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("center direction mismatch (-want +got):\n%s", diff)
	}
	if d := cam.Direction(0, 0); !(d[0] < 0 && d[1] > 0) {
		t.Errorf("top-left direction %v should point up and left", d)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeFull, ModeFlat, ModeGradient} {
		got, ok := ParseMode(m.String())
		if !ok || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, ok)
		}
	}
	if _, ok := ParseMode("wireframe"); ok {
		t.Error("unknown mode accepted")
	}
}
