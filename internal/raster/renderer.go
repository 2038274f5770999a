package raster

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"tiny-raytracer/internal/mathutil"
	"tiny-raytracer/internal/scene"
	"tiny-raytracer/internal/tracer"
)

// Mode selects which version of the renderer produces each pixel.
type Mode int

const (
	// ModeFull runs the recursive shading engine.
	ModeFull Mode = iota
	// ModeFlat paints each hit with its material's diffuse color.
	ModeFlat
	// ModeGradient ignores the scene and draws a test gradient.
	ModeGradient
)

var modeNames = [...]string{"full", "flat", "gradient"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode maps a config name to a Mode. The empty name means ModeFull.
func ParseMode(name string) (Mode, bool) {
	if name == "" {
		return ModeFull, true
	}
	for i, n := range modeNames {
		if n == name {
			return Mode(i), true
		}
	}
	return 0, false
}

// Options control image size and scheduling.
type Options struct {
	Width   int
	Height  int
	FOV     float64 // vertical field of view, radians
	Workers int     // <= 0 means runtime.NumCPU()
	Mode    Mode

	// Logger receives progress records every ProgressEvery. Nil disables them.
	Logger        *slog.Logger
	ProgressEvery time.Duration
}

// DefaultOptions returns a 1024x768 image with a 90° vertical field of view.
func DefaultOptions() Options {
	return Options{
		Width:         1024,
		Height:        768,
		FOV:           math.Pi / 2,
		ProgressEvery: 2 * time.Second,
	}
}

// Render traces one primary ray per pixel of sc and returns the framebuffer.
// Rows are distributed over a pool of workers; each worker writes only its
// own rows, and Render returns once every row is done.
func Render(sc *scene.Scene, topts tracer.Options, opts Options) (*FrameBuffer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("raster: invalid image size %dx%d", opts.Width, opts.Height)
	}
	if sc == nil {
		sc = &scene.Scene{}
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, opts.Height)

	fb := NewFrameBuffer(opts.Width, opts.Height)
	shade := pixelFunc(sc, topts, opts)

	var done atomic.Int64
	stop := startProgress(opts, &done)
	defer stop()

	rows := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range rows {
				row := fb.Row(j)
				for i := range row {
					row[i] = shade(i, j)
				}
				done.Add(1)
			}
		}()
	}

	for j := 0; j < opts.Height; j++ {
		rows <- j
	}
	close(rows)
	wg.Wait()

	return fb, nil
}

// pixelFunc returns the per-pixel shader for the selected mode.
func pixelFunc(sc *scene.Scene, topts tracer.Options, opts Options) func(i, j int) mathutil.Color {
	switch opts.Mode {
	case ModeGradient:
		w, h := float64(opts.Width), float64(opts.Height)
		return func(i, j int) mathutil.Color {
			return mathutil.Color{float64(j) / h, float64(i) / w, 0}
		}
	case ModeFlat:
		cam := NewCamera(opts.Width, opts.Height, opts.FOV)
		tr := tracer.New(sc, topts)
		return func(i, j int) mathutil.Color {
			return tr.Flat(Eye, cam.Direction(i, j))
		}
	default:
		cam := NewCamera(opts.Width, opts.Height, opts.FOV)
		tr := tracer.New(sc, topts)
		return func(i, j int) mathutil.Color {
			return tr.CastRay(Eye, cam.Direction(i, j), 0)
		}
	}
}

// startProgress logs completed rows periodically until the returned func is called.
func startProgress(opts Options, done *atomic.Int64) func() {
	if opts.Logger == nil || opts.ProgressEvery <= 0 {
		return func() {}
	}

	start := time.Now()
	quit := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(opts.ProgressEvery)
		defer ticker.Stop()
		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
				if p := done.Load(); p > 0 {
					opts.Logger.Info("render progress",
						"rows", p,
						"total", opts.Height,
						"rows_per_sec", float64(p)/time.Since(start).Seconds())
				}
			}
		}
	}()
	return func() {
		close(quit)
		wg.Wait()
	}
}
