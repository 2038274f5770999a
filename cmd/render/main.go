package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"tiny-raytracer/internal/config"
	"tiny-raytracer/internal/output"
	"tiny-raytracer/internal/postprocess"
	"tiny-raytracer/internal/raster"
	"tiny-raytracer/internal/scene"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a .json or .yaml config file")
	width := flag.Int("width", 0, "Image width (default: 1024)")
	height := flag.Int("height", 0, "Image height (default: 768)")
	depth := flag.Int("depth", -1, "Max recursion depth (default: 4)")
	mode := flag.String("mode", "", "Render mode: full, flat or gradient (default: full)")
	out := flag.String("out", "", "Comma-separated output files; format by extension (default: out.ppm)")
	manifest := flag.String("manifest", "", "Write a JSON render manifest to this path")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	var outputs []string
	if *out != "" {
		outputs = strings.Split(*out, ",")
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Width:    *width,
		Height:   *height,
		Depth:    *depth,
		Mode:     *mode,
		Outputs:  outputs,
		Manifest: *manifest,
		Workers:  *workers,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config:\n%v\n", err)
		os.Exit(1)
	}

	sc := scene.Default()
	topts := cfg.TracerOptions()
	ropts := cfg.RasterOptions()
	ropts.Logger = logger

	logger.Info("rendering",
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"supersample", cfg.Supersample,
		"mode", ropts.Mode,
		"max_depth", topts.MaxDepth,
		"spheres", len(sc.Spheres),
		"lights", len(sc.Lights),
		"workers", cfg.Workers)
	logger.Debug("shading", "shadow_bias", topts.ShadowBias, "horizon", topts.Horizon,
		"background", topts.Background, "tir", topts.TIR)

	start := time.Now()

	fb, err := raster.Render(sc, topts, ropts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	img := postprocess.ToNRGBA(fb)
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}

	elapsed := time.Since(start)
	logger.Info("render done", "elapsed", elapsed.Round(time.Millisecond))

	if err := output.WriteAll(img, cfg.Outputs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, p := range cfg.Outputs {
		logger.Info("wrote", "path", p)
	}

	// Write manifest
	if cfg.Manifest != "" {
		m := output.Manifest{
			Width:       cfg.Width,
			Height:      cfg.Height,
			Supersample: cfg.Supersample,
			Mode:        ropts.Mode.String(),
			MaxDepth:    topts.MaxDepth,
			TIR:         topts.TIR.String(),
			Spheres:     len(sc.Spheres),
			Lights:      len(sc.Lights),
			Workers:     cfg.Workers,
			Outputs:     cfg.Outputs,
			RenderedAt:  start.UTC().Format(time.RFC3339),
		}
		m.SetElapsed(elapsed)
		if err := output.WriteManifest(cfg.Manifest, m); err != nil {
			logger.Warn("manifest write failed", "err", err)
		} else {
			logger.Info("wrote", "path", cfg.Manifest)
		}
	}
}
