package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"tiny-raytracer/internal/encode"
	"tiny-raytracer/internal/mathutil"
	"tiny-raytracer/internal/raster"
	"tiny-raytracer/internal/tracer"
)

// Config holds all render settings. Zero values mean "use the default".
type Config struct {
	// Image
	Width       int     `json:"width" yaml:"width"`
	Height      int     `json:"height" yaml:"height"`
	FOVDegrees  float64 `json:"fov_degrees" yaml:"fov_degrees"`
	Supersample int     `json:"supersample" yaml:"supersample"`

	// Shading
	MaxDepth   *int            `json:"max_depth" yaml:"max_depth"` // nil = default; 0 is a valid depth
	ShadowBias float64         `json:"shadow_bias" yaml:"shadow_bias"`
	Horizon    float64         `json:"horizon" yaml:"horizon"`
	Background *mathutil.Color `json:"background" yaml:"background"`
	Mode       string          `json:"mode" yaml:"mode"`
	TIR        string          `json:"tir" yaml:"tir"`

	// Output
	Outputs  []string `json:"outputs" yaml:"outputs"`
	Manifest string   `json:"manifest" yaml:"manifest"`
	Workers  int      `json:"workers" yaml:"workers"`
}

// Load reads a JSON or YAML config file, chosen by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width    int
	Height   int
	Depth    int // < 0 means unset
	Mode     string
	Outputs  []string
	Manifest string
	Workers  int
}

// Resolve applies CLI overrides and fills every unset field with its default.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Depth >= 0 {
		d := flags.Depth
		c.MaxDepth = &d
	}
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if len(flags.Outputs) > 0 {
		c.Outputs = flags.Outputs
	}
	if flags.Manifest != "" {
		c.Manifest = flags.Manifest
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Defaults
	if c.Width <= 0 {
		c.Width = 1024
	}
	if c.Height <= 0 {
		c.Height = 768
	}
	if c.FOVDegrees == 0 {
		c.FOVDegrees = 90
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.MaxDepth == nil {
		d := tracer.DefaultOptions().MaxDepth
		c.MaxDepth = &d
	}
	if c.ShadowBias == 0 {
		c.ShadowBias = tracer.DefaultOptions().ShadowBias
	}
	if c.Horizon == 0 {
		c.Horizon = tracer.DefaultOptions().Horizon
	}
	if c.Background == nil {
		bg := tracer.DefaultOptions().Background
		c.Background = &bg
	}
	if c.Mode == "" {
		c.Mode = raster.ModeFull.String()
	}
	if c.TIR == "" {
		c.TIR = tracer.TIRSentinel.String()
	}
	if len(c.Outputs) == 0 {
		c.Outputs = []string{"out.ppm"}
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate reports every setting that cannot be rendered. Call after Resolve.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: image size %dx%d must be positive", c.Width, c.Height))
	}
	if !(c.FOVDegrees > 0 && c.FOVDegrees < 180) {
		errs = append(errs, fmt.Errorf("config: fov_degrees %g must be in (0, 180)", c.FOVDegrees))
	}
	if c.Supersample < 1 {
		errs = append(errs, fmt.Errorf("config: supersample %d must be at least 1", c.Supersample))
	}
	if c.MaxDepth != nil && *c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("config: max_depth %d must be non-negative", *c.MaxDepth))
	}
	if !(c.ShadowBias > 0) {
		errs = append(errs, fmt.Errorf("config: shadow_bias %g must be positive", c.ShadowBias))
	}
	if !(c.Horizon > 0) {
		errs = append(errs, fmt.Errorf("config: horizon %g must be positive", c.Horizon))
	}
	if _, ok := raster.ParseMode(c.Mode); !ok {
		errs = append(errs, fmt.Errorf("config: unknown mode %q", c.Mode))
	}
	if _, ok := tracer.ParseTIRPolicy(c.TIR); !ok {
		errs = append(errs, fmt.Errorf("config: unknown tir policy %q", c.TIR))
	}
	for _, out := range c.Outputs {
		if _, err := encode.FormatFromPath(out); err != nil {
			errs = append(errs, fmt.Errorf("config: %w", err))
		}
	}
	return errors.Join(errs...)
}

// TracerOptions converts the shading settings. Call after Resolve.
func (c *Config) TracerOptions() tracer.Options {
	tir, _ := tracer.ParseTIRPolicy(c.TIR)
	return tracer.Options{
		MaxDepth:   *c.MaxDepth,
		ShadowBias: c.ShadowBias,
		Horizon:    c.Horizon,
		Background: *c.Background,
		TIR:        tir,
	}
}

// RasterOptions converts the image settings. The image is rendered at
// Supersample times the output size. Call after Resolve.
func (c *Config) RasterOptions() raster.Options {
	opts := raster.DefaultOptions()
	mode, _ := raster.ParseMode(c.Mode)
	opts.Width = c.Width * c.Supersample
	opts.Height = c.Height * c.Supersample
	opts.FOV = c.FOVDegrees * math.Pi / 180
	opts.Workers = c.Workers
	opts.Mode = mode
	return opts
}
