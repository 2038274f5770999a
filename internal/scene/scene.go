package scene

import (
	"errors"
	"fmt"
	"math"

	"tiny-raytracer/internal/mathutil"
)

// DefaultHorizon is the farthest hit distance that still counts as visible.
const DefaultHorizon = 1000.0

// Scene is the read-only set of objects being rendered.
type Scene struct {
	Spheres []Sphere
	Lights  []Light
}

// Intersect scans every sphere and returns the nearest hit along the ray.
// Hits at or beyond horizon are reported as misses. On equal distances the
// sphere listed first wins.
func (s *Scene) Intersect(orig, dir mathutil.Vec3, horizon float64) (Hit, bool) {
	nearest := math.MaxFloat64
	idx := -1
	for i := range s.Spheres {
		d, ok := s.Spheres[i].Intersect(orig, dir)
		if ok && d < nearest {
			nearest = d
			idx = i
		}
	}
	if idx < 0 || nearest >= horizon {
		return Hit{}, false
	}

	sp := &s.Spheres[idx]
	p := orig.Add(dir.Scale(nearest))
	return Hit{
		Dist:     nearest,
		Point:    p,
		Normal:   p.Sub(sp.Center).Normalize(),
		Material: sp.Material,
	}, true
}

// Validate checks the scene's preconditions so that bad input is caught
// before rendering starts. All problems are reported together.
func (s *Scene) Validate() error {
	var errs []error
	for i, sp := range s.Spheres {
		if !sp.Center.IsFinite() {
			errs = append(errs, fmt.Errorf("scene: sphere %d: non-finite center %v", i, sp.Center))
		}
		if !(sp.Radius > 0) || math.IsInf(sp.Radius, 0) {
			errs = append(errs, fmt.Errorf("scene: sphere %d: radius %g must be positive and finite", i, sp.Radius))
		}
		if err := sp.Material.validate(); err != nil {
			errs = append(errs, fmt.Errorf("scene: sphere %d: %w", i, err))
		}
	}
	for i, l := range s.Lights {
		if !l.Position.IsFinite() {
			errs = append(errs, fmt.Errorf("scene: light %d: non-finite position %v", i, l.Position))
		}
		if !(l.Intensity >= 0) || math.IsInf(l.Intensity, 0) {
			errs = append(errs, fmt.Errorf("scene: light %d: intensity %g must be non-negative and finite", i, l.Intensity))
		}
	}
	return errors.Join(errs...)
}

func (m Material) validate() error {
	if !(m.SpecularExponent >= 0) {
		return fmt.Errorf("specular exponent %g must be non-negative", m.SpecularExponent)
	}
	if !(m.RefractiveIndex > 0) {
		return fmt.Errorf("refractive index %g must be positive", m.RefractiveIndex)
	}
	return nil
}
