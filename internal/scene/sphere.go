package scene

import (
	"math"

	"tiny-raytracer/internal/mathutil"
)

// Sphere is an immutable solid sphere.
type Sphere struct {
	Center   mathutil.Vec3
	Radius   float64
	Material Material
}

// Intersect returns the distance along dir to the first point where the ray
// enters (or, from inside, leaves) the sphere. dir must be unit length.
func (s Sphere) Intersect(orig, dir mathutil.Vec3) (float64, bool) {
	l := s.Center.Sub(orig)
	tca := l.Dot(dir)
	d2 := l.Dot(l) - tca*tca
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return 0, false
	}

	thc := math.Sqrt(r2 - d2)
	t0 := tca - thc
	t1 := tca + thc
	// Origin inside the sphere, or the near root is behind it.
	if t0 < 0 {
		t0 = t1
	}
	if t0 < 0 {
		return 0, false
	}
	return t0, true
}
