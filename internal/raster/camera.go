package raster

import (
	"math"

	"tiny-raytracer/internal/mathutil"
)

// Camera is a fixed pinhole at the origin looking down -Z.
type Camera struct {
	Width  int
	Height int
	tanFOV float64 // tan(fov/2)
}

// NewCamera builds a camera with the vertical field of view fov in radians.
func NewCamera(w, h int, fov float64) Camera {
	return Camera{Width: w, Height: h, tanFOV: math.Tan(fov / 2)}
}

// Eye is the ray origin of every primary ray.
var Eye = mathutil.Vec3{0, 0, 0}

// Direction returns the unit direction through the center of pixel (i, j).
func (c Camera) Direction(i, j int) mathutil.Vec3 {
	w, h := float64(c.Width), float64(c.Height)
	x := (2*(float64(i)+0.5)/w - 1) * c.tanFOV * w / h
	y := -(2*(float64(j)+0.5)/h - 1) * c.tanFOV
	return mathutil.Vec3{x, y, -1}.Normalize()
}
