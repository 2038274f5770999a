package scene

import "tiny-raytracer/internal/mathutil"

// Albedo weights the four light-transport terms of a surface.
// The weights are independent gains; they need not sum to 1.
type Albedo struct {
	Diffuse  float64
	Specular float64
	Reflect  float64
	Refract  float64
}

// Material describes how a surface responds to light.
// Materials are copied by value into every hit.
type Material struct {
	DiffuseColor     mathutil.Color
	Albedo           Albedo
	SpecularExponent float64 // Phong shininess
	RefractiveIndex  float64 // 1 = no bending
}

// Light is a point light.
type Light struct {
	Position  mathutil.Vec3
	Intensity float64
}

// Hit describes the nearest surface struck by a ray.
type Hit struct {
	Dist     float64
	Point    mathutil.Vec3
	Normal   mathutil.Vec3 // unit length, always pointing out of the sphere
	Material Material
}
