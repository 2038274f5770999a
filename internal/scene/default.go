package scene

import "tiny-raytracer/internal/mathutil"

// Named materials of the reference scene.
var (
	Ivory = Material{
		DiffuseColor:     mathutil.Color{0.4, 0.4, 0.3},
		Albedo:           Albedo{Diffuse: 0.6, Specular: 0.3, Reflect: 0.1},
		SpecularExponent: 50,
		RefractiveIndex:  1,
	}
	Glass = Material{
		DiffuseColor:     mathutil.Color{1, 1, 1},
		Albedo:           Albedo{Specular: 0.5, Reflect: 0.1, Refract: 0.8},
		SpecularExponent: 125,
		RefractiveIndex:  1.5,
	}
	RedRubber = Material{
		DiffuseColor:     mathutil.Color{0.3, 0.1, 0.1},
		Albedo:           Albedo{Diffuse: 0.9, Specular: 0.1},
		SpecularExponent: 10,
		RefractiveIndex:  1,
	}
	// Mirror's specular gain is deliberately far above 1 for a hot highlight.
	Mirror = Material{
		DiffuseColor:     mathutil.Color{1, 1, 1},
		Albedo:           Albedo{Specular: 10, Reflect: 0.8},
		SpecularExponent: 1425,
		RefractiveIndex:  1,
	}
)

// Default returns the four-sphere, three-light reference scene.
func Default() *Scene {
	return &Scene{
		Spheres: []Sphere{
			{Center: mathutil.Vec3{-3, 0, -16}, Radius: 2, Material: Ivory},
			{Center: mathutil.Vec3{-1, -1.5, -12}, Radius: 2, Material: Glass},
			{Center: mathutil.Vec3{1.5, -0.5, -18}, Radius: 3, Material: RedRubber},
			{Center: mathutil.Vec3{7, 5, -18}, Radius: 4, Material: Mirror},
		},
		Lights: []Light{
			{Position: mathutil.Vec3{-20, 20, 20}, Intensity: 1.5},
			{Position: mathutil.Vec3{30, 50, -25}, Intensity: 1.8},
			{Position: mathutil.Vec3{30, 20, 30}, Intensity: 1.7},
		},
	}
}
