package tracer

import (
	"math"

	"tiny-raytracer/internal/mathutil"
	"tiny-raytracer/internal/scene"
)

// Options are the fixed parameters of the shading engine.
type Options struct {
	MaxDepth   int            // deepest recursion level that is still shaded
	ShadowBias float64        // offset along the normal for secondary rays
	Horizon    float64        // hits at or beyond this distance are ignored
	Background mathutil.Color // returned on a miss or past MaxDepth
	TIR        TIRPolicy
}

// DefaultOptions returns depth 4, bias 1e-3, horizon 1000 and a sky-blue background.
func DefaultOptions() Options {
	return Options{
		MaxDepth:   4,
		ShadowBias: 1e-3,
		Horizon:    scene.DefaultHorizon,
		Background: mathutil.Color{0.2, 0.7, 0.8},
		TIR:        TIRSentinel,
	}
}

// Tracer evaluates rays against a read-only scene. It holds no mutable
// state and is safe for concurrent use.
type Tracer struct {
	scene *scene.Scene
	opts  Options

	// probe, when set, observes the depth of every CastRay invocation.
	probe func(depth int)
}

// New returns a Tracer for sc.
func New(sc *scene.Scene, opts Options) *Tracer {
	return &Tracer{scene: sc, opts: opts}
}

// Options returns the tracer's parameters.
func (t *Tracer) Options() Options { return t.opts }

// CastRay returns the color seen along the ray from orig in the unit
// direction dir, recursing into reflected and refracted rays.
func (t *Tracer) CastRay(orig, dir mathutil.Vec3, depth int) mathutil.Color {
	if t.probe != nil {
		t.probe(depth)
	}

	hit, ok := t.scene.Intersect(orig, dir, t.opts.Horizon)
	if !ok || depth > t.opts.MaxDepth {
		return t.opts.Background
	}
	m := hit.Material

	reflectDir := Reflect(dir, hit.Normal).Normalize()
	refractDir := Refract(dir, hit.Normal, m.RefractiveIndex, t.opts.TIR).Normalize()
	reflectColor := t.CastRay(t.offset(hit, reflectDir), reflectDir, depth+1)
	refractColor := t.CastRay(t.offset(hit, refractDir), refractDir, depth+1)

	diffuse, specular := t.directLight(hit, dir)

	return m.DiffuseColor.Scale(diffuse * m.Albedo.Diffuse).
		Add(mathutil.White.Scale(specular * m.Albedo.Specular)).
		Add(reflectColor.Scale(m.Albedo.Reflect)).
		Add(refractColor.Scale(m.Albedo.Refract))
}

// directLight sums the diffuse and specular intensity reaching the hit point
// from every unoccluded light.
func (t *Tracer) directLight(hit scene.Hit, dir mathutil.Vec3) (diffuse, specular float64) {
	for _, l := range t.scene.Lights {
		toLight := l.Position.Sub(hit.Point)
		lightDist := toLight.Norm()
		lightDir := toLight.Normalize()

		if t.occluded(hit, lightDir, lightDist) {
			continue
		}

		diffuse += l.Intensity * max(0, lightDir.Dot(hit.Normal))
		s := max(0, -Reflect(lightDir.Neg(), hit.Normal).Dot(dir))
		specular += math.Pow(s, hit.Material.SpecularExponent) * l.Intensity
	}
	return diffuse, specular
}

// occluded reports whether any surface lies strictly between the hit point
// and a light lightDist away in direction lightDir.
func (t *Tracer) occluded(hit scene.Hit, lightDir mathutil.Vec3, lightDist float64) bool {
	orig := t.offset(hit, lightDir)
	blocker, ok := t.scene.Intersect(orig, lightDir, t.opts.Horizon)
	return ok && blocker.Point.Sub(orig).Norm() < lightDist
}

// offset nudges the hit point off the surface to the side dir leaves from,
// so a secondary ray does not re-hit its own surface.
func (t *Tracer) offset(hit scene.Hit, dir mathutil.Vec3) mathutil.Vec3 {
	bias := hit.Normal.Scale(t.opts.ShadowBias)
	if dir.Dot(hit.Normal) < 0 {
		return hit.Point.Sub(bias)
	}
	return hit.Point.Add(bias)
}

// Flat returns the diffuse color of the nearest surface, or the background.
// It is the unlit first version of the renderer.
func (t *Tracer) Flat(orig, dir mathutil.Vec3) mathutil.Color {
	hit, ok := t.scene.Intersect(orig, dir, t.opts.Horizon)
	if !ok {
		return t.opts.Background
	}
	return hit.Material.DiffuseColor
}
