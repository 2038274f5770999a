package tracer

import (
	"math"

	"tiny-raytracer/internal/mathutil"
)

// TIRPolicy selects what Refract returns under total internal reflection.
type TIRPolicy int

const (
	// TIRSentinel returns the fixed vector (1,0,0). It is not physically
	// meaningful, but it keeps golden images byte-stable.
	TIRSentinel TIRPolicy = iota
	// TIRReflect returns the mirror reflection instead.
	TIRReflect
)

// ParseTIRPolicy maps a config name to a TIRPolicy.
func ParseTIRPolicy(name string) (TIRPolicy, bool) {
	switch name {
	case "", "sentinel":
		return TIRSentinel, true
	case "reflect":
		return TIRReflect, true
	}
	return 0, false
}

func (p TIRPolicy) String() string {
	if p == TIRReflect {
		return "reflect"
	}
	return "sentinel"
}

var tirSentinel = mathutil.Vec3{1, 0, 0}

// Reflect mirrors the incident direction i about the normal n.
func Reflect(i, n mathutil.Vec3) mathutil.Vec3 {
	return i.Sub(n.Scale(2 * i.Dot(n)))
}

// Refract bends i through a surface with outward normal n using Snell's law.
// The outside medium has index 1. Rays leaving the medium (i along n) are
// handled by flipping the normal and swapping the indices.
func Refract(i, n mathutil.Vec3, eta float64, tir TIRPolicy) mathutil.Vec3 {
	cosi := -max(-1, min(1, i.Dot(n)))
	etai, etat := 1.0, eta
	nn := n
	if cosi < 0 {
		cosi = -cosi
		nn = n.Neg()
		etai, etat = etat, etai
	}

	ratio := etai / etat
	k := 1 - ratio*ratio*(1-cosi*cosi)
	if k < 0 {
		if tir == TIRReflect {
			return Reflect(i, n)
		}
		return tirSentinel
	}
	return i.Scale(ratio).Add(nn.Scale(ratio*cosi - math.Sqrt(k)))
}
