package main

import (
	"fmt"
	"image"
)

// Diff summarizes how two same-sized images differ.
type Diff struct {
	Pixels   int
	Over     int // pixels with any channel delta above the tolerance
	MaxDelta int
	First    image.Point // first pixel over tolerance, row-major
}

// Compare measures the 8-bit per-channel RGB difference between want and got.
// Alpha is ignored.
func Compare(want, got image.Image, tolerance int) (Diff, error) {
	wb, gb := want.Bounds(), got.Bounds()
	if wb.Dx() != gb.Dx() || wb.Dy() != gb.Dy() {
		return Diff{}, fmt.Errorf("size mismatch: %dx%d vs %dx%d", wb.Dx(), wb.Dy(), gb.Dx(), gb.Dy())
	}

	d := Diff{Pixels: wb.Dx() * wb.Dy()}
	for y := 0; y < wb.Dy(); y++ {
		for x := 0; x < wb.Dx(); x++ {
			r1, g1, b1, _ := want.At(wb.Min.X+x, wb.Min.Y+y).RGBA()
			r2, g2, b2, _ := got.At(gb.Min.X+x, gb.Min.Y+y).RGBA()
			delta := max(absDelta(r1, r2), absDelta(g1, g2), absDelta(b1, b2))
			d.MaxDelta = max(d.MaxDelta, delta)
			if delta > tolerance {
				if d.Over == 0 {
					d.First = image.Pt(x, y)
				}
				d.Over++
			}
		}
	}
	return d, nil
}

func absDelta(a, b uint32) int {
	d := int(a>>8) - int(b>>8)
	if d < 0 {
		return -d
	}
	return d
}
