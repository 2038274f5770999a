package mathutil

// Color is a linear RGB triple. Channels are left unclamped while light is
// accumulated and only squashed into [0,1] when encoded to bytes.
type Color [3]float64

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

func (a Color) Add(b Color) Color {
	return Color{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (c Color) Scale(s float64) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s}
}

// Clamp scales all channels down uniformly when the brightest one exceeds 1,
// keeping the hue intact.
func (c Color) Clamp() Color {
	m := max(c[0], c[1], c[2])
	if m > 1 {
		return c.Scale(1 / m)
	}
	return c
}

// Bytes converts each channel to 8 bits: clamp to [0,1], scale by 255 and
// truncate toward zero.
func (c Color) Bytes() [3]uint8 {
	return [3]uint8{channelByte(c[0]), channelByte(c[1]), channelByte(c[2])}
}

func channelByte(v float64) uint8 {
	// NaN falls through both comparisons and must not reach the conversion.
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(255 * v)
}
