// Package shading holds the lighting model shared by the rasterizer and the ray tracer:
// colors, light variants, material variants and the Phong evaluation.
package shading

// Color is linear RGB with each channel nominally in [0,1].
// It is the single representation crossing every shader boundary.
type Color [3]float64

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// RGB8 builds a Color from 8-bit channels.
func RGB8(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

func (c Color) Add(o Color) Color {
	return Color{c[0] + o[0], c[1] + o[1], c[2] + o[2]}
}

// Mul multiplies channel by channel.
func (c Color) Mul(o Color) Color {
	return Color{c[0] * o[0], c[1] * o[1], c[2] * o[2]}
}

func (c Color) Scale(s float64) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s}
}

// Lerp blends from c to o; t=0 yields c and t=1 yields o.
func (c Color) Lerp(o Color, t float64) Color {
	return c.Scale(1 - t).Add(o.Scale(t))
}

// Clamp limits every channel to [0,1].
func (c Color) Clamp() Color {
	return Color{clamp01(c[0]), clamp01(c[1]), clamp01(c[2])}
}

// Bytes quantizes to 8-bit channels with rounding.
func (c Color) Bytes() (r, g, b uint8) {
	return to8(c[0]), to8(c[1]), to8(c[2])
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float64) uint8 {
	v *= 255
	if !(v > 0) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
