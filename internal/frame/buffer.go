// Package frame holds the pixel grid both engines render into.
package frame

import (
	"image"
	"math"

	"soft3d/internal/shading"
)

// Buffer holds the render target as flat slices for cache locality. Row 0 is the
// bottom of the image.
type Buffer struct {
	Width  int
	Height int
	Color  []uint8   // RGB interleaved, len = W*H*3
	Depth  []float64 // depth per pixel, len = W*H; nil when the owner needs no depth test
}

// New allocates a black color buffer without depth.
func New(w, h int) *Buffer {
	return &Buffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*3),
	}
}

// NewWithDepth allocates a black color buffer and a +Inf depth buffer.
func NewWithDepth(w, h int) *Buffer {
	b := New(w, h)
	b.Depth = make([]float64, w*h)
	b.resetDepth()
	return b
}

// Clear fills every pixel with c and resets depth to +Inf.
func (b *Buffer) Clear(c shading.Color) {
	r, g, bl := c.Bytes()
	for i := 0; i < len(b.Color); i += 3 {
		b.Color[i] = r
		b.Color[i+1] = g
		b.Color[i+2] = bl
	}
	b.resetDepth()
}

func (b *Buffer) resetDepth() {
	inf := math.Inf(1)
	for i := range b.Depth {
		b.Depth[i] = inf
	}
}

// InBounds reports whether (x, y) addresses a pixel.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// Set writes c at (x, y). Writes outside the buffer are dropped.
func (b *Buffer) Set(x, y int, c shading.Color) {
	if !b.InBounds(x, y) {
		return
	}
	i := (y*b.Width + x) * 3
	b.Color[i], b.Color[i+1], b.Color[i+2] = c.Bytes()
}

// At returns the stored RGB bytes at (x, y), or zeros outside the buffer.
func (b *Buffer) At(x, y int) [3]uint8 {
	if !b.InBounds(x, y) {
		return [3]uint8{}
	}
	i := (y*b.Width + x) * 3
	return [3]uint8{b.Color[i], b.Color[i+1], b.Color[i+2]}
}

// DepthAt returns the stored depth, or +Inf outside the buffer or without depth.
func (b *Buffer) DepthAt(x, y int) float64 {
	if b.Depth == nil || !b.InBounds(x, y) {
		return math.Inf(1)
	}
	return b.Depth[y*b.Width+x]
}

// TestDepth reports whether z is strictly nearer than the stored depth.
func (b *Buffer) TestDepth(x, y int, z float64) bool {
	if !b.InBounds(x, y) {
		return false
	}
	if b.Depth == nil {
		return true
	}
	return z < b.Depth[y*b.Width+x]
}

// TestAndSetDepth stores z and returns true when it passes the strict less-than test.
func (b *Buffer) TestAndSetDepth(x, y int, z float64) bool {
	if !b.TestDepth(x, y, z) {
		return false
	}
	if b.Depth != nil {
		b.Depth[y*b.Width+x] = z
	}
	return true
}

// Image converts the buffer to a top-down opaque NRGBA image.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		src := (b.Height - 1 - y) * b.Width * 3
		dst := y * img.Stride
		for x := 0; x < b.Width; x++ {
			img.Pix[dst] = b.Color[src]
			img.Pix[dst+1] = b.Color[src+1]
			img.Pix[dst+2] = b.Color[src+2]
			img.Pix[dst+3] = 255
			src += 3
			dst += 4
		}
	}
	return img
}
