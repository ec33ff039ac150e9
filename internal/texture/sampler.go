// Package texture provides the in-memory texture and environment lookups used by both
// engines. Decoding happens once at load time; sampling never touches the filesystem.
package texture

import (
	"image"

	"soft3d/internal/shading"
)

// Sampler returns the color at normalized texture coordinates. Coordinates wrap into
// [0,1); v=0 is the bottom row of the image.
type Sampler interface {
	Sample(u, v float64) shading.Color
}

// Solid is a Sampler returning the same color everywhere.
type Solid shading.Color

func (s Solid) Sample(u, v float64) shading.Color { return shading.Color(s) }

// Image samples an NRGBA image with bilinear filtering and UV wrapping.
type Image struct {
	img *image.NRGBA
}

// NewImage wraps img. A nil or empty image yields a nil *Image.
func NewImage(img *image.NRGBA) *Image {
	if img == nil || img.Rect.Dx() == 0 || img.Rect.Dy() == 0 {
		return nil
	}
	return &Image{img: img}
}

func (t *Image) Bounds() image.Rectangle { return t.img.Rect }

// Sample performs bilinear filtering. Accesses the pixel slice directly for speed.
// A nil *Image samples as white.
func (t *Image) Sample(u, v float64) shading.Color {
	if t == nil {
		return shading.White
	}
	tex := t.img
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()

	u = wrap(u)
	v = 1 - wrap(v)

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := (x0 + 1) % w
	y1 := (y0 + 1) % h
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	stride := tex.Stride
	pix := tex.Pix

	// Four texels
	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var c shading.Color
	for k := 0; k < 3; k++ {
		c[k] = (float64(pix[i00+k])*w00 + float64(pix[i10+k])*w10 +
			float64(pix[i01+k])*w01 + float64(pix[i11+k])*w11) / 255
	}
	return c
}

func wrap(x float64) float64 {
	x -= float64(int(x))
	if x < 0 {
		x += 1.0
	}
	return x
}

// OrDefault samples s, or returns def when no texture is bound.
func OrDefault(s Sampler, u, v float64, def shading.Color) shading.Color {
	if s == nil {
		return def
	}
	return s.Sample(u, v)
}
