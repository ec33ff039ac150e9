// Package postprocess turns rendered frames into output-sized images.
package postprocess

import (
	"image"

	"golang.org/x/image/draw"

	"soft3d/internal/frame"
)

// Downsample scales img to w×h with CatmullRom filtering (approximates Lanczos).
// img is returned unchanged when it already has that size.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Resolve converts a buffer rendered at factor× the output size into the final image.
func Resolve(buf *frame.Buffer, factor int) *image.NRGBA {
	img := buf.Image()
	if factor <= 1 {
		return img
	}
	return Downsample(img, buf.Width/factor, buf.Height/factor)
}
