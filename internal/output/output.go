// Package output persists rendered frames as BMP, PNG or WebP.
package output

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
)

// Formats lists the encodings Encode accepts.
var Formats = []string{"bmp", "png", "webp"}

// Ext returns the file extension for format, including the dot.
func Ext(format string) string {
	return "." + format
}

// FormatOf infers the format from a file name, defaulting to png.
func FormatOf(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, f := range Formats {
		if f == ext {
			return f
		}
	}
	return "png"
}

// Encode writes img to w. WebP output is lossless.
func Encode(w io.Writer, img image.Image, format string) error {
	var err error
	switch format {
	case "bmp":
		err = bmp.Encode(w, img)
	case "png":
		err = png.Encode(w, img)
	case "webp":
		err = nativewebp.Encode(w, img, nil)
	default:
		return fmt.Errorf("output: unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("output: %s encode: %w", format, err)
	}
	return nil
}

// Save writes img to path, creating parent directories. An empty format is inferred
// from the extension.
func Save(path string, img image.Image, format string) error {
	if format == "" {
		format = FormatOf(path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("output: mkdir %s: %w", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("output: close %s: %w", path, err)
	}
	return nil
}
