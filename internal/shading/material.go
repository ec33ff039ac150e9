package shading

import (
	"errors"
	"fmt"
)

// MaterialKind tags how a surface interacts with secondary rays.
type MaterialKind int

const (
	Opaque MaterialKind = iota
	Reflective
	Transparent
)

func (k MaterialKind) String() string {
	switch k {
	case Opaque:
		return "opaque"
	case Reflective:
		return "reflective"
	case Transparent:
		return "transparent"
	}
	return "unknown"
}

// ParseMaterialKind maps a scene-file name to a MaterialKind.
func ParseMaterialKind(s string) (MaterialKind, error) {
	switch s {
	case "", "opaque":
		return Opaque, nil
	case "reflective":
		return Reflective, nil
	case "transparent":
		return Transparent, nil
	}
	return Opaque, fmt.Errorf("shading: unknown material kind %q", s)
}

// Material describes a surface. IOR is read only for Transparent and Reflectivity only
// for Reflective materials.
type Material struct {
	Kind         MaterialKind
	Diffuse      Color
	Ka, Kd, Ks   float64
	Shininess    float64
	IOR          float64
	Reflectivity float64
}

var ErrInvalidMaterial = errors.New("invalid material")

// DefaultMaterial is the neutral opaque surface used when a binding is missing.
func DefaultMaterial() Material {
	return Material{Kind: Opaque, Diffuse: Color{0.8, 0.8, 0.8}, Ka: 0.1, Kd: 1, Ks: 0.25, Shininess: 32}
}

// Validate reports coefficients outside their documented ranges.
func (m Material) Validate() error {
	for _, c := range []struct {
		name string
		v    float64
	}{{"ka", m.Ka}, {"kd", m.Kd}, {"ks", m.Ks}} {
		if c.v < 0 || c.v > 1 {
			return fmt.Errorf("shading: %s=%v out of [0,1]: %w", c.name, c.v, ErrInvalidMaterial)
		}
	}
	if m.Shininess <= 0 {
		return fmt.Errorf("shading: shininess=%v must be positive: %w", m.Shininess, ErrInvalidMaterial)
	}
	switch m.Kind {
	case Reflective:
		if m.Reflectivity < 0 || m.Reflectivity > 1 {
			return fmt.Errorf("shading: reflectivity=%v out of [0,1]: %w", m.Reflectivity, ErrInvalidMaterial)
		}
	case Transparent:
		if m.IOR <= 1 {
			return fmt.Errorf("shading: ior=%v must exceed 1: %w", m.IOR, ErrInvalidMaterial)
		}
	}
	return nil
}
