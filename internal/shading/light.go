package shading

import (
	"math"

	"soft3d/internal/mathutil"
)

const lightEpsilon = 1e-8

// LightKind tags the light variants.
type LightKind int

const (
	KindAmbient LightKind = iota
	KindDirectional
	KindPoint
)

func (k LightKind) String() string {
	switch k {
	case KindAmbient:
		return "ambient"
	case KindDirectional:
		return "directional"
	case KindPoint:
		return "point"
	}
	return "unknown"
}

// LightSample is what a light contributes at one surface point.
type LightSample struct {
	Kind      LightKind
	Direction mathutil.Vec3 // unit vector from the point toward the light; zero for ambient
	Distance  float64       // +Inf for directional lights
	Color     Color         // color × intensity × attenuation
}

// Light is the uniform query every light variant answers.
type Light interface {
	Sample(point mathutil.Vec3) LightSample
}

// Ambient lights every point equally, regardless of geometry.
type Ambient struct {
	Color     Color
	Intensity float64
}

func (a Ambient) Sample(mathutil.Vec3) LightSample {
	return LightSample{Kind: KindAmbient, Color: a.Color.Scale(a.Intensity)}
}

// Directional is a light at infinity. Direction points from the light into the scene.
type Directional struct {
	Direction mathutil.Vec3
	Color     Color
	Intensity float64
}

func (d Directional) Sample(mathutil.Vec3) LightSample {
	return LightSample{
		Kind:      KindDirectional,
		Direction: d.Direction.Normalize().Negate(),
		Distance:  math.Inf(1),
		Color:     d.Color.Scale(d.Intensity),
	}
}

// Point radiates from Position with attenuation 1/(1 + A·d + B·d²).
type Point struct {
	Position  mathutil.Vec3
	Color     Color
	Intensity float64
	A, B      float64
}

func (p Point) Sample(point mathutil.Vec3) LightSample {
	toLight := p.Position.Sub(point)
	dist := toLight.Len()
	var dir mathutil.Vec3
	if dist > lightEpsilon {
		dir = toLight.Scale(1 / dist)
	}
	return LightSample{
		Kind:      KindPoint,
		Direction: dir,
		Distance:  dist,
		Color:     p.Color.Scale(p.Intensity * p.Attenuation(dist)),
	}
}

// Attenuation returns the distance falloff factor.
func (p Point) Attenuation(d float64) float64 {
	return 1 / (1 + p.A*d + p.B*d*d)
}
