package texture

import (
	"fmt"
	"math"

	"soft3d/internal/mathutil"
	"soft3d/internal/shading"
)

// Projection selects how a direction is unwrapped onto the panorama.
type Projection int

const (
	Equirectangular Projection = iota
	Cylindrical
)

// ParseProjection maps a scene-file name to a Projection.
func ParseProjection(s string) (Projection, error) {
	switch s {
	case "", "equirect", "equirectangular":
		return Equirectangular, nil
	case "cylindrical":
		return Cylindrical, nil
	}
	return Equirectangular, fmt.Errorf("texture: unknown projection %q", s)
}

// EnvMap looks up background radiance by direction. The zero value of every field but
// Source is usable.
type EnvMap struct {
	Source     Sampler
	Projection Projection
	FlipV      bool
	YawDeg     float64 // rotation of the panorama around +Y
}

// NewEnvMap builds an environment map rotated by yawDeg around +Y.
func NewEnvMap(src Sampler, proj Projection, yawDeg float64, flipV bool) *EnvMap {
	return &EnvMap{
		Source:     src,
		Projection: proj,
		FlipV:      flipV,
		YawDeg:     yawDeg,
	}
}

// UV returns the panorama coordinates for a direction. The direction need not be unit length.
// u=0.5 faces -Z; v=1 is straight up.
func (e *EnvMap) UV(dir mathutil.Vec3) (u, v float64) {
	d := dir.Normalize()
	if e.YawDeg != 0 {
		d = mathutil.RotY(mathutil.Deg2Rad(-e.YawDeg)).MulVec3(d)
	}

	u = 0.5 + math.Atan2(d[0], -d[2])/(2*math.Pi)
	switch e.Projection {
	case Cylindrical:
		horiz := math.Hypot(d[0], d[2])
		if horiz < 1e-9 {
			v = 0.5 + math.Copysign(0.5, d[1])
		} else {
			v = 0.5 + 0.5*d[1]/horiz
		}
		v = math.Min(math.Max(v, 0), 1)
	default:
		v = 0.5 + math.Asin(math.Max(-1, math.Min(1, d[1])))/math.Pi
	}
	if e.FlipV {
		v = 1 - v
	}
	// Keep the top edge inside the image instead of wrapping to the bottom row.
	if v >= 1 {
		v = math.Nextafter(1, 0)
	}
	if u >= 1 {
		u -= 1
	}
	return u, v
}

// Lookup returns the environment color seen along dir.
func (e *EnvMap) Lookup(dir mathutil.Vec3) shading.Color {
	if e == nil || e.Source == nil {
		return shading.Black
	}
	u, v := e.UV(dir)
	return e.Source.Sample(u, v)
}
