package texture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"soft3d/internal/mathutil"
	"soft3d/internal/shading"
)

// uvEcho echoes the coordinates it was sampled at.
type uvEcho struct{}

func (uvEcho) Sample(u, v float64) shading.Color { return shading.Color{u, v, 0} }

func TestEquirectangularUV(t *testing.T) {
	env := NewEnvMap(uvEcho{}, Equirectangular, 0, false)

	tests := []struct {
		name string
		dir  mathutil.Vec3
		u, v float64
		pole bool
	}{
		{"forward", mathutil.Vec3{0, 0, -1}, 0.5, 0.5, false},
		{"right", mathutil.Vec3{1, 0, 0}, 0.75, 0.5, false},
		{"left", mathutil.Vec3{-1, 0, 0}, 0.25, 0.5, false},
		{"down", mathutil.Vec3{0, -1, 0}, 0, 0, true},
		{"up stays inside", mathutil.Vec3{0, 1, 0}, 0, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := env.UV(tt.dir)
			// u is undefined at the poles
			if !tt.pole {
				assert.InDelta(t, tt.u, u, 1e-12)
			}
			assert.InDelta(t, tt.v, v, 1e-9)
			assert.Less(t, v, 1.0)
			assert.GreaterOrEqual(t, u, 0.0)
			assert.Less(t, u, 1.0)
		})
	}
}

func TestEnvMapYawRotatesLookup(t *testing.T) {
	plain := NewEnvMap(uvEcho{}, Equirectangular, 0, false)
	turned := NewEnvMap(uvEcho{}, Equirectangular, 90, false)

	// After a 90° yaw, looking forward sees what used to be on the left or right.
	u0, _ := plain.UV(mathutil.Vec3{0, 0, -1})
	u1, _ := turned.UV(mathutil.Vec3{0, 0, -1})
	assert.InDelta(t, 0.25, abs(u1-u0), 1e-9)
}

func TestEnvMapFlipV(t *testing.T) {
	env := NewEnvMap(uvEcho{}, Equirectangular, 0, true)
	_, v := env.UV(mathutil.Vec3{0, -1, 0})
	assert.InDelta(t, 1.0, v, 1e-9)
}

func TestCylindricalUV(t *testing.T) {
	env := NewEnvMap(uvEcho{}, Cylindrical, 0, false)
	_, v := env.UV(mathutil.Vec3{0, 1, -1})
	assert.InDelta(t, 1.0, v, 1e-9)
	_, v = env.UV(mathutil.Vec3{0, 0.5, -1})
	assert.InDelta(t, 0.75, v, 1e-9)
}

func TestNilEnvMapIsBlack(t *testing.T) {
	var env *EnvMap
	assert.Equal(t, shading.Black, env.Lookup(mathutil.Vec3{0, 0, -1}))
}

func TestParseProjection(t *testing.T) {
	p, err := ParseProjection("cylindrical")
	assert.NoError(t, err)
	assert.Equal(t, Cylindrical, p)
	_, err = ParseProjection("cube")
	assert.Error(t, err)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestEnvMapLiteralMatchesConstructor(t *testing.T) {
	lit := &EnvMap{Source: uvEcho{}}
	built := NewEnvMap(uvEcho{}, Equirectangular, 0, false)
	for _, d := range []mathutil.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 0, -1}, {0.3, 0.5, 0.2}} {
		assert.Equal(t, built.Lookup(d), lit.Lookup(d))
	}
	assert.NotEqual(t, lit.Lookup(mathutil.Vec3{1, 0, 0}), lit.Lookup(mathutil.Vec3{-1, 0, 0}))

	lit.YawDeg = 90
	assert.Equal(t, NewEnvMap(uvEcho{}, Equirectangular, 90, false).Lookup(mathutil.Vec3{0, 0, -1}), lit.Lookup(mathutil.Vec3{0, 0, -1}))
}
