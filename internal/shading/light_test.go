package shading

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"soft3d/internal/mathutil"
)

func TestAmbientIgnoresPoint(t *testing.T) {
	a := Ambient{Color: Color{1, 0.5, 0}, Intensity: 0.4}
	s1 := a.Sample(mathutil.Vec3{0, 0, 0})
	s2 := a.Sample(mathutil.Vec3{100, -3, 7})

	assert.Equal(t, s1, s2)
	assert.Equal(t, KindAmbient, s1.Kind)
	assert.InDeltaSlice(t, []float64{0.4, 0.2, 0}, s1.Color[:], 1e-12)
}

func TestDirectionalPointsTowardLight(t *testing.T) {
	d := Directional{Direction: mathutil.Vec3{0, -10, 0}, Color: White, Intensity: 2}
	s := d.Sample(mathutil.Vec3{5, 5, 5})

	assert.Equal(t, KindDirectional, s.Kind)
	assert.Equal(t, mathutil.Vec3{0, 1, 0}, s.Direction)
	assert.True(t, math.IsInf(s.Distance, 1))
	assert.Equal(t, Color{2, 2, 2}, s.Color)
}

func TestPointAttenuation(t *testing.T) {
	p := Point{Position: mathutil.Vec3{0, 4, 0}, Color: White, Intensity: 1, A: 0.5, B: 0.25}
	s := p.Sample(mathutil.Vec3{0, 0, 0})

	want := 1 / (1 + 0.5*4 + 0.25*16)
	assert.Equal(t, KindPoint, s.Kind)
	assert.InDelta(t, 4.0, s.Distance, 1e-12)
	assert.InDeltaSlice(t, []float64{0, 1, 0}, s.Direction[:], 1e-12)
	assert.InDelta(t, want, s.Color[0], 1e-12)
}

func TestPointAtLightPositionHasNoDirection(t *testing.T) {
	p := Point{Position: mathutil.Vec3{1, 1, 1}, Color: White, Intensity: 1}
	s := p.Sample(mathutil.Vec3{1, 1, 1})
	assert.Equal(t, mathutil.Vec3{}, s.Direction)
	assert.Equal(t, 0.0, s.Distance)
}
