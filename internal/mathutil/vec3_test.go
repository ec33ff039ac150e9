package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Basics(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}

	assert.Equal(t, Vec3{5, -3, 9}, a.Add(b))
	assert.Equal(t, Vec3{-3, 7, -3}, a.Sub(b))
	assert.Equal(t, 12.0, a.Dot(b))
	assert.Equal(t, Vec3{27, 6, -13}, a.Cross(b))
	assert.Equal(t, Vec3{-1, -2, -3}, a.Negate())
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 0, 4}.Normalize()
	assert.InDelta(t, 1.0, n.Len(), 1e-12)
	assert.InDelta(t, 0.6, n[0], 1e-12)

	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}
