package shading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"soft3d/internal/mathutil"
)

func redMatte() Material {
	return Material{Kind: Opaque, Diffuse: Color{1, 0, 0}, Ka: 0, Kd: 1, Ks: 0, Shininess: 16}
}

func TestPhongFacingLightIsFullDiffuse(t *testing.T) {
	lights := []Light{Directional{Direction: mathutil.Vec3{0, -1, 0}, Color: White, Intensity: 1}}
	up := mathutil.Vec3{0, 1, 0}

	got := Phong(redMatte(), Color{1, 0, 0}, mathutil.Vec3{}, up, up, lights, nil)
	assert.Equal(t, Color{1, 0, 0}, got)
}

func TestPhongFacingAwayIsBlack(t *testing.T) {
	lights := []Light{Directional{Direction: mathutil.Vec3{0, -1, 0}, Color: White, Intensity: 1}}
	down := mathutil.Vec3{0, -1, 0}

	got := Phong(redMatte(), Color{1, 0, 0}, mathutil.Vec3{}, down, down, lights, nil)
	assert.Equal(t, Black, got)
}

func TestPhongOccludedLightContributesNothing(t *testing.T) {
	m := redMatte()
	m.Ks = 1
	lights := []Light{Directional{Direction: mathutil.Vec3{0, -1, 0}, Color: White, Intensity: 1}}
	up := mathutil.Vec3{0, 1, 0}

	got := Phong(m, m.Diffuse, mathutil.Vec3{}, up, up, lights, func(LightSample) bool { return true })
	assert.Equal(t, Black, got)
}

func TestPhongAmbientOnly(t *testing.T) {
	m := Material{Diffuse: Color{0.5, 1, 1}, Ka: 0.5, Kd: 1, Shininess: 1}
	lights := []Light{Ambient{Color: White, Intensity: 1}}
	n := mathutil.Vec3{0, 0, 1}

	got := Phong(m, m.Diffuse, mathutil.Vec3{}, n, n, lights, func(LightSample) bool {
		t.Fatal("ambient light must not be shadow-tested")
		return false
	})
	assert.InDeltaSlice(t, []float64{0.25, 0.5, 0.5}, got[:], 1e-12)
}

func TestPhongSpecularPeaksOnMirrorDirection(t *testing.T) {
	m := Material{Diffuse: Black, Kd: 0, Ks: 1, Shininess: 8}
	// Light from +x+y, viewer at -x+y: the mirror direction.
	lights := []Light{Directional{Direction: mathutil.Vec3{-1, -1, 0}, Color: White, Intensity: 1}}
	n := mathutil.Vec3{0, 1, 0}
	view := mathutil.Vec3{-1, 1, 0}.Normalize()

	got := Phong(m, m.Diffuse, mathutil.Vec3{}, n, view, lights, nil)
	assert.InDelta(t, 1.0, got[0], 1e-9)

	off := mathutil.Vec3{0, 1, 0}
	dim := Phong(m, m.Diffuse, mathutil.Vec3{}, n, off, lights, nil)
	assert.Less(t, dim[0], got[0])
}

func TestMaterialValidate(t *testing.T) {
	tests := []struct {
		name    string
		m       Material
		wantErr bool
	}{
		{"default", DefaultMaterial(), false},
		{"ka too large", Material{Ka: 1.5, Shininess: 1}, true},
		{"zero shininess", Material{Ka: 0.1}, true},
		{"glass", Material{Kind: Transparent, Shininess: 1, IOR: 1.5}, false},
		{"glass with ior 1", Material{Kind: Transparent, Shininess: 1, IOR: 1}, true},
		{"mirror", Material{Kind: Reflective, Shininess: 1, Reflectivity: 0.9}, false},
		{"mirror over 1", Material{Kind: Reflective, Shininess: 1, Reflectivity: 1.2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMaterial)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseMaterialKind(t *testing.T) {
	k, err := ParseMaterialKind("transparent")
	assert.NoError(t, err)
	assert.Equal(t, Transparent, k)

	_, err = ParseMaterialKind("chrome")
	assert.Error(t, err)
}
