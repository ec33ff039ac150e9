package raster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soft3d/internal/frame"
	"soft3d/internal/mathutil"
	"soft3d/internal/scene"
	"soft3d/internal/shading"
)

func cv(x, y, z, invW float64, uv [2]float64) scene.ClipVertex {
	return scene.ClipVertex{Screen: mathutil.Vec3{x, y, z}, UV: uv, InvW: invW}
}

func solid(c shading.Color) scene.FragmentShader {
	return func(*scene.Fragment) shading.Color { return c }
}

func rightTriangle(z float64) [3]scene.ClipVertex {
	return [3]scene.ClipVertex{
		cv(0, 0, z, 1, [2]float64{}),
		cv(8, 0, z, 1, [2]float64{}),
		cv(0, 8, z, 1, [2]float64{}),
	}
}

func TestBarycentricWeightsSumToOneAndAreNonNegative(t *testing.T) {
	buf := frame.NewWithDepth(16, 16)
	covered := 0
	shade := func(in *scene.Fragment) shading.Color {
		covered++
		assert.InDelta(t, 1.0, in.Bary[0]+in.Bary[1]+in.Bary[2], 1e-12)
		for _, w := range in.Bary {
			assert.GreaterOrEqual(t, w, 0.0)
		}
		assert.LessOrEqual(t, in.X+in.Y, 8)
		return shading.White
	}

	RasterizeTriangle(buf, rightTriangle(0.5), shade, &scene.Fragment{})

	assert.Equal(t, 45, covered) // pixels with x+y ≤ 8
	assert.Equal(t, [3]uint8{255, 255, 255}, buf.At(1, 1))
	assert.Equal(t, [3]uint8{}, buf.At(7, 7))
}

func TestWindingDoesNotCull(t *testing.T) {
	buf := frame.NewWithDepth(16, 16)
	tri := rightTriangle(0.5)
	tri[1], tri[2] = tri[2], tri[1]

	RasterizeTriangle(buf, tri, solid(shading.White), &scene.Fragment{})
	assert.Equal(t, [3]uint8{255, 255, 255}, buf.At(2, 2))
}

func TestDepthTestIsIdempotent(t *testing.T) {
	once := frame.NewWithDepth(16, 16)
	twice := frame.NewWithDepth(16, 16)
	tri := rightTriangle(0.25)
	shade := solid(shading.Color{0.2, 0.4, 0.6})

	RasterizeTriangle(once, tri, shade, &scene.Fragment{})
	RasterizeTriangle(twice, tri, shade, &scene.Fragment{})
	RasterizeTriangle(twice, tri, shade, &scene.Fragment{})

	assert.Equal(t, once.Color, twice.Color)
	assert.Equal(t, once.Depth, twice.Depth)
}

func TestNearerTriangleWinsInAnyOrder(t *testing.T) {
	red, blue := shading.Color{1, 0, 0}, shading.Color{0, 0, 1}
	for _, order := range [][2]float64{{0.2, 0.8}, {0.8, 0.2}} {
		buf := frame.NewWithDepth(16, 16)
		for _, z := range order {
			c := blue
			if z < 0.5 {
				c = red
			}
			RasterizeTriangle(buf, rightTriangle(z), solid(c), &scene.Fragment{})
		}
		assert.Equal(t, [3]uint8{255, 0, 0}, buf.At(2, 2))
		assert.InDelta(t, 0.2, buf.DepthAt(2, 2), 1e-12)
	}
}

func TestPerspectiveCorrectUV(t *testing.T) {
	buf := frame.NewWithDepth(16, 16)
	tri := [3]scene.ClipVertex{
		cv(0, 0, 0.5, 1, [2]float64{0, 0}),
		cv(10, 0, 0.5, 0.25, [2]float64{1, 0}),
		cv(0, 10, 0.5, 1, [2]float64{0, 0}),
	}
	var got float64
	shade := func(in *scene.Fragment) shading.Color {
		if in.X == 5 && in.Y == 0 {
			got = in.U
		}
		return shading.White
	}

	RasterizeTriangle(buf, tri, shade, &scene.Fragment{})
	// Affine interpolation would give 0.5.
	assert.InDelta(t, 0.2, got, 1e-12)
}

func TestZeroInverseWSkipsPixel(t *testing.T) {
	buf := frame.NewWithDepth(16, 16)
	tri := rightTriangle(0.5)
	for i := range tri {
		tri[i].InvW = 0
	}

	RasterizeTriangle(buf, tri, solid(shading.White), &scene.Fragment{})
	assert.Equal(t, [3]uint8{}, buf.At(1, 1))
	assert.True(t, math.IsInf(buf.DepthAt(1, 1), 1))
}

func TestDegenerateAndOffscreenTrianglesDrawNothing(t *testing.T) {
	tests := []struct {
		name string
		tri  [3]scene.ClipVertex
	}{
		{"colinear", [3]scene.ClipVertex{cv(0, 0, 0.5, 1, [2]float64{}), cv(4, 4, 0.5, 1, [2]float64{}), cv(8, 8, 0.5, 1, [2]float64{})}},
		{"left of buffer", [3]scene.ClipVertex{cv(-30, 0, 0.5, 1, [2]float64{}), cv(-20, 0, 0.5, 1, [2]float64{}), cv(-30, 8, 0.5, 1, [2]float64{})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := frame.NewWithDepth(16, 16)
			calls := 0
			RasterizeTriangle(buf, tt.tri, func(*scene.Fragment) shading.Color { calls++; return shading.White }, &scene.Fragment{})
			assert.Zero(t, calls)
		})
	}
}

func TestPartiallyOffscreenTriangleIsClipped(t *testing.T) {
	buf := frame.NewWithDepth(4, 4)
	tri := [3]scene.ClipVertex{cv(-10, -10, 0.5, 1, [2]float64{}), cv(30, -10, 0.5, 1, [2]float64{}), cv(-10, 30, 0.5, 1, [2]float64{})}
	RasterizeTriangle(buf, tri, solid(shading.White), &scene.Fragment{})
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			require.Equal(t, [3]uint8{255, 255, 255}, buf.At(x, y))
		}
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"horizontal", 1, 2, 6, 2, 6},
		{"vertical reversed", 3, 7, 3, 0, 8},
		{"diagonal", 0, 0, 5, 5, 6},
		{"steep", 0, 0, 2, 7, 8},
		{"single", 4, 4, 4, 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := frame.New(8, 8)
			DrawLine(buf, tt.x0, tt.y0, tt.x1, tt.y1, shading.White)
			lit := 0
			for i := 0; i < len(buf.Color); i += 3 {
				if buf.Color[i] == 255 {
					lit++
				}
			}
			assert.Equal(t, tt.want, lit)
			assert.Equal(t, [3]uint8{255, 255, 255}, buf.At(tt.x0, tt.y0))
			assert.Equal(t, [3]uint8{255, 255, 255}, buf.At(tt.x1, tt.y1))
		})
	}
}

func TestFarOffVerticesStillCoverTheBuffer(t *testing.T) {
	buf := frame.NewWithDepth(8, 8)
	tri := [3]scene.ClipVertex{
		cv(-1e20, -1e20, 0.5, 1, [2]float64{}),
		cv(1e20, -1e20, 0.5, 1, [2]float64{}),
		cv(0, 1e20, 0.5, 1, [2]float64{}),
	}
	RasterizeTriangle(buf, tri, solid(shading.White), &scene.Fragment{})
	for _, p := range [][2]int{{0, 0}, {7, 0}, {3, 3}, {7, 7}} {
		assert.Equal(t, [3]uint8{255, 255, 255}, buf.At(p[0], p[1]), "pixel %v", p)
	}
}

func TestNaNTriangleDrawsNothing(t *testing.T) {
	buf := frame.NewWithDepth(8, 8)
	tri := rightTriangle(0.5)
	tri[0].Screen[0] = math.NaN()
	RasterizeTriangle(buf, tri, solid(shading.White), &scene.Fragment{})
	assert.Equal(t, [3]uint8{}, buf.At(1, 1))
}
