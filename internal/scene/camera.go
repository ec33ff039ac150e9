package scene

import (
	"math"

	"soft3d/internal/mathutil"
)

// Camera describes the eye. Near and Far are used by the rasterizer only.
type Camera struct {
	Eye, Target, Up mathutil.Vec3
	FovY            float64 // degrees
	Near, Far       float64
}

// NewCamera returns a camera with +Y up, 60° vertical field of view and a 0.1..100 range.
func NewCamera(eye, target mathutil.Vec3) Camera {
	return Camera{Eye: eye, Target: target, Up: mathutil.Vec3{0, 1, 0}, FovY: 60, Near: 0.1, Far: 100}
}

func (c Camera) View() mathutil.Mat4 {
	return mathutil.LookAt(c.Eye, c.Target, c.Up)
}

func (c Camera) Projection(aspect float64) mathutil.Mat4 {
	return mathutil.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// Basis returns the unit forward, right and up vectors of the image plane.
func (c Camera) Basis() (forward, right, up mathutil.Vec3) {
	forward = c.Target.Sub(c.Eye).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

// Orbit returns the camera with its eye rotated deg degrees about the vertical axis
// through Target.
func (c Camera) Orbit(deg float64) Camera {
	rot := mathutil.RotY(mathutil.Deg2Rad(deg))
	c.Eye = c.Target.Add(rot.MulVec3(c.Eye.Sub(c.Target)))
	return c
}

// Aspect returns w/h, or 1 for an empty image.
func Aspect(w, h int) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return float64(w) / float64(h)
}

// halfHeight is tan(fov/2), the image-plane half extent at unit distance.
func (c Camera) halfHeight() float64 {
	return math.Tan(mathutil.Deg2Rad(c.FovY) / 2)
}

// RayThrough returns the primary ray through the image-plane point (nx, ny) in [-1,1]².
func (c Camera) RayThrough(nx, ny, aspect float64) Ray {
	forward, right, up := c.Basis()
	h := c.halfHeight()
	dir := forward.
		Add(right.Scale(nx * h * aspect)).
		Add(up.Scale(ny * h))
	return Ray{Origin: c.Eye, Direction: dir.Normalize()}
}
