package mathutil

import "math"

// Translation returns the affine matrix moving points by (x, y, z).
func Translation(x, y, z float64) Mat4 {
	return Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// Scale returns the matrix scaling each axis independently.
func Scale(x, y, z float64) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Rotation builds Rx(pitch) × Ry(yaw) × Rz(roll) from angles in degrees.
// The multiplication order is fixed; callers and stored scenes depend on it.
func Rotation(pitch, yaw, roll float64) Mat4 {
	var zero Vec3
	rx := FromMat3Translation(RotX(Deg2Rad(pitch)), zero)
	ry := FromMat3Translation(RotY(Deg2Rad(yaw)), zero)
	rz := FromMat3Translation(RotZ(Deg2Rad(roll)), zero)
	return Mat4Mul(Mat4Mul(rx, ry), rz)
}

// ModelMatrix composes translation × rotation × scale for an object placed in the world.
// Rotation is given in degrees as (pitch, yaw, roll).
func ModelMatrix(translation, rotationDeg, scale Vec3) Mat4 {
	t := Translation(translation[0], translation[1], translation[2])
	r := Rotation(rotationDeg[0], rotationDeg[1], rotationDeg[2])
	s := Scale(scale[0], scale[1], scale[2])
	return Mat4Mul(Mat4Mul(t, r), s)
}

// LookAt builds the world-to-camera matrix. The camera looks down its local -Z.
// Colinear or zero-length inputs produce NaNs; callers must avoid them.
func LookAt(eye, target, up Vec3) Mat4 {
	forward := eye.Sub(target)
	forward = forward.Scale(1 / forward.Len())
	right := up.Cross(forward)
	right = right.Scale(1 / right.Len())
	trueUp := forward.Cross(right)

	basis := Mat4{
		right[0], right[1], right[2], 0,
		trueUp[0], trueUp[1], trueUp[2], 0,
		forward[0], forward[1], forward[2], 0,
		0, 0, 0, 1,
	}
	return Mat4Mul(basis, Translation(-eye[0], -eye[1], -eye[2]))
}

// Perspective returns an OpenGL-style projection. Camera-space -Z maps to clip W, and after
// the perspective divide depth runs monotonically from -1 at near to +1 at far.
func Perspective(fovYDeg, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(Deg2Rad(fovYDeg)/2)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / (near - far), (2 * far * near) / (near - far),
		0, 0, -1, 0,
	}
}

// Viewport maps NDC [-1,1] to pixels inside (x, y, w, h) and depth to [0,1].
func Viewport(x, y, w, h float64) Mat4 {
	return Mat4{
		w / 2, 0, 0, x + w/2,
		0, h / 2, 0, y + h/2,
		0, 0, 0.5, 0.5,
		0, 0, 0, 1,
	}
}
