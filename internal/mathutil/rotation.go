package mathutil

import "math"

// Mat3 is a row-major 3×3 matrix. It only carries pure rotations here; Rotation lifts
// them into Mat4 for the model transform.
type Mat3 [9]float64

func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// RotX rotates about +X by a radians, counter-clockwise looking down the axis.
func RotX(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{1, 0, 0, 0, c, -s, 0, s, c}
}

func RotY(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{c, 0, s, 0, 1, 0, -s, 0, c}
}

func RotZ(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{c, -s, 0, s, c, 0, 0, 0, 1}
}

func Deg2Rad(d float64) float64 { return d * math.Pi / 180 }
