package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// euler is a per-bone working rotation in degrees, XYZ order.
type euler struct {
	X, Y, Z float64
}

func (e *euler) axis(a int) *float64 {
	switch a {
	case 0:
		return &e.X
	case 1:
		return &e.Y
	default:
		return &e.Z
	}
}

// quatFromEuler composes Rx*Ry*Rz from degrees and normalizes.
func quatFromEuler(e euler) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(e.X), mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(mgl64.DegToRad(e.Y), mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(mgl64.DegToRad(e.Z), mgl64.Vec3{0, 0, 1})
	return qx.Mul(qy).Mul(qz).Normalize()
}

// eulerFromQuat inverts quatFromEuler. Extraction follows the Rx*Ry*Rz
// matrix layout: m02 = sin(y), with the usual gimbal guard at |y| = 90.
func eulerFromQuat(q mgl64.Quat) euler {
	m := q.Normalize().Mat4()

	sy := clampf(m.At(0, 2), -1, 1)
	y := math.Asin(sy)

	var x, z float64
	if math.Abs(sy) < 0.99999 {
		x = math.Atan2(-m.At(1, 2), m.At(2, 2))
		z = math.Atan2(-m.At(0, 1), m.At(0, 0))
	} else {
		x = math.Atan2(m.At(2, 1), m.At(1, 1))
		z = 0
	}

	return euler{
		X: mgl64.RadToDeg(x),
		Y: mgl64.RadToDeg(y),
		Z: mgl64.RadToDeg(z),
	}
}

// clampAngle bounds one axis to the given symmetric envelope in degrees.
// Clamping an in-range value is a no-op.
func clampAngle(deg, bound float64) float64 {
	return clampf(deg, -bound, bound)
}

func clampf(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
