package motion

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/normanking/motionsynth/internal/skeleton"
)

// BonePose is one bone's base rotation, supplied either as a quaternion
// (x, y, z, w) or as already-decomposed Euler degrees. Exactly one
// representation must be set; the engine normalizes to Euler internally.
type BonePose struct {
	Quat  *[4]float64
	Euler *[3]float64
}

// QuatPose builds a quaternion-form bone pose.
func QuatPose(x, y, z, w float64) BonePose {
	return BonePose{Quat: &[4]float64{x, y, z, w}}
}

// EulerPose builds a degree-form bone pose.
func EulerPose(x, y, z float64) BonePose {
	return BonePose{Euler: &[3]float64{x, y, z}}
}

// Pose is the caller-supplied base pose. Absent bones default to a zero
// Euler triple; Root optionally places the hips in scene units.
type Pose struct {
	Bones map[skeleton.BoneID]BonePose
	Root  *[3]float64
}

// validate rejects malformed bone entries up front. Silent fallback here
// would mask caller bugs as identity motion.
func (p Pose) validate() error {
	for bone, bp := range p.Bones {
		switch {
		case bp.Quat == nil && bp.Euler == nil:
			return fmt.Errorf("pose bone %q: rotation must be a quaternion or an euler triple", bone)
		case bp.Quat != nil && bp.Euler != nil:
			return fmt.Errorf("pose bone %q: rotation is both quaternion and euler", bone)
		case bp.Quat != nil:
			q := *bp.Quat
			norm := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
			if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
				return fmt.Errorf("pose bone %q: degenerate quaternion", bone)
			}
		default:
			for _, v := range *bp.Euler {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("pose bone %q: non-finite euler angle", bone)
				}
			}
		}
	}
	return nil
}

// baseEuler resolves the bone's base rotation in degrees.
func (p Pose) baseEuler(bone skeleton.BoneID) euler {
	bp, ok := p.Bones[bone]
	if !ok {
		return euler{}
	}
	if bp.Euler != nil {
		return euler{X: bp.Euler[0], Y: bp.Euler[1], Z: bp.Euler[2]}
	}
	q := mgl64.Quat{
		W: bp.Quat[3],
		V: mgl64.Vec3{bp.Quat[0], bp.Quat[1], bp.Quat[2]},
	}
	return eulerFromQuat(q)
}

func (p Pose) rootPosition() [3]float64 {
	if p.Root != nil {
		return *p.Root
	}
	return [3]float64{}
}
