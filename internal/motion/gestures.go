package motion

import (
	"math"
	"strings"

	"github.com/normanking/motionsynth/internal/skeleton"
)

// frameContext carries the per-frame, per-bone terms every gesture
// solver consumes.
type frameContext struct {
	t       float64 // seconds since clip start
	omega   float64 // 2*pi*frequency
	energy  float64
	core    float64 // caller-supplied core-coupling multiplier
	lag     float64 // cumulative kinetic-chain lag for this bone
	emotion Emotion
}

// lagged is the bone's delayed oscillation phase.
func (fc frameContext) lagged() float64 {
	return fc.omega * (fc.t - fc.lag)
}

// gestureFunc adds one gesture's angular offsets for a single bone at a
// single instant. Solvers only touch bones they care about.
type gestureFunc func(e *Engine, bone skeleton.BoneID, fc frameContext, out *euler)

func buildGestureRegistry() map[MotionType]gestureFunc {
	return map[MotionType]gestureFunc{
		MotionWave:   gestureWave,
		MotionPoint:  gesturePoint,
		MotionIdle:   gestureBreath,
		MotionBreath: gestureBreath,
		MotionShrug:  gestureShrug,
		MotionNod:    gestureNod,
		MotionShake:  gestureShake,
	}
}

func sideSign(bone skeleton.BoneID) float64 {
	if skeleton.SideOf(bone) == skeleton.SideLeft {
		return 1
	}
	return -1
}

// gestureWave drives the right arm through a biologically-eased
// oscillation; the torso receives a coupled fraction of that energy and
// the head counter-rotates with its accumulated lag.
func gestureWave(e *Engine, bone skeleton.BoneID, fc frameContext, out *euler) {
	energy := fc.energy
	phase := fc.lagged()

	switch bone {
	case skeleton.RightShoulder:
		out.Z -= bioSin(phase) * 6 * energy
	case skeleton.RightUpperArm:
		// Static raise puts the arm up; the oscillation rides on top.
		out.Z -= 68 * energy
		out.Z -= bioSin(phase) * 10 * energy
	case skeleton.RightLowerArm:
		out.Y += bioSin(phase) * 42 * energy
		out.Z -= bioSin(phase+0.3) * 22 * energy
	case skeleton.RightHand:
		out.Z -= bioSin(phase+0.6) * 28 * energy
	case skeleton.LeftUpperArm:
		// Sympathetic sway on the passive arm, same base frequency,
		// no lag term.
		out.Z += math.Sin(fc.omega*fc.t) * 15 * energy * e.tables.Energy.PassiveArm
	case skeleton.LeftLowerArm:
		out.Y -= math.Sin(fc.omega*fc.t) * 10 * energy * e.tables.Energy.PassiveArm
	case skeleton.Spine, skeleton.Chest, skeleton.UpperChest:
		out.Z += math.Sin(phase) * 8 * e.tables.Energy.SpineCoupling * energy * fc.core
	case skeleton.Head:
		out.Z -= bioSin(phase) * 16 * e.tables.Energy.HeadCoupling * energy
	}
}

// gesturePoint holds a fixed forward arm target with the index finger
// extended and the remaining fingers curled; only the torso breathing
// component and the passive arm vary with time.
func gesturePoint(e *Engine, bone skeleton.BoneID, fc frameContext, out *euler) {
	energy := fc.energy
	name := string(bone)

	switch bone {
	case skeleton.RightShoulder:
		out.Z -= 8 * energy
	case skeleton.RightUpperArm:
		out.Z -= 78 * energy
		out.X += 6 * energy
	case skeleton.RightLowerArm:
		out.Y -= 12 * energy
	case skeleton.RightHand:
		out.X -= 4 * energy
	case skeleton.LeftUpperArm:
		out.Z += math.Sin(fc.omega*fc.t) * 10 * energy * e.tables.Energy.PassiveArm
	case skeleton.Spine, skeleton.Chest, skeleton.UpperChest:
		out.X += math.Sin(fc.lagged()*0.5) * 1.2 * energy * fc.core
	case skeleton.Head:
		out.X -= math.Sin(fc.lagged()*0.5) * 0.8 * energy
	}

	if skeleton.SideOf(bone) != skeleton.SideRight || skeleton.ClassOf(bone) != skeleton.ClassFinger {
		return
	}
	switch {
	case strings.Contains(name, "Index"):
		// Extended; cancel the ambient ripple so the finger stays flat.
		out.X = 0
	case strings.Contains(name, "Thumb"):
		out.Z -= 18
	case strings.Contains(name, "Proximal"):
		out.X -= 85
	case strings.Contains(name, "Intermediate"):
		out.X -= 92
	case strings.Contains(name, "Distal"):
		out.X -= 45
	}
}

// breathParams is the emotion-gated shape of the idle solver.
type breathParams struct {
	amp   float64 // breath amplitude multiplier
	speed float64 // breath rate multiplier
}

var breathByEmotion = map[Emotion]breathParams{
	EmotionNeutral: {amp: 1.0, speed: 1.0},
	EmotionHappy:   {amp: 1.1, speed: 1.12},
	EmotionSad:     {amp: 0.8, speed: 0.82},
	EmotionAlert:   {amp: 0.6, speed: 1.25},
	EmotionTired:   {amp: 1.18, speed: 0.72},
	EmotionNervous: {amp: 1.45, speed: 1.6},
}

// breathStaticOffset is the fixed postural component of an emotion:
// sad slumps chest and head and drops the shoulders, alert straightens
// the spine, tired lets the head hang. Nervous and happy carry no
// static posture; they differ only in breath shape (and, for nervous,
// the global noise boost applied by the assembler).
func breathStaticOffset(emotion Emotion, bone skeleton.BoneID, out *euler) {
	switch emotion {
	case EmotionSad:
		switch bone {
		case skeleton.Chest, skeleton.UpperChest:
			out.X += 6
		case skeleton.Head:
			out.X += 8
		case skeleton.LeftShoulder, skeleton.RightShoulder:
			out.Z -= sideSign(bone) * 4
		}
	case EmotionAlert:
		switch bone {
		case skeleton.Spine, skeleton.Chest, skeleton.UpperChest:
			out.X -= 2
		case skeleton.Head:
			out.X -= 3
		}
	case EmotionTired:
		switch bone {
		case skeleton.Head:
			out.X += 5
		case skeleton.Chest, skeleton.UpperChest:
			out.X += 3
		}
	}
}

// gestureBreath is the idle solver: emotion-gated breathing on the
// spine chain, shoulders and head.
func gestureBreath(e *Engine, bone skeleton.BoneID, fc frameContext, out *euler) {
	p, ok := breathByEmotion[fc.emotion]
	if !ok {
		p = breathByEmotion[EmotionNeutral]
	}
	breathStaticOffset(fc.emotion, bone, out)

	phase := fc.lagged() * p.speed
	gain := fc.energy * p.amp

	switch bone {
	case skeleton.Spine:
		out.X += math.Sin(phase) * 1.4 * gain * fc.core
	case skeleton.Chest, skeleton.UpperChest:
		out.X += math.Sin(phase) * 2.2 * gain * fc.core
	case skeleton.LeftShoulder, skeleton.RightShoulder:
		out.Z += sideSign(bone) * math.Sin(phase) * 1.2 * gain
	case skeleton.Neck:
		out.X += math.Sin(phase) * 0.6 * gain
	case skeleton.Head:
		out.X += math.Sin(phase) * 1.0 * gain
	}
}

// gestureShrug is a single bell-shaped pulse: sin^2 rises and falls once
// per call rather than oscillating. A clip of duration 2/frequency spans
// exactly one pulse.
func gestureShrug(e *Engine, bone skeleton.BoneID, fc frameContext, out *euler) {
	s := math.Sin(fc.omega * fc.t / 4)
	pulse := s * s * fc.energy

	switch bone {
	case skeleton.LeftShoulder, skeleton.RightShoulder:
		out.Z += sideSign(bone) * 14 * pulse
	case skeleton.LeftUpperArm, skeleton.RightUpperArm:
		out.Z += sideSign(bone) * 9 * pulse
		out.Y += sideSign(bone) * 6 * pulse
	case skeleton.LeftHand, skeleton.RightHand:
		out.Y += sideSign(bone) * 10 * pulse
		out.X -= 8 * pulse
	case skeleton.Head:
		// Secondary faster wobble while the shoulders are up.
		out.X += math.Sin(fc.omega*fc.t*3) * 1.5 * pulse
	}
}

// gestureNod pitches head and neck at double the base frequency, neck at
// half amplitude.
func gestureNod(e *Engine, bone skeleton.BoneID, fc frameContext, out *euler) {
	s := math.Sin(2 * fc.omega * fc.t)
	switch bone {
	case skeleton.Head:
		out.X += s * 12 * fc.energy
	case skeleton.Neck:
		out.X += s * 6 * fc.energy
	}
}

// gestureShake yaws head and neck at double the base frequency, neck at
// half amplitude.
func gestureShake(e *Engine, bone skeleton.BoneID, fc frameContext, out *euler) {
	s := math.Sin(2 * fc.omega * fc.t)
	switch bone {
	case skeleton.Head:
		out.Y += s * 14 * fc.energy
	case skeleton.Neck:
		out.Y += s * 7 * fc.energy
	}
}
