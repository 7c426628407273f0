package motion

import (
	"fmt"
	"math"

	"github.com/normanking/motionsynth/internal/skeleton"
)

// Engine synthesizes clips against one immutable table set. Safe for
// concurrent use: every per-call value lives on the stack.
type Engine struct {
	tables   *skeleton.Tables
	gestures map[MotionType]gestureFunc
}

// New builds an engine. A nil tables argument loads the default
// biomechanical tables.
func New(tables *skeleton.Tables) *Engine {
	if tables == nil {
		tables = skeleton.NewTables()
	}
	return &Engine{
		tables:   tables,
		gestures: buildGestureRegistry(),
	}
}

// Tables exposes the engine's static tables (read-only).
func (e *Engine) Tables() *skeleton.Tables { return e.tables }

// hipMovers are the motion types whose root pass sways the hips.
func hipMoves(m MotionType) bool {
	return m == MotionWave || m == MotionIdle || m == MotionBreath
}

// noiseBaseScale converts a bone's average angular speed (deg/s) into a
// noise amplitude in degrees.
const noiseBaseScale = 0.02

// fingerNoiseReduction damps jitter on precision finger joints.
const fingerNoiseReduction = 10.0

// nervousNoiseBoost multiplies noise when the emotion is nervous.
const nervousNoiseBoost = 3.0

// Generate synthesizes a complete clip in one synchronous call: a hip
// position track plus one quaternion track per bone in the humanoid
// map. All tracks share identical, strictly increasing sample instants.
func (e *Engine) Generate(pose Pose, motionType MotionType, cfg Config) (*Clip, error) {
	if !ValidMotionType(motionType) {
		return nil, fmt.Errorf("unknown motion type %q", motionType)
	}
	cfg = cfg.normalized()
	if !ValidEmotion(cfg.Emotion) {
		return nil, fmt.Errorf("unknown emotion %q", cfg.Emotion)
	}
	if err := pose.validate(); err != nil {
		return nil, fmt.Errorf("invalid base pose: %w", err)
	}

	frames := int(math.Floor(cfg.Duration*cfg.FPS)) + 1
	dt := 1.0 / cfg.FPS
	omega := 2 * math.Pi * cfg.Frequency

	times := make([]float64, frames)
	for i := range times {
		times[i] = float64(i) * dt
	}

	clip := &Clip{
		Name:     string(motionType),
		Duration: cfg.Duration,
		Tracks:   make([]Track, 0, skeleton.BoneCount()+1),
	}

	// Root pass: hip sway/bob for the motion types that move the hips.
	// The per-frame vertical delta feeds the leg solver.
	hipDelta := make([]float64, frames)
	root := pose.rootPosition()
	rootValues := make([]float64, 0, frames*3)
	for i, t := range times {
		var sway, bob float64
		if hipMoves(motionType) {
			sway = math.Sin(omega*t*0.5) * 0.008 * cfg.Energy
			bob = math.Sin(omega*t) * 0.012 * cfg.Energy
		}
		hipDelta[i] = bob
		rootValues = append(rootValues, root[0]+sway, root[1]+bob, root[2])
	}
	clip.Tracks = append(clip.Tracks, Track{
		Name:   skeleton.TrackPath(skeleton.Hips) + ".position",
		Type:   TrackVector,
		Times:  times,
		Values: rootValues,
	})

	gesture := e.gestures[motionType]
	noiseGain := cfg.NoiseScale
	if cfg.Emotion == EmotionNervous {
		noiseGain *= nervousNoiseBoost
	}

	// Per-bone pass.
	for boneIdx, bone := range skeleton.AllBones() {
		base := pose.baseEuler(bone)
		class := skeleton.ClassOf(bone)
		lag := e.tables.CumulativeLag(bone)
		dynamics := e.tables.Dynamics(bone)

		// Table-driven limits are resolved here but only applied when
		// the caller opts in; the blanket envelope is the default so
		// arbitrary base poses are never fought by the tables.
		var tableLimit *skeleton.LimitEntry
		if key, ok := e.tables.ResolveLimitKey(bone); ok {
			if entry, found := e.tables.Limit(key); found {
				tableLimit = &entry
			}
		}

		noiseAmp := dynamics.AvgSpeed * noiseBaseScale * noiseGain
		if class == skeleton.ClassFinger {
			noiseAmp /= fingerNoiseReduction
		}
		noiseSeed := float64(boneIdx) * 7.13

		values := make([]float64, 0, frames*4)
		for i, t := range times {
			angles := base

			switch class {
			case skeleton.ClassLeg, skeleton.ClassFoot:
				legCompensation(bone, hipDelta[i], e.tables.Synergy, &angles)
			case skeleton.ClassFinger:
				fingerRipple(bone, t, omega, cfg.Energy, e.tables.Synergy, &angles)
			}

			gesture(e, bone, frameContext{
				t:       t,
				omega:   omega,
				energy:  cfg.Energy,
				core:    cfg.CoreCoupling,
				lag:     lag,
				emotion: cfg.Emotion,
			}, &angles)

			if noiseAmp != 0 {
				angles.X += noise(t*1.3, noiseSeed, noiseAmp)
				angles.Y += noise(t*1.1, noiseSeed+2.71, noiseAmp)
				angles.Z += noise(t*0.9, noiseSeed+5.42, noiseAmp)
			}

			for axis := 0; axis < 3; axis++ {
				v := angles.axis(axis)
				if cfg.UseTableLimits && tableLimit != nil {
					lo := tableLimit.Min[axis] + skeleton.LimitBuffer
					hi := tableLimit.Max[axis] - skeleton.LimitBuffer
					if lo > hi {
						// Range narrower than twice the buffer; pin to
						// its midpoint rather than inverting the clamp.
						lo = (tableLimit.Min[axis] + tableLimit.Max[axis]) / 2
						hi = lo
					}
					*v = clampf(*v, lo, hi)
				}
				*v = clampAngle(*v, skeleton.SafetyEnvelope)
			}

			q := quatFromEuler(angles)
			values = append(values, q.V[0], q.V[1], q.V[2], q.W)
		}

		clip.Tracks = append(clip.Tracks, Track{
			Name:   skeleton.TrackPath(bone) + ".quaternion",
			Type:   TrackQuaternion,
			Times:  times,
			Values: values,
		})
	}

	return clip, nil
}
