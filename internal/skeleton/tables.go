package skeleton

// Axis indexes into per-axis arrays (pitch, yaw, roll).
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// LimitKey addresses one entry in the rotation-limit and dynamics tables.
// Keys use snake_case with an _L/_R side suffix for sided segments.
type LimitKey string

// LimitEntry is the allowed rotation range of one joint, in degrees.
// Ranges are closed intervals; LimitBuffer is subtracted from each end at
// use time so clamped motion never parks on a hard mechanical stop.
type LimitEntry struct {
	Min     [3]float64
	Max     [3]float64
	Primary Axis
}

// LimitBuffer narrows table limits at use time, in degrees.
const LimitBuffer = 5.0

// SafetyEnvelope is the generic per-axis bound applied to every bone as
// the final clamping step, in degrees.
const SafetyEnvelope = 170.0

// DynamicsEntry holds observed angular speeds of one joint in deg/s.
// Used only to scale noise amplitude, never to limit motion.
type DynamicsEntry struct {
	AvgSpeed float64
	MaxSpeed float64
}

// LagProfile models kinetic-chain follow-through as fixed delays in
// seconds. Delays compose additively down the chain.
type LagProfile struct {
	HipsToChest    float64
	ChestToHead    float64
	ShoulderToHand float64
	ShoulderOffset float64 // fixed extra from chest to shoulder girdle
	FingerExtra    float64 // fixed extra beyond the hand for finger joints
}

// SynergyProfile couples otherwise-independent joints.
type SynergyProfile struct {
	// HipDropLegFlex converts hip vertical delta (scene units, positive
	// up) into upper-leg flexion degrees.
	HipDropLegFlex float64
	// LowerLegRatio and FootRatio scale the knee and ankle response
	// relative to upper-leg flexion. The knee bends in the opposite
	// sense and overshoots.
	LowerLegRatio float64
	FootRatio     float64
	// FingerPhaseStep is the per-finger phase offset (radians) that
	// ripples curl across the hand instead of curling in lockstep.
	FingerPhaseStep float64
	// FingerCurlAmp is the base curl amplitude in degrees.
	FingerCurlAmp float64
}

// EnergyProfile distributes gesture energy between body regions.
type EnergyProfile struct {
	SpineCoupling float64 // spine/chest share of limb energy
	HeadCoupling  float64 // head counter-rotation share
	PassiveArm    float64 // sympathetic motion on the non-gesturing arm
}

// Tables bundles every static biomechanical table. Built once, read-only
// afterwards; safe to share between concurrent generators.
type Tables struct {
	limits   map[LimitKey]LimitEntry
	dynamics map[LimitKey]DynamicsEntry
	limitKey map[BoneID]LimitKey // exact matches for torso/arm/leg segments

	Lag     LagProfile
	Synergy SynergyProfile
	Energy  EnergyProfile
}

// NewTables builds the immutable biomechanical tables.
func NewTables() *Tables {
	t := &Tables{
		limits:   make(map[LimitKey]LimitEntry),
		dynamics: make(map[LimitKey]DynamicsEntry),
		limitKey: make(map[BoneID]LimitKey),
		Lag: LagProfile{
			HipsToChest:    0.06,
			ChestToHead:    0.05,
			ShoulderToHand: 0.09,
			ShoulderOffset: 0.02,
			FingerExtra:    0.02,
		},
		Synergy: SynergyProfile{
			HipDropLegFlex:  260,
			LowerLegRatio:   1.75,
			FootRatio:       0.8,
			FingerPhaseStep: 0.45,
			FingerCurlAmp:   6,
		},
		Energy: EnergyProfile{
			SpineCoupling: 0.35,
			HeadCoupling:  0.25,
			PassiveArm:    0.2,
		},
	}

	t.addCenter("hips", Hips, lim(-35, 35, -45, 45, -30, 30, AxisX), dyn(40, 180))
	t.addCenter("spine", Spine, lim(-35, 40, -35, 35, -30, 30, AxisX), dyn(45, 200))
	t.addCenter("chest", Chest, lim(-30, 35, -30, 30, -25, 25, AxisX), dyn(50, 220))
	t.limitKey[UpperChest] = "chest"
	t.addCenter("neck", Neck, lim(-40, 45, -55, 55, -35, 35, AxisX), dyn(70, 320))
	t.addCenter("head", Head, lim(-45, 50, -70, 70, -40, 40, AxisY), dyn(90, 430))

	t.addSided("shoulder", LeftShoulder, RightShoulder,
		lim(-20, 25, -25, 25, -30, 30, AxisZ), dyn(55, 260))
	t.addSided("upper_arm", LeftUpperArm, RightUpperArm,
		lim(-60, 130, -90, 95, -130, 50, AxisZ), dyn(120, 540))
	t.addSided("lower_arm", LeftLowerArm, RightLowerArm,
		lim(-10, 145, -80, 80, -50, 50, AxisY), dyn(160, 700))
	t.addSided("hand", LeftHand, RightHand,
		lim(-70, 80, -25, 30, -55, 55, AxisX), dyn(180, 900))

	t.addSided("upper_leg", LeftUpperLeg, RightUpperLeg,
		lim(-110, 25, -45, 45, -40, 40, AxisX), dyn(90, 420))
	t.addSided("lower_leg", LeftLowerLeg, RightLowerLeg,
		lim(-5, 140, -10, 10, -10, 10, AxisX), dyn(110, 520))
	t.addSided("foot", LeftFoot, RightFoot,
		lim(-45, 25, -25, 25, -20, 20, AxisX), dyn(80, 400))

	// Finger segments share one limit/dynamics shape per segment depth.
	fingerLims := map[string]LimitEntry{
		"metacarpal":   lim(-10, 25, -15, 25, -20, 20, AxisZ),
		"proximal":     lim(-95, 20, -12, 12, -8, 8, AxisX),
		"intermediate": lim(-110, 5, -3, 3, -3, 3, AxisX),
		"distal":       lim(-80, 5, -3, 3, -3, 3, AxisX),
	}
	fingerDyn := dyn(210, 1100)
	for _, finger := range []string{"thumb", "index", "middle", "ring", "little"} {
		segs := []string{"proximal", "intermediate", "distal"}
		if finger == "thumb" {
			segs = []string{"metacarpal", "proximal", "distal"}
		}
		for _, seg := range segs {
			for _, side := range []string{"_L", "_R"} {
				key := LimitKey(finger + "_" + seg + side)
				t.limits[key] = fingerLims[seg]
				t.dynamics[key] = fingerDyn
			}
		}
	}

	return t
}

func lim(xmin, xmax, ymin, ymax, zmin, zmax float64, primary Axis) LimitEntry {
	return LimitEntry{
		Min:     [3]float64{xmin, ymin, zmin},
		Max:     [3]float64{xmax, ymax, zmax},
		Primary: primary,
	}
}

func dyn(avg, max float64) DynamicsEntry {
	return DynamicsEntry{AvgSpeed: avg, MaxSpeed: max}
}

func (t *Tables) addCenter(key LimitKey, bone BoneID, l LimitEntry, d DynamicsEntry) {
	t.limits[key] = l
	t.dynamics[key] = d
	t.limitKey[bone] = key
}

func (t *Tables) addSided(stem string, left, right BoneID, l LimitEntry, d DynamicsEntry) {
	t.limits[LimitKey(stem+"_L")] = l
	t.limits[LimitKey(stem+"_R")] = l
	t.dynamics[LimitKey(stem+"_L")] = d
	t.dynamics[LimitKey(stem+"_R")] = d
	t.limitKey[left] = LimitKey(stem + "_L")
	t.limitKey[right] = LimitKey(stem + "_R")
}

// Limit returns the table entry for a key.
func (t *Tables) Limit(key LimitKey) (LimitEntry, bool) {
	l, ok := t.limits[key]
	return l, ok
}

// Dynamics returns the angular-speed entry for a bone, falling back to a
// generic profile when the bone resolves to no table entry.
func (t *Tables) Dynamics(bone BoneID) DynamicsEntry {
	if key, ok := t.ResolveLimitKey(bone); ok {
		if d, ok := t.dynamics[key]; ok {
			return d
		}
	}
	return DynamicsEntry{AvgSpeed: 80, MaxSpeed: 360}
}
