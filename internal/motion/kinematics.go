package motion

import (
	"math"
	"strings"

	"github.com/normanking/motionsynth/internal/skeleton"
)

// legCompensation flexes the leg chain in response to hip vertical sway
// so a sinking hip reads as a coherent crouch instead of uncorrelated
// leg motion. The knee bends in the opposite sense with a larger
// magnitude; the ankle compensates part of the way back.
func legCompensation(bone skeleton.BoneID, hipDeltaY float64, syn skeleton.SynergyProfile, out *euler) {
	flex := -hipDeltaY * syn.HipDropLegFlex

	name := string(bone)
	switch {
	case strings.Contains(name, "UpperLeg"):
		out.X += flex
	case strings.Contains(name, "LowerLeg"):
		out.X -= flex * syn.LowerLegRatio
	case strings.Contains(name, "Foot"):
		out.X += flex * syn.FootRatio
	}
	// Toes ride the foot; no extra correction.
}

// fingerOrder gives each finger its ripple slot: index leads, little
// trails. The thumb sits past the little finger and is handled apart.
var fingerOrder = map[string]float64{
	"Index":  0,
	"Middle": 1,
	"Ring":   2,
	"Little": 3,
}

// fingerRipple curls finger segments as a travelling wave across the
// hand. Segment depth attenuates the curl so distal joints trail with
// smaller amplitude. The thumb opposes on a different axis at half
// amplitude.
func fingerRipple(bone skeleton.BoneID, t, omega, energy float64, syn skeleton.SynergyProfile, out *euler) {
	name := string(bone)

	depth := 1.0
	switch {
	case strings.Contains(name, "Intermediate"):
		depth = 0.8
	case strings.Contains(name, "Distal"):
		depth = 0.6
	}

	if strings.Contains(name, "Thumb") {
		phase := omega*t + 4*syn.FingerPhaseStep
		out.Z += math.Sin(phase) * syn.FingerCurlAmp * 0.5 * depth * energy
		return
	}

	for finger, slot := range fingerOrder {
		if strings.Contains(name, finger) {
			phase := omega*t + slot*syn.FingerPhaseStep
			out.X += math.Sin(phase) * syn.FingerCurlAmp * depth * energy
			return
		}
	}
}
