// Package motion synthesizes multi-bone animation clips from a single
// static pose. Solvers are pure functions over (bone, time, config);
// nothing is retained between calls except the biomechanical tables.
package motion

import "math"

// bioSin is a sine passed through a smoothstep-shaped magnitude warp.
// The warp slows the signal through its zero crossings, which reads as
// muscle ease-in/ease-out rather than constant angular velocity.
// Output stays in [-1, 1].
func bioSin(phase float64) float64 {
	s := math.Sin(phase)
	m := math.Abs(s)
	warped := m * m * (3 - 2*m)
	return math.Copysign(warped, s)
}

// noise is a three-octave sine sum with fixed inner phases, matching the
// 1 / 0.5 / 0.25 octave weights of the idle animator it grew out of.
// Deterministic for a given (t, offset): replays reproduce bit-identical
// motion because jitter is phase-seeded, never RNG-seeded.
func noise(t, offset, amplitude float64) float64 {
	t += offset
	n1 := math.Sin(t)
	n2 := math.Sin(t*2.3+1.7) * 0.5
	n3 := math.Sin(t*4.1+3.2) * 0.25
	return (n1 + n2 + n3) / 1.75 * amplitude
}
