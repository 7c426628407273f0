package motion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBioSinStaysInUnitRange(t *testing.T) {
	for phase := -10.0; phase <= 10.0; phase += 0.01 {
		v := bioSin(phase)
		assert.LessOrEqual(t, math.Abs(v), 1.0, "phase %f", phase)
	}
}

func TestBioSinSharesSineZerosAndPeaks(t *testing.T) {
	assert.InDelta(t, 0, bioSin(0), 1e-12)
	assert.InDelta(t, 0, bioSin(math.Pi), 1e-12)
	assert.InDelta(t, 1, bioSin(math.Pi/2), 1e-12)
	assert.InDelta(t, -1, bioSin(-math.Pi/2), 1e-12)
}

func TestBioSinEasesThroughZeroCrossings(t *testing.T) {
	// Near a zero crossing the warped signal must move slower than the
	// raw sine; near the peak it catches up.
	small := 0.2
	assert.Less(t, math.Abs(bioSin(small)), math.Abs(math.Sin(small)))
}

func TestNoiseDeterministic(t *testing.T) {
	for _, tc := range []struct{ t, off, amp float64 }{
		{0, 0, 1}, {1.5, 7.13, 2}, {10, 3.3, 0.5},
	} {
		assert.Equal(t, noise(tc.t, tc.off, tc.amp), noise(tc.t, tc.off, tc.amp))
	}
}

func TestNoiseLinearInAmplitude(t *testing.T) {
	a := noise(2.2, 1.0, 1.0)
	b := noise(2.2, 1.0, 2.0)
	assert.InDelta(t, 2*a, b, 1e-12)
	assert.Equal(t, 0.0, noise(2.2, 1.0, 0))
}

func TestEulerQuatRoundTrip(t *testing.T) {
	cases := []euler{
		{},
		{X: 30},
		{Y: -45},
		{Z: 120},
		{X: 20, Y: -35, Z: 60},
		{X: -160, Y: 10, Z: 165},
	}
	for _, want := range cases {
		got := eulerFromQuat(quatFromEuler(want))
		assert.InDelta(t, want.X, got.X, 1e-9, "case %+v", want)
		assert.InDelta(t, want.Y, got.Y, 1e-9, "case %+v", want)
		assert.InDelta(t, want.Z, got.Z, 1e-9, "case %+v", want)
	}
}

func TestQuatFromEulerIsUnit(t *testing.T) {
	q := quatFromEuler(euler{X: 123, Y: -45, Z: 77})
	norm := math.Sqrt(q.W*q.W + q.V[0]*q.V[0] + q.V[1]*q.V[1] + q.V[2]*q.V[2])
	assert.InDelta(t, 1.0, norm, 1e-12)
}
