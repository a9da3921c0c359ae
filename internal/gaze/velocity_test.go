package gaze

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rampSeries moves one unit per sample along x at the given rate.
func rampSeries(t *testing.T, n int, rate float64) *Series {
	t.Helper()
	samples := make([]Sample, n)
	for i := range samples {
		samples[i] = Sample{Time: int64(i), X: float64(i), Y: 0}
	}
	s, err := NewSeries(samples, rate, UnitDegrees)
	require.NoError(t, err)
	return s
}

func TestVelocity_Preceding(t *testing.T) {
	s := rampSeries(t, 5, 10)

	vel, err := Velocity(s, VelocityPreceding)
	require.NoError(t, err)
	require.Len(t, vel, 5)

	assert.True(t, vel[0].IsNaN(), "first sample has no predecessor")
	for i := 1; i < 5; i++ {
		assert.InDelta(t, 10.0, vel[i].X, 1e-12)
		assert.InDelta(t, 0.0, vel[i].Y, 1e-12)
	}
}

func TestVelocity_Neighbors(t *testing.T) {
	s := rampSeries(t, 5, 10)

	vel, err := Velocity(s, VelocityNeighbors)
	require.NoError(t, err)

	assert.True(t, vel[0].IsNaN())
	assert.True(t, vel[4].IsNaN())
	for i := 1; i < 4; i++ {
		assert.InDelta(t, 10.0, vel[i].X, 1e-12)
	}
}

func TestVelocity_FivePoint(t *testing.T) {
	s := rampSeries(t, 7, 10)

	vel, err := Velocity(s, VelocityFivePoint)
	require.NoError(t, err)

	for _, i := range []int{0, 1, 5, 6} {
		assert.True(t, vel[i].IsNaN(), "index %d lacks the five-point stencil", i)
	}
	// (p[i+2] + p[i+1] - p[i-1] - p[i-2]) / 6 * rate = 6/6 * 10 on a ramp.
	for i := 2; i < 5; i++ {
		assert.InDelta(t, 10.0, vel[i].X, 1e-12)
	}
}

func TestVelocity_NaNPropagation(t *testing.T) {
	samples := []Sample{
		{Time: 0, X: 0}, {Time: 1, X: math.NaN()}, {Time: 2, X: 2}, {Time: 3, X: 3},
	}
	s, err := NewSeries(samples, 1, UnitDegrees)
	require.NoError(t, err)

	vel, err := Velocity(s, VelocityPreceding)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(vel[1].X), "difference into a NaN position is NaN")
	assert.True(t, math.IsNaN(vel[2].X), "difference out of a NaN position is NaN")
	assert.InDelta(t, 1.0, vel[3].X, 1e-12)
}

func TestVelocity_Errors(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		method VelocityMethod
		errMsg string
	}{
		{name: "unknown method", n: 10, method: "sobel", errMsg: "unknown velocity method"},
		{name: "too short for preceding", n: 1, method: VelocityPreceding, errMsg: "at least 2 samples"},
		{name: "too short for fivepoint", n: 4, method: VelocityFivePoint, errMsg: "at least 5 samples"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Velocity(rampSeries(t, tt.n, 10), tt.method)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestMagnitude(t *testing.T) {
	mag := Magnitude([]Point{{X: 3, Y: 4}, {X: 0, Y: 0}})
	assert.Equal(t, []float64{5, 0}, mag)
}
