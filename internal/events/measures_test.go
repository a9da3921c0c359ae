package events

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pymovements/pymovements/internal/gaze"
)

func TestAmplitude(t *testing.T) {
	positions := []gaze.Point{
		{X: 0, Y: 0}, {X: 3, Y: 1}, {X: 1, Y: 4},
	}
	// xmax-xmin = 3, ymax-ymin = 4.
	assert.InDelta(t, 5.0, Amplitude(positions), 1e-12)
}

func TestDispersion(t *testing.T) {
	positions := []gaze.Point{
		{X: 0, Y: 0}, {X: 3, Y: 1}, {X: 1, Y: 4},
	}
	assert.InDelta(t, 7.0, Dispersion(positions), 1e-12)
}

func TestDispersion_SinglePoint(t *testing.T) {
	assert.Zero(t, Dispersion([]gaze.Point{{X: 2, Y: 3}}))
}

func TestDisposition(t *testing.T) {
	positions := []gaze.Point{
		{X: 0, Y: 0}, {X: 10, Y: -5}, {X: 3, Y: 4},
	}
	// Distance from first to last position only.
	assert.InDelta(t, 5.0, Disposition(positions), 1e-12)
}

func TestDisposition_SkipsNaNEndpoints(t *testing.T) {
	nan := math.NaN()
	positions := []gaze.Point{
		{X: nan, Y: nan}, {X: 0, Y: 0}, {X: 3, Y: 4}, {X: nan, Y: 0},
	}
	assert.InDelta(t, 5.0, Disposition(positions), 1e-12)
}

func TestLocation(t *testing.T) {
	positions := []gaze.Point{
		{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 10, Y: 4},
	}

	meanLoc, err := Location(positions, LocationMean)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, meanLoc.X, 1e-12)
	assert.InDelta(t, 2.0, meanLoc.Y, 1e-12)

	medianLoc, err := Location(positions, LocationMedian)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, medianLoc.X, 1e-12)
	assert.InDelta(t, 2.0, medianLoc.Y, 1e-12)
}

func TestLocation_UnknownMethod(t *testing.T) {
	_, err := Location([]gaze.Point{{X: 1, Y: 1}}, "mode")
	assert.ErrorContains(t, err, "unknown location method")
}

func TestLocation_AllNaN(t *testing.T) {
	nan := math.NaN()
	loc, err := Location([]gaze.Point{{X: nan, Y: nan}}, LocationMean)
	require.NoError(t, err)
	assert.True(t, loc.IsNaN())
}

func TestPeakVelocity(t *testing.T) {
	velocities := []gaze.Point{
		{X: 1, Y: 0}, {X: 3, Y: 4}, {X: 0, Y: 2},
	}
	assert.InDelta(t, 5.0, PeakVelocity(velocities), 1e-12)
}

func TestPeakVelocity_SkipsNaN(t *testing.T) {
	nan := math.NaN()
	velocities := []gaze.Point{
		{X: nan, Y: nan}, {X: 3, Y: 4},
	}
	assert.InDelta(t, 5.0, PeakVelocity(velocities), 1e-12)
}

func TestMeasures_NoValidSamples(t *testing.T) {
	nan := math.NaN()
	positions := []gaze.Point{{X: nan, Y: nan}}

	assert.True(t, math.IsNaN(Amplitude(positions)))
	assert.True(t, math.IsNaN(Dispersion(positions)))
	assert.True(t, math.IsNaN(Disposition(positions)))
	assert.True(t, math.IsNaN(PeakVelocity(positions)))
}

func TestMeasures_Empty(t *testing.T) {
	assert.True(t, math.IsNaN(Amplitude(nil)))
	assert.True(t, math.IsNaN(PeakVelocity(nil)))
}
