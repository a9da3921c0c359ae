package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pymovements/pymovements/internal/events"
	"github.com/pymovements/pymovements/internal/gaze"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"blink", "fill", "idt", "ivt", "microsaccades", "out_of_screen"}, Names())
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		fn, ok := Lookup(name)
		assert.True(t, ok, name)
		assert.NotNil(t, fn, name)
	}

	_, ok := Lookup("no_such_detector")
	assert.False(t, ok)
}

func TestRegistry_DispatchesIVT(t *testing.T) {
	fn, ok := Lookup("ivt")
	require.True(t, ok)

	opts := DefaultOptions()
	opts.IVT.MinimumDuration = 3

	in := Input{Velocities: constantVelocities(10, 5)}
	evs, err := fn(in, opts)
	require.NoError(t, err)
	assert.Equal(t, events.List{{Name: "fixation", Onset: 0, Offset: 9}}, evs)
}

func TestRegistry_DispatchesFillWithPrior(t *testing.T) {
	fn, ok := Lookup("fill")
	require.True(t, ok)

	in := Input{
		Times: []int64{0, 1, 2, 3, 4},
		Prior: events.List{{Name: "fixation", Onset: 0, Offset: 2}},
	}
	evs, err := fn(in, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, events.List{{Name: "unclassified", Onset: 3, Offset: 4}}, evs)
}

func TestRegistry_MissingInputs(t *testing.T) {
	tests := []struct {
		detector string
		in       Input
		errMsg   string
	}{
		{"ivt", Input{Positions: []gaze.Point{{X: 1, Y: 1}}}, "requires velocities"},
		{"microsaccades", Input{}, "requires velocities"},
		{"idt", Input{Velocities: []gaze.Point{{X: 1, Y: 1}}}, "requires positions"},
		{"out_of_screen", Input{}, "requires positions"},
		{"blink", Input{}, "requires a pupil signal"},
		{"fill", Input{}, "requires timesteps"},
	}

	for _, tt := range tests {
		t.Run(tt.detector, func(t *testing.T) {
			fn, ok := Lookup(tt.detector)
			require.True(t, ok)
			_, err := fn(tt.in, DefaultOptions())
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestCandidateRuns(t *testing.T) {
	tests := []struct {
		name string
		mask []bool
		want []run
	}{
		{"empty", nil, nil},
		{"all false", []bool{false, false}, nil},
		{"all true", []bool{true, true, true}, []run{{0, 2}}},
		{"two runs", []bool{true, false, true, true}, []run{{0, 0}, {2, 3}}},
		{"trailing run", []bool{false, true}, []run{{1, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, candidateRuns(tt.mask))
		})
	}
}

func TestFilterRunsByDuration(t *testing.T) {
	times := []int64{0, 10, 20, 30, 40, 50}
	runs := []run{{0, 0}, {1, 3}, {4, 5}}

	assert.Equal(t, []run{{1, 3}, {4, 5}}, filterRunsByDuration(runs, times, 10, -1))
	assert.Equal(t, []run{{4, 5}}, filterRunsByDuration(runs, times, 10, 15))
	assert.Equal(t, []run{{0, 0}, {1, 3}, {4, 5}}, filterRunsByDuration(runs, times, 0, -1))
	assert.Empty(t, filterRunsByDuration(runs, times, 100, -1))
}

func TestResolveTimesteps(t *testing.T) {
	times, err := resolveTimesteps(3, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2}, times)

	explicit := []int64{5, 6, 7}
	times, err = resolveTimesteps(3, explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, times)

	_, err = resolveTimesteps(3, []int64{1})
	assert.ErrorContains(t, err, "must match sample count")
}
