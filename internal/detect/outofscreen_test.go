package detect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pymovements/pymovements/internal/events"
	"github.com/pymovements/pymovements/internal/gaze"
)

func TestOutOfScreen(t *testing.T) {
	nan := math.NaN()
	opts := DefaultOutOfScreenOptions(1920, 1080)

	tests := []struct {
		name      string
		positions []gaze.Point
		timesteps []int64
		want      events.List
	}{
		{
			name: "all on screen",
			positions: []gaze.Point{
				{X: 0, Y: 0}, {X: 960, Y: 540}, {X: 1919, Y: 1079},
			},
			want: nil,
		},
		{
			name: "maximum bound is exclusive",
			positions: []gaze.Point{
				{X: 1919, Y: 540}, {X: 1920, Y: 540}, {X: 960, Y: 1080},
			},
			want: events.List{{Name: "out_of_screen", Onset: 1, Offset: 2}},
		},
		{
			name: "minimum bound is inclusive",
			positions: []gaze.Point{
				{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: -0.5},
			},
			want: events.List{{Name: "out_of_screen", Onset: 1, Offset: 2}},
		},
		{
			name: "separate excursions",
			positions: []gaze.Point{
				{X: -5, Y: 540}, {X: 960, Y: 540}, {X: 960, Y: 540},
				{X: 2000, Y: 540}, {X: 2000, Y: 540},
			},
			want: events.List{
				{Name: "out_of_screen", Onset: 0, Offset: 0},
				{Name: "out_of_screen", Onset: 3, Offset: 4},
			},
		},
		{
			name: "nan coordinates stay on screen",
			positions: []gaze.Point{
				{X: nan, Y: nan}, {X: nan, Y: 540}, {X: 960, Y: nan},
			},
			want: nil,
		},
		{
			name: "explicit timesteps",
			positions: []gaze.Point{
				{X: 960, Y: 540}, {X: -1, Y: 540}, {X: -1, Y: 540}, {X: 960, Y: 540},
			},
			timesteps: []int64{100, 102, 104, 106},
			want:      events.List{{Name: "out_of_screen", Onset: 102, Offset: 104}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evs, err := OutOfScreen(tt.positions, tt.timesteps, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, evs)
		})
	}
}

func TestOutOfScreen_Validation(t *testing.T) {
	positions := []gaze.Point{{X: 0, Y: 0}}

	tests := []struct {
		name   string
		opts   OutOfScreenOptions
		times  []int64
		errMsg string
	}{
		{
			name:   "x bounds inverted",
			opts:   OutOfScreenOptions{XMin: 10, XMax: 10, YMax: 100, Name: "o"},
			errMsg: "x_min must be less than x_max",
		},
		{
			name:   "y bounds inverted",
			opts:   OutOfScreenOptions{XMax: 100, YMin: 5, YMax: 0, Name: "o"},
			errMsg: "y_min must be less than y_max",
		},
		{
			name:   "empty name",
			opts:   OutOfScreenOptions{XMax: 100, YMax: 100},
			errMsg: "name must not be empty",
		},
		{
			name:   "timestep length mismatch",
			opts:   DefaultOutOfScreenOptions(100, 100),
			times:  []int64{1, 2},
			errMsg: "must match sample count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OutOfScreen(positions, tt.times, tt.opts)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}
