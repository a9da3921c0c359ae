package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pymovements/pymovements/internal/events"
)

func TestFill(t *testing.T) {
	timesteps := []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	tests := []struct {
		name string
		evs  events.List
		want events.List
	}{
		{
			name: "gap between events",
			evs: events.List{
				{Name: "fixation", Onset: 0, Offset: 3},
				{Name: "fixation", Onset: 7, Offset: 9},
			},
			want: events.List{{Name: "unclassified", Onset: 4, Offset: 6}},
		},
		{
			name: "leading and trailing gaps",
			evs:  events.List{{Name: "saccade", Onset: 3, Offset: 5}},
			want: events.List{
				{Name: "unclassified", Onset: 0, Offset: 2},
				{Name: "unclassified", Onset: 6, Offset: 9},
			},
		},
		{
			name: "no events covers everything",
			evs:  nil,
			want: events.List{{Name: "unclassified", Onset: 0, Offset: 9}},
		},
		{
			name: "full coverage leaves no gaps",
			evs:  events.List{{Name: "fixation", Onset: 0, Offset: 9}},
			want: nil,
		},
		{
			name: "overlapping events are fine",
			evs: events.List{
				{Name: "fixation", Onset: 0, Offset: 5},
				{Name: "blink", Onset: 4, Offset: 7},
			},
			want: events.List{{Name: "unclassified", Onset: 8, Offset: 9}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fill(tt.evs, timesteps, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFill_CustomName(t *testing.T) {
	timesteps := []int64{0, 1, 2, 3}
	evs := events.List{{Name: "fixation", Onset: 0, Offset: 1}}

	got, err := Fill(evs, timesteps, "gap")
	require.NoError(t, err)
	assert.Equal(t, events.List{{Name: "gap", Onset: 2, Offset: 3}}, got)
}

func TestFill_NonContiguousTimesteps(t *testing.T) {
	// Gaps are expressed in timestamps, not indices.
	timesteps := []int64{100, 200, 300, 400, 500}
	evs := events.List{{Name: "fixation", Onset: 150, Offset: 350}}

	got, err := Fill(evs, timesteps, "")
	require.NoError(t, err)
	assert.Equal(t, events.List{
		{Name: "unclassified", Onset: 100, Offset: 100},
		{Name: "unclassified", Onset: 400, Offset: 500},
	}, got)
}

func TestFill_Errors(t *testing.T) {
	_, err := Fill(nil, nil, "")
	assert.ErrorContains(t, err, "at least one timestep")

	invalid := events.List{{Name: "fixation", Onset: 5, Offset: 2}}
	_, err = Fill(invalid, []int64{0, 1, 2}, "")
	assert.Error(t, err)
}
