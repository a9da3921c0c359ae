package segmentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pymovements/pymovements/internal/events"
)

func times(n int) []int64 {
	ts := make([]int64, n)
	for i := range ts {
		ts[i] = int64(i)
	}
	return ts
}

func TestEventMask_MatchesTimestamps(t *testing.T) {
	evs := events.List{
		{Name: "blink", Onset: 2, Offset: 5},
		{Name: "blink", Onset: 7, Offset: 9},
		{Name: "not_blink", Onset: 3, Offset: 6},
	}

	mask, err := EventMask(evs, "blink", times(10), Padding{})
	require.NoError(t, err)
	assert.Equal(t, []bool{
		false, false, true, true, true, true, false, true, true, true,
	}, mask)
}

func TestEventMask_Padding(t *testing.T) {
	evs := events.List{{Name: "blink", Onset: 3, Offset: 5}}

	mask, err := EventMask(evs, "blink", times(10), Symmetric(1))
	require.NoError(t, err)
	assert.Equal(t, []bool{
		false, false, true, true, true, true, true, false, false, false,
	}, mask)
}

func TestEventMask_AsymmetricPadding(t *testing.T) {
	evs := events.List{{Name: "blink", Onset: 3, Offset: 5}}

	mask, err := EventMask(evs, "blink", times(10), Padding{Before: 2, After: 0})
	require.NoError(t, err)
	assert.Equal(t, []bool{
		false, true, true, true, true, true, false, false, false, false,
	}, mask)
}

func TestEventMask_NegativePadding(t *testing.T) {
	evs := events.List{{Name: "blink", Onset: 3, Offset: 5}}

	_, err := EventMask(evs, "blink", times(10), Padding{Before: -1})
	assert.ErrorContains(t, err, "non-negative")
}

func TestEventMask_NoMatchingEvents(t *testing.T) {
	evs := events.List{{Name: "saccade", Onset: 1, Offset: 3}}

	mask, err := EventMask(evs, "blink", times(5), Padding{})
	require.NoError(t, err)
	assert.Equal(t, make([]bool, 5), mask)
}

func TestEventMask_NonContiguousTimestamps(t *testing.T) {
	// Timestamps with a recording gap: the event range [100, 130] covers
	// only the samples whose time values fall inside it.
	ts := []int64{90, 100, 110, 200, 210}
	evs := events.List{{Name: "blink", Onset: 100, Offset: 130}}

	mask, err := EventMask(evs, "blink", ts, Padding{})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, true, false, false}, mask)
}

func TestMaskToEvents(t *testing.T) {
	tests := []struct {
		name  string
		mask  []bool
		times []int64
		want  events.List
	}{
		{
			name: "indices by default",
			mask: []bool{false, false, true, true, true, false, false, true, true, false},
			want: events.List{
				{Name: "blink", Onset: 2, Offset: 4},
				{Name: "blink", Onset: 7, Offset: 8},
			},
		},
		{
			name:  "explicit time column",
			mask:  []bool{false, true, true, false},
			times: []int64{100, 102, 104, 106},
			want:  events.List{{Name: "blink", Onset: 102, Offset: 104}},
		},
		{
			name: "all false",
			mask: []bool{false, false},
			want: nil,
		},
		{
			name: "run to the end",
			mask: []bool{false, true, true},
			want: events.List{{Name: "blink", Onset: 1, Offset: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MaskToEvents(tt.mask, "blink", tt.times)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaskToEvents_LengthMismatch(t *testing.T) {
	_, err := MaskToEvents([]bool{true, false}, "blink", []int64{1})
	assert.ErrorContains(t, err, "must match")
}

func TestMaskRoundTrip(t *testing.T) {
	evs := events.List{
		{Name: "blink", Onset: 2, Offset: 4},
		{Name: "blink", Onset: 7, Offset: 8},
	}
	ts := times(10)

	mask, err := EventMask(evs, "blink", ts, Padding{})
	require.NoError(t, err)

	got, err := MaskToEvents(mask, "blink", ts)
	require.NoError(t, err)
	assert.True(t, evs.Equal(got))
}
