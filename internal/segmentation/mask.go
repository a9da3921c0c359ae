package segmentation

import (
	"fmt"

	"github.com/pymovements/pymovements/internal/events"
)

// Padding extends each event's inclusive range when building a mask.
// Before is subtracted from onsets, After added to offsets. Both values are
// in timestamp units and must be non-negative.
type Padding struct {
	Before int64
	After  int64
}

// Symmetric returns padding that extends both sides by the same amount.
func Symmetric(pad int64) Padding {
	return Padding{Before: pad, After: pad}
}

// EventMask builds a boolean per-sample indicator for one event name.
// Unlike EventsToSegmentation, onsets and offsets are matched against the
// timestamp values in times rather than treated as indices: times[i] is
// marked when onset-pad.Before <= times[i] <= offset+pad.After for any event
// with the given name. Overlap between same-name ranges is allowed since a
// single-name mask stays well defined.
func EventMask(evs events.List, name string, times []int64, pad Padding) ([]bool, error) {
	if pad.Before < 0 || pad.After < 0 {
		return nil, fmt.Errorf("padding values must be non-negative, got (%d, %d)", pad.Before, pad.After)
	}
	relevant := evs.Named(name)
	if err := relevant.Validate(); err != nil {
		return nil, err
	}

	mask := make([]bool, len(times))
	for _, e := range relevant {
		lo := e.Onset - pad.Before
		hi := e.Offset + pad.After
		for i, t := range times {
			if t >= lo && t <= hi {
				mask[i] = true
			}
		}
	}
	return mask, nil
}

// MaskToEvents converts a boolean mask back into events. Each maximal run of
// true values becomes one event named name. Onsets and offsets are taken
// from times; a nil times uses sample indices.
func MaskToEvents(mask []bool, name string, times []int64) (events.List, error) {
	if times != nil && len(times) != len(mask) {
		return nil, fmt.Errorf("times length (%d) must match mask length (%d)", len(times), len(mask))
	}

	timeAt := func(i int) int64 {
		if times == nil {
			return int64(i)
		}
		return times[i]
	}

	var evs events.List
	runStart := -1
	for i := 0; i <= len(mask); i++ {
		if runStart >= 0 && (i == len(mask) || !mask[i]) {
			evs = append(evs, events.Event{
				Name:   name,
				Onset:  timeAt(runStart),
				Offset: timeAt(i - 1),
			})
			runStart = -1
		}
		if i < len(mask) && runStart < 0 && mask[i] {
			runStart = i
		}
	}
	return evs, nil
}
