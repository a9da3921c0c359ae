package segmentation

import (
	"fmt"
	"sort"

	"github.com/pymovements/pymovements/internal/events"
)

// NoLabel marks samples that belong to no event.
const NoLabel = ""

// OverlapError reports two events whose inclusive ranges intersect, which
// makes a per-sample labeling ambiguous.
type OverlapError struct {
	First  events.Event
	Second events.Event
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf(
		"events overlap: %q [%d, %d] intersects %q [%d, %d]",
		e.First.Name, e.First.Onset, e.First.Offset,
		e.Second.Name, e.Second.Onset, e.Second.Offset,
	)
}

// EventsToSegmentation converts events into a per-sample label sequence of
// length n. Onsets and offsets are sample indices here; every index in the
// inclusive range [onset, offset] receives the event's name and all other
// indices receive NoLabel. Events must lie within [0, n) and must not
// overlap; any intersection of two inclusive ranges returns *OverlapError.
func EventsToSegmentation(evs events.List, n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("series length must be non-negative, got %d", n)
	}
	if err := evs.Validate(); err != nil {
		return nil, err
	}
	for _, e := range evs {
		if e.Onset < 0 || e.Offset >= int64(n) {
			return nil, fmt.Errorf(
				"event %q [%d, %d] is out of bounds for series length %d",
				e.Name, e.Onset, e.Offset, n,
			)
		}
	}
	if first, second, overlap := findOverlap(evs); overlap {
		return nil, &OverlapError{First: first, Second: second}
	}

	labels := make([]string, n)
	for _, e := range evs {
		for i := e.Onset; i <= e.Offset; i++ {
			labels[i] = e.Name
		}
	}
	return labels, nil
}

// SegmentationToEvents converts a per-sample label sequence back into events.
// Every maximal contiguous run of identical non-NoLabel labels becomes one
// event with onset at the run's first index and inclusive offset at its last.
func SegmentationToEvents(labels []string) events.List {
	var evs events.List
	runStart := -1
	for i := 0; i <= len(labels); i++ {
		if runStart >= 0 && (i == len(labels) || labels[i] != labels[runStart]) {
			evs = append(evs, events.Event{
				Name:   labels[runStart],
				Onset:  int64(runStart),
				Offset: int64(i - 1),
			})
			runStart = -1
		}
		if i < len(labels) && runStart < 0 && labels[i] != NoLabel {
			runStart = i
		}
	}
	return evs
}

// findOverlap checks all inclusive event ranges for intersection and returns
// the first offending pair in onset order.
func findOverlap(evs events.List) (events.Event, events.Event, bool) {
	if len(evs) <= 1 {
		return events.Event{}, events.Event{}, false
	}

	sorted := make(events.List, len(evs))
	copy(sorted, evs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Onset < sorted[j].Onset
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Onset <= sorted[i-1].Offset {
			return sorted[i-1], sorted[i], true
		}
	}
	return events.Event{}, events.Event{}, false
}
