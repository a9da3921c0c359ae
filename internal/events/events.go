package events

import (
	"fmt"
	"sort"
)

// Common event names produced by the detectors in internal/detect.
const (
	Fixation     = "fixation"
	Saccade      = "saccade"
	Blink        = "blink"
	OutOfScreen  = "out_of_screen"
	Unclassified = "unclassified"
)

// Event is a single detected eye-movement event. Onset and Offset are
// timestamps in the units of the underlying series; the offset is inclusive,
// so a sample whose time equals Offset belongs to the event. Events are
// value types and immutable after creation.
type Event struct {
	Name   string
	Onset  int64
	Offset int64
}

// New creates an Event and validates that onset <= offset.
func New(name string, onset, offset int64) (Event, error) {
	if onset > offset {
		return Event{}, fmt.Errorf("event %q onset %d is after offset %d", name, onset, offset)
	}
	return Event{Name: name, Onset: onset, Offset: offset}, nil
}

// Duration returns offset - onset in timestamp units.
func (e Event) Duration() int64 {
	return e.Offset - e.Onset
}

// Contains reports whether t falls inside the event's inclusive range.
func (e Event) Contains(t int64) bool {
	return t >= e.Onset && t <= e.Offset
}

// List is an ordered collection of events in detection order.
type List []Event

// Validate checks every event for onset <= offset.
func (l List) Validate() error {
	for i, e := range l {
		if e.Onset > e.Offset {
			return fmt.Errorf("event %d (%q) onset %d is after offset %d", i, e.Name, e.Onset, e.Offset)
		}
	}
	return nil
}

// Durations returns the duration of every event.
func (l List) Durations() []int64 {
	durations := make([]int64, len(l))
	for i, e := range l {
		durations[i] = e.Duration()
	}
	return durations
}

// TotalDuration returns the sum of all event durations.
func (l List) TotalDuration() int64 {
	var total int64
	for _, e := range l {
		total += e.Duration()
	}
	return total
}

// Named returns the events carrying the given name, preserving order.
func (l List) Named(name string) List {
	var out List
	for _, e := range l {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Names returns the distinct event names in first-seen order.
func (l List) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, e := range l {
		if !seen[e.Name] {
			seen[e.Name] = true
			names = append(names, e.Name)
		}
	}
	return names
}

// IndexRange returns the half-open index range [lo, hi) of the samples whose
// timestamps fall inside the event's inclusive range. times must be sorted
// in non-decreasing order.
func IndexRange(times []int64, e Event) (int, int) {
	lo := sort.Search(len(times), func(i int) bool { return times[i] >= e.Onset })
	hi := sort.Search(len(times), func(i int) bool { return times[i] > e.Offset })
	return lo, hi
}

// Equal reports whether two lists contain the same events in the same order.
func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}
