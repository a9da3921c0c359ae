package detect

import (
	"fmt"
	"math"
	"sort"

	"github.com/pymovements/pymovements/internal/events"
)

// BlinkOptions configures pupil-based blink detection.
type BlinkOptions struct {
	// Delta is the absolute pupil-difference threshold for flagging rapid
	// changes. Zero auto-estimates it as 5 times the 95th percentile of
	// valid absolute differences.
	Delta float64
	// MaxValueRun is the longest unflagged run that island absorption may
	// swallow. Zero disables absorption.
	MaxValueRun int
	// NasAroundRun is the number of flagged samples required on each side
	// of an unflagged run before it is absorbed.
	NasAroundRun int
	// MinimumDuration is the shortest blink to keep, in timestep units.
	MinimumDuration int64
	// MaximumDuration is the longest blink to keep, in timestep units.
	// Negative disables the upper bound.
	MaximumDuration int64
	// Name is assigned to detected events.
	Name string
}

// DefaultBlinkOptions returns parameters for typical blinks: auto delta,
// island absorption over runs of up to 3 samples with 2 flagged neighbors,
// and a 50-500 ms duration band.
func DefaultBlinkOptions() BlinkOptions {
	return BlinkOptions{
		MaxValueRun:     3,
		NasAroundRun:    2,
		MinimumDuration: 50,
		MaximumDuration: 500,
		Name:            events.Blink,
	}
}

// Blink detects blinks from the pupil signal with a two-stage algorithm
// adapted from Hershman et al. (2018). Stage one flags samples whose pupil
// value is NaN or zero, or whose difference to a neighbor exceeds Delta.
// Stage two absorbs short unflagged islands surrounded by flagged samples.
// Flagged runs within the duration band become blink events. If timesteps
// is nil, sample indices are used and durations are sample counts.
func Blink(pupil []float64, timesteps []int64, opts BlinkOptions) (events.List, error) {
	if opts.Delta < 0 {
		return nil, fmt.Errorf("delta must not be negative, got %v", opts.Delta)
	}
	if opts.MinimumDuration < 1 {
		return nil, fmt.Errorf("minimum duration must be at least 1, got %d", opts.MinimumDuration)
	}
	if opts.MaximumDuration >= 0 && opts.MaximumDuration < opts.MinimumDuration {
		return nil, fmt.Errorf(
			"maximum duration must be at least the minimum duration, got %d < %d",
			opts.MaximumDuration, opts.MinimumDuration,
		)
	}
	if opts.Name == "" {
		return nil, fmt.Errorf("event name must not be empty")
	}

	times, err := resolveTimesteps(len(pupil), timesteps)
	if err != nil {
		return nil, err
	}
	if len(pupil) == 0 {
		return events.List{}, nil
	}

	// Stage 1: flag missing values and rapid changes.
	flagged := make([]bool, len(pupil))
	for i, p := range pupil {
		flagged[i] = math.IsNaN(p) || p == 0
	}

	absDiff := make([]float64, len(pupil)-1)
	var validDiffs []float64
	for i := 1; i < len(pupil); i++ {
		absDiff[i-1] = math.Abs(pupil[i] - pupil[i-1])
		if !math.IsNaN(absDiff[i-1]) {
			validDiffs = append(validDiffs, absDiff[i-1])
		}
	}

	delta := opts.Delta
	if delta == 0 && len(validDiffs) > 0 {
		delta = 5 * percentile(validDiffs, 95)
	}

	if delta > 0 && len(validDiffs) > 0 {
		// A difference above delta flags both samples around it. NaN
		// differences stem from NaN pupil values already flagged above.
		for i, d := range absDiff {
			if !math.IsNaN(d) && d > delta {
				flagged[i] = true
				flagged[i+1] = true
			}
		}
	}

	// Stage 2: island absorption.
	if opts.MaxValueRun > 0 {
		absorbIslands(flagged, opts.MaxValueRun, opts.NasAroundRun)
	}

	runs := filterRunsByDuration(candidateRuns(flagged), times, opts.MinimumDuration, opts.MaximumDuration)

	evs := make(events.List, 0, len(runs))
	for _, r := range runs {
		evs = append(evs, events.Event{
			Name:   opts.Name,
			Onset:  times[r.first],
			Offset: times[r.last],
		})
	}
	return evs, nil
}

// absorbIslands flags short unflagged runs that have at least nasAroundRun
// flagged samples on each side.
func absorbIslands(flagged []bool, maxValueRun, nasAroundRun int) {
	n := len(flagged)
	unflagged := make([]bool, n)
	for i, f := range flagged {
		unflagged[i] = !f
	}

	for _, r := range candidateRuns(unflagged) {
		if r.last-r.first+1 > maxValueRun {
			continue
		}

		flaggedBefore := 0
		for i := r.first - 1; i >= 0 && i >= r.first-nasAroundRun; i-- {
			if flagged[i] {
				flaggedBefore++
			}
		}
		flaggedAfter := 0
		for i := r.last + 1; i < n && i <= r.last+nasAroundRun; i++ {
			if flagged[i] {
				flaggedAfter++
			}
		}

		if flaggedBefore >= nasAroundRun && flaggedAfter >= nasAroundRun {
			for i := r.first; i <= r.last; i++ {
				flagged[i] = true
			}
		}
	}
}

// percentile computes the p-th percentile with linear interpolation.
func percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
