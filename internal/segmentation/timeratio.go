package segmentation

import (
	"fmt"
	"sort"

	"github.com/pymovements/pymovements/internal/events"
)

// EventTimeRatio returns the fraction of recorded time covered by events with
// the given name. Durations are made inclusive by adding one sampling
// interval to each event duration and to the total time range:
//
//	ratio = sum(offset - onset + dt) / (tmax - tmin + dt)
//
// dt is 1000/samplingRate when samplingRate is positive (timestamps in ms),
// otherwise the mode of the inter-sample time differences. A series with a
// single sample yields 1 when that sample falls inside an event, else 0.
func EventTimeRatio(evs events.List, name string, times []int64, samplingRate float64) (float64, error) {
	if len(times) == 0 {
		return 0, fmt.Errorf("cannot compute event time ratio without samples")
	}

	relevant := evs.Named(name)
	if err := relevant.Validate(); err != nil {
		return 0, err
	}
	if len(relevant) == 0 {
		return 0, nil
	}

	if len(times) == 1 {
		for _, e := range relevant {
			if e.Contains(times[0]) {
				return 1, nil
			}
		}
		return 0, nil
	}

	var dt float64
	if samplingRate > 0 {
		dt = 1000 / samplingRate
	} else {
		dt = float64(modeInterval(times))
	}

	var covered float64
	for _, e := range relevant {
		covered += float64(e.Duration()) + dt
	}

	tmin, tmax := times[0], times[0]
	for _, t := range times[1:] {
		if t < tmin {
			tmin = t
		}
		if t > tmax {
			tmax = t
		}
	}
	span := float64(tmax-tmin) + dt

	return covered / span, nil
}

// modeInterval returns the most frequent inter-sample time difference, a
// robust estimate of the sampling interval in the presence of gaps.
func modeInterval(times []int64) int64 {
	counts := make(map[int64]int)
	for i := 1; i < len(times); i++ {
		counts[times[i]-times[i-1]]++
	}

	intervals := make([]int64, 0, len(counts))
	for interval := range counts {
		intervals = append(intervals, interval)
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i] < intervals[j] })

	var mode int64
	best := 0
	for _, interval := range intervals {
		if counts[interval] > best {
			best = counts[interval]
			mode = interval
		}
	}
	return mode
}
