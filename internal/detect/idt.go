package detect

import (
	"fmt"
	"math"

	"github.com/pymovements/pymovements/internal/events"
	"github.com/pymovements/pymovements/internal/gaze"
)

// IDTOptions configures dispersion-threshold fixation detection.
type IDTOptions struct {
	// DispersionThreshold is the largest positional spread
	// (xmax-xmin + ymax-ymin) a fixation window may have.
	DispersionThreshold float64
	// MinimumDuration is the initial window length in timestep units.
	MinimumDuration int64
	// IncludeNaN lets windows span samples with unknown position; otherwise
	// a NaN position makes the window's dispersion infinite.
	IncludeNaN bool
	// Name is assigned to detected events.
	Name string
}

// DefaultIDTOptions returns the standard I-DT parameters: dispersion
// threshold 1.0 and 100 ms minimum duration.
func DefaultIDTOptions() IDTOptions {
	return IDTOptions{
		DispersionThreshold: 1,
		MinimumDuration:     100,
		Name:                events.Fixation,
	}
}

// IDT detects fixations with the dispersion-threshold identification
// algorithm (Salvucci & Goldberg 2000). A window spanning the minimum
// duration slides over the positions; when its dispersion stays under the
// threshold the window is grown sample by sample until the threshold is
// exceeded and the covered range becomes one fixation. If timesteps is nil,
// sample indices are used and durations are sample counts.
func IDT(positions []gaze.Point, timesteps []int64, opts IDTOptions) (events.List, error) {
	if opts.DispersionThreshold <= 0 {
		return nil, fmt.Errorf("dispersion threshold must be positive, got %v", opts.DispersionThreshold)
	}
	if opts.MinimumDuration <= 0 {
		return nil, fmt.Errorf("minimum duration must be positive, got %d", opts.MinimumDuration)
	}
	if opts.Name == "" {
		return nil, fmt.Errorf("event name must not be empty")
	}

	times, err := resolveTimesteps(len(positions), timesteps)
	if err != nil {
		return nil, err
	}

	var evs events.List
	n := len(positions)
	start := 0
	for start < n {
		// Grow the window until it covers the minimum duration.
		end := start
		for end < n && times[end]-times[start] < opts.MinimumDuration {
			end++
		}
		if end >= n {
			break
		}

		if windowDispersion(positions[start:end+1], opts.IncludeNaN) > opts.DispersionThreshold {
			start++
			continue
		}

		for end+1 < n && windowDispersion(positions[start:end+2], opts.IncludeNaN) <= opts.DispersionThreshold {
			end++
		}
		evs = append(evs, events.Event{
			Name:   opts.Name,
			Onset:  times[start],
			Offset: times[end],
		})
		start = end + 1
	}
	return evs, nil
}

// windowDispersion computes xmax-xmin + ymax-ymin over a window. Without
// includeNaN, any NaN position makes the window unusable (+Inf); with it,
// NaN positions are skipped. A window with no valid position is unusable
// either way.
func windowDispersion(window []gaze.Point, includeNaN bool) float64 {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	valid := 0
	for _, p := range window {
		if p.IsNaN() {
			if !includeNaN {
				return math.Inf(1)
			}
			continue
		}
		valid++
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	if valid == 0 {
		return math.Inf(1)
	}
	return (maxX - minX) + (maxY - minY)
}
