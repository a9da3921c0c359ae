package detect

import (
	"fmt"
	"math"

	"github.com/pymovements/pymovements/internal/events"
	"github.com/pymovements/pymovements/internal/gaze"
)

// IVTOptions configures velocity-threshold fixation detection.
type IVTOptions struct {
	// VelocityThreshold is the fixation boundary in position units per
	// second: samples moving slower belong to a fixation.
	VelocityThreshold float64
	// MinimumDuration is the shortest fixation to keep, in timestep units.
	MinimumDuration int64
	// IncludeNaN treats samples with unknown velocity as part of the
	// surrounding fixation instead of splitting it.
	IncludeNaN bool
	// Name is assigned to detected events.
	Name string
}

// DefaultIVTOptions returns the standard I-VT parameters: 20 deg/s threshold
// and 100 ms minimum duration.
func DefaultIVTOptions() IVTOptions {
	return IVTOptions{
		VelocityThreshold: 20,
		MinimumDuration:   100,
		Name:              events.Fixation,
	}
}

// IVT detects fixations with the velocity-threshold identification
// algorithm (Salvucci & Goldberg 2000). A sample is a fixation candidate
// when its velocity magnitude is below the threshold; maximal candidate runs
// longer than the minimum duration become fixation events. If timesteps is
// nil, sample indices are used and durations are sample counts.
func IVT(velocities []gaze.Point, timesteps []int64, opts IVTOptions) (events.List, error) {
	if opts.VelocityThreshold <= 0 {
		return nil, fmt.Errorf("velocity threshold must be positive, got %v", opts.VelocityThreshold)
	}
	if opts.MinimumDuration < 0 {
		return nil, fmt.Errorf("minimum duration must be non-negative, got %d", opts.MinimumDuration)
	}
	if opts.Name == "" {
		return nil, fmt.Errorf("event name must not be empty")
	}

	times, err := resolveTimesteps(len(velocities), timesteps)
	if err != nil {
		return nil, err
	}

	mask := make([]bool, len(velocities))
	for i, v := range velocities {
		if v.IsNaN() {
			mask[i] = opts.IncludeNaN
			continue
		}
		mask[i] = math.Hypot(v.X, v.Y) < opts.VelocityThreshold
	}

	runs := filterRunsByDuration(candidateRuns(mask), times, opts.MinimumDuration, -1)

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
