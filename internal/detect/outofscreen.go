package detect

import (
	"fmt"

	"github.com/pymovements/pymovements/internal/events"
	"github.com/pymovements/pymovements/internal/gaze"
)

// OutOfScreenOptions configures screen-boundary detection. XMin and YMin are
// inclusive, XMax and YMax exclusive: for a 1920x1080 screen set XMax to
// 1920 and YMax to 1080.
type OutOfScreenOptions struct {
	XMin float64
	XMax float64
	YMin float64
	YMax float64
	// Name is assigned to detected events.
	Name string
}

// DefaultOutOfScreenOptions returns options for a screen of the given pixel
// dimensions with the origin at (0, 0).
func DefaultOutOfScreenOptions(widthPx, heightPx float64) OutOfScreenOptions {
	return OutOfScreenOptions{
		XMax: widthPx,
		YMax: heightPx,
		Name: events.OutOfScreen,
	}
}

// OutOfScreen detects runs of gaze samples whose pixel coordinates fall
// outside the screen boundaries. Consecutive out-of-screen samples are
// merged into single events. If timesteps is nil, sample indices are used.
func OutOfScreen(positions []gaze.Point, timesteps []int64, opts OutOfScreenOptions) (events.List, error) {
	if opts.XMin >= opts.XMax {
		return nil, fmt.Errorf("x_min must be less than x_max, got x_min=%v and x_max=%v", opts.XMin, opts.XMax)
	}
	if opts.YMin >= opts.YMax {
		return nil, fmt.Errorf("y_min must be less than y_max, got y_min=%v and y_max=%v", opts.YMin, opts.YMax)
	}
	if opts.Name == "" {
		return nil, fmt.Errorf("event name must not be empty")
	}

	times, err := resolveTimesteps(len(positions), timesteps)
	if err != nil {
		return nil, err
	}

	mask := make([]bool, len(positions))
	for i, p := range positions {
		// NaN coordinates compare false everywhere and stay on-screen;
		// missing data is the blink detector's concern.
		mask[i] = p.X < opts.XMin || p.X >= opts.XMax || p.Y < opts.YMin || p.Y >= opts.YMax
	}

	var evs events.List
	for _, r := range candidateRuns(mask) {
		evs = append(evs, events.Event{
			Name:   opts.Name,
			Onset:  times[r.first],
			Offset: times[r.last],
		})
	}
	return evs, nil
}
