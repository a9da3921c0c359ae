package detect

import (
	"fmt"
	"math"
	"sort"

	"github.com/pymovements/pymovements/internal/events"
	"github.com/pymovements/pymovements/internal/gaze"
)

// ThresholdMethod selects the per-axis noise estimator used to scale the
// microsaccade detection ellipse.
type ThresholdMethod string

const (
	// ThresholdEngbert2003 uses sqrt(median(v^2) - median(v)^2).
	ThresholdEngbert2003 ThresholdMethod = "engbert2003"
	// ThresholdEngbert2015 uses sqrt(median((v - median(v))^2)).
	ThresholdEngbert2015 ThresholdMethod = "engbert2015"
	// ThresholdStd uses the standard deviation.
	ThresholdStd ThresholdMethod = "std"
	// ThresholdMAD uses the median absolute deviation.
	ThresholdMAD ThresholdMethod = "mad"
)

// MicrosaccadesOptions configures Engbert-Kliegl microsaccade detection.
type MicrosaccadesOptions struct {
	// ThresholdMethod selects the noise estimator.
	ThresholdMethod ThresholdMethod
	// ThresholdFactor (lambda) scales the noise estimate into the
	// detection ellipse radii.
	ThresholdFactor float64
	// MinimumSamples is the shortest candidate run to keep.
	MinimumSamples int
	// MinimumThreshold guards against degenerate noise estimates; a
	// computed radius below it is an error.
	MinimumThreshold float64
	// Name is assigned to detected events.
	Name string
}

// DefaultMicrosaccadesOptions returns the Engbert & Kliegl defaults:
// lambda 6, at least 6 samples, median-based noise estimate.
func DefaultMicrosaccadesOptions() MicrosaccadesOptions {
	return MicrosaccadesOptions{
		ThresholdMethod:  ThresholdEngbert2015,
		ThresholdFactor:  6,
		MinimumSamples:   6,
		MinimumThreshold: 1e-10,
		Name:             events.Saccade,
	}
}

// Microsaccades detects (micro-)saccades from velocities following
// Engbert & Kliegl (2003). A per-axis noise scale eta is estimated from the
// velocity distribution; samples outside the ellipse with radii
// lambda*eta_x, lambda*eta_y are saccade candidates, and candidate runs of
// at least MinimumSamples samples become events. If timesteps is nil,
// sample indices are used as onsets and offsets.
func Microsaccades(velocities []gaze.Point, timesteps []int64, opts MicrosaccadesOptions) (events.List, error) {
	if opts.ThresholdFactor <= 0 {
		return nil, fmt.Errorf("threshold factor must be positive, got %v", opts.ThresholdFactor)
	}
	if opts.MinimumSamples < 1 {
		return nil, fmt.Errorf("minimum samples must be at least 1, got %d", opts.MinimumSamples)
	}
	if opts.Name == "" {
		return nil, fmt.Errorf("event name must not be empty")
	}

	times, err := resolveTimesteps(len(velocities), timesteps)
	if err != nil {
		return nil, err
	}

	xs := make([]float64, 0, len(velocities))
	ys := make([]float64, 0, len(velocities))
	for _, v := range velocities {
		if v.IsNaN() {
			continue
		}
		xs = append(xs, v.X)
		ys = append(ys, v.Y)
	}
	if len(xs) == 0 {
		return events.List{}, nil
	}

	etaX, err := noiseScale(xs, opts.ThresholdMethod)
	if err != nil {
		return nil, err
	}
	etaY, err := noiseScale(ys, opts.ThresholdMethod)
	if err != nil {
		return nil, err
	}

	radiusX := opts.ThresholdFactor * etaX
	radiusY := opts.ThresholdFactor * etaY
	if radiusX < opts.MinimumThreshold || radiusY < opts.MinimumThreshold {
		return nil, fmt.Errorf(
			"computed threshold (%g, %g) is below the minimum threshold %g; the signal may be too noiseless or too short",
			radiusX, radiusY, opts.MinimumThreshold,
		)
	}

	mask := make([]bool, len(velocities))
	for i, v := range velocities {
		if v.IsNaN() {
			continue
		}
		nx := v.X / radiusX
		ny := v.Y / radiusY
		mask[i] = nx*nx+ny*ny > 1
	}

	var evs events.List
	for _, r := range candidateRuns(mask) {
		if r.last-r.first+1 < opts.MinimumSamples {
			continue
		}
		evs = append(evs, events.Event{
			Name:   opts.Name,
			Onset:  times[r.first],
			Offset: times[r.last],
		})
	}
	return evs, nil
}

func noiseScale(values []float64, method ThresholdMethod) (float64, error) {
	switch method {
	case ThresholdEngbert2003:
		squared := make([]float64, len(values))
		for i, v := range values {
			squared[i] = v * v
		}
		m := medianOf(values)
		return math.Sqrt(medianOf(squared) - m*m), nil
	case ThresholdEngbert2015:
		m := medianOf(values)
		deviations := make([]float64, len(values))
		for i, v := range values {
			deviations[i] = (v - m) * (v - m)
		}
		return math.Sqrt(medianOf(deviations)), nil
	case ThresholdStd:
		m := meanOf(values)
		var sum float64
		for _, v := range values {
			sum += (v - m) * (v - m)
		}
		return math.Sqrt(sum / float64(len(values))), nil
	case ThresholdMAD:
		m := medianOf(values)
		deviations := make([]float64, len(values))
		for i, v := range values {
			deviations[i] = math.Abs(v - m)
		}
		return medianOf(deviations), nil
	default:
		return 0, fmt.Errorf("unknown threshold method %q", method)
	}
}

func medianOf(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
