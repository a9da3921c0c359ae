package events

import (
	"fmt"
	"math"
	"sort"

	"github.com/pymovements/pymovements/internal/gaze"
)

// Per-event measures over the samples that fall inside an event's inclusive
// range. Callers slice positions/velocities to the event range first; the
// measures themselves are pure functions over those slices. Samples with NaN
// components are skipped; a measure over no valid samples is NaN.

// Amplitude is the diagonal of the positional bounding box:
// sqrt((xmax-xmin)^2 + (ymax-ymin)^2).
func Amplitude(positions []gaze.Point) float64 {
	minX, maxX, minY, maxY, ok := extrema(positions)
	if !ok {
		return math.NaN()
	}
	return math.Hypot(maxX-minX, maxY-minY)
}

// Dispersion is the summed positional spread: (xmax-xmin) + (ymax-ymin).
func Dispersion(positions []gaze.Point) float64 {
	minX, maxX, minY, maxY, ok := extrema(positions)
	if !ok {
		return math.NaN()
	}
	return (maxX - minX) + (maxY - minY)
}

// Disposition is the Euclidean distance between the first and last valid
// positions of the event.
func Disposition(positions []gaze.Point) float64 {
	first, last := -1, -1
	for i, p := range positions {
		if p.IsNaN() {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return math.NaN()
	}
	return math.Hypot(positions[last].X-positions[first].X, positions[last].Y-positions[first].Y)
}

// LocationMethod selects the centroid statistic used by Location.
type LocationMethod string

const (
	LocationMean   LocationMethod = "mean"
	LocationMedian LocationMethod = "median"
)

// Location returns the positional centroid of the event.
func Location(positions []gaze.Point, method LocationMethod) (gaze.Point, error) {
	var xs, ys []float64
	for _, p := range positions {
		if p.IsNaN() {
			continue
		}
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	if len(xs) == 0 {
		return gaze.Point{X: math.NaN(), Y: math.NaN()}, nil
	}

	switch method {
	case LocationMean:
		return gaze.Point{X: mean(xs), Y: mean(ys)}, nil
	case LocationMedian:
		return gaze.Point{X: median(xs), Y: median(ys)}, nil
	default:
		return gaze.Point{}, fmt.Errorf("unknown location method %q", method)
	}
}

// PeakVelocity is the maximum velocity magnitude within the event.
func PeakVelocity(velocities []gaze.Point) float64 {
	peak := math.NaN()
	for _, v := range velocities {
		if v.IsNaN() {
			continue
		}
		mag := math.Hypot(v.X, v.Y)
		if math.IsNaN(peak) || mag > peak {
			peak = mag
		}
	}
	return peak
}

func extrema(positions []gaze.Point) (minX, maxX, minY, maxY float64, ok bool) {
	for _, p := range positions {
		if p.IsNaN() {
			continue
		}
		if !ok {
			minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
			ok = true
			continue
		}
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, maxX, minY, maxY, ok
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
