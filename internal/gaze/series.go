package gaze

import (
	"fmt"
	"math"
)

// Unit is the coordinate unit of gaze positions in a Series.
type Unit string

const (
	// UnitPixel means positions are screen pixel coordinates.
	UnitPixel Unit = "pixel"
	// UnitDegrees means positions are degrees of visual angle.
	UnitDegrees Unit = "dva"
)

// Point is a 2D gaze coordinate or velocity vector.
type Point struct {
	X float64
	Y float64
}

// IsNaN reports whether either component is NaN.
func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

// Sample is a single recorded gaze sample. Position components are NaN when
// the tracker reported no data; Pupil is nil when pupil size was not recorded.
type Sample struct {
	Time  int64
	X     float64
	Y     float64
	Pupil *float64
}

// Series is an ordered sequence of gaze samples sharing one sampling rate and
// one coordinate unit. A Series owns its samples exclusively: the constructor
// copies the input slice and accessors never expose internal storage.
type Series struct {
	samples      []Sample
	samplingRate float64
	unit         Unit
}

// ErrEmptySeries is returned by operations that need at least one sample.
var ErrEmptySeries = fmt.Errorf("series contains no samples")

// NewSeries creates a Series from samples recorded at samplingRate Hz.
// Sample times must be non-decreasing; duplicate timestamps are allowed.
func NewSeries(samples []Sample, samplingRate float64, unit Unit) (*Series, error) {
	if samplingRate <= 0 {
		return nil, fmt.Errorf("sampling rate must be positive, got %v", samplingRate)
	}
	if unit != UnitPixel && unit != UnitDegrees {
		return nil, fmt.Errorf("unknown position unit %q", unit)
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Time < samples[i-1].Time {
			return nil, fmt.Errorf(
				"sample times must be non-decreasing: sample %d has time %d after %d",
				i, samples[i].Time, samples[i-1].Time,
			)
		}
	}

	owned := make([]Sample, len(samples))
	copy(owned, samples)

	return &Series{
		samples:      owned,
		samplingRate: samplingRate,
		unit:         unit,
	}, nil
}

// Len returns the number of samples.
func (s *Series) Len() int {
	return len(s.samples)
}

// SamplingRate returns the sampling rate in Hz.
func (s *Series) SamplingRate() float64 {
	return s.samplingRate
}

// Unit returns the coordinate unit of positions.
func (s *Series) Unit() Unit {
	return s.unit
}

// Sample returns the sample at index i.
func (s *Series) Sample(i int) Sample {
	return s.samples[i]
}

// Times returns a copy of all sample timestamps.
func (s *Series) Times() []int64 {
	times := make([]int64, len(s.samples))
	for i, smp := range s.samples {
		times[i] = smp.Time
	}
	return times
}

// Positions returns a copy of all sample positions.
func (s *Series) Positions() []Point {
	positions := make([]Point, len(s.samples))
	for i, smp := range s.samples {
		positions[i] = Point{X: smp.X, Y: smp.Y}
	}
	return positions
}

// Pupil returns a copy of all pupil sizes, with NaN for samples that carry
// no pupil information.
func (s *Series) Pupil() []float64 {
	pupil := make([]float64, len(s.samples))
	for i, smp := range s.samples {
		if smp.Pupil == nil {
			pupil[i] = math.NaN()
		} else {
			pupil[i] = *smp.Pupil
		}
	}
	return pupil
}
