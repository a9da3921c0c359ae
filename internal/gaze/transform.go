package gaze

import (
	"fmt"
	"math"
)

// Screen describes the physical presentation geometry used to convert pixel
// coordinates into degrees of visual angle.
type Screen struct {
	WidthPx    float64
	HeightPx   float64
	WidthCm    float64
	HeightCm   float64
	DistanceCm float64
}

// Validate checks that all screen dimensions are positive.
func (sc Screen) Validate() error {
	if sc.WidthPx <= 0 || sc.HeightPx <= 0 {
		return fmt.Errorf("screen pixel dimensions must be positive, got %vx%v", sc.WidthPx, sc.HeightPx)
	}
	if sc.WidthCm <= 0 || sc.HeightCm <= 0 {
		return fmt.Errorf("screen physical dimensions must be positive, got %vx%v cm", sc.WidthCm, sc.HeightCm)
	}
	if sc.DistanceCm <= 0 {
		return fmt.Errorf("viewing distance must be positive, got %v cm", sc.DistanceCm)
	}
	return nil
}

// PixToDeg converts a pixel-coordinate series into degrees of visual angle.
// Coordinates are first centered on the screen midpoint, then converted via
// the arctangent of physical offset over viewing distance. NaN positions
// stay NaN. The input series is not modified.
func PixToDeg(s *Series, screen Screen) (*Series, error) {
	if s.Unit() != UnitPixel {
		return nil, fmt.Errorf("series unit must be %q to convert to degrees, got %q", UnitPixel, s.Unit())
	}
	if err := screen.Validate(); err != nil {
		return nil, err
	}

	cmPerPxX := screen.WidthCm / screen.WidthPx
	cmPerPxY := screen.HeightCm / screen.HeightPx
	centerX := (screen.WidthPx - 1) / 2
	centerY := (screen.HeightPx - 1) / 2

	converted := make([]Sample, s.Len())
	for i := 0; i < s.Len(); i++ {
		smp := s.Sample(i)
		smp.X = degFromOffset((smp.X - centerX) * cmPerPxX, screen.DistanceCm)
		smp.Y = degFromOffset((smp.Y - centerY) * cmPerPxY, screen.DistanceCm)
		converted[i] = smp
	}

	return NewSeries(converted, s.SamplingRate(), UnitDegrees)
}

func degFromOffset(offsetCm, distanceCm float64) float64 {
	return math.Atan2(offsetCm, distanceCm) * 180 / math.Pi
}
