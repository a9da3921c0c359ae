package gaze

import (
	"fmt"
	"math"
)

// VelocityMethod selects the differentiation scheme used by Velocity.
type VelocityMethod string

const (
	// VelocityPreceding uses the backward difference to the previous sample.
	VelocityPreceding VelocityMethod = "preceding"
	// VelocityNeighbors uses the central difference over the two neighbors.
	VelocityNeighbors VelocityMethod = "neighbors"
	// VelocityFivePoint uses the smoothed five-point difference of
	// Engbert & Kliegl (2003).
	VelocityFivePoint VelocityMethod = "fivepoint"
)

// Velocity computes per-sample positional velocity in unit/s using the given
// differentiation method. Samples without enough neighbors for the chosen
// stencil get NaN velocities, as do samples adjacent to NaN positions.
func Velocity(s *Series, method VelocityMethod) ([]Point, error) {
	n := s.Len()
	if n == 0 {
		return nil, ErrEmptySeries
	}

	minSamples := map[VelocityMethod]int{
		VelocityPreceding: 2,
		VelocityNeighbors: 3,
		VelocityFivePoint: 5,
	}[method]
	if minSamples == 0 {
		return nil, fmt.Errorf("unknown velocity method %q", method)
	}
	if n < minSamples {
		return nil, fmt.Errorf("velocity method %q needs at least %d samples, got %d", method, minSamples, n)
	}

	pos := s.Positions()
	rate := s.SamplingRate()
	vel := make([]Point, n)
	for i := range vel {
		vel[i] = Point{X: math.NaN(), Y: math.NaN()}
	}

	switch method {
	case VelocityPreceding:
		for i := 1; i < n; i++ {
			vel[i] = Point{
				X: (pos[i].X - pos[i-1].X) * rate,
				Y: (pos[i].Y - pos[i-1].Y) * rate,
			}
		}
	case VelocityNeighbors:
		for i := 1; i < n-1; i++ {
			vel[i] = Point{
				X: (pos[i+1].X - pos[i-1].X) / 2 * rate,
				Y: (pos[i+1].Y - pos[i-1].Y) / 2 * rate,
			}
		}
	case VelocityFivePoint:
		for i := 2; i < n-2; i++ {
			vel[i] = Point{
				X: (pos[i+2].X + pos[i+1].X - pos[i-1].X - pos[i-2].X) / 6 * rate,
				Y: (pos[i+2].Y + pos[i+1].Y - pos[i-1].Y - pos[i-2].Y) / 6 * rate,
			}
		}
	}

	return vel, nil
}

// Magnitude returns the Euclidean norm of each velocity vector.
func Magnitude(vel []Point) []float64 {
	mag := make([]float64, len(vel))
	for i, v := range vel {
		mag[i] = math.Hypot(v.X, v.Y)
	}
	return mag
}
