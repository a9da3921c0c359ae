package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/pymovements/pymovements/internal/events"
	"github.com/pymovements/pymovements/internal/gaze"
)

// writeEventsCSV writes detected events with per-event measures computed
// from the samples inside each event's inclusive range.
func writeEventsCSV(path string, series *gaze.Series, detected events.List) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"name", "onset", "offset", "duration", "amplitude", "dispersion", "disposition", "peak_velocity"}
	if err := w.Write(header); err != nil {
		return err
	}

	times := series.Times()
	positions := series.Positions()

	var velocities []gaze.Point
	if series.Len() >= 5 {
		// Measures tolerate NaN velocities at the boundaries.
		velocities, _ = gaze.Velocity(series, gaze.VelocityFivePoint)
	}

	for _, e := range detected {
		lo, hi := events.IndexRange(times, e)
		window := positions[lo:hi]

		peak := math.NaN()
		if velocities != nil {
			peak = events.PeakVelocity(velocities[lo:hi])
		}

		record := []string{
			e.Name,
			strconv.FormatInt(e.Onset, 10),
			strconv.FormatInt(e.Offset, 10),
			strconv.FormatInt(e.Duration(), 10),
			formatMeasure(events.Amplitude(window)),
			formatMeasure(events.Dispersion(window)),
			formatMeasure(events.Disposition(window)),
			formatMeasure(peak),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatMeasure(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
