// Package ingest reads gaze samples from plain-text export files.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pymovements/pymovements/internal/gaze"
)

// Columns maps CSV header names to sample fields. The pupil column is
// optional; time, x and y are required.
type Columns struct {
	Time  string
	X     string
	Y     string
	Pupil string
}

// DefaultColumns returns the conventional header names.
func DefaultColumns() Columns {
	return Columns{Time: "time", X: "x", Y: "y", Pupil: "pupil"}
}

// RowError reports a malformed CSV row with its 1-based line number.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ReadCSV parses gaze samples from a header-prefixed CSV stream. Empty
// position cells become NaN and an empty or absent pupil cell becomes a
// missing pupil value. Column order is taken from the header row.
func ReadCSV(r io.Reader, samplingRate float64, unit gaze.Unit, cols Columns) (*gaze.Series, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input contains no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	timeIdx, ok := index[cols.Time]
	if !ok {
		return nil, fmt.Errorf("time column %q not found in header %v", cols.Time, header)
	}
	xIdx, ok := index[cols.X]
	if !ok {
		return nil, fmt.Errorf("x column %q not found in header %v", cols.X, header)
	}
	yIdx, ok := index[cols.Y]
	if !ok {
		return nil, fmt.Errorf("y column %q not found in header %v", cols.Y, header)
	}
	pupilIdx, hasPupil := index[cols.Pupil]

	var samples []gaze.Sample
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}

		t, err := strconv.ParseInt(strings.TrimSpace(record[timeIdx]), 10, 64)
		if err != nil {
			return nil, &RowError{Line: line, Err: fmt.Errorf("invalid time value %q", record[timeIdx])}
		}

		x, err := parsePosition(record[xIdx])
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}
		y, err := parsePosition(record[yIdx])
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}

		sample := gaze.Sample{Time: t, X: x, Y: y}
		if hasPupil {
			pupil, err := parsePupil(record[pupilIdx])
			if err != nil {
				return nil, &RowError{Line: line, Err: err}
			}
			sample.Pupil = pupil
		}
		samples = append(samples, sample)
	}

	return gaze.NewSeries(samples, samplingRate, unit)
}

func parsePosition(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid position value %q", cell)
	}
	return v, nil
}

func parsePupil(cell string) (*float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid pupil value %q", cell)
	}
	return &v, nil
}
