package gaze

import (
	"fmt"
	"math"
	"sort"
)

// NullRatio returns the ratio of missing (NaN) values to overall values.
// An empty slice has a null ratio of 0.
func NullRatio(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	missing := 0
	for _, v := range values {
		if math.IsNaN(v) {
			missing++
		}
	}
	return float64(missing) / float64(len(values))
}

// DataLossUnit selects how DataLoss reports missing samples.
type DataLossUnit string

const (
	// DataLossCount reports the absolute number of missing samples.
	DataLossCount DataLossUnit = "count"
	// DataLossTime reports missing time in timestamp units.
	DataLossTime DataLossUnit = "time"
	// DataLossRatio reports missing samples over expected samples.
	DataLossRatio DataLossUnit = "ratio"
)

// DataLoss measures recording gaps in a timestamp sequence. The expected
// sampling interval is the median inter-sample interval; the expected sample
// count over [start, end] is compared against the actual count. Start and
// end default to the first and last timestamp when startTime or endTime is
// negative.
func DataLoss(times []int64, startTime, endTime int64, unit DataLossUnit) (float64, error) {
	if len(times) < 2 {
		return 0, fmt.Errorf("data loss needs at least 2 samples, got %d", len(times))
	}

	start := startTime
	if start < 0 {
		start = times[0]
	}
	end := endTime
	if end < 0 {
		end = times[len(times)-1]
	}
	if end < start {
		return 0, fmt.Errorf("end time %d before start time %d", end, start)
	}

	isi := medianInterval(times)
	if isi <= 0 {
		return 0, fmt.Errorf("median inter-sample interval must be positive, got %v", isi)
	}

	expected := math.Floor(float64(end-start)/isi) + 1
	missing := expected - float64(len(times))
	if missing < 0 {
		missing = 0
	}

	switch unit {
	case DataLossCount:
		return missing, nil
	case DataLossTime:
		return missing * isi, nil
	case DataLossRatio:
		return missing / expected, nil
	default:
		return 0, fmt.Errorf("unknown data loss unit %q", unit)
	}
}

func medianInterval(times []int64) float64 {
	diffs := make([]float64, 0, len(times)-1)
	for i := 1; i < len(times); i++ {
		diffs = append(diffs, float64(times[i]-times[i-1]))
	}
	sort.Float64s(diffs)
	mid := len(diffs) / 2
	if len(diffs)%2 == 1 {
		return diffs[mid]
	}
	return (diffs[mid-1] + diffs[mid]) / 2
}
