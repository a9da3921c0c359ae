package detect

import "fmt"

// run is a maximal stretch of candidate samples, as inclusive indices.
type run struct {
	first int
	last  int
}

// candidateRuns groups consecutive true entries of mask into runs.
func candidateRuns(mask []bool) []run {
	var runs []run
	start := -1
	for i := 0; i <= len(mask); i++ {
		if start >= 0 && (i == len(mask) || !mask[i]) {
			runs = append(runs, run{first: start, last: i - 1})
			start = -1
		}
		if i < len(mask) && start < 0 && mask[i] {
			start = i
		}
	}
	return runs
}

// filterRunsByDuration keeps runs whose duration in timestep units lies in
// [minDuration, maxDuration]. A negative maxDuration disables the upper bound.
func filterRunsByDuration(runs []run, times []int64, minDuration, maxDuration int64) []run {
	var kept []run
	for _, r := range runs {
		duration := times[r.last] - times[r.first]
		if duration < minDuration {
			continue
		}
		if maxDuration >= 0 && duration > maxDuration {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// resolveTimesteps validates timesteps against the sample count, or
// substitutes sample indices when timesteps is nil.
func resolveTimesteps(n int, timesteps []int64) ([]int64, error) {
	if timesteps == nil {
		times := make([]int64, n)
		for i := range times {
			times[i] = int64(i)
		}
		return times, nil
	}
	if len(timesteps) != n {
		return nil, fmt.Errorf("timesteps length (%d) must match sample count (%d)", len(timesteps), n)
	}
	return timesteps, nil
}
