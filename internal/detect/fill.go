package detect

import (
	"fmt"

	"github.com/pymovements/pymovements/internal/events"
)

// Fill produces events covering every maximal run of samples that belongs to
// none of the given events. Timesteps are matched against the events'
// inclusive onset/offset ranges; each uncovered run becomes one event named
// name ("unclassified" when empty). The returned list contains only the gap
// events, in temporal order.
func Fill(evs events.List, timesteps []int64, name string) (events.List, error) {
	if name == "" {
		name = events.Unclassified
	}
	if err := evs.Validate(); err != nil {
		return nil, err
	}
	if len(timesteps) == 0 {
		return nil, fmt.Errorf("fill needs at least one timestep")
	}

	uncovered := make([]bool, len(timesteps))
	for i, t := range timesteps {
		uncovered[i] = true
		for _, e := range evs {
			if e.Contains(t) {
				uncovered[i] = false
				break
			}
		}
	}

	var gaps events.List
	for _, r := range candidateRuns(uncovered) {
		gaps = append(gaps, events.Event{
			Name:   name,
			Onset:  timesteps[r.first],
			Offset: timesteps[r.last],
		})
	}
	return gaps, nil
}
