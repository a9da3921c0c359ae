package detect

import (
	"fmt"
	"sort"

	"github.com/pymovements/pymovements/internal/events"
	"github.com/pymovements/pymovements/internal/gaze"
)

// Input carries the per-recording signals a detector may need. Detectors
// only read the fields they require; Times may be nil to use sample indices.
type Input struct {
	Times      []int64
	Positions  []gaze.Point
	Velocities []gaze.Point
	Pupil      []float64
	// Prior holds already-detected events, consumed by the fill detector.
	Prior events.List
}

// Options bundles per-algorithm options for registry dispatch.
type Options struct {
	IVT           IVTOptions
	IDT           IDTOptions
	Microsaccades MicrosaccadesOptions
	Blink         BlinkOptions
	OutOfScreen   OutOfScreenOptions
	FillName      string
}

// DefaultOptions returns every algorithm's defaults. The out-of-screen
// bounds stay zero and must be set from the screen geometry before use.
func DefaultOptions() Options {
	return Options{
		IVT:           DefaultIVTOptions(),
		IDT:           DefaultIDTOptions(),
		Microsaccades: DefaultMicrosaccadesOptions(),
		Blink:         DefaultBlinkOptions(),
		OutOfScreen:   OutOfScreenOptions{Name: events.OutOfScreen},
		FillName:      events.Unclassified,
	}
}

// Func runs one detection algorithm over an input.
type Func func(in Input, opts Options) (events.List, error)

var registry = map[string]Func{
	"ivt": func(in Input, opts Options) (events.List, error) {
		if in.Velocities == nil {
			return nil, fmt.Errorf("ivt requires velocities")
		}
		return IVT(in.Velocities, in.Times, opts.IVT)
	},
	"idt": func(in Input, opts Options) (events.List, error) {
		if in.Positions == nil {
			return nil, fmt.Errorf("idt requires positions")
		}
		return IDT(in.Positions, in.Times, opts.IDT)
	},
	"microsaccades": func(in Input, opts Options) (events.List, error) {
		if in.Velocities == nil {
			return nil, fmt.Errorf("microsaccades requires velocities")
		}
		return Microsaccades(in.Velocities, in.Times, opts.Microsaccades)
	},
	"blink": func(in Input, opts Options) (events.List, error) {
		if in.Pupil == nil {
			return nil, fmt.Errorf("blink requires a pupil signal")
		}
		return Blink(in.Pupil, in.Times, opts.Blink)
	},
	"out_of_screen": func(in Input, opts Options) (events.List, error) {
		if in.Positions == nil {
			return nil, fmt.Errorf("out_of_screen requires positions")
		}
		return OutOfScreen(in.Positions, in.Times, opts.OutOfScreen)
	},
	"fill": func(in Input, opts Options) (events.List, error) {
		if in.Times == nil {
			return nil, fmt.Errorf("fill requires timesteps")
		}
		return Fill(in.Prior, in.Times, opts.FillName)
	},
}

// Lookup returns the detector registered under name.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Names returns all registered detector names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
