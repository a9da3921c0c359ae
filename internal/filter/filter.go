// Package filter selects events with user-supplied boolean expressions.
//
// Expressions are compiled once against a typed environment exposing the
// fields of a single event (name, onset, offset, duration) and then applied
// per event, e.g. `name == "fixation" && duration >= 100`.
package filter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/pymovements/pymovements/internal/events"
)

// Filter is a compiled event predicate.
type Filter struct {
	source  string
	program *vm.Program
}

// exprEnv defines the variables visible to filter expressions.
func exprEnv(e events.Event) map[string]interface{} {
	return map[string]interface{}{
		"name":     e.Name,
		"onset":    e.Onset,
		"offset":   e.Offset,
		"duration": e.Duration(),
	}
}

// Compile parses and type-checks a filter expression. The expression must
// evaluate to a boolean.
func Compile(expression string) (*Filter, error) {
	program, err := expr.Compile(expression, expr.Env(exprEnv(events.Event{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression %q: %w", expression, err)
	}
	return &Filter{source: expression, program: program}, nil
}

// Source returns the original expression text.
func (f *Filter) Source() string {
	return f.source
}

// Match evaluates the filter against one event.
func (f *Filter) Match(e events.Event) (bool, error) {
	output, err := expr.Run(f.program, exprEnv(e))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter %q: %w", f.source, err)
	}
	return output.(bool), nil
}

// Apply returns the events matching the filter, preserving order.
func (f *Filter) Apply(evs events.List) (events.List, error) {
	var out events.List
	for _, e := range evs {
		ok, err := f.Match(e)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, e)
		}
	}
	return out, nil
}
