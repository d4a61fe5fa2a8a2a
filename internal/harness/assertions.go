package harness

import (
	"fmt"
	"strings"

	"github.com/AnneKitsune/game-engine-core/internal/trace"
)

// AssertionError is returned when an assertion fails. It carries the
// full trace so a failing test prints enough context to debug.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []trace.Event
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  actual: %s\n", e.Actual)
	fmt.Fprintf(&buf, "\nfull trace:\n")
	for _, ev := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s %s (depth %d)\n", ev.Seq, ev.Op, ev.State, ev.Depth)
	}
	return buf.String()
}

// applyAssertions evaluates every scenario assertion against the
// result, recording failures.
func applyAssertions(result *Result, sc *Scenario) {
	for _, a := range sc.Assertions {
		var err error
		switch a.Type {
		case "trace_count":
			err = assertTraceCount(result.Trace, a)
		case "trace_order":
			err = assertTraceOrder(result.Trace, a)
		case "final_updates":
			err = assertFinalUpdates(result, a)
		case "stack_empty":
			err = assertStackEmpty(result)
		default:
			// Validation restricts the type set; reaching here is a bug.
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			result.AddError(err.Error())
		}
	}
}

// assertTraceCount checks that an op (optionally narrowed to one
// state label) appears exactly Count times.
func assertTraceCount(events []trace.Event, a Assertion) error {
	count := 0
	for _, ev := range events {
		if ev.Op == a.Op && (a.State == "" || ev.State == a.State) {
			count++
		}
	}
	if count != a.Count {
		subject := a.Op
		if a.State != "" {
			subject = a.Op + " " + a.State
		}
		return &AssertionError{
			Type:     "trace_count",
			Expected: fmt.Sprintf("%s appears %d times", subject, a.Count),
			Actual:   fmt.Sprintf("appears %d times", count),
			Trace:    events,
		}
	}
	return nil
}

// assertTraceOrder checks that the "op state" pairs in a.Events
// appear as a subsequence of the trace. Intervening events are
// allowed; reordering is not.
func assertTraceOrder(events []trace.Event, a Assertion) error {
	pos := 0
	for _, ev := range events {
		if pos >= len(a.Events) {
			break
		}
		if ev.Op+" "+ev.State == a.Events[pos] {
			pos++
		}
	}
	if pos < len(a.Events) {
		return &AssertionError{
			Type:     "trace_order",
			Expected: fmt.Sprintf("events in order: %v", a.Events),
			Actual:   fmt.Sprintf("matched %d of %d; next missing: %q", pos, len(a.Events), a.Events[pos]),
			Trace:    events,
		}
	}
	return nil
}

// assertFinalUpdates checks per-state update counts exactly.
func assertFinalUpdates(result *Result, a Assertion) error {
	for state, want := range a.Updates {
		got := result.Data.Updates[state]
		if got != want {
			return &AssertionError{
				Type:     "final_updates",
				Expected: fmt.Sprintf("state %q updated %d times", state, want),
				Actual:   fmt.Sprintf("updated %d times", got),
				Trace:    result.Trace,
			}
		}
	}
	return nil
}

// assertStackEmpty checks the run ended with an empty stack.
func assertStackEmpty(result *Result) error {
	if result.StackLen != 0 {
		return &AssertionError{
			Type:     "stack_empty",
			Expected: "empty stack after run",
			Actual:   fmt.Sprintf("%d states remain", result.StackLen),
			Trace:    result.Trace,
		}
	}
	return nil
}
