package harness

import (
	"fmt"
	"io"
	"log/slog"

	enginecore "github.com/AnneKitsune/game-engine-core"
	"github.com/AnneKitsune/game-engine-core/internal/testutil"
	"github.com/AnneKitsune/game-engine-core/internal/trace"
	"github.com/AnneKitsune/game-engine-core/statestack"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: the stack drained (or the
	// scenario's assertions all held) and no quota was exceeded.
	Pass bool `json:"pass"`

	// Trace contains every hook firing and update dispatch in order.
	Trace []trace.Event `json:"trace"`

	// Data is the final shared data (per-state update counts, frames).
	Data RunData `json:"data"`

	// Steps is the number of engine steps executed.
	Steps int `json:"steps"`

	// StackLen is the stack depth when the run ended.
	StackLen int `json:"stack_len"`

	// RunToken correlates this result with logs and stored traces.
	RunToken string `json:"run_token"`

	// Errors contains assertion and quota failures. Empty when Pass.
	Errors []string `json:"errors,omitempty"`
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// Run executes a scenario against a real engine and returns the
// result. The engine is driven by manual stepping under a fake clock,
// so execution is fully deterministic: the same scenario always
// yields the same trace.
func Run(sc *Scenario) (*Result, error) {
	if err := Validate(sc); err != nil {
		return nil, err
	}

	initial, err := newScriptedState(sc.Initial, sc.States)
	if err != nil {
		return nil, err
	}

	recorder := trace.NewRecorder()
	clock := testutil.NewFakeClock()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	hook := func(m *statestack.Machine[RunData], d *RunData) {
		d.Frames++
	}

	eng := enginecore.New[RunData](
		initial,
		RunData{Updates: make(map[string]int)},
		hook,
		0, // uncapped: the harness paces nothing, it steps manually
		enginecore.WithClock[RunData](clock),
		enginecore.WithObserver[RunData](recorder.Observe),
		enginecore.WithTokenGenerator[RunData](enginecore.NewFixedGenerator(sc.runToken())),
		enginecore.WithLogger[RunData](quiet),
	)

	result := &Result{Pass: true, RunToken: eng.RunToken()}

	quota := sc.maxSteps()
	for eng.Machine().IsRunning() {
		if result.Steps >= quota {
			result.AddError(fmt.Sprintf("max steps quota exceeded (%d)", quota))
			break
		}
		eng.Step()
		result.Steps++
	}

	result.Trace = recorder.Events()
	result.Data = *eng.Data()
	result.StackLen = eng.Machine().Len()

	applyAssertions(result, sc)

	return result, nil
}
