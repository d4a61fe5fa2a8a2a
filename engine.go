package enginecore

import (
	"log/slog"
	"time"

	"github.com/AnneKitsune/game-engine-core/statestack"
)

// FrameHook is a caller-supplied function invoked once per tick,
// before the active state's update. It receives the stack and the
// shared data and is the place for cross-cutting per-frame logic
// (input polling, timing bookkeeping) that does not belong to any
// single state.
type FrameHook[D any] func(m *statestack.Machine[D], data *D)

// Engine owns the state stack and the shared data for the duration of
// a run, and drives them either tick by tick via Step or continuously
// via Loop.
//
// Engine is single-threaded: all state updates, hook firings, and
// data mutations happen on the goroutine calling Step or Loop.
type Engine[D any] struct {
	machine     *statestack.Machine[D]
	data        D
	frameHook   FrameHook[D]
	frameBudget time.Duration
	clock       Clock
	time        Time
	runToken    string
	logger      *slog.Logger

	observer statestack.Observer
	tokenGen TokenGenerator
}

// Option configures an Engine.
type Option[D any] func(*Engine[D])

// WithClock replaces the wall clock, letting tests drive the loop's
// rate cap deterministically.
func WithClock[D any](c Clock) Option[D] {
	return func(e *Engine[D]) {
		e.clock = c
	}
}

// WithObserver attaches an observer to the underlying state machine.
// Every hook firing and update dispatch is reported in order.
func WithObserver[D any](o statestack.Observer) Option[D] {
	return func(e *Engine[D]) {
		e.observer = o
	}
}

// WithTokenGenerator replaces the run token generator.
// Use a FixedGenerator for deterministic traces in tests.
func WithTokenGenerator[D any](g TokenGenerator) Option[D] {
	return func(e *Engine[D]) {
		e.tokenGen = g
	}
}

// WithLogger replaces the engine's logger. Defaults to slog.Default.
func WithLogger[D any](l *slog.Logger) Option[D] {
	return func(e *Engine[D]) {
		e.logger = l
	}
}

// New creates an Engine whose stack contains exactly the initial
// state. The initial state is considered already started: its OnStart
// is NOT called, unlike states pushed later. Callers relying on
// hook-call counts must account for this asymmetry.
//
// targetFPS caps the Loop iteration rate; a value <= 0 disables the
// cap entirely (Loop never sleeps). frameHook may be nil.
func New[D any](initial statestack.State[D], data D, frameHook FrameHook[D], targetFPS float64, opts ...Option[D]) *Engine[D] {
	e := &Engine[D]{
		data:      data,
		frameHook: frameHook,
		clock:     WallClock{},
		logger:    slog.Default(),
		tokenGen:  UUIDv7Generator{},
	}
	if targetFPS > 0 {
		e.frameBudget = time.Duration(float64(time.Second) / targetFPS)
	}
	for _, opt := range opts {
		opt(e)
	}
	e.runToken = e.tokenGen.Generate()

	var machineOpts []statestack.Option[D]
	if e.observer != nil {
		machineOpts = append(machineOpts, statestack.WithObserver[D](e.observer))
	}
	e.machine = statestack.New[D](initial, machineOpts...)

	return e
}

// Step runs a single manual tick: the frame hook first, then the
// active state's update and the resulting transition. On an empty
// stack it is a no-op that leaves the shared data untouched.
//
// Returns whether the engine can be stepped again, i.e. whether any
// state remains on the stack. Step never sleeps; callers owning their
// own loop are responsible for their own pacing.
func (e *Engine[D]) Step() bool {
	if !e.machine.IsRunning() {
		return false
	}
	if e.frameHook != nil {
		e.frameHook(e.machine, &e.data)
	}
	e.machine.Update(&e.data)
	return e.machine.IsRunning()
}

// Loop repeatedly calls Step until the stack is empty, capping the
// iteration rate at the configured target FPS. Each iteration samples
// the clock, steps, and sleeps for the positive remainder of the
// frame budget. An iteration that overruns its budget proceeds
// immediately; there is no catch-up accumulation.
//
// Blocks the calling goroutine until all states are exhausted.
func (e *Engine[D]) Loop() {
	e.logger.Info("engine loop starting",
		"run", e.runToken,
		"frame_budget", e.frameBudget,
	)

	for e.machine.IsRunning() {
		start := e.clock.Now()
		e.Step()
		elapsed := e.clock.Now().Sub(start)

		e.logger.Debug("frame complete",
			"run", e.runToken,
			"frame", e.time.Frame(),
			"elapsed", elapsed,
			"depth", e.machine.Len(),
		)

		if remaining := e.frameBudget - elapsed; remaining > 0 {
			e.clock.Sleep(remaining)
		}
		e.time.Advance(e.clock.Now().Sub(start))
	}

	e.logger.Info("engine loop finished",
		"run", e.runToken,
		"frames", e.time.Frame(),
		"elapsed", e.time.Elapsed(),
	)
}

// Machine returns the engine's state machine, for callers driving
// transitions directly from a frame hook or between manual steps.
func (e *Engine[D]) Machine() *statestack.Machine[D] {
	return e.machine
}

// Data returns the shared data, valid for inspection between steps
// and after the run ends.
func (e *Engine[D]) Data() *D {
	return &e.data
}

// Time returns the engine's frame timing. Loop advances it once per
// iteration; manual steppers may call Advance themselves.
func (e *Engine[D]) Time() *Time {
	return &e.time
}

// RunToken returns the token correlating this run's logs and traces.
func (e *Engine[D]) RunToken() string {
	return e.runToken
}
