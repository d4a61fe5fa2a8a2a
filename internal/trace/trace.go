// Package trace records the lifecycle-hook firings of an engine run
// and persists them for later inspection.
//
// A Recorder attaches to the state machine as an observer and stamps
// every hook firing and update dispatch with a monotonic logical
// sequence number. Ordering always comes from that counter, never
// from wall-clock timestamps, so a recorded trace is deterministic
// and directly comparable against golden files.
package trace

import (
	"github.com/AnneKitsune/game-engine-core/statestack"
)

// Event is one recorded machine operation.
type Event struct {
	Seq   int64  `json:"seq"`
	Op    string `json:"op"`
	State string `json:"state"`
	Depth int    `json:"depth"`
}

// Recorder accumulates events in order. Pass Recorder.Observe as the
// machine or engine observer.
//
// Not safe for concurrent use; the engine drives it from the single
// loop goroutine.
type Recorder struct {
	seq    int64
	events []Event
}

// NewRecorder creates an empty recorder. The first event gets seq 1.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Observe records one machine operation. Satisfies statestack.Observer.
func (r *Recorder) Observe(op statestack.Op, state string, depth int) {
	r.seq++
	r.events = append(r.events, Event{
		Seq:   r.seq,
		Op:    string(op),
		State: state,
		Depth: depth,
	})
}

// Events returns a copy of the recorded events in order.
func (r *Recorder) Events() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	return len(r.events)
}

// Reset clears the recorder for reuse. The next event gets seq 1.
func (r *Recorder) Reset() {
	r.seq = 0
	r.events = nil
}
