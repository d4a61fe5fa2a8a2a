package statestack

import "fmt"

// Op identifies an observable machine event: a lifecycle hook firing
// or an update dispatch.
type Op string

const (
	OpUpdate Op = "update"
	OpStart  Op = "start"
	OpStop   Op = "stop"
	OpPause  Op = "pause"
	OpResume Op = "resume"
)

// Observer receives every hook firing and update dispatch, in the
// exact order the machine performs them. The state argument is the
// label of the affected state (Namer name or Go type); depth is the
// stack depth after the operation.
//
// Observers are for tracing and tests. They must not mutate the
// machine.
type Observer func(op Op, state string, depth int)

// Machine owns an ordered stack of states. The last inserted state is
// the top and the only one receiving Update calls.
//
// Machine is not safe for concurrent use; the whole design is
// single-threaded and cooperative.
type Machine[D any] struct {
	stack    []State[D]
	observer Observer
}

// Option configures a Machine.
type Option[D any] func(*Machine[D])

// WithObserver attaches an observer to the machine.
func WithObserver[D any](o Observer) Option[D] {
	return func(m *Machine[D]) {
		m.observer = o
	}
}

// New creates a machine whose stack contains exactly the initial
// state. The initial state is considered already started by
// construction: its OnStart is NOT called. Later pushes and switches
// DO call OnStart, so hook-call counts differ for the initial state.
func New[D any](initial State[D], opts ...Option[D]) *Machine[D] {
	m := &Machine[D]{stack: []State[D]{initial}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Len returns the number of states on the stack.
func (m *Machine[D]) Len() int {
	return len(m.stack)
}

// IsRunning reports whether any state remains on the stack.
func (m *Machine[D]) IsRunning() bool {
	return len(m.stack) > 0
}

// Update runs one tick: it calls Update on the top state and applies
// the returned transition, firing lifecycle hooks in order. On an
// empty stack it is a no-op and does not touch the shared data.
func (m *Machine[D]) Update(data *D) {
	if len(m.stack) == 0 {
		return
	}
	top := m.stack[len(m.stack)-1]
	m.emit(OpUpdate, top, len(m.stack))
	m.Apply(top.Update(data), data)
}

// Apply applies a transition to the stack. Exposed so callers driving
// the machine directly (without Update) can inject transitions.
func (m *Machine[D]) Apply(t Transition[D], data *D) {
	switch t.Kind() {
	case KindNone:
	case KindPush:
		m.Push(t.Next(), data)
	case KindSwitch:
		m.Switch(t.Next(), data)
	case KindPop:
		m.Pop(data)
	case KindQuit:
		m.Quit(data)
	}
}

// Push pauses the current top, pushes s, and starts it.
func (m *Machine[D]) Push(s State[D], data *D) {
	if n := len(m.stack); n > 0 {
		top := m.stack[n-1]
		top.OnPause(data)
		m.emit(OpPause, top, n)
	}
	m.stack = append(m.stack, s)
	s.OnStart(data)
	m.emit(OpStart, s, len(m.stack))
}

// Switch stops and removes the current top, then pushes and starts s.
// States below the top receive no hook calls. On an empty stack this
// degenerates to a plain push-and-start.
func (m *Machine[D]) Switch(s State[D], data *D) {
	if n := len(m.stack); n > 0 {
		top := m.stack[n-1]
		top.OnStop(data)
		m.stack[n-1] = nil
		m.stack = m.stack[:n-1]
		m.emit(OpStop, top, n-1)
	}
	m.stack = append(m.stack, s)
	s.OnStart(data)
	m.emit(OpStart, s, len(m.stack))
}

// Pop stops and removes the current top, resuming the state below if
// one remains. Popping an empty stack is a no-op.
func (m *Machine[D]) Pop(data *D) {
	n := len(m.stack)
	if n == 0 {
		return
	}
	top := m.stack[n-1]
	top.OnStop(data)
	m.stack[n-1] = nil
	m.stack = m.stack[:n-1]
	m.emit(OpStop, top, n-1)
	if n > 1 {
		next := m.stack[n-2]
		next.OnResume(data)
		m.emit(OpResume, next, n-1)
	}
}

// Quit stops the top state and clears the entire stack. Lower states
// are dropped without OnStop; this is the documented hard-exit
// semantic distinguishing Quit from repeated Pop. Quitting an empty
// stack is a no-op.
func (m *Machine[D]) Quit(data *D) {
	n := len(m.stack)
	if n == 0 {
		return
	}
	top := m.stack[n-1]
	top.OnStop(data)
	for i := range m.stack {
		m.stack[i] = nil
	}
	m.stack = m.stack[:0]
	m.emit(OpStop, top, 0)
}

func (m *Machine[D]) emit(op Op, s State[D], depth int) {
	if m.observer == nil {
		return
	}
	m.observer(op, Label[D](s), depth)
}

// Label returns the observer label of a state: its Namer name if it
// implements one, otherwise its Go type.
func Label[D any](s State[D]) string {
	if n, ok := any(s).(Namer); ok {
		return n.StateName()
	}
	return fmt.Sprintf("%T", s)
}
