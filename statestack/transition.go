package statestack

// Kind identifies a transition variant.
type Kind int

const (
	// KindNone keeps the current state running next tick.
	KindNone Kind = iota
	// KindPush pauses the current state and starts a new one on top.
	KindPush
	// KindSwitch replaces the current state without touching the
	// states below it.
	KindSwitch
	// KindPop stops and removes the current state, resuming the one
	// below if any remains.
	KindPop
	// KindQuit stops the current state and clears the entire stack.
	KindQuit
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindPush:
		return "push"
	case KindSwitch:
		return "switch"
	case KindPop:
		return "pop"
	case KindQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Transition is the tagged instruction a state's Update returns.
// Push and Switch carry the owned next state; the other kinds carry
// nothing. The zero value is None.
type Transition[D any] struct {
	kind Kind
	next State[D]
}

// None continues running the same state next tick.
func None[D any]() Transition[D] {
	return Transition[D]{kind: KindNone}
}

// Push pauses the current state and pushes next on top of it.
func Push[D any](next State[D]) Transition[D] {
	return Transition[D]{kind: KindPush, next: next}
}

// Switch stops and replaces the current state with next. States below
// are untouched and receive no hook calls.
func Switch[D any](next State[D]) Transition[D] {
	return Transition[D]{kind: KindSwitch, next: next}
}

// Pop stops and removes the current state. If the stack becomes
// empty, the run ends.
func Pop[D any]() Transition[D] {
	return Transition[D]{kind: KindPop}
}

// Quit stops the current state and unconditionally clears the stack.
// Lower states are dropped without OnStop.
func Quit[D any]() Transition[D] {
	return Transition[D]{kind: KindQuit}
}

// Kind returns the transition variant.
func (t Transition[D]) Kind() Kind {
	return t.kind
}

// Next returns the state carried by a Push or Switch transition, or
// nil for the other kinds.
func (t Transition[D]) Next() State[D] {
	return t.next
}
