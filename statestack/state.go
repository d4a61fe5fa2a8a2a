package statestack

// State is a unit of application behavior living at some position in
// the stack. D is the caller-chosen shared data type; every call
// receives it by pointer for the duration of the call only.
//
// States cannot fail: any domain error must be encoded as a
// transition (Pop or Quit) or written into the shared data for the
// caller to observe after the run.
type State[D any] interface {
	// OnStart is called exactly once, immediately after the state
	// becomes the new top via a Push or Switch transition. The
	// initial state seeded at construction is pre-started and does
	// NOT receive this call.
	OnStart(data *D)

	// OnStop is called exactly once, immediately before the state is
	// removed via Switch, Pop, or Quit. For Quit only the top state
	// is stopped; lower states are dropped silently.
	OnStop(data *D)

	// OnPause is called when another state is pushed on top of this one.
	OnPause(data *D)

	// OnResume is called when the state above is popped and this
	// state becomes the new top.
	OnResume(data *D)

	// Update is called once per tick while this state is the top.
	// It mutates the shared data and returns the next transition.
	Update(data *D) Transition[D]
}

// Base provides no-op lifecycle hooks. Embed it in a state that only
// cares about Update:
//
//	type countdown struct {
//		statestack.Base[int]
//		left int
//	}
//
//	func (c *countdown) Update(n *int) statestack.Transition[int] {
//		*n++
//		if c.left--; c.left <= 0 {
//			return statestack.Pop[int]()
//		}
//		return statestack.None[int]()
//	}
//
// Update is deliberately not provided; every state must implement it.
type Base[D any] struct{}

// OnStart is a no-op.
func (Base[D]) OnStart(*D) {}

// OnStop is a no-op.
func (Base[D]) OnStop(*D) {}

// OnPause is a no-op.
func (Base[D]) OnPause(*D) {}

// OnResume is a no-op.
func (Base[D]) OnResume(*D) {}

// Namer optionally gives a state a stable label for observers, logs,
// and traces. States that do not implement it are labeled with their
// Go type.
type Namer interface {
	StateName() string
}
