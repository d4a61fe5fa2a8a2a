// Package statestack implements a stack of mutually exclusive
// application states and the transition protocol between them.
//
// The top of the stack is the only active state: it is the sole
// receiver of Update calls. States below the top are paused - alive,
// holding data, but not updating. Each Update returns a Transition
// instructing the stack to stay, push, switch, pop, or quit, and the
// machine fires the lifecycle hooks in a fixed order as it applies
// the instruction:
//
//   - Push:   OnPause(old top), append, OnStart(new top)
//   - Switch: OnStop(old top), pop, append, OnStart(new top)
//   - Pop:    OnStop(top), pop, OnResume(new top) if one remains
//   - Quit:   OnStop(top) only, then the whole stack is cleared
//
// Quit is a hard exit: states below the top are dropped without
// OnStop. This distinguishes it from draining the stack with repeated
// Pop, where every state gets its OnStop.
//
// The machine never underflows. Pop or Quit on an empty stack is a
// no-op, not a fault; there are no error returns at this layer.
// Domain failures belong to the caller, encoded as a transition or
// recorded into the shared data.
//
// Everything here is single-threaded and synchronous. The shared data
// value is threaded by pointer through every hook and update; nothing
// retains that pointer across calls.
package statestack
