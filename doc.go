// Package enginecore drives a stack of application states through
// manual single-step updates or an automatic frame-rate-capped loop.
//
// ARCHITECTURE:
//
// The Engine owns three things: a statestack.Machine holding the
// states, a single shared data value of caller-chosen type, and a
// caller-supplied frame hook. Each tick the frame hook runs first
// (cross-cutting per-frame logic such as input polling or timing
// bookkeeping), then the active state's Update runs and the returned
// transition is applied to the stack.
//
// Everything is single-threaded, synchronous, and cooperative. There
// is no parallelism and no cancellation mechanism beyond the states
// themselves returning Pop or Quit to unwind the stack. The only
// suspension point is the deliberate rate-limiting sleep in Loop.
//
// The frame-rate cap is advisory, not a real-time guarantee: each
// iteration sleeps for the positive remainder of the frame budget,
// and an iteration that overruns its budget simply lets the loop run
// slower. There is no catch-up accumulation and no frame dropping.
//
// Callers integrating with an external windowing or render loop can
// own the loop themselves and call Step once per outer frame; Loop is
// a convenience for programs where this library is the main loop.
package enginecore
