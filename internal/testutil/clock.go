// Package testutil provides deterministic helpers for engine tests.
package testutil

import (
	"sync"
	"time"
)

// FakeClock is a manually driven clock for deterministic loop tests.
//
// Now returns a fixed instant until the test (or a state under test)
// calls Advance. Sleep never blocks: it records the requested
// duration and advances the clock by it, so tests can assert exactly
// how long the loop would have slept.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex, though the engine's single-threaded design means tests
// typically drive it from one goroutine.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

// NewFakeClock creates a clock starting at a fixed arbitrary instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{
		now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Now returns the clock's current instant.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d. Tests use this to simulate
// work taking wall-clock time, e.g. from inside a state's Update.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Sleep records the requested duration and advances the clock by it
// without blocking.
func (c *FakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

// Sleeps returns a copy of every duration passed to Sleep, in order.
func (c *FakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.sleeps))
	copy(out, c.sleeps)
	return out
}
