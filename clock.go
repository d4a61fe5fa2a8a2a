package enginecore

import "time"

// Clock abstracts wall-clock sampling and sleeping so the loop's
// rate cap can be tested deterministically.
// Implemented by WallClock (production) and testutil.FakeClock (tests).
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// WallClock is the production clock backed by the time package.
type WallClock struct{}

// Now returns the current wall-clock time.
func (WallClock) Now() time.Time {
	return time.Now()
}

// Sleep blocks the calling goroutine for d.
func (WallClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Time tracks frame timing across a run: how many frames have
// elapsed, the duration of the last frame, and the total wall-clock
// time accumulated. Loop advances it once per iteration; manual
// steppers that want meaningful values must call Advance themselves.
type Time struct {
	frame   uint64
	delta   time.Duration
	elapsed time.Duration
}

// Advance records the completion of one frame that took delta.
func (t *Time) Advance(delta time.Duration) {
	t.frame++
	t.delta = delta
	t.elapsed += delta
}

// Frame returns the number of completed frames.
func (t *Time) Frame() uint64 {
	return t.frame
}

// Delta returns the duration of the most recent frame, including any
// rate-limiting sleep.
func (t *Time) Delta() time.Duration {
	return t.delta
}

// Elapsed returns the total accumulated frame time.
func (t *Time) Elapsed() time.Duration {
	return t.elapsed
}
