package core

import "time"

// Clock is the blocking microsecond delay primitive and the time base
// used for pulse measurement.
type Clock interface {
	// WaitMicros blocks the calling context for at least us microseconds
	WaitMicros(us uint32)

	// Micros returns a monotonic microsecond counter
	Micros() uint64
}

// Global singleton used by robot code.
var clock Clock

// SetClock is called by target-specific code to register its time base.
func SetClock(c Clock) {
	clock = c
}

// MustClock returns the configured clock or panics if missing.
func MustClock() Clock {
	if clock == nil {
		panic("clock not configured")
	}
	return clock
}

// spinThreshold is the delay below which SystemClock busy-waits instead
// of handing control to the scheduler.
const spinThreshold = 100 * time.Microsecond

// SystemClock implements Clock on top of the runtime monotonic clock.
// Short delays spin; the 2us and 10us trigger timings would otherwise be
// stretched to the scheduler tick.
type SystemClock struct {
	boot time.Time
}

// NewSystemClock returns a clock whose counter starts at zero now.
func NewSystemClock() *SystemClock {
	return &SystemClock{boot: time.Now()}
}

// WaitMicros blocks for at least us microseconds
func (c *SystemClock) WaitMicros(us uint32) {
	d := time.Duration(us) * time.Microsecond
	if d >= spinThreshold {
		time.Sleep(d)
		return
	}
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
	}
}

// Micros returns microseconds elapsed since the clock was created
func (c *SystemClock) Micros() uint64 {
	return uint64(time.Since(c.boot) / time.Microsecond)
}
