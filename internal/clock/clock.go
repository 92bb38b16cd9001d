// Package clock abstracts time for the loading coordinator.
// Production code uses the system clock; tests use Fake to drive
// timers deterministically without sleeping.
package clock

import "time"

// Clock provides the current time and one-shot timer scheduling.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc schedules fn to run after d and returns a handle
	// that can cancel the timer before it fires.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the timer was
	// stopped before firing.
	Stop() bool
}

// systemClock delegates to the time package.
type systemClock struct{}

// System returns a Clock backed by the real system time.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{t: time.AfterFunc(d, fn)}
}

type systemTimer struct {
	t *time.Timer
}

func (s systemTimer) Stop() bool {
	return s.t.Stop()
}
