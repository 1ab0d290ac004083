package poller

import "time"

// Clock abstracts scheduling so tests can drive cycles without real
// timers.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// AfterFunc schedules fn after d and returns a stoppable handle.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop cancels the timer; it reports whether the callback was
	// prevented from firing.
	Stop() bool
}

// RealClock implements Clock using the time package.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) AfterFunc(d time.Duration, fn func()) Timer {
	return realTimer{t: time.AfterFunc(d, fn)}
}

type realTimer struct {
	t *time.Timer
}

func (r realTimer) Stop() bool { return r.t.Stop() }
