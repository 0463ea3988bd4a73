package demo

import "time"

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the callback was prevented
	// from running, matching time.Timer semantics.
	Stop() bool
}

// Scheduler arms timers and tells time. The driver takes it as a dependency
// so tests can drive the engine with a manual scheduler instead of real
// timers.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
	Now() time.Time
}

// realScheduler is the production Scheduler backed by the runtime timer heap.
type realScheduler struct{}

// NewScheduler returns the real-time Scheduler.
func NewScheduler() Scheduler { return realScheduler{} }

func (realScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

func (realScheduler) Now() time.Time { return time.Now() }
