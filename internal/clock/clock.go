package clock

import "time"

// Timer is a cancellation handle for a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already ran
	// or was stopped.
	Stop() bool
}

// Clock provides the current time and one-shot callbacks.
// Real code uses System; tests use Mock to step time explicitly.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// System is the wall clock backed by package time.
type System struct{}

// New returns the wall clock.
func New() System { return System{} }

func (System) Now() time.Time { return time.Now() }

func (System) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
