package search

import "time"

// CancelFunc stops a scheduled call. Calling it after the function ran is a
// no-op.
type CancelFunc func()

// Scheduler defers a function call, replacing ambient timers so tests can
// drive virtual time.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) CancelFunc
}

type timerScheduler struct{}

// NewTimerScheduler returns the production scheduler backed by
// time.AfterFunc.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) Schedule(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
