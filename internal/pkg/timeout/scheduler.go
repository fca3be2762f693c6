package timeout

import "time"

// Scheduler fires a one-shot callback after a delay. At least delay elapses
// before fn runs, fn runs exactly once, and no ordering is guaranteed across
// independently scheduled callbacks.
type Scheduler interface {
	Schedule(delay time.Duration, fn func())
}

type TimerScheduler struct{}

func NewTimerScheduler() TimerScheduler { return TimerScheduler{} }

func (TimerScheduler) Schedule(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}
