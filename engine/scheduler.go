package engine

import "time"

// Timer is a cancellable pending callback
type Timer interface {
	// Stop prevents the timer from firing, false if it already fired or was stopped
	// A false return does not mean the callback ran: it may still be queued on the loop
	Stop() bool
}

// Scheduler is the time source for clocks, countdowns and delayed feedback
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// LoopScheduler fires timers by posting their callbacks to a Dispatcher
// Callbacks therefore run serialized with input handling
type LoopScheduler struct {
	dispatcher Dispatcher
}

// NewLoopScheduler creates a scheduler bound to a dispatcher
func NewLoopScheduler(d Dispatcher) *LoopScheduler {
	return &LoopScheduler{dispatcher: d}
}

// Now returns the current time with monotonic clock reading
func (s *LoopScheduler) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn on the dispatcher after d
func (s *LoopScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	return time.AfterFunc(d, func() {
		s.dispatcher.Post(fn)
	})
}
