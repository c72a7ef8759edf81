package engine

import (
	"sync"
	"time"
)

// ManualScheduler provides a controllable time source for testing
// Timers fire synchronously inside Advance, in deadline order
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	sched *ManualScheduler
	at    time.Time
	seq   uint64
	fn    func()
	done  bool
}

// NewManualScheduler creates a manual scheduler at the given start time
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the current mocked time
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// AfterFunc registers fn to fire once the mocked time reaches now+d
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d < 0 {
		d = 0
	}
	s.seq++
	t := &manualTimer{sched: s, at: s.now.Add(d), seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Stop implements Timer
func (t *manualTimer) Stop() bool {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.sched.remove(t)
	return true
}

// Advance moves time forward by d, firing every timer that falls due on the way
// Timers created by callbacks fire too if they fall inside the window
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)

	for {
		next := s.earliest(target)
		if next == nil {
			break
		}
		next.done = true
		s.remove(next)
		if next.at.After(s.now) {
			s.now = next.at
		}

		s.mu.Unlock()
		next.fn()
		s.mu.Lock()
	}

	s.now = target
	s.mu.Unlock()
}

// Pending returns the number of timers waiting to fire
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// earliest returns the first due timer, ties broken by creation order, caller holds mu
func (s *ManualScheduler) earliest(limit time.Time) *manualTimer {
	var best *manualTimer
	for _, t := range s.timers {
		if t.at.After(limit) {
			continue
		}
		if best == nil || t.at.Before(best.at) || (t.at.Equal(best.at) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// remove drops t from the pending list, caller holds mu
func (s *ManualScheduler) remove(t *manualTimer) {
	for i, p := range s.timers {
		if p == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

// Immediate is a Dispatcher that runs work synchronously on the caller's goroutine
type Immediate struct{}

// Post implements Dispatcher
func (Immediate) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	fn()
	return true
}
