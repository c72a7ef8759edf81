package engine

import (
	"testing"
	"time"
)

// TestManualSchedulerOrdering verifies timers fire in deadline order with time set to each deadline
func TestManualSchedulerOrdering(t *testing.T) {
	sched := NewManualScheduler(epoch)
	var order []string
	var times []time.Duration

	record := func(name string) func() {
		return func() {
			order = append(order, name)
			times = append(times, sched.Now().Sub(epoch))
		}
	}

	sched.AfterFunc(300*time.Millisecond, record("c"))
	sched.AfterFunc(100*time.Millisecond, record("a"))
	sched.AfterFunc(100*time.Millisecond, record("b"))
	late := sched.AfterFunc(time.Second, record("late"))

	sched.Advance(500 * time.Millisecond)

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("Expected [a b c], got %v", order)
	}
	if times[2] != 300*time.Millisecond {
		t.Errorf("Expected c at 300ms, got %v", times[2])
	}
	if got := sched.Now().Sub(epoch); got != 500*time.Millisecond {
		t.Errorf("Expected clock at 500ms after Advance, got %v", got)
	}
	if !late.Stop() {
		t.Error("Pending timer should stop")
	}
	if late.Stop() {
		t.Error("Second Stop should report false")
	}
}

// TestManualSchedulerNested verifies timers created by callbacks fire within the same Advance
func TestManualSchedulerNested(t *testing.T) {
	sched := NewManualScheduler(epoch)
	count := 0
	var chain func()
	chain = func() {
		count++
		sched.AfterFunc(100*time.Millisecond, chain)
	}
	sched.AfterFunc(0, chain)

	sched.Advance(450 * time.Millisecond)
	if count != 5 {
		t.Errorf("Expected 5 chained fires (0..400ms), got %d", count)
	}
	if sched.Pending() != 1 {
		t.Errorf("Expected one pending timer, got %d", sched.Pending())
	}
}
