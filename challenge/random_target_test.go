package challenge

import (
	"testing"

	"github.com/lixenwraith/vi-piano/constants"
	"github.com/lixenwraith/vi-piano/core"
	"github.com/lixenwraith/vi-piano/engine"
)

func newTestTarget(store *countingStore, script ...core.Note) (*RandomTarget, *engine.ManualScheduler) {
	sched := engine.NewManualScheduler(epoch)
	cfg := DefaultRandomTargetConfig()
	cfg.Pick = scriptedPicker(cfg.Notes, script...)
	return NewRandomTarget(core.Lesson1, sched, store, cfg), sched
}

// TestRandomTargetIgnoredBeforeStart verifies presses before Start do nothing
func TestRandomTargetIgnoredBeforeStart(t *testing.T) {
	r, _ := newTestTarget(newCountingStore(), core.NoteC)
	r.OnKeyPress(core.NoteC)

	st := r.Snapshot()
	if st.Status != core.StatusNotStarted || st.Streak != 0 || st.Feedback.Text != "" {
		t.Errorf("Press before start changed state: %+v", st)
	}
}

// TestRandomTargetCorrectAdvancesAfterDelay verifies the feedback hold and the input block during it
func TestRandomTargetCorrectAdvancesAfterDelay(t *testing.T) {
	r, sched := newTestTarget(newCountingStore(), core.NoteC, core.NoteD)
	r.Start()

	r.OnKeyPress(core.NoteC)
	st := r.Snapshot()
	if st.Streak != 1 || st.Feedback.Text != "Correct (1 in a row)" {
		t.Fatalf("Unexpected state after correct press: %+v", st)
	}
	if st.Target != core.NoteC {
		t.Error("Target must not change before the delay")
	}

	// Blocked while the correct message is shown
	r.OnKeyPress(core.NoteB)
	if r.Snapshot().Streak != 1 {
		t.Error("Press during advance delay was scored")
	}

	sched.Advance(constants.CorrectFeedbackDelay)
	st = r.Snapshot()
	if st.Target != core.NoteD {
		t.Errorf("Expected next target D, got %s", st.Target)
	}
	if st.Feedback.Text != "" {
		t.Errorf("Correct message should clear with the new target, got %q", st.Feedback.Text)
	}
	if st.Streak != 1 {
		t.Errorf("Advance must keep the streak, got %d", st.Streak)
	}
}

// TestRandomTargetWrongResets verifies a wrong key resets at 11 and draws immediately
func TestRandomTargetWrongResets(t *testing.T) {
	r, sched := newTestTarget(newCountingStore(), core.NoteE, core.NoteE, core.NoteE, core.NoteE,
		core.NoteE, core.NoteE, core.NoteE, core.NoteE, core.NoteE, core.NoteE, core.NoteE, core.NoteE, core.NoteF)
	r.Start()

	for i := 0; i < 11; i++ {
		r.OnKeyPress(core.NoteE)
		sched.Advance(constants.CorrectFeedbackDelay)
	}
	if r.Snapshot().Streak != 11 {
		t.Fatalf("Expected streak 11, got %d", r.Snapshot().Streak)
	}

	r.OnKeyPress(core.NoteG)
	st := r.Snapshot()
	if st.Streak != 0 {
		t.Errorf("Expected streak reset, got %d", st.Streak)
	}
	if st.Feedback.Text != "Wrong key (G). Progress reset — start again." {
		t.Errorf("Unexpected feedback %q", st.Feedback.Text)
	}
	if st.Target != core.NoteF {
		t.Errorf("Expected a new target drawn immediately, got %s", st.Target)
	}
	if st.Status != core.StatusInProgress {
		t.Errorf("Expected round still in progress, got %s", st.Status)
	}
}

// TestRandomTargetCompletes verifies 12 in a row persists once and stops the round
func TestRandomTargetCompletes(t *testing.T) {
	store := newCountingStore()
	r, sched := newTestTarget(store, core.NoteA)
	r.Start()

	for i := 0; i < constants.StreakGoal; i++ {
		r.OnKeyPress(core.NoteA)
		sched.Advance(constants.CorrectFeedbackDelay)
	}

	st := r.Snapshot()
	if st.Status != core.StatusCompleted || !st.Completed {
		t.Fatalf("Expected completed, got %s", st.Status)
	}
	if st.Feedback.Text != "12 correct in a row — Lesson complete!" {
		t.Errorf("Unexpected feedback %q", st.Feedback.Text)
	}
	if store.sets != 1 || !store.Get(core.Lesson1) {
		t.Errorf("Expected exactly one persisted completion, got %d sets", store.sets)
	}
	if sched.Pending() != 0 {
		t.Errorf("Completed round left %d timers", sched.Pending())
	}

	r.OnKeyPress(core.NoteA)
	if store.sets != 1 {
		t.Error("Press after completion was scored")
	}
	if r.Start() {
		t.Error("Start must be refused once completed")
	}
}

// TestRandomTargetClearProgress verifies clear re-enables Start and the notice expires
func TestRandomTargetClearProgress(t *testing.T) {
	store := newCountingStore()
	store.MemoryStore.Set(core.Lesson1, true)
	r, sched := newTestTarget(store, core.NoteC)

	if r.Start() {
		t.Fatal("Start must be refused for a stored completion")
	}

	r.ClearProgress()
	if store.Get(core.Lesson1) {
		t.Error("Stored flag not cleared")
	}
	if r.Snapshot().Notice != MsgCleared {
		t.Errorf("Expected cleared notice, got %q", r.Snapshot().Notice)
	}

	sched.Advance(constants.ClearedMessageDuration - 1)
	if r.Snapshot().Notice == "" {
		t.Error("Notice hidden too early")
	}
	sched.Advance(1)
	if r.Snapshot().Notice != "" {
		t.Error("Notice should hide after its duration")
	}

	if !r.Start() {
		t.Error("Start should be allowed after clearing progress")
	}
}

// TestRandomTargetResetCancelsAdvance verifies Reset drops a pending advance
func TestRandomTargetResetCancelsAdvance(t *testing.T) {
	r, sched := newTestTarget(newCountingStore(), core.NoteC, core.NoteD)
	r.Start()
	r.OnKeyPress(core.NoteC)
	r.Reset()

	sched.Advance(constants.CorrectFeedbackDelay)
	st := r.Snapshot()
	if st.Target != "" || st.Status != core.StatusNotStarted {
		t.Errorf("Reset round changed after delay: %+v", st)
	}

	// Fresh start is not blocked by the cancelled advance
	r.Start()
	target := r.Snapshot().Target
	r.OnKeyPress(target)
	if r.Snapshot().Streak != 1 {
		t.Error("Press after restart should score")
	}
}
