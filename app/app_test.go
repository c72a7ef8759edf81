package app

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-piano/audio"
	"github.com/lixenwraith/vi-piano/challenge"
	"github.com/lixenwraith/vi-piano/core"
	"github.com/lixenwraith/vi-piano/engine"
	"github.com/lixenwraith/vi-piano/lesson"
	"github.com/lixenwraith/vi-piano/progress"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// nullSink accepts every streamer without a device
type nullSink struct{}

func (nullSink) Add(beep.Streamer) bool      { return true }
func (nullSink) SampleRate() beep.SampleRate { return beep.SampleRate(48000) }

// fakeMuter tracks the mute switch
type fakeMuter struct {
	muted bool
}

func (m *fakeMuter) ToggleMute() bool {
	m.muted = !m.muted
	return m.muted
}

func (m *fakeMuter) IsMuted() bool   { return m.muted }
func (m *fakeMuter) Available() bool { return true }

type testApp struct {
	*App
	sched  *engine.ManualScheduler
	voices *audio.VoiceManager
	muter  *fakeMuter
	store  *progress.MemoryStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithPick(t, func(int) int { return 0 })
}

// newTestAppWithPick draws lesson 1 targets from pick
func newTestAppWithPick(t *testing.T, pick challenge.Picker) *testApp {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	screen.SetSize(120, 40)
	t.Cleanup(screen.Fini)

	sched := engine.NewManualScheduler(epoch)
	voices := audio.NewVoiceManager(nullSink{})
	muter := &fakeMuter{}
	store := progress.NewMemoryStore()
	a := New(screen, sched, voices, nil, muter, store, Options{
		Beat: 600 * time.Millisecond,
		Pick: pick,
	})
	return &testApp{App: a, sched: sched, voices: voices, muter: muter, store: store}
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func randomTarget(t *testing.T, v lesson.View) *challenge.RandomTarget {
	t.Helper()
	tl, ok := v.(*lesson.TabbedLesson)
	if !ok {
		t.Fatalf("Expected tabbed lesson, got %T", v)
	}
	rt, ok := tl.Challenge().(*challenge.RandomTarget)
	if !ok {
		t.Fatalf("Expected random target, got %T", tl.Challenge())
	}
	return rt
}

// TestQuitKeys verifies Ctrl+C and Ctrl+Q end the event loop
func TestQuitKeys(t *testing.T) {
	a := newTestApp(t)
	if a.HandleEvent(key(tcell.KeyCtrlC)) {
		t.Error("Ctrl+C should quit")
	}
	if a.HandleEvent(key(tcell.KeyCtrlQ)) {
		t.Error("Ctrl+Q should quit")
	}
	if !a.HandleEvent(runeKey('a')) {
		t.Error("Piano key should not quit")
	}
}

// TestLessonNavigation verifies digits open lessons and Esc returns to the menu
func TestLessonNavigation(t *testing.T) {
	a := newTestApp(t)

	a.HandleEvent(runeKey('2'))
	if a.Current() == nil || a.Current().Info().ID != core.Lesson2 {
		t.Fatal("Expected lesson 2 open")
	}
	a.HandleEvent(runeKey('9'))
	if a.Current().Info().ID != core.Lesson2 {
		t.Error("Unknown lesson number should be ignored")
	}

	a.HandleEvent(runeKey('a'))
	if a.voices.ActiveCount() != 1 {
		t.Fatal("Expected one sounding note")
	}
	a.HandleEvent(key(tcell.KeyEscape))
	if a.Current() != nil {
		t.Error("Esc should return to the menu")
	}
	if a.voices.ActiveCount() != 0 {
		t.Error("Esc should release all notes")
	}
}

// TestChallengeScoring verifies piano keys reach the running challenge through the voice listener
func TestChallengeScoring(t *testing.T) {
	a := newTestApp(t)
	a.HandleEvent(runeKey('1'))
	a.HandleEvent(key(tcell.KeyEnter))

	v := a.Current()
	if v.Tab() != lesson.TabChallenge {
		t.Fatal("Enter should switch to the challenge tab")
	}
	if !a.Keyboard().Options().HideLabels {
		t.Error("Challenge tab should use the label-free keyboard")
	}

	rt := randomTarget(t, v)
	if rt.Snapshot().Target != core.NoteC {
		t.Fatalf("Expected target C, got %s", rt.Snapshot().Target)
	}
	a.HandleEvent(runeKey('a'))
	if rt.Snapshot().Streak != 1 {
		t.Errorf("Expected streak 1, got %d", rt.Snapshot().Streak)
	}

	// Held key does not score twice on auto-repeat
	a.HandleEvent(runeKey('a'))
	if rt.Snapshot().Streak != 1 {
		t.Errorf("Auto-repeat scored again, streak %d", rt.Snapshot().Streak)
	}

	a.HandleEvent(key(tcell.KeyBackspace2))
	if v.Tab() != lesson.TabLesson {
		t.Error("Backspace should reset to the lesson tab")
	}
	if a.Keyboard().Options().HideLabels {
		t.Error("Lesson tab should use the labelled keyboard")
	}
}

// TestChallengeHeldKeyAcrossAdvance verifies a key held through the next target is not scored twice
func TestChallengeHeldKeyAcrossAdvance(t *testing.T) {
	draws := []int{0, 2, 2} // C, then D
	a := newTestAppWithPick(t, func(int) int {
		i := draws[0]
		draws = draws[1:]
		return i
	})
	a.HandleEvent(runeKey('1'))
	a.HandleEvent(key(tcell.KeyEnter))
	rt := randomTarget(t, a.Current())

	// Press C, keep it down past the 450ms advance, then auto-repeat kicks in at 500ms
	a.HandleEvent(runeKey('a'))
	a.sched.Advance(500 * time.Millisecond)
	for i := 0; i < 5; i++ {
		a.HandleEvent(runeKey('a'))
		a.sched.Advance(33 * time.Millisecond)
	}

	st := rt.Snapshot()
	if st.Target != core.NoteD {
		t.Fatalf("Expected target D after the advance, got %s", st.Target)
	}
	if st.Streak != 1 {
		t.Errorf("Auto-repeat of the held key was scored, streak %d feedback %q", st.Streak, st.Feedback.Text)
	}
	if st.Feedback.Tone == challenge.ToneBad {
		t.Errorf("Unexpected wrong-key feedback %q", st.Feedback.Text)
	}

	// Releasing and pressing D scores normally
	a.sched.Advance(time.Second)
	a.HandleEvent(runeKey('s'))
	if got := rt.Snapshot().Streak; got != 2 {
		t.Errorf("Expected streak 2 after D, got %d", got)
	}
}

// TestFocusLossInterrupt verifies losing focus silences every sounding note
func TestFocusLossInterrupt(t *testing.T) {
	a := newTestApp(t)
	a.HandleEvent(runeKey('a'))
	a.HandleEvent(runeKey('d'))
	a.HandleEvent(runeKey('g'))
	if a.voices.ActiveCount() != 3 {
		t.Fatalf("Expected 3 voices, got %d", a.voices.ActiveCount())
	}

	a.HandleEvent(tcell.NewEventFocus(false))
	if a.voices.ActiveCount() != 0 {
		t.Errorf("Expected no voices after focus loss, got %d", a.voices.ActiveCount())
	}
	if a.sched.Pending() != 0 {
		t.Errorf("Hold timers should be cancelled, %d pending", a.sched.Pending())
	}

	a.HandleEvent(runeKey('a'))
	a.HandleEvent(tcell.NewEventFocus(true))
	if a.voices.ActiveCount() != 1 {
		t.Error("Regaining focus should not release notes")
	}
}

// TestSuspendReleasesFirst verifies Ctrl+Z releases notes before suspending
func TestSuspendReleasesFirst(t *testing.T) {
	a := newTestApp(t)
	countAtSuspend := -1
	a.SetSuspendHandler(func() { countAtSuspend = a.voices.ActiveCount() })

	a.HandleEvent(runeKey('s'))
	a.HandleEvent(key(tcell.KeyCtrlZ))
	if countAtSuspend != 0 {
		t.Errorf("Expected silence at suspend, %d voices", countAtSuspend)
	}
}

// TestMuteToggle verifies m and F2 flip the master mute
func TestMuteToggle(t *testing.T) {
	a := newTestApp(t)
	a.HandleEvent(runeKey('m'))
	if !a.muter.muted {
		t.Error("m should mute")
	}
	a.HandleEvent(key(tcell.KeyF2))
	if a.muter.muted {
		t.Error("F2 should unmute")
	}
	if a.voices.ActiveCount() != 0 {
		t.Error("Mute key must not play a note")
	}
}

// TestClearProgress verifies Ctrl+X forgets the stored completion
func TestClearProgress(t *testing.T) {
	a := newTestApp(t)
	a.store.Set(core.Lesson1, true)
	a.HandleEvent(runeKey('1'))

	a.HandleEvent(key(tcell.KeyCtrlX))
	if a.store.Get(core.Lesson1) {
		t.Error("Ctrl+X should clear lesson 1")
	}
}

// TestMIDINotes verifies MIDI keys play through the active keyboard
func TestMIDINotes(t *testing.T) {
	a := newTestApp(t)
	a.NoteOn(64)
	if !a.voices.IsPressed(core.NoteE) {
		t.Error("MIDI 64 should press E")
	}
	a.NoteOff(64)
	if a.voices.IsPressed(core.NoteE) {
		t.Error("Note-off should release E")
	}
}

// TestRenderDoesNotPanic verifies menu and lesson frames draw
func TestRenderDoesNotPanic(t *testing.T) {
	a := newTestApp(t)
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Render panicked: %v", r)
		}
	}()
	a.Render()
	for _, r := range "123" {
		a.HandleEvent(runeKey(r))
		a.Render()
	}
	a.Shutdown()
}
