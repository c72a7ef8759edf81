package challenge

import (
	"fmt"
	"time"

	"github.com/lixenwraith/vi-piano/constants"
	"github.com/lixenwraith/vi-piano/core"
	"github.com/lixenwraith/vi-piano/engine"
	"github.com/lixenwraith/vi-piano/progress"
)

// MaryHadALittleLamb is the default sequence, one slice per displayed line
var MaryHadALittleLamb = [][]core.Note{
	{core.NoteE, core.NoteD, core.NoteCs, core.NoteD, core.NoteE, core.NoteE, core.NoteE},
	{core.NoteD, core.NoteD, core.NoteD, core.NoteE, core.NoteG, core.NoteG},
	{core.NoteE, core.NoteD, core.NoteCs, core.NoteD, core.NoteE, core.NoteE, core.NoteE},
	{core.NoteE, core.NoteD, core.NoteD, core.NoteE, core.NoteD, core.NoteCs},
}

// SequenceConfig parameterizes a timed sequence challenge
type SequenceConfig struct {
	Lines [][]core.Note
	Beat  time.Duration

	CountFrom     int
	CountStep     time.Duration
	CountTrailing time.Duration
}

// DefaultSequenceConfig returns the lesson 2 sequence at the default tempo
func DefaultSequenceConfig() SequenceConfig {
	return SequenceConfig{
		Lines:         MaryHadALittleLamb,
		Beat:          constants.BeatInterval,
		CountFrom:     constants.CountdownFrom,
		CountStep:     constants.CountdownStep,
		CountTrailing: constants.CountdownTrailing,
	}
}

// SequenceStep is one scored note
type SequenceStep struct {
	Note    core.Note
	Outcome core.Outcome
	Active  bool // Current beat window
}

// SequenceState is a render snapshot
type SequenceState struct {
	Status    core.RunStatus
	Lines     [][]SequenceStep
	Countdown int // Number on screen during pre-roll, 0 otherwise
	Target    core.Note
	Hits      int
	Total     int
	Feedback  Feedback
	Notice    string
	Completed bool
}

// TimedSequence scores one press per beat against a fixed note sequence
// Runs on the dispatcher goroutine together with its scheduler callbacks
type TimedSequence struct {
	id    core.LessonID
	sched engine.Scheduler
	store progress.Store
	cfg   SequenceConfig

	steps     []core.Note
	lineSizes []int
	outcomes  []core.Outcome

	clock     *engine.BeatClock
	countdown *engine.Countdown
	count     int

	started   bool // Countdown or beats running
	completed bool
	current   int  // Step in its beat window, -1 outside the run
	locked    bool // Current window already took its press

	feedback Feedback
	notice   notice
}

// NewTimedSequence creates an idle challenge, completion is read from store
func NewTimedSequence(id core.LessonID, sched engine.Scheduler, store progress.Store, cfg SequenceConfig) *TimedSequence {
	if len(cfg.Lines) == 0 {
		cfg.Lines = MaryHadALittleLamb
	}
	if cfg.Beat <= 0 {
		cfg.Beat = constants.BeatInterval
	}

	s := &TimedSequence{
		id:        id,
		sched:     sched,
		store:     store,
		cfg:       cfg,
		completed: store.Get(id),
		current:   -1,
		notice:    notice{sched: sched},
	}
	for _, line := range cfg.Lines {
		s.steps = append(s.steps, line...)
		s.lineSizes = append(s.lineSizes, len(line))
	}
	s.outcomes = make([]core.Outcome, len(s.steps))

	s.clock = engine.NewBeatClock(sched, engine.ClockConfig{
		Steps:    len(s.steps),
		Interval: cfg.Beat,
	}, s.onBeat, s.onEnd)

	s.countdown = engine.NewCountdown(sched, cfg.CountFrom, cfg.CountStep, cfg.CountTrailing,
		func(n int) { s.count = n },
		s.onCountdownDone)

	return s
}

// Start runs the countdown then the beats
// Refused when completed or while a run or countdown is in progress
func (s *TimedSequence) Start() bool {
	if s.completed || s.started {
		return false
	}
	s.started = true
	s.current = -1
	s.locked = false
	s.feedback = Feedback{}
	for i := range s.outcomes {
		s.outcomes[i] = core.OutcomePending
	}
	s.countdown.Start()
	return true
}

func (s *TimedSequence) onCountdownDone() {
	s.count = 0
	s.clock.Reset()
	if err := s.clock.Start(); err != nil {
		s.started = false
	}
}

// onBeat closes the previous window before opening the next
func (s *TimedSequence) onBeat(step int, last bool) {
	s.closeWindow()
	s.current = step
	s.locked = false
}

func (s *TimedSequence) onEnd() {
	s.closeWindow()
	s.current = -1
	s.started = false

	hits := s.hits()
	if hits == len(s.steps) {
		s.completed = true
		s.store.Set(s.id, true)
		s.feedback = Feedback{MsgPerfect, ToneGood}
		return
	}
	s.feedback = Feedback{fmt.Sprintf(msgIncompleteFmt, hits, len(s.steps)), ToneBad}
}

// closeWindow marks an unanswered current step as missed
func (s *TimedSequence) closeWindow() {
	if s.current >= 0 && !s.locked {
		s.outcomes[s.current] = core.OutcomeMiss
		s.locked = true
	}
}

// OnKeyPress scores one press, at most one per beat window
func (s *TimedSequence) OnKeyPress(note core.Note) {
	if !s.started || s.completed {
		return
	}
	if s.current < 0 {
		s.feedback = Feedback{MsgWaitForNote, ToneInfo}
		return
	}
	if s.locked {
		s.feedback = Feedback{MsgTooLate, ToneInfo}
		return
	}

	s.locked = true
	want := s.steps[s.current]
	if note == want {
		s.outcomes[s.current] = core.OutcomeHit
		s.feedback = Feedback{fmt.Sprintf(msgHitFmt, note), ToneGood}
		return
	}
	s.outcomes[s.current] = core.OutcomeMiss
	s.feedback = Feedback{fmt.Sprintf(msgMissFmt, want, note), ToneBad}
}

// Reset stops the run and clears in-memory state
func (s *TimedSequence) Reset() {
	s.countdown.Stop()
	s.clock.Reset()
	s.started = false
	s.current = -1
	s.locked = false
	s.count = 0
	s.feedback = Feedback{}
	for i := range s.outcomes {
		s.outcomes[i] = core.OutcomePending
	}
}

// ClearProgress forgets the stored completion and re-enables Start
func (s *TimedSequence) ClearProgress() {
	s.store.Clear(s.id)
	s.completed = false
	s.Reset()
	s.notice.show(MsgCleared, constants.ClearedMessageDuration)
}

// Detach stops every pending callback
func (s *TimedSequence) Detach() {
	s.Reset()
	s.notice.cancel()
}

// Highlights returns the note to play now
func (s *TimedSequence) Highlights() []core.Note {
	if s.current < 0 {
		return nil
	}
	return []core.Note{s.steps[s.current]}
}

// Snapshot returns the state for rendering
func (s *TimedSequence) Snapshot() SequenceState {
	st := SequenceState{
		Status:    s.status(),
		Countdown: s.count,
		Hits:      s.hits(),
		Total:     len(s.steps),
		Feedback:  s.feedback,
		Notice:    s.notice.text,
		Completed: s.completed,
	}
	if s.current >= 0 {
		st.Target = s.steps[s.current]
	}

	i := 0
	for _, size := range s.lineSizes {
		line := make([]SequenceStep, size)
		for j := range line {
			line[j] = SequenceStep{Note: s.steps[i], Outcome: s.outcomes[i], Active: i == s.current}
			i++
		}
		st.Lines = append(st.Lines, line)
	}
	return st
}

// Outcomes returns a copy of per-step results
func (s *TimedSequence) Outcomes() []core.Outcome {
	return append([]core.Outcome(nil), s.outcomes...)
}

func (s *TimedSequence) hits() int {
	n := 0
	for _, o := range s.outcomes {
		if o == core.OutcomeHit {
			n++
		}
	}
	return n
}

func (s *TimedSequence) status() core.RunStatus {
	switch {
	case s.completed:
		return core.StatusCompleted
	case s.started && s.current < 0:
		return core.StatusCountdown
	case s.started:
		return core.StatusInProgress
	default:
		return core.StatusNotStarted
	}
}
