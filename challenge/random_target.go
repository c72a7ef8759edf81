package challenge

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lixenwraith/vi-piano/constants"
	"github.com/lixenwraith/vi-piano/core"
	"github.com/lixenwraith/vi-piano/engine"
	"github.com/lixenwraith/vi-piano/progress"
)

// Picker returns an index in [0, n)
type Picker func(n int) int

// RandomTargetConfig parameterizes a find-the-key round
type RandomTargetConfig struct {
	Notes        []core.Note
	Goal         int
	AdvanceDelay time.Duration
	Pick         Picker // Uniform when nil
}

// DefaultRandomTargetConfig is 12 in a row over all twelve keys
func DefaultRandomTargetConfig() RandomTargetConfig {
	return RandomTargetConfig{
		Notes:        core.Chromatic,
		Goal:         constants.StreakGoal,
		AdvanceDelay: constants.CorrectFeedbackDelay,
	}
}

// RandomTargetState is a render snapshot
type RandomTargetState struct {
	Status    core.RunStatus
	Target    core.Note // Empty when no round is running
	Streak    int
	Goal      int
	Feedback  Feedback
	Notice    string
	Completed bool
}

// RandomTarget asks for random keys until Goal correct presses in a row
// Runs on the dispatcher goroutine together with its scheduler callbacks
type RandomTarget struct {
	id    core.LessonID
	sched engine.Scheduler
	store progress.Store
	cfg   RandomTargetConfig

	started   bool
	completed bool
	streak    int
	target    core.Note
	feedback  Feedback

	// advancing blocks scoring while the correct message is shown
	advancing  bool
	advanceGen uint64
	advance    engine.Timer

	notice notice
}

// NewRandomTarget creates an idle round, completion is read from store
func NewRandomTarget(id core.LessonID, sched engine.Scheduler, store progress.Store, cfg RandomTargetConfig) *RandomTarget {
	if len(cfg.Notes) == 0 {
		cfg.Notes = core.Chromatic
	}
	if cfg.Goal <= 0 {
		cfg.Goal = constants.StreakGoal
	}
	if cfg.Pick == nil {
		cfg.Pick = rand.Intn
	}
	return &RandomTarget{
		id:        id,
		sched:     sched,
		store:     store,
		cfg:       cfg,
		completed: store.Get(id),
		notice:    notice{sched: sched},
	}
}

// Start begins a round, false when already completed
func (r *RandomTarget) Start() bool {
	if r.completed {
		return false
	}
	r.cancelAdvance()
	r.started = true
	r.streak = 0
	r.feedback = Feedback{}
	r.draw()
	return true
}

// OnKeyPress scores one press
func (r *RandomTarget) OnKeyPress(note core.Note) {
	if !r.started || r.completed || r.advancing {
		return
	}

	if note != r.target {
		r.streak = 0
		r.feedback = Feedback{fmt.Sprintf(msgWrongFmt, note), ToneBad}
		r.draw()
		return
	}

	r.streak++
	if r.streak >= r.cfg.Goal {
		r.completed = true
		r.started = false
		r.target = ""
		r.store.Set(r.id, true)
		r.feedback = Feedback{fmt.Sprintf(msgCompleteFmt, r.cfg.Goal), ToneGood}
		return
	}

	r.feedback = Feedback{fmt.Sprintf(msgCorrectFmt, r.streak), ToneGood}
	r.advancing = true
	gen := r.advanceGen
	r.advance = r.sched.AfterFunc(r.cfg.AdvanceDelay, func() {
		if gen != r.advanceGen || !r.started {
			return
		}
		r.advancing = false
		r.advance = nil
		r.feedback = Feedback{}
		r.draw()
	})
}

// Reset drops the in-memory round, stored progress is untouched
func (r *RandomTarget) Reset() {
	r.cancelAdvance()
	r.started = false
	r.streak = 0
	r.target = ""
	r.feedback = Feedback{}
}

// ClearProgress forgets the stored completion and re-enables Start
func (r *RandomTarget) ClearProgress() {
	r.store.Clear(r.id)
	r.completed = false
	r.Reset()
	r.notice.show(MsgCleared, constants.ClearedMessageDuration)
}

// Detach stops every pending callback
func (r *RandomTarget) Detach() {
	r.Reset()
	r.notice.cancel()
}

// Snapshot returns the state for rendering
func (r *RandomTarget) Snapshot() RandomTargetState {
	return RandomTargetState{
		Status:    r.status(),
		Target:    r.target,
		Streak:    r.streak,
		Goal:      r.cfg.Goal,
		Feedback:  r.feedback,
		Notice:    r.notice.text,
		Completed: r.completed,
	}
}

func (r *RandomTarget) status() core.RunStatus {
	switch {
	case r.completed:
		return core.StatusCompleted
	case r.started:
		return core.StatusInProgress
	default:
		return core.StatusNotStarted
	}
}

// draw picks the next target, repeats allowed
func (r *RandomTarget) draw() {
	r.target = r.cfg.Notes[r.cfg.Pick(len(r.cfg.Notes))]
}

func (r *RandomTarget) cancelAdvance() {
	r.advanceGen++
	r.advancing = false
	if r.advance != nil {
		r.advance.Stop()
		r.advance = nil
	}
}
