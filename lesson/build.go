package lesson

import (
	"time"

	"github.com/lixenwraith/vi-piano/challenge"
	"github.com/lixenwraith/vi-piano/constants"
	"github.com/lixenwraith/vi-piano/core"
	"github.com/lixenwraith/vi-piano/engine"
	"github.com/lixenwraith/vi-piano/progress"
)

// Options tune the lessons built by NewViews
type Options struct {
	// Beat is the lesson 2 beat window, default when zero
	Beat time.Duration

	// Pick overrides the lesson 1 target draw
	Pick challenge.Picker
}

// NewViews builds every catalog lesson in menu order
func NewViews(sched engine.Scheduler, store progress.Store, clicker Clicker, opts Options) []View {
	views := make([]View, 0, len(Catalog))
	for _, info := range Catalog {
		switch info.ID {
		case core.Lesson1:
			cfg := challenge.DefaultRandomTargetConfig()
			cfg.Pick = opts.Pick
			views = append(views, NewTabbedLesson(info,
				NewHighlightCycler(sched, DemoOrder, constants.KeyDemoInterval),
				challenge.NewRandomTarget(info.ID, sched, store, cfg)))

		case core.Lesson2:
			cfg := challenge.DefaultSequenceConfig()
			if opts.Beat > 0 {
				cfg.Beat = opts.Beat
			}
			views = append(views, NewTabbedLesson(info,
				NewHighlightCycler(sched, core.BlackKeys, constants.BlackDemoInterval),
				challenge.NewTimedSequence(info.ID, sched, store, cfg)))

		case core.Lesson3:
			views = append(views, NewRhythmLesson(info,
				NewMetronome(sched, clicker, constants.RhythmBeatInterval)))
		}
	}
	return views
}
