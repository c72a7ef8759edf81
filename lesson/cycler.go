package lesson

import (
	"time"

	"github.com/lixenwraith/vi-piano/core"
	"github.com/lixenwraith/vi-piano/engine"
)

// DemoOrder is the lesson 1 highlight order: white keys then black keys
var DemoOrder = append(append([]core.Note{}, core.WhiteKeys...), core.BlackKeys...)

// HighlightCycler lights one note at a time in a fixed order while attached
type HighlightCycler struct {
	notes []core.Note
	clock *engine.BeatClock
	index int // -1 while detached
}

// NewHighlightCycler creates a detached cycler stepping every interval
func NewHighlightCycler(sched engine.Scheduler, notes []core.Note, interval time.Duration) *HighlightCycler {
	c := &HighlightCycler{notes: notes, index: -1}
	c.clock = engine.NewBeatClock(sched, engine.ClockConfig{
		Steps:    len(notes),
		Interval: interval,
		Offset:   interval,
		Loop:     true,
	}, c.onTick, nil)
	return c
}

// Attach shows the first note and starts cycling
func (c *HighlightCycler) Attach() {
	if len(c.notes) == 0 || c.clock.State() == engine.ClockRunning {
		return
	}
	c.index = 0
	c.clock.Reset()
	c.clock.Start()
}

// Detach stops cycling and clears the highlight, idempotent
func (c *HighlightCycler) Detach() {
	c.clock.Reset()
	c.index = -1
}

// Highlights returns the lit note
func (c *HighlightCycler) Highlights() []core.Note {
	if c.index < 0 {
		return nil
	}
	return []core.Note{c.notes[c.index]}
}

// The clock ticks after each interval, so tick k shows note k+1
func (c *HighlightCycler) onTick(step int, last bool) {
	c.index = (step + 1) % len(c.notes)
}
