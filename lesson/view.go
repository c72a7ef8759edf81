package lesson

import (
	"github.com/lixenwraith/vi-piano/core"
)

// Tab selects the half of a lesson page on screen
type Tab int

const (
	TabLesson Tab = iota
	TabChallenge
)

func (t Tab) String() string {
	if t == TabChallenge {
		return "Challenge"
	}
	return "Lesson"
}

// View is one lesson page
// Attach starts its timers, Detach stops them and guarantees no further callbacks
type View interface {
	Info() Info
	Attach()
	Detach()

	Tab() Tab
	ToggleTab()

	// Start begins the challenge, false when refused
	Start() bool
	Reset()
	ClearProgress()

	// OnKeyPress receives every physical press, challenges filter themselves
	OnKeyPress(note core.Note)

	// Highlights are the keys to light on the keyboard
	Highlights() []core.Note

	// LabelsHidden reports whether key labels would give the answer away
	LabelsHidden() bool
}

// Challenge is the scored half of a tabbed lesson
type Challenge interface {
	Start() bool
	Reset()
	ClearProgress()
	Detach()
	OnKeyPress(note core.Note)
}

// highlighter is implemented by challenges that light their target
type highlighter interface {
	Highlights() []core.Note
}

// TabbedLesson pairs a demo cycler with a challenge
type TabbedLesson struct {
	info      Info
	demo      *HighlightCycler
	challenge Challenge

	tab      Tab
	attached bool
}

// NewTabbedLesson creates a detached lesson on its lesson tab
func NewTabbedLesson(info Info, demo *HighlightCycler, challenge Challenge) *TabbedLesson {
	return &TabbedLesson{info: info, demo: demo, challenge: challenge}
}

// Info implements View
func (l *TabbedLesson) Info() Info { return l.info }

// Challenge returns the scored half for rendering
func (l *TabbedLesson) Challenge() Challenge { return l.challenge }

// Attach implements View
func (l *TabbedLesson) Attach() {
	if l.attached {
		return
	}
	l.attached = true
	l.syncDemo()
}

// Detach implements View
func (l *TabbedLesson) Detach() {
	l.attached = false
	l.demo.Detach()
	l.challenge.Detach()
}

// Tab implements View
func (l *TabbedLesson) Tab() Tab { return l.tab }

// ToggleTab implements View, leaving the challenge tab abandons a running round
func (l *TabbedLesson) ToggleTab() {
	if l.tab == TabLesson {
		l.setTab(TabChallenge)
		return
	}
	l.challenge.Reset()
	l.setTab(TabLesson)
}

func (l *TabbedLesson) setTab(t Tab) {
	l.tab = t
	l.syncDemo()
}

// syncDemo runs the demo only while attached on the lesson tab
func (l *TabbedLesson) syncDemo() {
	if l.attached && l.tab == TabLesson {
		l.demo.Attach()
		return
	}
	l.demo.Detach()
}

// Start implements View, switching to the challenge tab
func (l *TabbedLesson) Start() bool {
	if l.tab != TabChallenge {
		l.setTab(TabChallenge)
	}
	return l.challenge.Start()
}

// Reset implements View, returning to the lesson tab
func (l *TabbedLesson) Reset() {
	l.challenge.Reset()
	l.setTab(TabLesson)
}

// ClearProgress implements View
func (l *TabbedLesson) ClearProgress() {
	l.challenge.ClearProgress()
}

// OnKeyPress implements View
func (l *TabbedLesson) OnKeyPress(note core.Note) {
	l.challenge.OnKeyPress(note)
}

// Highlights implements View
func (l *TabbedLesson) Highlights() []core.Note {
	if l.tab == TabLesson {
		return l.demo.Highlights()
	}
	if h, ok := l.challenge.(highlighter); ok {
		return h.Highlights()
	}
	return nil
}

// LabelsHidden implements View
func (l *TabbedLesson) LabelsHidden() bool {
	return l.tab == TabChallenge
}

// RhythmLesson is the demo-only metronome page
type RhythmLesson struct {
	info      Info
	metronome *Metronome
}

// NewRhythmLesson creates a detached rhythm page
func NewRhythmLesson(info Info, metronome *Metronome) *RhythmLesson {
	return &RhythmLesson{info: info, metronome: metronome}
}

// Info implements View
func (l *RhythmLesson) Info() Info { return l.info }

// Metronome returns the metronome for rendering
func (l *RhythmLesson) Metronome() *Metronome { return l.metronome }

func (l *RhythmLesson) Attach()                 { l.metronome.Attach() }
func (l *RhythmLesson) Detach()                 { l.metronome.Detach() }
func (l *RhythmLesson) Tab() Tab                { return TabLesson }
func (l *RhythmLesson) ToggleTab()              {}
func (l *RhythmLesson) Start() bool             { return false }
func (l *RhythmLesson) Reset()                  {}
func (l *RhythmLesson) ClearProgress()          {}
func (l *RhythmLesson) OnKeyPress(core.Note)    {}
func (l *RhythmLesson) Highlights() []core.Note { return nil }
func (l *RhythmLesson) LabelsHidden() bool      { return false }
