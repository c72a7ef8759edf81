package lesson

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/lixenwraith/vi-piano/audio"
	"github.com/lixenwraith/vi-piano/constants"
	"github.com/lixenwraith/vi-piano/engine"
)

// RhythmEntry is one note or rest value shown by the metronome
type RhythmEntry struct {
	Name         string
	Beats        int
	Subdivisions int // 1, 2 or 4
	Rest         bool
}

// Title is the heading line, e.g. "Half Note – 2 Beats"
func (e RhythmEntry) Title() string {
	if e.Beats == 1 {
		return e.Name + " – 1 Beat"
	}
	return fmt.Sprintf("%s – %d Beats", e.Name, e.Beats)
}

// Kind describes what the entry measures
func (e RhythmEntry) Kind() string {
	if e.Rest {
		return "Rest duration"
	}
	return "Note duration"
}

// ActiveBoxes is the number of leading scale boxes covered by the duration
func (e RhythmEntry) ActiveBoxes() int {
	return e.Beats * e.Subdivisions
}

// Rhythms lists notes first, then rests, longest first
var Rhythms = []RhythmEntry{
	{"Whole Note", 4, 1, false},
	{"Half Note", 2, 1, false},
	{"Quarter Note", 1, 1, false},
	{"Eighth Note", 1, 2, false},
	{"Sixteenth Note", 1, 4, false},
	{"Whole Rest", 4, 1, true},
	{"Half Rest", 2, 1, true},
	{"Quarter Rest", 1, 1, true},
	{"Eighth Rest", 1, 2, true},
	{"Sixteenth Rest", 1, 4, true},
}

// ScaleLabels builds the counting labels of one 4-beat bar
func ScaleLabels(subdivisions int) []string {
	var labels []string
	for b := 1; b <= constants.RhythmBarBeats; b++ {
		beat := strconv.Itoa(b)
		switch subdivisions {
		case 2:
			labels = append(labels, beat, "&")
		case 4:
			labels = append(labels, beat, "e", "&", "a")
		default:
			labels = append(labels, beat)
		}
	}
	return labels
}

// ClickRoleFor maps a counting label to its click timbre
func ClickRoleFor(label string) audio.ClickRole {
	switch {
	case len(label) == 1 && label[0] >= '1' && label[0] <= '9':
		return audio.ClickBeat
	case label == "&":
		return audio.ClickAnd
	default:
		return audio.ClickSixteenth
	}
}

// SubdivisionInterval is the tick period for one scale box
func SubdivisionInterval(beat time.Duration, subdivisions int) time.Duration {
	if subdivisions < 1 {
		subdivisions = 1
	}
	ms := math.Round(float64(beat.Milliseconds()) / float64(subdivisions))
	d := time.Duration(ms) * time.Millisecond
	if d < constants.RhythmMinSubdivTick {
		d = constants.RhythmMinSubdivTick
	}
	return d
}

// Clicker plays metronome clicks
type Clicker interface {
	Play(role audio.ClickRole, rest bool) bool
}

// MetronomeState is a render snapshot
type MetronomeState struct {
	Entry     RhythmEntry
	Index     int
	Labels    []string
	Indicator int
	Interval  time.Duration
}

// Metronome walks the beat scale of each rhythm entry, one bar per entry
type Metronome struct {
	entries []RhythmEntry
	beat    time.Duration
	clicker Clicker
	clock   *engine.BeatClock

	index     int
	indicator int
	ticks     int
	attached  bool
}

// NewMetronome creates a detached metronome
func NewMetronome(sched engine.Scheduler, clicker Clicker, beat time.Duration) *Metronome {
	if beat <= 0 {
		beat = constants.RhythmBeatInterval
	}
	m := &Metronome{entries: Rhythms, beat: beat, clicker: clicker}
	m.clock = engine.NewBeatClock(sched, m.clockConfig(), m.onTick, nil)
	return m
}

func (m *Metronome) clockConfig() engine.ClockConfig {
	entry := m.entries[m.index]
	interval := SubdivisionInterval(m.beat, entry.Subdivisions)
	return engine.ClockConfig{
		Steps:    len(ScaleLabels(entry.Subdivisions)),
		Interval: interval,
		Offset:   interval,
		Loop:     true,
	}
}

// Attach starts from the first entry
func (m *Metronome) Attach() {
	if m.attached {
		return
	}
	m.attached = true
	m.index = 0
	m.indicator = 0
	m.ticks = 0
	m.clock.Rearm(m.clockConfig())
}

// Detach stops ticking, idempotent
func (m *Metronome) Detach() {
	m.attached = false
	m.clock.Reset()
}

func (m *Metronome) onTick(step int, last bool) {
	entry := m.entries[m.index]
	labels := ScaleLabels(entry.Subdivisions)
	total := len(labels)

	m.indicator = (m.indicator + 1) % total
	if m.clicker != nil {
		m.clicker.Play(ClickRoleFor(labels[m.indicator]), entry.Rest)
	}

	m.ticks++
	if m.ticks >= total {
		m.index = (m.index + 1) % len(m.entries)
		m.indicator = 0
		m.ticks = 0
		// Tick period changes with the subdivision count
		m.clock.Rearm(m.clockConfig())
	}
}

// Snapshot returns the state for rendering
func (m *Metronome) Snapshot() MetronomeState {
	entry := m.entries[m.index]
	return MetronomeState{
		Entry:     entry,
		Index:     m.index,
		Labels:    ScaleLabels(entry.Subdivisions),
		Indicator: m.indicator,
		Interval:  SubdivisionInterval(m.beat, entry.Subdivisions),
	}
}
