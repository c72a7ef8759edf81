package keyboard

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-piano/constants"
	"github.com/lixenwraith/vi-piano/core"
	"github.com/lixenwraith/vi-piano/engine"
)

// Player sounds notes, implemented by audio.VoiceManager
type Player interface {
	Play(note core.Note) bool
	Stop(note core.Note, release time.Duration)
	StopAll()
	IsPressed(note core.Note) bool
}

// DefaultBindings maps the home and top letter rows onto one octave like a piano
var DefaultBindings = map[rune]core.Note{
	'a': core.NoteC, 'w': core.NoteCs, 's': core.NoteD, 'e': core.NoteDs, 'd': core.NoteE,
	'f': core.NoteF, 't': core.NoteFs, 'g': core.NoteG, 'y': core.NoteGs, 'h': core.NoteA,
	'u': core.NoteAs, 'j': core.NoteB,
}

// hold keeps a terminal key sounding until auto-repeat stops
type hold struct {
	gen   uint64
	timer engine.Timer
}

// Keyboard turns key, mouse and MIDI input into Play/Stop calls
// Runs on the dispatcher goroutine
type Keyboard struct {
	opts     Options
	player   Player
	sched    engine.Scheduler
	bindings map[rune]core.Note
	hints    map[core.Note]rune

	holds       map[core.Note]*hold
	holdGen     uint64
	holdTimeout time.Duration

	pointerDown bool
	pointerNote core.Note // Empty while the pointer is off the keys

	layout Layout

	onClose     func()
	onInterrupt func(reason string)
}

// New creates a keyboard with the default bindings
func New(player Player, sched engine.Scheduler, opts Options) *Keyboard {
	k := &Keyboard{
		opts:     opts,
		player:   player,
		sched:    sched,
		bindings: DefaultBindings,
		hints:    make(map[core.Note]rune, len(DefaultBindings)),
		holds:    make(map[core.Note]*hold),
	}
	k.holdTimeout = opts.HoldTimeout
	if k.holdTimeout <= 0 {
		k.holdTimeout = constants.HoldTimeout
	}
	for r, n := range k.bindings {
		k.hints[n] = r
	}
	return k
}

// Options returns the construction options
func (k *Keyboard) Options() Options {
	return k.opts
}

// SetCloseHandler registers the close mark action
func (k *Keyboard) SetCloseHandler(fn func()) {
	k.onClose = fn
}

// SetInterruptHandler registers the global interrupt, ReleaseAll when unset
func (k *Keyboard) SetInterruptHandler(fn func(reason string)) {
	k.onInterrupt = fn
}

// NoteForRune returns the bound note for a typed rune
func (k *Keyboard) NoteForRune(r rune) (core.Note, bool) {
	n, ok := k.bindings[unicode.ToLower(r)]
	return n, ok
}

// KeyPress plays the bound note, auto-repeat only refreshes the hold
// A note already sounding from the mouse or MIDI gets no hold, its owner releases it
// Returns false for unbound runes
func (k *Keyboard) KeyPress(r rune) bool {
	note, ok := k.NoteForRune(r)
	if !ok {
		return false
	}

	if h, held := k.holds[note]; held {
		h.timer.Stop()
		k.armHold(note, h)
		return true
	}

	if !k.player.Play(note) {
		return true
	}
	h := &hold{}
	k.holds[note] = h
	k.armHold(note, h)
	return true
}

func (k *Keyboard) armHold(note core.Note, h *hold) {
	k.holdGen++
	h.gen = k.holdGen
	gen := h.gen
	h.timer = k.sched.AfterFunc(k.holdTimeout, func() {
		cur, ok := k.holds[note]
		if !ok || cur.gen != gen {
			return
		}
		delete(k.holds, note)
		k.player.Stop(note, constants.KeyRelease)
	})
}

// Held reports whether a typed key is keeping note alive
func (k *Keyboard) Held(note core.Note) bool {
	_, ok := k.holds[note]
	return ok
}

// HandleMouse processes a mouse event against the last rendered layout
// Returns true when the event landed on the keyboard
func (k *Keyboard) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	primary := ev.Buttons()&tcell.Button1 != 0
	note, onKey := k.layout.HitTest(x, y)

	switch {
	case primary && !k.pointerDown:
		if k.layout.HitClose(x, y) {
			if k.onClose != nil {
				k.onClose()
			}
			return true
		}
		if !onKey {
			return false
		}
		k.pointerDown = true
		k.pointerNote = note
		k.player.Play(note)
		return true

	case primary && k.pointerDown:
		// Drag: leaving a key releases it, entering one plays it
		if note == k.pointerNote && onKey {
			return true
		}
		if k.pointerNote != "" {
			k.player.Stop(k.pointerNote, constants.PointerRelease)
			k.pointerNote = ""
		}
		if onKey {
			k.pointerNote = note
			k.player.Play(note)
		}
		return true

	case !primary && k.pointerDown:
		k.pointerDown = false
		released := k.pointerNote
		k.pointerNote = ""
		if released != "" && onKey {
			k.player.Stop(released, constants.PointerRelease)
			return true
		}
		// Released off the keys
		k.interrupt("pointer released outside keyboard")
		return true
	}
	return onKey
}

// NoteOn plays a MIDI key, mapped to its pitch class
func (k *Keyboard) NoteOn(key int) {
	if note, ok := core.NoteFromMIDI(key); ok {
		k.player.Play(note)
	}
}

// NoteOff releases a MIDI key
func (k *Keyboard) NoteOff(key int) {
	if note, ok := core.NoteFromMIDI(key); ok {
		k.player.Stop(note, constants.KeyRelease)
	}
}

func (k *Keyboard) interrupt(reason string) {
	if k.onInterrupt != nil {
		k.onInterrupt(reason)
		return
	}
	k.ReleaseAll()
}

// ReleaseAll drops every hold and pointer press and silences all voices
func (k *Keyboard) ReleaseAll() {
	for note, h := range k.holds {
		h.timer.Stop()
		delete(k.holds, note)
	}
	k.pointerDown = false
	k.pointerNote = ""
	k.player.StopAll()
}

// Layout returns the geometry of the last render
func (k *Keyboard) Layout() Layout {
	return k.layout
}

// Hint returns the computer key bound to note
func (k *Keyboard) Hint(note core.Note) (rune, bool) {
	r, ok := k.hints[note]
	return r, ok
}
