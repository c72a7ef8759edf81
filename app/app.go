// Package app routes terminal, mouse and MIDI input to the lessons and drives redraws
package app

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/vi-piano/challenge"
	"github.com/lixenwraith/vi-piano/constants"
	"github.com/lixenwraith/vi-piano/core"
	"github.com/lixenwraith/vi-piano/engine"
	"github.com/lixenwraith/vi-piano/keyboard"
	"github.com/lixenwraith/vi-piano/lesson"
	"github.com/lixenwraith/vi-piano/progress"
	"github.com/lixenwraith/vi-piano/render"
)

// Player is the voice pool, implemented by audio.VoiceManager
type Player interface {
	keyboard.Player
	SetKeyPressListener(fn core.KeyPressFunc)
}

// Muter is the master output switch, implemented by audio.AudioEngine
type Muter interface {
	ToggleMute() bool
	IsMuted() bool
	Available() bool
}

// Options configure the app shell
type Options struct {
	Beat          time.Duration // Lesson 2 beat window
	HideBlackKeys bool
	CenterBottom  bool
	KeyHold       time.Duration // Typed key hold, default when zero
	MIDIPort      string        // Shown in the title bar
	Pick          challenge.Picker
}

// App owns the page state, it runs on the dispatcher goroutine
type App struct {
	screen   tcell.Screen
	renderer *render.TerminalRenderer
	sched    engine.Scheduler
	player   Player
	muter    Muter
	store    progress.Store
	opts     Options

	views   []lesson.View
	current lesson.View // Nil on the menu

	// Lesson tabs show labels, challenge tabs hide them
	freePlay  *keyboard.Keyboard
	challenge *keyboard.Keyboard
	active    *keyboard.Keyboard

	limiter  *rate.Limiter
	trailing engine.Timer
	dirty    bool

	onSuspend func()
}

// New builds every lesson and both keyboards
// muter may be nil when audio is disabled
func New(screen tcell.Screen, sched engine.Scheduler, player Player, clicker lesson.Clicker, muter Muter, store progress.Store, opts Options) *App {
	a := &App{
		screen:   screen,
		renderer: render.NewTerminalRenderer(screen),
		sched:    sched,
		player:   player,
		muter:    muter,
		store:    store,
		opts:     opts,
		limiter:  rate.NewLimiter(rate.Every(constants.FrameInterval), 1),
	}
	a.views = lesson.NewViews(sched, store, clicker, lesson.Options{Beat: opts.Beat, Pick: opts.Pick})

	a.freePlay = keyboard.New(player, sched, keyboard.Options{
		HideBlackKeys: opts.HideBlackKeys,
		CenterBottom:  opts.CenterBottom,
		HoldTimeout:   opts.KeyHold,
	})
	a.challenge = keyboard.New(player, sched, keyboard.Options{
		HideBlackKeys: opts.HideBlackKeys,
		HideLabels:    true,
		HideClose:     true,
		CenterBottom:  opts.CenterBottom,
		HoldTimeout:   opts.KeyHold,
	})
	for _, kb := range []*keyboard.Keyboard{a.freePlay, a.challenge} {
		kb.SetInterruptHandler(a.Interrupt)
		kb.SetCloseHandler(a.openMenu)
	}
	a.active = a.freePlay

	player.SetKeyPressListener(a.onKeyPress)
	return a
}

// SetSuspendHandler registers the Ctrl+Z action, run after notes are released
func (a *App) SetSuspendHandler(fn func()) {
	a.onSuspend = fn
}

// Current returns the open lesson, nil on the menu
func (a *App) Current() lesson.View {
	return a.current
}

// Keyboard returns the keyboard taking input
func (a *App) Keyboard() *keyboard.Keyboard {
	return a.active
}

// onKeyPress forwards every new press to the open lesson
func (a *App) onKeyPress(note core.Note) {
	if a.current != nil {
		a.current.OnKeyPress(note)
	}
}

// Interrupt is the single guard for focus loss, suspend, menu and device loss
// Every sounding note is released
func (a *App) Interrupt(reason string) {
	log.Printf("app: interrupt (%s), releasing all notes", reason)
	a.freePlay.ReleaseAll()
	a.challenge.ReleaseAll()
}

// OpenLesson detaches the current page and attaches lesson n (1-based)
func (a *App) OpenLesson(n int) bool {
	if n < 1 || n > len(a.views) {
		return false
	}
	next := a.views[n-1]
	if next == a.current {
		return true
	}
	if a.current != nil {
		a.current.Detach()
	}
	a.current = next
	a.current.Attach()
	a.syncKeyboard()
	return true
}

func (a *App) openMenu() {
	a.Interrupt("menu")
	if a.current != nil {
		a.current.Detach()
		a.current = nil
	}
	a.syncKeyboard()
}

// syncKeyboard switches to the label-free keyboard on challenge tabs
func (a *App) syncKeyboard() {
	want := a.freePlay
	if a.current != nil && a.current.LabelsHidden() {
		want = a.challenge
	}
	if want != a.active {
		a.active.ReleaseAll()
		a.active = want
	}
}

// ToggleMute flips the master mute, false when no audio engine exists
func (a *App) ToggleMute() bool {
	if a.muter == nil {
		return false
	}
	muted := a.muter.ToggleMute()
	log.Printf("app: muted=%v", muted)
	return muted
}

// NoteOn handles a MIDI note-on
func (a *App) NoteOn(key int) {
	a.active.NoteOn(key)
}

// NoteOff handles a MIDI note-off
func (a *App) NoteOff(key int) {
	a.active.NoteOff(key)
}

// Shutdown detaches the open lesson and silences everything
func (a *App) Shutdown() {
	if a.current != nil {
		a.current.Detach()
	}
	if a.trailing != nil {
		a.trailing.Stop()
		a.trailing = nil
	}
	a.Interrupt("shutdown")
}

// SetMIDIPort updates the connected MIDI input shown in the title bar
func (a *App) SetMIDIPort(port string) {
	a.opts.MIDIPort = port
}
