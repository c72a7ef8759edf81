package app

import (
	"github.com/gdamore/tcell/v2"
)

// HandleEvent processes a tcell event and returns false if the app should exit
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKeyEvent(ev)
	case *tcell.EventMouse:
		a.active.HandleMouse(ev)
	case *tcell.EventFocus:
		if !ev.Focused {
			a.Interrupt("focus lost")
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		a.renderer.UpdateDimensions(w, h)
		a.screen.Sync()
	}
	return true
}

// handleKeyEvent processes keyboard events
func (a *App) handleKeyEvent(ev *tcell.EventKey) bool {
	// Handle exit keys
	if ev.Key() == tcell.KeyCtrlQ || ev.Key() == tcell.KeyCtrlC {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		a.openMenu()
		return true
	case tcell.KeyCtrlZ:
		a.Interrupt("suspend")
		if a.onSuspend != nil {
			a.onSuspend()
		}
		return true
	case tcell.KeyF2:
		a.ToggleMute()
		return true
	}

	if a.current != nil && a.handleLessonKey(ev) {
		return true
	}

	if ev.Key() != tcell.KeyRune {
		return true
	}
	r := ev.Rune()
	switch {
	case r >= '1' && r <= '9':
		a.OpenLesson(int(r - '0'))
	case r == 'm' || r == 'M':
		a.ToggleMute()
	default:
		a.active.KeyPress(r)
	}
	return true
}

// handleLessonKey handles the page controls, true when consumed
func (a *App) handleLessonKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyTab:
		a.current.ToggleTab()
	case tcell.KeyEnter:
		a.current.Start()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.current.Reset()
	case tcell.KeyCtrlX:
		a.current.ClearProgress()
	default:
		return false
	}
	a.syncKeyboard()
	return true
}
