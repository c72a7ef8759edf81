package app

import (
	"github.com/lixenwraith/vi-piano/constants"
	"github.com/lixenwraith/vi-piano/render"
)

// RequestRender redraws at most once per frame interval
// A request inside the interval is folded into one trailing redraw
func (a *App) RequestRender() {
	a.dirty = true
	if a.limiter.Allow() {
		a.Render()
		return
	}
	if a.trailing == nil {
		a.trailing = a.sched.AfterFunc(constants.FrameInterval, func() {
			a.trailing = nil
			if a.dirty {
				a.Render()
			}
		})
	}
}

// Render draws the current frame immediately
func (a *App) Render() {
	a.dirty = false
	a.renderer.RenderFrame(a.frame())
}

func (a *App) frame() render.Frame {
	f := render.Frame{
		View:     a.current,
		Keyboard: a.active,
		Beat:     a.opts.Beat,
		MIDIPort: a.opts.MIDIPort,
	}
	if a.current == nil {
		for _, v := range a.views {
			info := v.Info()
			f.Menu = append(f.Menu, render.MenuEntry{
				Number:    info.Number,
				Title:     info.Title,
				Summary:   info.Summary,
				Completed: a.store.Get(info.ID),
			})
		}
	}
	if a.muter == nil {
		f.AudioOff = true
	} else {
		f.Muted = a.muter.IsMuted()
		f.AudioOff = !a.muter.Available()
	}
	return f
}
