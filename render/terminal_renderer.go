// Package render draws the menu, lesson pages and status chrome onto a tcell screen
package render

import (
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-piano/constants"
	"github.com/lixenwraith/vi-piano/core"
	"github.com/lixenwraith/vi-piano/keyboard"
	"github.com/lixenwraith/vi-piano/lesson"
)

// MenuEntry is one lesson card on the menu
type MenuEntry struct {
	Number    int
	Title     string
	Summary   string
	Completed bool
}

// Frame is everything drawn in one pass
type Frame struct {
	Menu     []MenuEntry
	View     lesson.View // Nil on the menu
	Keyboard *keyboard.Keyboard

	Beat     time.Duration
	Muted    bool
	AudioOff bool
	MIDIPort string // Empty without MIDI input
}

// TerminalRenderer handles all terminal rendering
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{screen: screen, width: w, height: h}
}

// UpdateDimensions handles a terminal resize
func (r *TerminalRenderer) UpdateDimensions(width, height int) {
	r.width = width
	r.height = height
}

// KeyboardArea returns the cells reserved for the keyboard above the footer
func (r *TerminalRenderer) KeyboardArea() (x, y, w, h int) {
	h = constants.KeyboardHeight
	y = r.height - 1 - constants.KeyboardBottomGap - h
	if y < 2 {
		h -= 2 - y
		y = 2
	}
	return 0, y, r.width, max(h, 0)
}

// RenderFrame renders the entire frame
func (r *TerminalRenderer) RenderFrame(f Frame) {
	defaultStyle := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbText)
	r.screen.SetStyle(defaultStyle)
	r.screen.Clear()

	r.drawTitleBar(f, defaultStyle)

	kx, ky, kw, kh := r.KeyboardArea()
	body := bodyArea{x: 2, y: 2, w: r.width - 4, bottom: ky - 1}

	var highlights []core.Note
	if f.View == nil {
		r.drawMenu(f.Menu, body, defaultStyle)
	} else {
		r.drawLesson(f.View, body, defaultStyle)
		highlights = f.View.Highlights()
	}

	if f.Keyboard != nil && kh > 0 {
		f.Keyboard.Render(r.screen, kx, ky, kw, kh, highlights)
	}

	r.drawFooter(f, defaultStyle)
	r.screen.Show()
}

// bodyArea is the region between the title bar and the keyboard
type bodyArea struct {
	x, y, w int
	bottom  int // Exclusive
}

func (r *TerminalRenderer) drawTitleBar(f Frame, defaultStyle tcell.Style) {
	barStyle := defaultStyle.Foreground(RgbTitleText).Background(RgbTitleBarBg)
	fillRow(r.screen, 0, 0, r.width, barStyle)

	title := " vi-piano "
	if f.View != nil {
		info := f.View.Info()
		title = " vi-piano › Lesson " + strconv.Itoa(info.Number) + " "
	}
	drawText(r.screen, 0, 0, r.width, title, barStyle.Bold(true))

	// Badges right to left
	x := r.width
	if f.Muted {
		x = drawRight(r.screen, x, 0, " MUTED ", defaultStyle.Foreground(tcell.ColorWhite).Background(RgbMutedBg)) - 1
	}
	if f.AudioOff {
		x = drawRight(r.screen, x, 0, " NO AUDIO ", defaultStyle.Foreground(tcell.ColorWhite).Background(RgbAudioOffBg)) - 1
	}
	if f.MIDIPort != "" {
		x = drawRight(r.screen, x, 0, " MIDI: "+f.MIDIPort+" ", defaultStyle.Foreground(RgbTitleText).Background(RgbMIDIBg)) - 1
	}
	drawRight(r.screen, x, 0, TempoLabel(f.Beat)+" ", barStyle)
}

func (r *TerminalRenderer) drawFooter(f Frame, defaultStyle tcell.Style) {
	y := r.height - 1
	help := "1-3 open lesson · m mute · Ctrl+Q quit"
	if f.View != nil {
		help = "Tab switch · Enter start · Backspace reset · Ctrl+X clear progress · Esc menu · m mute"
	}
	fillRow(r.screen, 0, y, r.width, defaultStyle)
	drawText(r.screen, 1, y, r.width, help, defaultStyle.Foreground(RgbDim))
}
