package keyboard

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-piano/core"
)

// Key colors
var (
	RgbWhiteKey       = tcell.NewRGBColor(235, 235, 230) // Ivory
	RgbBlackKey       = tcell.NewRGBColor(30, 30, 36)    // Ebony
	RgbKeyBorder      = tcell.NewRGBColor(120, 120, 130) // Gray separator
	RgbKeyPressed     = tcell.NewRGBColor(255, 165, 0)   // Orange while sounding
	RgbKeyHighlight   = tcell.NewRGBColor(100, 150, 255) // Blue for the lit target
	RgbKeyLabelDark   = tcell.NewRGBColor(40, 40, 48)    // Label on white keys
	RgbKeyLabelLight  = tcell.NewRGBColor(220, 220, 220) // Label on black keys
	RgbKeyHint        = tcell.NewRGBColor(150, 150, 160) // Computer key hint
	RgbCloseMark      = tcell.NewRGBColor(255, 80, 80)   // Red close mark
	RgbKeyboardBorder = tcell.NewRGBColor(60, 60, 70)    // Frame behind the keys
)

// Render lays out the keyboard in the area and draws it
// The layout is kept for mouse hit-testing
func (k *Keyboard) Render(screen tcell.Screen, x, y, w, h int, highlights []core.Note) {
	k.layout = ComputeLayout(x, y, w, h, k.opts)
	l := k.layout

	lit := make(map[core.Note]bool, len(highlights))
	for _, n := range highlights {
		lit[n] = true
	}

	base := tcell.StyleDefault.Background(RgbKeyboardBorder)
	fillRect(screen, l.Bounds, ' ', base)

	if l.Close.W > 0 {
		closeStyle := base.Foreground(RgbCloseMark).Bold(true)
		drawString(screen, l.Close.X, l.Close.Y, "[x]", closeStyle)
	}

	for _, key := range l.White {
		bg := k.keyColor(key.Note, RgbWhiteKey, lit)
		style := tcell.StyleDefault.Background(bg).Foreground(RgbKeyLabelDark)
		inner := key.Rect
		// Rightmost column is the separator
		if inner.W > 1 {
			fillRect(screen, Rect{inner.X + inner.W - 1, inner.Y, 1, inner.H}, '│', style.Foreground(RgbKeyBorder))
			inner.W--
		}
		fillRect(screen, inner, ' ', style)
		k.drawLabels(screen, key, inner, style)
	}

	for _, key := range l.Black {
		bg := k.keyColor(key.Note, RgbBlackKey, lit)
		style := tcell.StyleDefault.Background(bg).Foreground(RgbKeyLabelLight)
		fillRect(screen, key.Rect, ' ', style)
		k.drawLabels(screen, key, key.Rect, style)
	}
}

func (k *Keyboard) keyColor(note core.Note, normal tcell.Color, lit map[core.Note]bool) tcell.Color {
	switch {
	case k.player.IsPressed(note):
		return RgbKeyPressed
	case lit[note]:
		return RgbKeyHighlight
	}
	return normal
}

// drawLabels writes note names near the bottom and the hint letter above them
func (k *Keyboard) drawLabels(screen tcell.Screen, key KeyRect, area Rect, style tcell.Style) {
	row := area.Y + area.H - 1
	if !k.opts.HideLabels {
		lines := []string{key.Note.String()}
		if key.Black {
			lines = []string{key.Note.String(), key.Note.Flat()}
		}
		for i := len(lines) - 1; i >= 0 && row >= area.Y; i-- {
			drawCentered(screen, area, row, lines[i], style.Bold(true))
			row--
		}
	}
	if hint, ok := k.Hint(key.Note); ok && row >= area.Y {
		hintStyle := style.Foreground(RgbKeyHint)
		if key.Black {
			hintStyle = style.Foreground(RgbKeyBorder)
		}
		drawCentered(screen, area, row, string(hint), hintStyle)
	}
}

func fillRect(screen tcell.Screen, r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func drawString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}

func drawCentered(screen tcell.Screen, area Rect, y int, s string, style tcell.Style) {
	runes := []rune(s)
	if len(runes) > area.W {
		runes = runes[:area.W]
	}
	x := area.X + (area.W-len(runes))/2
	for i, ch := range runes {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}
