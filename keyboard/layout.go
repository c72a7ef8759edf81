// Package keyboard is the on-screen piano: layout, input mapping and rendering
package keyboard

import (
	"math"
	"time"

	"github.com/lixenwraith/vi-piano/constants"
	"github.com/lixenwraith/vi-piano/core"
)

// Options are fixed at construction
type Options struct {
	HideBlackKeys bool
	HideLabels    bool
	HideClose     bool

	// CenterBottom anchors the keyboard to the bottom center of its area
	CenterBottom bool

	// HoldTimeout is how long a typed key sounds without auto-repeat, default when zero
	HoldTimeout time.Duration
}

// Rect is a cell rectangle
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell is inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// KeyRect is the screen area of one key
type KeyRect struct {
	Rect
	Note  core.Note
	Black bool
}

// Layout positions every key inside a bounding box
type Layout struct {
	Bounds Rect
	White  []KeyRect
	Black  []KeyRect
	Close  Rect // Zero when hidden
}

// ComputeLayout fits one octave into the area x, y, w, h
func ComputeLayout(x, y, w, h int, opts Options) Layout {
	width := min(max(w, constants.KeyboardMinWidth), constants.KeyboardMaxWidth)
	if width > w {
		width = w
	}
	height := min(max(h, constants.KeyboardMinHeight), constants.KeyboardHeight)
	if height > h {
		height = h
	}

	whiteW := max(width/len(core.WhiteKeys), 3)
	width = whiteW * len(core.WhiteKeys)

	bx, by := x, y
	if opts.CenterBottom {
		bx = x + (w-width)/2
		by = y + h - height
	}

	var l Layout
	l.Bounds = Rect{bx, by, width, height}

	keyTop := by
	if !opts.HideClose {
		l.Close = Rect{bx + width - 3, by, 3, 1}
		keyTop++
	}
	keyH := by + height - keyTop

	whiteX := make(map[core.Note]int, len(core.WhiteKeys))
	for i, n := range core.WhiteKeys {
		kx := bx + i*whiteW
		whiteX[n] = kx
		l.White = append(l.White, KeyRect{Rect: Rect{kx, keyTop, whiteW, keyH}, Note: n})
	}

	if opts.HideBlackKeys {
		return l
	}

	blackW := max(int(math.Round(float64(whiteW)*constants.BlackKeyWidthRatio)), 2)
	blackH := max(keyH*constants.BlackKeyHeightPct/100, 2)
	for _, n := range core.BlackKeys {
		// Centered on the boundary right of its white neighbour
		edge := whiteX[n.LeftWhite()] + whiteW
		l.Black = append(l.Black, KeyRect{Rect: Rect{edge - blackW/2, keyTop, blackW, blackH}, Note: n, Black: true})
	}
	return l
}

// HitTest returns the key under a cell, black keys sit on top
func (l Layout) HitTest(x, y int) (core.Note, bool) {
	for _, k := range l.Black {
		if k.Contains(x, y) {
			return k.Note, true
		}
	}
	for _, k := range l.White {
		if k.Contains(x, y) {
			return k.Note, true
		}
	}
	return "", false
}

// HitClose reports whether the cell is on the close mark
func (l Layout) HitClose(x, y int) bool {
	return l.Close.W > 0 && l.Close.Contains(x, y)
}

// Key returns the rectangle of note
func (l Layout) Key(note core.Note) (KeyRect, bool) {
	for _, k := range l.Black {
		if k.Note == note {
			return k, true
		}
	}
	for _, k := range l.White {
		if k.Note == note {
			return k, true
		}
	}
	return KeyRect{}, false
}
