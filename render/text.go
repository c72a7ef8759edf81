package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawText writes s from x, clipped at maxX, and returns the column after the last cell
func drawText(screen tcell.Screen, x, y, maxX int, s string, style tcell.Style) int {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		screen.SetContent(x, y, ch, nil, style)
		x += w
	}
	return x
}

// drawCentered writes s centered in [x, x+width)
func drawCentered(screen tcell.Screen, x, y, width int, s string, style tcell.Style) {
	s = runewidth.Truncate(s, width, "")
	drawText(screen, x+(width-runewidth.StringWidth(s))/2, y, x+width, s, style)
}

// drawRight writes s so that it ends at maxX, returns its starting column
func drawRight(screen tcell.Screen, maxX, y int, s string, style tcell.Style) int {
	x := maxX - runewidth.StringWidth(s)
	if x < 0 {
		x = 0
	}
	drawText(screen, x, y, maxX, s, style)
	return x
}

func fillRow(screen tcell.Screen, x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		screen.SetContent(x+i, y, ' ', nil, style)
	}
}

// wrapText breaks s at spaces into lines no wider than width
func wrapText(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var line strings.Builder
	lineW := 0
	for _, word := range strings.Fields(s) {
		ww := runewidth.StringWidth(word)
		if lineW > 0 && lineW+1+ww > width {
			lines = append(lines, line.String())
			line.Reset()
			lineW = 0
		}
		if lineW > 0 {
			line.WriteByte(' ')
			lineW++
		}
		line.WriteString(word)
		lineW += ww
	}
	if lineW > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
