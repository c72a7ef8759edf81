package render

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/vi-piano/challenge"
	"github.com/lixenwraith/vi-piano/core"
	"github.com/lixenwraith/vi-piano/lesson"
)

// Instruction lines under a challenge
const (
	instrComplete = "Lesson complete — well done!"
	instrIdle     = "Press Start to begin."
)

// cursor walks down the body area one row at a time
type cursor struct {
	r    *TerminalRenderer
	area bodyArea
	y    int
}

func (c *cursor) ok() bool { return c.y < c.area.bottom }

func (c *cursor) line(s string, style tcell.Style) {
	if c.ok() {
		drawText(c.r.screen, c.area.x, c.y, c.area.x+c.area.w, s, style)
	}
	c.y++
}

func (c *cursor) wrapped(s string, style tcell.Style) {
	for _, l := range wrapText(s, c.area.w) {
		c.line(l, style)
	}
}

func (c *cursor) skip() { c.y++ }

func (r *TerminalRenderer) drawMenu(entries []MenuEntry, area bodyArea, defaultStyle tcell.Style) {
	c := &cursor{r: r, area: area, y: area.y}
	c.line("Choose a lesson", defaultStyle.Foreground(RgbHeading).Bold(true))
	c.skip()

	for _, e := range entries {
		if !c.ok() {
			return
		}
		x := drawText(r.screen, area.x, c.y, area.x+area.w, "["+strconv.Itoa(e.Number)+"] ", defaultStyle.Foreground(RgbTabActive).Bold(true))
		x = drawText(r.screen, x, c.y, area.x+area.w, e.Title, defaultStyle.Foreground(RgbHeading))
		if e.Completed {
			drawText(r.screen, x+1, c.y, area.x+area.w, "✓ completed", defaultStyle.Foreground(RgbCompleted))
		}
		c.skip()
		c.line("    "+e.Summary, defaultStyle.Foreground(RgbDim))
		c.skip()
	}
}

func (r *TerminalRenderer) drawLesson(v lesson.View, area bodyArea, defaultStyle tcell.Style) {
	info := v.Info()
	c := &cursor{r: r, area: area, y: area.y}
	c.line(info.Heading, defaultStyle.Foreground(RgbHeading).Bold(true))
	c.wrapped(info.Intro, defaultStyle.Foreground(RgbDim))
	c.skip()

	switch view := v.(type) {
	case *lesson.TabbedLesson:
		r.drawTabs(c, view.Tab(), defaultStyle)
		c.skip()
		if view.Tab() == lesson.TabLesson {
			r.drawDemo(c, info, defaultStyle)
			return
		}
		c.line(info.ChallengeTitle, defaultStyle.Foreground(RgbHeading).Bold(true))
		c.wrapped(info.ChallengeText, defaultStyle)
		c.skip()
		switch ch := view.Challenge().(type) {
		case *challenge.RandomTarget:
			r.drawRandomTarget(c, ch.Snapshot(), defaultStyle)
		case *challenge.TimedSequence:
			r.drawSequence(c, ch.Snapshot(), defaultStyle)
		}

	case *lesson.RhythmLesson:
		r.drawDemo(c, info, defaultStyle)
		r.drawMetronome(c, view.Metronome().Snapshot(), defaultStyle)
	}
}

func (r *TerminalRenderer) drawTabs(c *cursor, active lesson.Tab, defaultStyle tcell.Style) {
	if !c.ok() {
		c.skip()
		return
	}
	x := c.area.x
	for _, t := range []lesson.Tab{lesson.TabLesson, lesson.TabChallenge} {
		style := defaultStyle.Foreground(RgbText).Background(RgbTabIdle)
		if t == active {
			style = defaultStyle.Foreground(RgbTitleText).Background(RgbTabActive).Bold(true)
		}
		x = drawText(r.screen, x, c.y, c.area.x+c.area.w, " "+t.String()+" ", style) + 1
	}
	drawText(r.screen, x+1, c.y, c.area.x+c.area.w, "(Tab)", defaultStyle.Foreground(RgbDim))
	c.skip()
}

func (r *TerminalRenderer) drawDemo(c *cursor, info lesson.Info, defaultStyle tcell.Style) {
	c.line(info.DemoTitle, defaultStyle.Foreground(RgbHeading).Bold(true))
	for _, l := range info.DemoText {
		c.wrapped(l, defaultStyle)
	}
	c.skip()
}

// buttonLabel mirrors the start control state
func buttonLabel(status core.RunStatus) string {
	switch status {
	case core.StatusCompleted:
		return "Completed"
	case core.StatusCountdown, core.StatusInProgress:
		return "In progress"
	}
	return "[Enter] Start Challenge"
}

func (r *TerminalRenderer) drawControls(c *cursor, status core.RunStatus, defaultStyle tcell.Style) {
	c.line(buttonLabel(status)+"   [Backspace] Reset Challenge   [Ctrl+X] Clear saved progress", defaultStyle.Foreground(RgbTabActive))
}

func (r *TerminalRenderer) drawFeedback(c *cursor, fb challenge.Feedback, notice string, defaultStyle tcell.Style) {
	if notice != "" {
		c.line(notice, defaultStyle.Foreground(RgbNotice))
	}
	if fb.Text != "" {
		c.line(fb.Text, defaultStyle.Foreground(ToneColor(fb.Tone)))
	}
}

func (r *TerminalRenderer) drawRandomTarget(c *cursor, st challenge.RandomTargetState, defaultStyle tcell.Style) {
	r.drawControls(c, st.Status, defaultStyle)
	c.skip()

	instr := instrIdle
	switch {
	case st.Completed:
		instr = instrComplete
	case st.Status == core.StatusInProgress:
		target := string(st.Target)
		if target == "" {
			target = "—"
		}
		instr = "Press: " + target
	}
	c.line(instr, defaultStyle.Foreground(RgbHeading).Bold(true))
	r.drawFeedback(c, st.Feedback, st.Notice, defaultStyle)
	c.line(fmt.Sprintf("Consecutive correct: %d/%d", st.Streak, st.Goal), defaultStyle.Foreground(RgbDim))
}

func (r *TerminalRenderer) drawSequence(c *cursor, st challenge.SequenceState, defaultStyle tcell.Style) {
	for i, line := range st.Lines {
		if !c.ok() {
			break
		}
		x := drawText(r.screen, c.area.x, c.y, c.area.x+c.area.w, fmt.Sprintf("Line %d  ", i+1), defaultStyle.Foreground(RgbDim))
		for _, step := range line {
			style := defaultStyle.Foreground(StepColor(step))
			if step.Active {
				style = style.Reverse(true).Bold(true)
			}
			x = drawText(r.screen, x, c.y, c.area.x+c.area.w, " "+string(step.Note)+" ", style)
		}
		c.skip()
	}
	c.skip()
	r.drawControls(c, st.Status, defaultStyle)
	c.skip()

	instr := instrIdle
	switch {
	case st.Completed:
		instr = instrComplete
	case st.Status == core.StatusCountdown:
		instr = "Get ready…"
	case st.Status == core.StatusInProgress:
		target := string(st.Target)
		if target == "" {
			target = "—"
		}
		instr = "Play: " + target
	}
	c.line(instr, defaultStyle.Foreground(RgbHeading).Bold(true))
	r.drawFeedback(c, st.Feedback, st.Notice, defaultStyle)
	c.line(fmt.Sprintf("Hits: %d/%d", st.Hits, st.Total), defaultStyle.Foreground(RgbDim))

	if st.Status == core.StatusCountdown {
		r.drawCountdown(st.Countdown, c.area, defaultStyle)
	}
}

// drawCountdown overlays the pre-roll number in the middle of the body
func (r *TerminalRenderer) drawCountdown(n int, area bodyArea, defaultStyle tcell.Style) {
	text := "Go!"
	if n > 0 {
		text = strconv.Itoa(n)
	}
	boxW := runewidth.StringWidth(text) + 8
	boxH := 3
	x := area.x + (area.w-boxW)/2
	y := area.y + (area.bottom-area.y-boxH)/2
	if y < area.y {
		y = area.y
	}
	style := defaultStyle.Foreground(RgbCountdown).Background(tcell.ColorBlack).Bold(true)
	for row := 0; row < boxH; row++ {
		fillRow(r.screen, x, y+row, boxW, style)
	}
	drawCentered(r.screen, x, y+1, boxW, text, style)
}

func (r *TerminalRenderer) drawMetronome(c *cursor, st lesson.MetronomeState, defaultStyle tcell.Style) {
	c.line(st.Entry.Name, defaultStyle.Foreground(RgbHeading).Bold(true))
	c.line(st.Entry.Title(), defaultStyle)
	c.line(st.Entry.Kind()+" · tick "+FormatDuration(st.Interval), defaultStyle.Foreground(RgbDim))
	c.skip()
	if !c.ok() {
		return
	}

	n := len(st.Labels)
	boxW := 5
	if n > 8 {
		boxW = 3
	}
	if n*(boxW+1) > c.area.w && n > 0 {
		boxW = max(c.area.w/n-1, 1)
	}

	active := st.Entry.ActiveBoxes()
	fill := RgbBoxNote
	if st.Entry.Rest {
		fill = RgbBoxRest
	}
	x := c.area.x
	for i, label := range st.Labels {
		bg := RgbBoxIdle
		if i < active {
			bg = fill
		}
		if i == st.Indicator {
			bg = RgbBoxIndicator
		}
		style := defaultStyle.Foreground(RgbBoxLabel).Background(bg)
		fillRow(r.screen, x, c.y, boxW, style)
		drawCentered(r.screen, x, c.y, boxW, label, style.Bold(i == st.Indicator))
		x += boxW + 1
	}
	c.skip()
}
