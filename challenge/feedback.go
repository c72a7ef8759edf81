// Package challenge scores key presses against lesson targets
package challenge

import (
	"time"

	"github.com/lixenwraith/vi-piano/engine"
)

// Tone classifies a message for display
type Tone int

const (
	ToneInfo Tone = iota
	ToneGood
	ToneBad
)

// Feedback is the message shown under a challenge
type Feedback struct {
	Text string
	Tone Tone
}

// Messages shown by the challenges
const (
	MsgCleared     = "Saved progress cleared."
	MsgWaitForNote = "Wait for the highlighted note."
	MsgTooLate     = "Too late for this beat."
	MsgPerfect     = "Perfect! You played the sequence correctly."

	msgCorrectFmt    = "Correct (%d in a row)"
	msgCompleteFmt   = "%d correct in a row — Lesson complete!"
	msgWrongFmt      = "Wrong key (%s). Progress reset — start again."
	msgHitFmt        = "Hit: %s"
	msgMissFmt       = "Miss: expected %s, you pressed %s"
	msgIncompleteFmt = "Incomplete: %d/%d correct. Try again."
)

// notice is a transient message that hides itself after a delay
type notice struct {
	sched engine.Scheduler
	text  string
	gen   uint64
	timer engine.Timer
}

func (n *notice) show(text string, d time.Duration) {
	n.cancel()
	n.text = text
	gen := n.gen
	n.timer = n.sched.AfterFunc(d, func() {
		if gen != n.gen {
			return
		}
		n.text = ""
		n.timer = nil
	})
}

func (n *notice) cancel() {
	n.gen++
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.text = ""
}
