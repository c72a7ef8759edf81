package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-piano/challenge"
	"github.com/lixenwraith/vi-piano/core"
)

// RGB color definitions for the page chrome
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbText       = tcell.NewRGBColor(200, 200, 210) // Body text
	RgbDim        = tcell.NewRGBColor(120, 120, 135) // Secondary text
	RgbHeading    = tcell.NewRGBColor(255, 255, 255) // White
	RgbTitleBarBg = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbTitleText  = tcell.NewRGBColor(0, 0, 0)       // Dark text for title bar
	RgbTabActive  = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbTabIdle    = tcell.NewRGBColor(60, 60, 75)    // Muted tab
	RgbCompleted  = tcell.NewRGBColor(0, 200, 0)     // Normal Green
	RgbMutedBg    = tcell.NewRGBColor(200, 50, 50)   // Red for mute badge
	RgbAudioOffBg = tcell.NewRGBColor(128, 0, 128)   // Dark purple for missing audio
	RgbMIDIBg     = tcell.NewRGBColor(255, 165, 0)   // Orange for MIDI badge

	// Feedback tones
	RgbToneInfo = tcell.NewRGBColor(140, 190, 255) // Bright Blue
	RgbToneGood = tcell.NewRGBColor(50, 255, 50)   // Bright Green
	RgbToneBad  = tcell.NewRGBColor(255, 120, 120) // Bright Red
	RgbNotice   = tcell.NewRGBColor(255, 255, 0)   // Bright Yellow

	// Sequence outcomes
	RgbStepPending = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbStepActive  = tcell.NewRGBColor(100, 150, 255) // Normal Blue
	RgbStepHit     = tcell.NewRGBColor(0, 200, 0)     // Normal Green
	RgbStepMiss    = tcell.NewRGBColor(255, 80, 80)   // Normal Red
	RgbCountdown   = tcell.NewRGBColor(255, 255, 0)   // Bright Yellow

	// Metronome scale
	RgbBoxIdle      = tcell.NewRGBColor(50, 50, 60)    // Very dark gray
	RgbBoxNote      = tcell.NewRGBColor(60, 100, 200)  // Dark Blue
	RgbBoxRest      = tcell.NewRGBColor(101, 67, 33)   // Dark brown
	RgbBoxIndicator = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbBoxLabel     = tcell.NewRGBColor(255, 255, 255) // White
)

// ToneColor returns the text color for a feedback tone
func ToneColor(t challenge.Tone) tcell.Color {
	switch t {
	case challenge.ToneGood:
		return RgbToneGood
	case challenge.ToneBad:
		return RgbToneBad
	default:
		return RgbToneInfo
	}
}

// StepColor returns the color of a sequence step
func StepColor(step challenge.SequenceStep) tcell.Color {
	switch {
	case step.Outcome == core.OutcomeHit:
		return RgbStepHit
	case step.Outcome == core.OutcomeMiss:
		return RgbStepMiss
	case step.Active:
		return RgbStepActive
	default:
		return RgbStepPending
	}
}
