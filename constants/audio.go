package constants

import "time"

// Output
const (
	AudioSampleRate = 48000

	// SpeakerBuffer is the speaker buffer length, trades latency for underrun safety
	SpeakerBuffer = 30 * time.Millisecond
)

// Piano voice envelope
const (
	// VoiceFloorGain is the near-silent start and end level of every envelope
	VoiceFloorGain = 0.001

	VoicePeakGain = 0.5
	VoiceAttack   = 10 * time.Millisecond

	// KeyRelease is the fade after a key or hold timer release
	KeyRelease = 500 * time.Millisecond

	// PointerRelease is the fade after a mouse button release or pointer leave
	PointerRelease = 250 * time.Millisecond

	// InterruptRelease is the snappy fade used by StopAll
	InterruptRelease = 120 * time.Millisecond
)

// Metronome click timing
const (
	ClickAttack = 2 * time.Millisecond
	ClickTail   = 20 * time.Millisecond
)

// Click timbres per subdivision role, rests use the softer variant
const (
	ClickBeatFreq      = 1100.0
	ClickBeatPeak      = 0.28
	ClickBeatDuration  = 120 * time.Millisecond
	ClickBeatRestFreq  = 980.0
	ClickBeatRestPeak  = 0.16
	ClickBeatRestDur   = 100 * time.Millisecond
	ClickAndFreq       = 900.0
	ClickAndPeak       = 0.14
	ClickAndDuration   = 90 * time.Millisecond
	ClickAndRestFreq   = 760.0
	ClickAndRestPeak   = 0.08
	ClickAndRestDur    = 70 * time.Millisecond
	ClickSixteenthFreq = 760.0
	ClickSixteenthPeak = 0.09
	ClickSixteenthDur  = 80 * time.Millisecond
	ClickSixRestFreq   = 660.0
	ClickSixRestPeak   = 0.06
	ClickSixRestDur    = 60 * time.Millisecond
)
