package constants

import (
	"testing"
	"time"
)

// TestEnvelopeConstants verifies release times are ordered from snappy to musical
func TestEnvelopeConstants(t *testing.T) {
	if VoiceFloorGain <= 0 || VoiceFloorGain >= VoicePeakGain {
		t.Errorf("Floor gain %f must be positive and below peak %f", VoiceFloorGain, VoicePeakGain)
	}
	if InterruptRelease >= PointerRelease || PointerRelease >= KeyRelease {
		t.Errorf("Expected InterruptRelease < PointerRelease < KeyRelease, got %v %v %v",
			InterruptRelease, PointerRelease, KeyRelease)
	}
	if VoiceAttack <= 0 {
		t.Error("Attack must be positive")
	}
}

// TestLessonTiming verifies pacing constants stay within a usable range
func TestLessonTiming(t *testing.T) {
	if CorrectFeedbackDelay >= BeatInterval {
		t.Errorf("Correct feedback delay %v should be shorter than a beat %v", CorrectFeedbackDelay, BeatInterval)
	}
	if RhythmBeatInterval/4 < RhythmMinSubdivTick {
		t.Errorf("Sixteenth tick %v should not be clamped", RhythmBeatInterval/4)
	}
	if HoldTimeout <= FrameInterval {
		t.Error("Hold timeout must outlast a frame")
	}
	// X11 waits 660ms before the first auto-repeat
	if HoldTimeout <= 660*time.Millisecond {
		t.Errorf("Hold timeout %v is shorter than common auto-repeat start delays", HoldTimeout)
	}
	if HoldTimeout < MinHoldTimeout || HoldTimeout > MaxHoldTimeout {
		t.Errorf("Default hold %v outside [%v, %v]", HoldTimeout, MinHoldTimeout, MaxHoldTimeout)
	}
}
