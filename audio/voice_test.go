package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-piano/constants"
	"github.com/lixenwraith/vi-piano/core"
)

const testRate = beep.SampleRate(48000)

// drain streams v until it stops, returning the sample count
func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
	t.Fatalf("Streamer still running after %d samples", limit)
	return total
}

// TestVoiceAttack verifies the envelope rises from the floor to peak over the attack
func TestVoiceAttack(t *testing.T) {
	v := newVoice(core.NoteA, testRate)

	if g := v.Gain(); g != constants.VoiceFloorGain {
		t.Errorf("Expected floor gain at start, got %v", g)
	}

	buf := make([][2]float64, testRate.N(constants.VoiceAttack)/2)
	v.Stream(buf)
	mid := v.Gain()
	if mid <= constants.VoiceFloorGain || mid >= constants.VoicePeakGain {
		t.Errorf("Expected gain between floor and peak mid-attack, got %v", mid)
	}

	v.Stream(buf)
	if g := v.Gain(); math.Abs(g-constants.VoicePeakGain) > 1e-9 {
		t.Errorf("Expected peak gain after attack, got %v", g)
	}
	if v.Releasing() || v.Done() {
		t.Error("Held voice should not be releasing")
	}
}

// TestVoiceRelease verifies release fades from the current gain and stops on time
func TestVoiceRelease(t *testing.T) {
	v := newVoice(core.NoteC, testRate)
	buf := make([][2]float64, testRate.N(constants.VoiceAttack))
	v.Stream(buf)

	v.Release(constants.KeyRelease)
	if !v.Releasing() {
		t.Fatal("Expected releasing after Release")
	}
	if g := v.Gain(); math.Abs(g-constants.VoicePeakGain) > 1e-9 {
		t.Errorf("Release must start from the current gain, got %v", g)
	}

	n := drain(t, v, testRate.N(2*time.Second))
	if want := testRate.N(constants.KeyRelease); n != want {
		t.Errorf("Expected %d samples of release tail, got %d", want, n)
	}
	if !v.Done() {
		t.Error("Voice should be done after the release")
	}
	if g := v.Gain(); math.Abs(g-constants.VoiceFloorGain) > 1e-9 {
		t.Errorf("Expected floor gain after release, got %v", g)
	}
}

// TestVoiceReleaseDuringAttack verifies a release mid-attack snapshots the partial gain
func TestVoiceReleaseDuringAttack(t *testing.T) {
	v := newVoice(core.NoteE, testRate)
	buf := make([][2]float64, testRate.N(constants.VoiceAttack)/4)
	v.Stream(buf)
	partial := v.Gain()

	v.Release(constants.InterruptRelease)
	if g := v.Gain(); math.Abs(g-partial) > 1e-9 {
		t.Errorf("Expected release to hold %v at its start, got %v", partial, g)
	}

	// Release again must not extend the tail past a finished voice
	drain(t, v, testRate.N(time.Second))
	v.Release(constants.KeyRelease)
	if n, ok := v.Stream(buf); n != 0 || ok {
		t.Errorf("Finished voice streamed n=%d ok=%v", n, ok)
	}
}
