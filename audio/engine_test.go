package audio

import (
	"errors"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// fakeOutput records device calls instead of opening a speaker
type fakeOutput struct {
	initErr error
	inits   int
	closes  int
	locks   int
	played  beep.Streamer
}

func (o *fakeOutput) Init(sr beep.SampleRate, bufferSize int) error {
	o.inits++
	return o.initErr
}
func (o *fakeOutput) Play(s beep.Streamer) { o.played = s }
func (o *fakeOutput) Lock()                { o.locks++ }
func (o *fakeOutput) Unlock()              {}
func (o *fakeOutput) Close()               { o.closes++ }

func testConfig() AudioConfig {
	cfg := DefaultAudioConfig()
	cfg.MasterVolume = 1
	return cfg
}

// TestEngineLazyInit verifies the first Add opens the device exactly once
func TestEngineLazyInit(t *testing.T) {
	out := &fakeOutput{}
	e := NewAudioEngineWithOutput(testConfig(), out)

	if out.inits != 0 {
		t.Fatal("Device must not open before first use")
	}
	if !e.Add(NewOscillator(440, 10*time.Millisecond, WaveSine, e.SampleRate())) {
		t.Fatal("Expected Add to succeed on a working output")
	}
	e.Add(NewOscillator(440, 10*time.Millisecond, WaveSine, e.SampleRate()))

	if out.inits != 1 {
		t.Errorf("Expected one device init, got %d", out.inits)
	}
	if out.played == nil {
		t.Error("Expected the master stage to be handed to the output")
	}
	if !e.Available() {
		t.Error("Engine should report available")
	}
}

// TestEngineSilentDegradation verifies a failing device yields silent mode, not a crash
func TestEngineSilentDegradation(t *testing.T) {
	out := &fakeOutput{initErr: errors.New("no device")}
	e := NewAudioEngineWithOutput(testConfig(), out)

	err := e.Init()
	if !errors.Is(err, ErrAudioUnavailable) {
		t.Fatalf("Expected ErrAudioUnavailable, got %v", err)
	}
	if e.Add(NewOscillator(440, time.Millisecond, WaveSine, e.SampleRate())) {
		t.Error("Add must report false in silent mode")
	}
	if out.inits != 1 {
		t.Errorf("Failed init must not be retried, got %d inits", out.inits)
	}

	e.Teardown()
	if out.closes != 0 {
		t.Error("Silent engine must not close a device it never opened")
	}
}

// TestEngineDisabledByConfig verifies Enabled=false never touches the device
func TestEngineDisabledByConfig(t *testing.T) {
	out := &fakeOutput{}
	cfg := testConfig()
	cfg.Enabled = false
	e := NewAudioEngineWithOutput(cfg, out)

	if err := e.Init(); !errors.Is(err, ErrAudioUnavailable) {
		t.Errorf("Expected ErrAudioUnavailable, got %v", err)
	}
	if out.inits != 0 {
		t.Error("Disabled engine opened the device")
	}
}

// TestEngineMute verifies muted engines refuse new streamers and toggle back
func TestEngineMute(t *testing.T) {
	out := &fakeOutput{}
	e := NewAudioEngineWithOutput(testConfig(), out)

	if !e.ToggleMute() || !e.IsMuted() {
		t.Fatal("Expected muted after first toggle")
	}
	if e.Add(NewOscillator(440, time.Millisecond, WaveSine, e.SampleRate())) {
		t.Error("Muted engine accepted a streamer")
	}
	if e.ToggleMute() {
		t.Error("Expected unmuted after second toggle")
	}
	if !e.Add(NewOscillator(440, time.Millisecond, WaveSine, e.SampleRate())) {
		t.Error("Unmuted engine refused a streamer")
	}
}

// TestEngineVolumeClamp verifies master volume stays within 0-1
func TestEngineVolumeClamp(t *testing.T) {
	e := NewAudioEngineWithOutput(testConfig(), &fakeOutput{})

	e.SetVolume(3)
	if e.Volume() != 1 {
		t.Errorf("Expected clamp to 1, got %v", e.Volume())
	}
	e.SetVolume(-1)
	if e.Volume() != 0 {
		t.Errorf("Expected clamp to 0, got %v", e.Volume())
	}
}

// TestEngineTeardown verifies teardown is idempotent and final
func TestEngineTeardown(t *testing.T) {
	out := &fakeOutput{}
	e := NewAudioEngineWithOutput(testConfig(), out)
	e.Init()

	e.Teardown()
	e.Teardown()

	if out.closes != 1 {
		t.Errorf("Expected one close, got %d", out.closes)
	}
	if e.Add(NewOscillator(440, time.Millisecond, WaveSine, e.SampleRate())) {
		t.Error("Add after teardown must fail")
	}
	if e.Available() {
		t.Error("Torn down engine reports available")
	}
}

// TestEngineNow verifies the sample clock follows samples pulled by the output
func TestEngineNow(t *testing.T) {
	out := &fakeOutput{}
	e := NewAudioEngineWithOutput(testConfig(), out)
	e.Init()

	buf := make([][2]float64, e.SampleRate().N(10*time.Millisecond))
	out.played.Stream(buf)
	out.played.Stream(buf)

	if got := e.Now(); got != 20*time.Millisecond {
		t.Errorf("Expected 20ms on the sample clock, got %v", got)
	}
}
