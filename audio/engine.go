package audio

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-piano/constants"
)

var (
	// ErrAudioUnavailable reports that no output device could be opened or audio is disabled
	ErrAudioUnavailable = errors.New("audio output unavailable")

	errTornDown = errors.New("audio engine torn down")
)

// Output is the device behind the engine, package speaker in production
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// speakerOutput drives the process-wide beep speaker
type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error { return speaker.Init(sr, bufferSize) }
func (speakerOutput) Play(s beep.Streamer)                          { speaker.Play(s) }
func (speakerOutput) Lock()                                         { speaker.Lock() }
func (speakerOutput) Unlock()                                       { speaker.Unlock() }
func (speakerOutput) Close()                                        { speaker.Close() }

// Sink accepts streamers for playback
type Sink interface {
	// Add queues s on the output, false when nothing will be heard
	Add(s beep.Streamer) bool
	SampleRate() beep.SampleRate
}

// AudioEngine is the shared output context: one mixer on one speaker
// Device init is lazy, the first Add opens it
type AudioEngine struct {
	mu  sync.Mutex
	cfg AudioConfig
	out Output

	mixer  *beep.Mixer
	volume *effects.Volume
	clock  *sampleClock

	initialized bool
	silent      bool
	closed      bool

	muted atomic.Bool
}

// NewAudioEngine creates an engine on the system speaker
func NewAudioEngine(cfg AudioConfig) *AudioEngine {
	return NewAudioEngineWithOutput(cfg, speakerOutput{})
}

// NewAudioEngineWithOutput creates an engine on a custom output
func NewAudioEngineWithOutput(cfg AudioConfig, out Output) *AudioEngine {
	cfg.Clamp()
	e := &AudioEngine{
		cfg:   cfg,
		out:   out,
		mixer: &beep.Mixer{},
	}
	e.volume = newVolume(e.mixer, cfg.MasterVolume)
	e.clock = &sampleClock{streamer: e.volume}
	e.muted.Store(cfg.Muted)
	e.volume.Silent = e.volume.Silent || cfg.Muted
	return e
}

// Init opens the device once
// Failure switches the engine to silent mode permanently and is reported once
func (e *AudioEngine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initLocked()
}

func (e *AudioEngine) initLocked() error {
	if e.closed {
		return errTornDown
	}
	if e.initialized {
		if e.silent {
			return ErrAudioUnavailable
		}
		return nil
	}
	e.initialized = true

	if !e.cfg.Enabled {
		e.silent = true
		log.Printf("audio: disabled by configuration, running silent")
		return ErrAudioUnavailable
	}

	sr := beep.SampleRate(e.cfg.SampleRate)
	if err := e.out.Init(sr, sr.N(constants.SpeakerBuffer)); err != nil {
		e.silent = true
		log.Printf("audio: speaker init failed, running silent: %v", err)
		return fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
	}

	e.out.Play(e.clock)
	log.Printf("audio: speaker ready at %d Hz", e.cfg.SampleRate)
	return nil
}

// Add queues s on the shared mixer
// False in silent mode, after Teardown, or while muted
func (e *AudioEngine) Add(s beep.Streamer) bool {
	if s == nil {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.initLocked(); err != nil {
		return false
	}
	if e.muted.Load() {
		return false
	}

	e.out.Lock()
	e.mixer.Add(s)
	e.out.Unlock()
	return true
}

// SampleRate implements Sink
func (e *AudioEngine) SampleRate() beep.SampleRate {
	return beep.SampleRate(e.cfg.SampleRate)
}

// Now returns the output position, advanced by the speaker as it pulls samples
func (e *AudioEngine) Now() time.Duration {
	return e.SampleRate().D(int(e.clock.pos.Load()))
}

// Available reports whether sound reaches a device
func (e *AudioEngine) Available() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized && !e.silent && !e.closed
}

// ToggleMute flips the master mute and returns the new state
func (e *AudioEngine) ToggleMute() bool {
	muted := !e.muted.Load()
	e.SetMuted(muted)
	return muted
}

// SetMuted silences the master stage, voices already playing are cut
func (e *AudioEngine) SetMuted(muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.muted.Store(muted)
	e.applyVolumeLocked()
}

// IsMuted returns the master mute state
func (e *AudioEngine) IsMuted() bool {
	return e.muted.Load()
}

// SetVolume sets the master volume 0.0-1.0, clamped
func (e *AudioEngine) SetVolume(vol float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cfg.MasterVolume = vol
	e.cfg.Clamp()
	e.applyVolumeLocked()
}

// Volume returns the master volume
func (e *AudioEngine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.MasterVolume
}

// applyVolumeLocked pushes volume and mute to the stage read by the speaker, caller holds mu
func (e *AudioEngine) applyVolumeLocked() {
	live := e.initialized && !e.silent && !e.closed
	if live {
		e.out.Lock()
		defer e.out.Unlock()
	}
	setLinearVolume(e.volume, e.cfg.MasterVolume)
	if e.muted.Load() {
		e.volume.Silent = true
	}
}

// Teardown clears the mixer and closes the device, idempotent
func (e *AudioEngine) Teardown() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true

	if e.initialized && !e.silent {
		e.out.Lock()
		e.mixer.Clear()
		e.out.Unlock()
		e.out.Close()
	}
}

// sampleClock counts samples pulled through the master stage
type sampleClock struct {
	streamer beep.Streamer
	pos      atomic.Int64
}

func (c *sampleClock) Stream(samples [][2]float64) (int, bool) {
	n, ok := c.streamer.Stream(samples)
	c.pos.Add(int64(n))
	return n, ok
}

func (c *sampleClock) Err() error { return c.streamer.Err() }
