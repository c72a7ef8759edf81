package audio

import (
	"errors"
	"log"
	"sync/atomic"
)

// AudioService wraps AudioEngine as a Service
// Handles graceful degradation when no audio backend is available
type AudioService struct {
	cfg         AudioConfig
	audioEngine *AudioEngine
	disabled    atomic.Bool
}

// NewService creates an audio service with the given output settings
func NewService(cfg AudioConfig) *AudioService {
	return &AudioService{cfg: cfg}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: bool - initial mute state, overrides the config
func (s *AudioService) Init(args ...any) error {
	if len(args) > 0 {
		if muted, ok := args[0].(bool); ok {
			s.cfg.Muted = muted
		}
	}
	s.audioEngine = NewAudioEngine(s.cfg)
	return nil
}

// Start implements Service
// Opens the device eagerly so the first key press does not pay for it
// Failure sets disabled, the engine keeps running silent
func (s *AudioService) Start() error {
	if s.audioEngine == nil {
		s.disabled.Store(true)
		return nil
	}
	if err := s.audioEngine.Init(); err != nil {
		if !errors.Is(err, ErrAudioUnavailable) {
			log.Printf("audio: %v", err)
		}
		s.disabled.Store(true)
	}
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.audioEngine != nil {
		s.audioEngine.Teardown()
	}
	return nil
}

// IsDisabled returns true if audio is unavailable
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// Engine returns the shared engine, silent but usable when disabled
func (s *AudioService) Engine() *AudioEngine {
	return s.audioEngine
}
