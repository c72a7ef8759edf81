package midiin

import (
	"errors"
	"fmt"
	"log"

	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/lixenwraith/vi-piano/engine"
)

// ErrNoDriver is returned by builds without cgo, rtmidi needs it
var ErrNoDriver = errors.New("midi: built without cgo, no MIDI driver")

// Service owns the MIDI driver for the process lifetime
type Service struct {
	enabled bool
	pattern string

	open    func() (drivers.Driver, error)
	drv     drivers.Driver
	watcher *Watcher
}

// NewService creates the MIDI service with the platform driver
func NewService() *Service {
	return &Service{open: newDriver}
}

// NewServiceWithDriver creates a service around an existing driver
func NewServiceWithDriver(drv drivers.Driver) *Service {
	return &Service{open: func() (drivers.Driver, error) { return drv, nil }}
}

// Name implements Service
func (s *Service) Name() string {
	return "midi"
}

// Dependencies implements Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: enabled bool, args[1]: port pattern string
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		enabled, ok := args[0].(bool)
		if !ok {
			return fmt.Errorf("midi: enabled flag must be bool, got %T", args[0])
		}
		s.enabled = enabled
	}
	if len(args) > 1 {
		pattern, ok := args[1].(string)
		if !ok {
			return fmt.Errorf("midi: port pattern must be string, got %T", args[1])
		}
		s.pattern = pattern
	}
	return nil
}

// Start implements Service, a missing driver only disables MIDI input
func (s *Service) Start() error {
	if !s.enabled {
		return nil
	}
	drv, err := s.open()
	if err != nil {
		log.Printf("midi: input unavailable: %v", err)
		return nil
	}
	s.drv = drv
	log.Printf("midi: driver %s ready", drv.String())
	return nil
}

// Stop implements Service
func (s *Service) Stop() error {
	if s.watcher != nil {
		s.watcher.Close()
		s.watcher = nil
	}
	if s.drv == nil {
		return nil
	}
	err := s.drv.Close()
	s.drv = nil
	return err
}

// Available reports whether a driver is open
func (s *Service) Available() bool {
	return s.drv != nil
}

// Watch starts forwarding notes, nil when MIDI is disabled or unavailable
// Must be called on the dispatcher goroutine
func (s *Service) Watch(d engine.Dispatcher, sched engine.Scheduler, sink NoteSink, events Events) *Watcher {
	if s.drv == nil {
		return nil
	}
	if s.watcher != nil {
		s.watcher.Close()
	}
	s.watcher = NewWatcher(s.drv, d, sched, sink, s.pattern, events)
	s.watcher.Start()
	return s.watcher
}
