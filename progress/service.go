package progress

import (
	"log"
)

// Service opens the progress store for the app
// The store is always usable: an unavailable file falls back to memory
type Service struct {
	path  string
	store Store
}

// NewService creates a progress service
func NewService() *Service {
	return &Service{}
}

// Name implements Service
func (s *Service) Name() string {
	return "progress"
}

// Dependencies implements Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: string - progress file path, empty selects the default location
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if path, ok := args[0].(string); ok {
			s.path = path
		}
	}
	if s.path == "" {
		path, err := DefaultPath()
		if err != nil {
			log.Printf("progress: %v, keeping progress in memory", err)
		}
		s.path = path
	}
	return nil
}

// Start implements Service
func (s *Service) Start() error {
	fs, err := OpenFile(s.path)
	if err != nil {
		log.Printf("progress: %v, keeping progress in memory", err)
		s.store = NewMemoryStore()
		return nil
	}
	s.store = fs
	return nil
}

// Stop implements Service, every change is already on disk
func (s *Service) Stop() error {
	return nil
}

// Store returns the opened store, a memory store before Start
func (s *Service) Store() Store {
	if s.store == nil {
		s.store = NewMemoryStore()
	}
	return s.store
}
