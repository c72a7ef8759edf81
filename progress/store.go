// Package progress persists per-lesson completion flags
package progress

import (
	"maps"
	"sync"

	"github.com/lixenwraith/vi-piano/core"
)

// Store is a flat lesson -> completed map
// Implementations never fail the caller: degraded storage behaves as empty
type Store interface {
	Get(id core.LessonID) bool
	Set(id core.LessonID, completed bool)
	Clear(id core.LessonID)
	All() map[core.LessonID]bool
}

// MemoryStore keeps progress for the process lifetime only
type MemoryStore struct {
	mu    sync.RWMutex
	flags map[core.LessonID]bool
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{flags: make(map[core.LessonID]bool)}
}

// Get implements Store
func (s *MemoryStore) Get(id core.LessonID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags[id]
}

// Set implements Store, false is the same as Clear
func (s *MemoryStore) Set(id core.LessonID, completed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if completed {
		s.flags[id] = true
	} else {
		delete(s.flags, id)
	}
}

// Clear implements Store
func (s *MemoryStore) Clear(id core.LessonID) {
	s.Set(id, false)
}

// All implements Store, returns a copy
func (s *MemoryStore) All() map[core.LessonID]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.flags)
}
