package progress

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/vi-piano/core"
)

// ErrNoPath is returned when no progress file location can be determined
var ErrNoPath = errors.New("no progress file path")

// FileName is the progress file under the user config directory
const FileName = "progress.yaml"

// DefaultPath returns the progress file location under the user config directory
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoPath, err)
	}
	return filepath.Join(configDir, "vi-piano", FileName), nil
}

// FileStore is a MemoryStore mirrored to a YAML file
// The file is read once at open and rewritten on every change
type FileStore struct {
	mem  *MemoryStore
	path string

	writeMu sync.Mutex
}

// OpenFile loads path into a new store
// A missing or corrupt file yields an empty store, only an empty path is an error
func OpenFile(path string) (*FileStore, error) {
	if path == "" {
		return nil, ErrNoPath
	}

	s := &FileStore{mem: NewMemoryStore(), path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		log.Printf("progress: read %s failed, starting empty: %v", path, err)
		return s, nil
	}

	var flags map[core.LessonID]bool
	if err := yaml.Unmarshal(data, &flags); err != nil {
		log.Printf("progress: %s is corrupt, starting empty: %v", path, err)
		return s, nil
	}
	for id, done := range flags {
		s.mem.Set(id, done)
	}
	return s, nil
}

// Path returns the backing file
func (s *FileStore) Path() string {
	return s.path
}

// Get implements Store
func (s *FileStore) Get(id core.LessonID) bool {
	return s.mem.Get(id)
}

// Set implements Store
func (s *FileStore) Set(id core.LessonID, completed bool) {
	s.mem.Set(id, completed)
	s.persist()
}

// Clear implements Store
func (s *FileStore) Clear(id core.LessonID) {
	s.mem.Clear(id)
	s.persist()
}

// All implements Store
func (s *FileStore) All() map[core.LessonID]bool {
	return s.mem.All()
}

// persist writes the whole map, failures are logged and swallowed
func (s *FileStore) persist() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.write(s.mem.All()); err != nil {
		log.Printf("progress: write failed: %v", err)
	}
}

// write replaces the file atomically via a temp file in the same directory
func (s *FileStore) write(flags map[core.LessonID]bool) error {
	data, err := yaml.Marshal(flags)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".progress-*.yaml")
	if err != nil {
		return fmt.Errorf("temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename to %s: %w", s.path, err)
	}
	return nil
}
