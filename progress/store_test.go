package progress

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/vi-piano/core"
)

// TestMemoryStore verifies set, clear and copy semantics
func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	if s.Get(core.Lesson1) {
		t.Error("Fresh store should be empty")
	}

	s.Set(core.Lesson1, true)
	s.Set(core.Lesson2, true)
	s.Clear(core.Lesson2)

	all := s.All()
	if !all[core.Lesson1] || all[core.Lesson2] || len(all) != 1 {
		t.Errorf("Unexpected flags: %v", all)
	}

	all[core.Lesson3] = true
	if s.Get(core.Lesson3) {
		t.Error("All must return a copy")
	}
}

// TestFileStoreRoundTrip verifies flags survive reopening and are stored as a flat mapping
func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "progress.yaml")

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if len(s.All()) != 0 {
		t.Error("Missing file should open empty")
	}

	s.Set(core.Lesson2, true)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Progress file not written: %v", err)
	}
	if !strings.Contains(string(data), "lesson2: true") {
		t.Errorf("Expected flat mapping, got %q", data)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	if !reopened.Get(core.Lesson2) {
		t.Error("Flag lost across reopen")
	}

	reopened.Clear(core.Lesson2)
	again, _ := OpenFile(path)
	if again.Get(core.Lesson2) {
		t.Error("Clear not persisted")
	}

	// No temp files left behind
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("Expected only the progress file, found %d entries", len(entries))
	}
}

// TestFileStoreCorrupt verifies an unreadable file degrades to empty progress
func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.yaml")
	if err := os.WriteFile(path, []byte("{{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("Corrupt file should not fail open: %v", err)
	}
	if len(s.All()) != 0 {
		t.Error("Corrupt file should yield empty progress")
	}

	// Next write repairs the file
	s.Set(core.Lesson1, true)
	again, _ := OpenFile(path)
	if !again.Get(core.Lesson1) {
		t.Error("Write after corrupt read not persisted")
	}
}

// TestFileStoreEmptyPath verifies the sentinel for a missing location
func TestFileStoreEmptyPath(t *testing.T) {
	if _, err := OpenFile(""); !errors.Is(err, ErrNoPath) {
		t.Errorf("Expected ErrNoPath, got %v", err)
	}
}

// TestFileStoreWriteFailure verifies write errors are swallowed and memory stays authoritative
func TestFileStoreWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	// Parent is a regular file, every write fails
	s, err := OpenFile(filepath.Join(blocker, "progress.yaml"))
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Write failure panicked: %v", r)
		}
	}()
	s.Set(core.Lesson3, true)

	if !s.Get(core.Lesson3) {
		t.Error("In-memory flag lost after failed write")
	}
}

// TestServiceFallback verifies the service always yields a usable store
func TestServiceFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	svc := NewService()
	if err := svc.Init(path); err != nil {
		t.Fatal(err)
	}
	if err := svc.Start(); err != nil {
		t.Fatal(err)
	}
	svc.Store().Set(core.Lesson1, true)

	if fs, ok := svc.Store().(*FileStore); !ok || fs.Path() != path {
		t.Errorf("Expected file store at %s, got %T", path, svc.Store())
	}

	if NewService().Store() == nil {
		t.Error("Store before Start must not be nil")
	}
}
