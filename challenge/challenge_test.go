package challenge

import (
	"time"

	"github.com/lixenwraith/vi-piano/core"
	"github.com/lixenwraith/vi-piano/progress"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// countingStore records Set calls on top of a memory store
type countingStore struct {
	*progress.MemoryStore
	sets int
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: progress.NewMemoryStore()}
}

func (s *countingStore) Set(id core.LessonID, completed bool) {
	s.sets++
	s.MemoryStore.Set(id, completed)
}

// scriptedPicker returns indices of the given notes in order, then repeats the last
func scriptedPicker(notes []core.Note, script ...core.Note) Picker {
	i := 0
	return func(n int) int {
		want := script[len(script)-1]
		if i < len(script) {
			want = script[i]
			i++
		}
		for idx, note := range notes {
			if note == want {
				return idx
			}
		}
		return 0
	}
}
