package audio

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/lixenwraith/vi-piano/constants"
	"github.com/lixenwraith/vi-piano/core"
)

// VoiceManager keeps at most one sounding voice per note
// A nil entry in voices is a silent press: tracked and scored, nothing on the mixer
type VoiceManager struct {
	mu      sync.Mutex
	sink    Sink
	voices  map[core.Note]*Voice
	pressed map[core.Note]bool

	onKeyPress core.KeyPressFunc
}

// NewVoiceManager creates a manager playing through sink, nil sink is silent
func NewVoiceManager(sink Sink) *VoiceManager {
	return &VoiceManager{
		sink:    sink,
		voices:  make(map[core.Note]*Voice),
		pressed: make(map[core.Note]bool),
	}
}

// SetKeyPressListener registers the scoring collaborator, nil clears it
func (m *VoiceManager) SetKeyPressListener(fn core.KeyPressFunc) {
	m.mu.Lock()
	m.onKeyPress = fn
	m.mu.Unlock()
}

// Play starts a voice for note and notifies the listener
// No-op returning false while a voice for note already exists
func (m *VoiceManager) Play(note core.Note) bool {
	if !note.Valid() {
		return false
	}

	m.mu.Lock()
	if _, exists := m.voices[note]; exists {
		m.mu.Unlock()
		return false
	}

	var v *Voice
	if m.sink != nil {
		candidate := newVoice(note, m.sink.SampleRate())
		if m.sink.Add(candidate) {
			v = candidate
		}
	}
	m.voices[note] = v
	m.pressed[note] = true
	listener := m.onKeyPress
	m.mu.Unlock()

	m.notify(listener, note)
	return true
}

// notify runs the listener outside the lock, a panicking listener is logged and swallowed
func (m *VoiceManager) notify(listener core.KeyPressFunc, note core.Note) {
	if listener == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("audio: key press listener panicked on %s: %v", note, r)
		}
	}()
	listener(note)
}

// Stop releases the voice for note over the given fade
// Without a voice only the pressed flag is cleared
func (m *VoiceManager) Stop(note core.Note, release time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.pressed, note)
	v, exists := m.voices[note]
	if !exists {
		return
	}
	delete(m.voices, note)
	m.release(v, release)
}

// StopAll releases every voice with the short interrupt fade
func (m *VoiceManager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for note, v := range m.voices {
		m.release(v, constants.InterruptRelease)
		delete(m.voices, note)
	}
	clear(m.pressed)
}

// release hands the fading tail to the mixer, caller holds mu
func (m *VoiceManager) release(v *Voice, d time.Duration) {
	if v == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("audio: voice release failed: %v", r)
		}
	}()
	v.Release(d)
}

// Active reports whether a voice exists for note
func (m *VoiceManager) Active(note core.Note) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.voices[note]
	return exists
}

// ActiveCount returns the number of live voices, silent presses included
func (m *VoiceManager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// IsPressed reports the pressed flag for note
func (m *VoiceManager) IsPressed(note core.Note) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pressed[note]
}

// Pressed returns pressed notes in pitch order
func (m *VoiceManager) Pressed() []core.Note {
	m.mu.Lock()
	notes := make([]core.Note, 0, len(m.pressed))
	for n := range m.pressed {
		notes = append(notes, n)
	}
	m.mu.Unlock()

	sort.Slice(notes, func(i, j int) bool { return notes[i].Pitch() < notes[j].Pitch() })
	return notes
}
