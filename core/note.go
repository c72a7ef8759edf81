package core

import "strings"

// Note identifies one of the twelve chromatic pitch classes on the keyboard octave
type Note string

const (
	NoteC  Note = "C"
	NoteCs Note = "C#"
	NoteD  Note = "D"
	NoteDs Note = "D#"
	NoteE  Note = "E"
	NoteF  Note = "F"
	NoteFs Note = "F#"
	NoteG  Note = "G"
	NoteGs Note = "G#"
	NoteA  Note = "A"
	NoteAs Note = "A#"
	NoteB  Note = "B"
)

// Chromatic lists all twelve notes in pitch order starting at C
var Chromatic = []Note{NoteC, NoteCs, NoteD, NoteDs, NoteE, NoteF, NoteFs, NoteG, NoteGs, NoteA, NoteAs, NoteB}

// WhiteKeys lists the natural notes in keyboard order
var WhiteKeys = []Note{NoteC, NoteD, NoteE, NoteF, NoteG, NoteA, NoteB}

// BlackKeys lists the accidentals in keyboard order
var BlackKeys = []Note{NoteCs, NoteDs, NoteFs, NoteGs, NoteAs}

type noteInfo struct {
	freq      float64
	black     bool
	flat      string
	leftWhite Note // white key to the left of a black key
	pitch     int  // semitones above C
}

// Fourth octave, A4 = 440Hz
var noteTable = map[Note]noteInfo{
	NoteC:  {freq: 261.63, pitch: 0},
	NoteCs: {freq: 277.18, black: true, flat: "Db", leftWhite: NoteC, pitch: 1},
	NoteD:  {freq: 293.66, pitch: 2},
	NoteDs: {freq: 311.13, black: true, flat: "Eb", leftWhite: NoteD, pitch: 3},
	NoteE:  {freq: 329.63, pitch: 4},
	NoteF:  {freq: 349.23, pitch: 5},
	NoteFs: {freq: 369.99, black: true, flat: "Gb", leftWhite: NoteF, pitch: 6},
	NoteG:  {freq: 392.00, pitch: 7},
	NoteGs: {freq: 415.30, black: true, flat: "Ab", leftWhite: NoteG, pitch: 8},
	NoteA:  {freq: 440.00, pitch: 9},
	NoteAs: {freq: 466.16, black: true, flat: "Bb", leftWhite: NoteA, pitch: 10},
	NoteB:  {freq: 493.88, pitch: 11},
}

// Valid reports whether n is one of the twelve chromatic names
func (n Note) Valid() bool {
	_, ok := noteTable[n]
	return ok
}

// Freq returns the frequency in Hz, 0 for unknown notes
func (n Note) Freq() float64 {
	return noteTable[n].freq
}

// IsBlack reports whether the note is an accidental (black key)
func (n Note) IsBlack() bool {
	return noteTable[n].black
}

// Flat returns the flat spelling of a black key, empty for white keys
func (n Note) Flat() string {
	return noteTable[n].flat
}

// LeftWhite returns the white key a black key sits to the right of
func (n Note) LeftWhite() Note {
	return noteTable[n].leftWhite
}

// Pitch returns semitones above C, -1 for unknown notes
func (n Note) Pitch() int {
	info, ok := noteTable[n]
	if !ok {
		return -1
	}
	return info.pitch
}

func (n Note) String() string {
	return string(n)
}

// NoteFromMIDI folds a MIDI key number into the keyboard octave
func NoteFromMIDI(key int) (Note, bool) {
	if key < 0 || key > 127 {
		return "", false
	}
	return Chromatic[key%12], true
}

// ParseNote accepts sharp or flat spellings, case-insensitive on the letter
func ParseNote(s string) (Note, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	s = strings.ToUpper(s[:1]) + s[1:]
	if n := Note(s); n.Valid() {
		return n, true
	}
	for n, info := range noteTable {
		if info.flat != "" && info.flat == s {
			return n, true
		}
	}
	return "", false
}
