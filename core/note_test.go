package core

import "testing"

// TestChromaticTable verifies every chromatic note has a frequency and consistent layout data
func TestChromaticTable(t *testing.T) {
	if len(Chromatic) != 12 {
		t.Fatalf("Expected 12 chromatic notes, got %d", len(Chromatic))
	}
	if len(WhiteKeys)+len(BlackKeys) != len(Chromatic) {
		t.Errorf("White and black keys should partition the octave")
	}

	prev := 0.0
	for i, n := range Chromatic {
		if !n.Valid() {
			t.Errorf("Note %q should be valid", n)
		}
		if n.Freq() <= prev {
			t.Errorf("Frequency of %s (%f) should be above previous %f", n, n.Freq(), prev)
		}
		prev = n.Freq()
		if n.Pitch() != i {
			t.Errorf("Pitch of %s = %d, want %d", n, n.Pitch(), i)
		}
	}

	for _, n := range BlackKeys {
		if !n.IsBlack() {
			t.Errorf("%s should be a black key", n)
		}
		if n.Flat() == "" {
			t.Errorf("%s should have a flat spelling", n)
		}
		if n.LeftWhite().IsBlack() || !n.LeftWhite().Valid() {
			t.Errorf("%s left neighbour %q should be a white key", n, n.LeftWhite())
		}
	}

	if NoteA.Freq() != 440.0 {
		t.Errorf("A should be tuned to 440Hz, got %f", NoteA.Freq())
	}
}

func TestParseNote(t *testing.T) {
	tests := []struct {
		in   string
		want Note
		ok   bool
	}{
		{"C", NoteC, true},
		{"c#", NoteCs, true},
		{"Db", NoteCs, true},
		{"bb", NoteAs, true},
		{" e ", NoteE, true},
		{"H", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNote(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseNote(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

// TestNoteFromMIDI verifies MIDI keys fold into the octave
func TestNoteFromMIDI(t *testing.T) {
	if n, ok := NoteFromMIDI(60); !ok || n != NoteC {
		t.Errorf("MIDI 60 should be C, got %q", n)
	}
	if n, ok := NoteFromMIDI(69); !ok || n != NoteA {
		t.Errorf("MIDI 69 should be A, got %q", n)
	}
	if n, ok := NoteFromMIDI(73); !ok || n != NoteCs {
		t.Errorf("MIDI 73 should be C#, got %q", n)
	}
	if _, ok := NoteFromMIDI(200); ok {
		t.Error("MIDI 200 should be rejected")
	}
}
