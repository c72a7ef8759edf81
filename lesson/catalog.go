// Package lesson holds the lesson catalog and the per-lesson view state
package lesson

import "github.com/lixenwraith/vi-piano/core"

// Info describes a lesson for the menu and the lesson header
type Info struct {
	ID      core.LessonID
	Number  int
	Title   string // Menu card title
	Summary string // Menu card description
	Heading string // Lesson page heading
	Intro   string

	DemoTitle string
	DemoText  []string

	ChallengeTitle string
	ChallengeText  string
}

// Catalog lists the lessons in menu order
var Catalog = []Info{
	{
		ID:        core.Lesson1,
		Number:    1,
		Title:     "Introduction: Finding & Playing Piano Keys",
		Summary:   "Learn the layout of the piano (white & black keys), hear notes and follow a demo.",
		Heading:   "Lesson 1 — Introduction: Finding & Playing Piano Keys",
		Intro:     "Learn the layout of all piano keys (white and black) and play the notes from C to B.",
		DemoTitle: "Piano Key Overview",
		DemoText: []string{
			"All piano keys (white and black) will be highlighted in sequence. Press any key to hear it.",
		},
		ChallengeTitle: "Find the Keys (random order)",
		ChallengeText:  "Press the requested key (white or black). Get 12 correct in a row to finish.",
	},
	{
		ID:        core.Lesson2,
		Number:    2,
		Title:     "Understanding Black Keys (Sharps ♯ & Flats ♭)",
		Summary:   "Why black keys exist, sharp/flat names, then practice a timed melody using black keys.",
		Heading:   "Lesson 2 — Understanding Black Keys (Sharps ♯ & Flats ♭)",
		Intro:     "Learn why black keys exist and how sharps and flats are named, then play a timed melody.",
		DemoTitle: "Why Black Keys?",
		DemoText: []string{
			"Black keys are sharps or flats, the demo highlights the sharps (labels show both names).",
			"C♯ = one semitone above C.  D♭ = one semitone below D.",
			"Same key, different name depending on musical context: C♯ and D♭ are the same piano key.",
		},
		ChallengeTitle: "Play: Mary Had a Little Lamb (timed)",
		ChallengeText:  "Follow the highlighted note each beat and press it. Keep rhythm, labels are hidden.",
	},
	{
		ID:        core.Lesson3,
		Number:    3,
		Title:     "Rhythm & Timing Basics",
		Summary:   "Learn to read basic rhythms, understand note values, and practice with a metronome.",
		Heading:   "Lesson 3 — Rhythm Notation: Note & Rest Durations",
		Intro:     "Learn how long different notes and rests last. The beat scale highlights each duration.",
		DemoTitle: "Rhythm Values",
		DemoText: []string{
			"The example cycles through notes first, then rests. Watch the moving beat indicator and the highlighted duration.",
		},
	},
}

// Lookup finds a lesson by id
func Lookup(id core.LessonID) (Info, bool) {
	for _, info := range Catalog {
		if info.ID == id {
			return info, true
		}
	}
	return Info{}, false
}
