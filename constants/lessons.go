package constants

import "time"

// Timed sequence challenge
const (
	// BeatInterval is one beat window, about 100 BPM
	BeatInterval = 600 * time.Millisecond

	CountdownFrom     = 3
	CountdownStep     = time.Second
	CountdownTrailing = 220 * time.Millisecond
)

// Random target challenge
const (
	StreakGoal = 12

	// CorrectFeedbackDelay keeps the "correct" message visible before the next target
	CorrectFeedbackDelay = 450 * time.Millisecond
)

// ClearedMessageDuration is how long "Saved progress cleared." stays visible
const ClearedMessageDuration = 1400 * time.Millisecond

// Demo cyclers
const (
	KeyDemoInterval   = 700 * time.Millisecond
	BlackDemoInterval = 900 * time.Millisecond

	RhythmBeatInterval  = 900 * time.Millisecond
	RhythmMinSubdivTick = 60 * time.Millisecond
	RhythmBarBeats      = 4
)
