package core

// LessonID keys a lesson in the progress store
type LessonID string

const (
	Lesson1 LessonID = "lesson1"
	Lesson2 LessonID = "lesson2"
	Lesson3 LessonID = "lesson3"
)

// Outcome is the scoring result of one beat step
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeHit
	OutcomeMiss
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeHit:
		return "hit"
	case OutcomeMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// RunStatus is the derived state of a challenge attempt
type RunStatus int

const (
	StatusNotStarted RunStatus = iota
	StatusCountdown
	StatusInProgress
	StatusCompleted
)

func (s RunStatus) String() string {
	switch s {
	case StatusNotStarted:
		return "Not started"
	case StatusCountdown:
		return "Get ready"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// KeyPressFunc receives one notification per physical key press
type KeyPressFunc func(Note)
