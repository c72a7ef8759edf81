package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-piano/constants"
)

// ClickRole is the metronome position a click marks
type ClickRole int

const (
	ClickBeat      ClickRole = iota // Counted beat "1" "2" ...
	ClickAnd                        // Off-beat "&"
	ClickSixteenth                  // "e" and "a"
)

// ClickTimbre describes one click
type ClickTimbre struct {
	Freq     float64
	Peak     float64
	Duration time.Duration
}

// TimbreFor returns the click for a role, rests use the softer lower variant
func TimbreFor(role ClickRole, rest bool) ClickTimbre {
	switch role {
	case ClickBeat:
		if rest {
			return ClickTimbre{constants.ClickBeatRestFreq, constants.ClickBeatRestPeak, constants.ClickBeatRestDur}
		}
		return ClickTimbre{constants.ClickBeatFreq, constants.ClickBeatPeak, constants.ClickBeatDuration}
	case ClickAnd:
		if rest {
			return ClickTimbre{constants.ClickAndRestFreq, constants.ClickAndRestPeak, constants.ClickAndRestDur}
		}
		return ClickTimbre{constants.ClickAndFreq, constants.ClickAndPeak, constants.ClickAndDuration}
	default:
		if rest {
			return ClickTimbre{constants.ClickSixRestFreq, constants.ClickSixRestPeak, constants.ClickSixRestDur}
		}
		return ClickTimbre{constants.ClickSixteenthFreq, constants.ClickSixteenthPeak, constants.ClickSixteenthDur}
	}
}

// clickEnvelope is a short linear attack followed by an exponential decay
type clickEnvelope struct {
	streamer beep.Streamer
	peak     float64
	attack   int
	decayEnd int
	total    int
	pos      int
}

const clickFloor = 0.0001

// NewClick builds a square-wave click, the oscillator runs a short tail past the decay
func NewClick(t ClickTimbre, rate beep.SampleRate) beep.Streamer {
	total := t.Duration + constants.ClickTail
	return &clickEnvelope{
		streamer: NewOscillator(t.Freq, total, WaveSquare, rate),
		peak:     t.Peak,
		attack:   rate.N(constants.ClickAttack),
		decayEnd: rate.N(t.Duration),
		total:    rate.N(total),
	}
}

func (e *clickEnvelope) gain() float64 {
	switch {
	case e.pos < e.attack:
		return clickFloor + (e.peak-clickFloor)*float64(e.pos)/float64(e.attack)
	case e.pos < e.decayEnd:
		t := float64(e.pos-e.attack) / float64(e.decayEnd-e.attack)
		return e.peak * math.Pow(clickFloor/e.peak, t)
	default:
		return clickFloor
	}
}

func (e *clickEnvelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *clickEnvelope) Err() error { return e.streamer.Err() }

// ClickPlayer plays metronome clicks on a shared sink
type ClickPlayer struct {
	sink Sink
}

// NewClickPlayer creates a player, nil sink plays nothing
func NewClickPlayer(sink Sink) *ClickPlayer {
	return &ClickPlayer{sink: sink}
}

// Play queues one click, false when nothing will be heard
func (p *ClickPlayer) Play(role ClickRole, rest bool) bool {
	if p == nil || p.sink == nil {
		return false
	}
	return p.sink.Add(NewClick(TimbreFor(role, rest), p.sink.SampleRate()))
}
