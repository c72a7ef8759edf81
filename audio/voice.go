package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-piano/constants"
	"github.com/lixenwraith/vi-piano/core"
)

// gainRamp is one linear gain segment in voice-local samples
type gainRamp struct {
	from, to   float64
	start, end int
}

func (r gainRamp) at(pos int) float64 {
	if pos >= r.end || r.end <= r.start {
		return r.to
	}
	if pos <= r.start {
		return r.from
	}
	t := float64(pos-r.start) / float64(r.end-r.start)
	return r.from + (r.to-r.from)*t
}

// Voice is one sounding note: a sine oscillator under a gain envelope
// Streamed by the speaker goroutine, automated from the UI goroutine
type Voice struct {
	mu   sync.Mutex
	note core.Note
	osc  beep.Streamer
	rate beep.SampleRate

	pos    int // Samples rendered so far
	ramp   gainRamp
	stopAt int // Sample position the oscillator stops at, -1 while held
	done   bool
}

// newVoice creates a voice ramping from the floor to peak over the attack
func newVoice(note core.Note, rate beep.SampleRate) *Voice {
	return &Voice{
		note: note,
		osc:  NewOscillator(note.Freq(), 0, WaveSine, rate),
		rate: rate,
		ramp: gainRamp{
			from:  constants.VoiceFloorGain,
			to:    constants.VoicePeakGain,
			start: 0,
			end:   rate.N(constants.VoiceAttack),
		},
		stopAt: -1,
	}
}

// Note returns the voice pitch
func (v *Voice) Note() core.Note {
	return v.note
}

// Release cancels pending automation and fades from the current gain to the floor over d
// The oscillator stops when the fade ends
func (v *Voice) Release(d time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.done {
		return
	}
	n := v.rate.N(d)
	current := v.ramp.at(v.pos)
	v.ramp = gainRamp{from: current, to: constants.VoiceFloorGain, start: v.pos, end: v.pos + n}
	v.stopAt = v.pos + n
}

// Gain returns the envelope level at the current position
func (v *Voice) Gain() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ramp.at(v.pos)
}

// Releasing reports whether a stop is scheduled
func (v *Voice) Releasing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stopAt >= 0
}

// Done reports whether the oscillator has stopped
func (v *Voice) Done() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.done
}

// Stream implements beep.Streamer
func (v *Voice) Stream(samples [][2]float64) (n int, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.done {
		return 0, false
	}

	if v.stopAt >= 0 {
		if left := v.stopAt - v.pos; left < len(samples) {
			samples = samples[:left]
		}
	}
	if len(samples) == 0 {
		v.done = true
		return 0, false
	}

	n, _ = v.osc.Stream(samples)
	for i := 0; i < n; i++ {
		g := v.ramp.at(v.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		v.pos++
	}

	if v.stopAt >= 0 && v.pos >= v.stopAt {
		v.done = true
	}
	return n, true
}

// Err implements beep.Streamer
func (v *Voice) Err() error { return nil }
