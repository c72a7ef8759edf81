package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects the oscillator shape
type WaveType int

const (
	WaveSine   WaveType = iota // Piano voices
	WaveSquare                 // Metronome clicks
)

// oscillator is a phase accumulator producing one shape in both channels
type oscillator struct {
	step   float64 // Phase advance per sample, cycles
	phase  float64
	remain int // Samples left, -1 runs until the owner drops it
	shape  func(phase float64) float64
}

// NewOscillator creates an oscillator, a zero duration never drains
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	remain := -1
	if duration > 0 {
		remain = rate.N(duration)
	}
	shape := sine
	if wave == WaveSquare {
		shape = square
	}
	return &oscillator{
		step:   freq / float64(rate),
		remain: remain,
		shape:  shape,
	}
}

func sine(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

func square(phase float64) float64 {
	if phase < 0.5 {
		return 1
	}
	return -1
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for n = range samples {
		if o.remain == 0 {
			return n, n > 0
		}
		val := o.shape(o.phase)
		samples[n] = [2]float64{val, val}

		_, o.phase = math.Modf(o.phase + o.step)
		if o.remain > 0 {
			o.remain--
		}
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// newVolume wraps s in a linear-gain volume stage
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setLinearVolume(v, vol)
	return v
}

// setLinearVolume maps 0.0-1.0 onto the base 2 exponent, 0 is silent since log2(0) is -Inf
func setLinearVolume(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(vol)
	v.Silent = false
}
