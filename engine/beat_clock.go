package engine

import (
	"errors"
	"time"
)

// ClockState is the BeatClock lifecycle phase
type ClockState int

const (
	ClockIdle ClockState = iota
	ClockRunning
	ClockCompleted // Terminal for one-shot clocks until Reset
)

func (s ClockState) String() string {
	switch s {
	case ClockIdle:
		return "Idle"
	case ClockRunning:
		return "Running"
	case ClockCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

var (
	ErrInvalidClock   = errors.New("beat clock needs at least one step and a positive interval")
	ErrClockCompleted = errors.New("beat clock completed, reset before starting again")
)

// ClockConfig parameterizes one run of a BeatClock
type ClockConfig struct {
	Steps    int
	Interval time.Duration

	// Offset delays step 0, one-shot challenge clocks tick step 0 immediately
	Offset time.Duration

	// Loop wraps the cursor forever instead of completing after the last step
	Loop bool
}

// TickFunc receives the step index and whether it is the last step of the sequence
type TickFunc func(step int, last bool)

// BeatClock is a fixed-tempo step scheduler
// Not safe for concurrent use: drive it and its scheduler from one dispatcher
type BeatClock struct {
	sched      Scheduler
	cfg        ClockConfig
	onTick     TickFunc
	onComplete func()

	state ClockState
	gen   uint64 // Live run token, bumped by every Start/Stop
	timer Timer

	startedAt time.Time
	fired     int // Ticks delivered in the current run
	step      int // Last delivered step, -1 before the first tick
}

// NewBeatClock creates an idle clock
func NewBeatClock(sched Scheduler, cfg ClockConfig, onTick TickFunc, onComplete func()) *BeatClock {
	return &BeatClock{
		sched:      sched,
		cfg:        cfg,
		onTick:     onTick,
		onComplete: onComplete,
		step:       -1,
	}
}

// Start begins ticking from step 0
// No-op while running; one-shot clocks must be Reset after completing
func (c *BeatClock) Start() error {
	switch c.state {
	case ClockRunning:
		return nil
	case ClockCompleted:
		return ErrClockCompleted
	}
	if c.cfg.Steps <= 0 || c.cfg.Interval <= 0 {
		return ErrInvalidClock
	}

	c.gen++
	c.state = ClockRunning
	c.startedAt = c.sched.Now()
	c.fired = 0
	c.step = -1
	c.schedule(c.gen)
	return nil
}

// Stop cancels the pending tick, idempotent
// No callback from the stopped run fires after Stop returns
func (c *BeatClock) Stop() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.state == ClockRunning {
		c.state = ClockIdle
	}
}

// Reset stops the clock and rewinds the cursor without firing callbacks
func (c *BeatClock) Reset() {
	c.Stop()
	c.state = ClockIdle
	c.fired = 0
	c.step = -1
}

// Rearm stops, applies a new configuration and starts again
func (c *BeatClock) Rearm(cfg ClockConfig) error {
	c.Reset()
	c.cfg = cfg
	return c.Start()
}

// State returns the lifecycle phase
func (c *BeatClock) State() ClockState {
	return c.state
}

// Step returns the most recently ticked step, -1 before the first tick
func (c *BeatClock) Step() int {
	return c.step
}

// Config returns the active configuration
func (c *BeatClock) Config() ClockConfig {
	return c.cfg
}

// schedule arms the timer for the next deadline
// Deadlines are absolute from the run start so callback latency does not accumulate
func (c *BeatClock) schedule(gen uint64) {
	deadline := c.startedAt.Add(c.cfg.Offset + time.Duration(c.fired)*c.cfg.Interval)
	delay := deadline.Sub(c.sched.Now())
	if delay < 0 {
		delay = 0
	}
	c.timer = c.sched.AfterFunc(delay, func() { c.fire(gen) })
}

func (c *BeatClock) fire(gen uint64) {
	// Stale callback from a stopped or re-armed run
	if gen != c.gen || c.state != ClockRunning {
		return
	}
	c.timer = nil

	if !c.cfg.Loop && c.fired >= c.cfg.Steps {
		c.state = ClockCompleted
		if c.onComplete != nil {
			c.onComplete()
		}
		return
	}

	step := c.fired % c.cfg.Steps
	c.fired++
	c.step = step
	if c.onTick != nil {
		c.onTick(step, step == c.cfg.Steps-1)
	}

	// The tick handler may have stopped or re-armed the clock
	if gen == c.gen && c.state == ClockRunning {
		c.schedule(gen)
	}
}
