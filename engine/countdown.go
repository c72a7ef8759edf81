package engine

import "time"

// Countdown is a one-shot N..1 pre-roll followed by a trailing pause
// Independent of BeatClock, its completion hands over to the first beat
type Countdown struct {
	sched    Scheduler
	from     int
	step     time.Duration
	trailing time.Duration

	onCount func(n int) // n counts down to 1, then 0 when the display clears
	onDone  func()

	gen       uint64
	timer     Timer
	remaining int
	running   bool
}

// NewCountdown creates an idle countdown
func NewCountdown(sched Scheduler, from int, step, trailing time.Duration, onCount func(int), onDone func()) *Countdown {
	if from < 1 {
		from = 1
	}
	return &Countdown{
		sched:    sched,
		from:     from,
		step:     step,
		trailing: trailing,
		onCount:  onCount,
		onDone:   onDone,
	}
}

// Start shows the first number, false if already counting
func (c *Countdown) Start() bool {
	if c.running {
		return false
	}
	c.gen++
	c.running = true
	c.remaining = c.from
	c.count(c.remaining)
	c.arm(c.gen, c.step, c.tick)
	return true
}

// Stop cancels the countdown without calling onDone, idempotent
func (c *Countdown) Stop() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.running = false
	c.remaining = 0
}

// Running reports whether the countdown is in progress
func (c *Countdown) Running() bool {
	return c.running
}

// Remaining returns the displayed number, 0 when hidden
func (c *Countdown) Remaining() int {
	return c.remaining
}

func (c *Countdown) arm(gen uint64, d time.Duration, next func()) {
	c.timer = c.sched.AfterFunc(d, func() {
		if gen != c.gen || !c.running {
			return
		}
		next()
	})
}

func (c *Countdown) tick() {
	c.remaining--
	c.count(c.remaining)
	if c.remaining >= 1 {
		c.arm(c.gen, c.step, c.tick)
		return
	}
	c.arm(c.gen, c.trailing, c.finish)
}

func (c *Countdown) finish() {
	c.timer = nil
	c.running = false
	if c.onDone != nil {
		c.onDone()
	}
}

func (c *Countdown) count(n int) {
	if c.onCount != nil {
		c.onCount(n)
	}
}
