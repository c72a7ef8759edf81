package engine

import (
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/vi-piano/core"
)

// Dispatcher accepts work for serial execution
type Dispatcher interface {
	// Post queues fn, returns false if the dispatcher no longer accepts work
	Post(fn func()) bool
}

// Loop is the single UI event loop
// Timer callbacks, input events and renders all run on its goroutine, one at a time
type Loop struct {
	tasks chan func()

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// afterTask runs on the loop goroutine after every task
	afterTask func()
}

// NewLoop creates a loop with the given queue capacity
func NewLoop(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Loop{
		tasks:    make(chan func(), queueSize),
		stopChan: make(chan struct{}),
	}
}

// SetAfterTask registers a hook run after each task, must be called before Start()
func (l *Loop) SetAfterTask(fn func()) {
	l.afterTask = fn
}

// Start launches the loop goroutine
func (l *Loop) Start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		core.Go(l.run)
	}
}

// Stop halts the loop, queued tasks are dropped
// Must not be called from the loop goroutine
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.running.Store(false)
		close(l.stopChan)
		l.wg.Wait()
	})
}

// Running reports whether the loop accepts work
func (l *Loop) Running() bool {
	return l.running.Load()
}

// Post implements Dispatcher
// Blocks while the queue is full, gives up once the loop stops
func (l *Loop) Post(fn func()) bool {
	if fn == nil || !l.running.Load() {
		return false
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.stopChan:
		return false
	}
}

// Call posts fn and waits for it to finish
// Must not be called from the loop goroutine
func (l *Loop) Call(fn func()) bool {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-l.stopChan:
		return false
	}
}

func (l *Loop) run() {
	defer l.wg.Done()

	for {
		select {
		case <-l.stopChan:
			return
		case fn := <-l.tasks:
			fn()
			if l.afterTask != nil {
				l.afterTask()
			}
		}
	}
}
