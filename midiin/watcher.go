// Package midiin forwards notes from a hardware MIDI input to the dispatcher
package midiin

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/lixenwraith/vi-piano/constants"
	"github.com/lixenwraith/vi-piano/engine"
)

// NoteSink receives decoded notes on the dispatcher goroutine
type NoteSink interface {
	NoteOn(key int)
	NoteOff(key int)
}

// Events report connection changes on the dispatcher goroutine
type Events struct {
	OnConnect func(port string)
	OnLost    func(port string)
}

// Watcher keeps one input port open, reconnecting after unplug
// Scans run on the scheduler, listener callbacks arrive on driver goroutines
type Watcher struct {
	drv        drivers.Driver
	dispatcher engine.Dispatcher
	sched      engine.Scheduler
	sink       NoteSink
	pattern    string
	events     Events

	mu     sync.Mutex
	in     drivers.In
	stop   func()
	port   string
	gen    uint64 // Connection generation, stale listener errors are ignored
	timer  engine.Timer
	closed bool
	warned bool // Several ports and no pattern, logged once
}

// NewWatcher creates an idle watcher, pattern matches port names case-insensitively
func NewWatcher(drv drivers.Driver, d engine.Dispatcher, sched engine.Scheduler, sink NoteSink, pattern string, events Events) *Watcher {
	return &Watcher{
		drv:        drv,
		dispatcher: d,
		sched:      sched,
		sink:       sink,
		pattern:    pattern,
		events:     events,
	}
}

// Start scans immediately, then every rescan interval
func (w *Watcher) Start() {
	w.scan()
}

// Port returns the connected port name, empty when disconnected
func (w *Watcher) Port() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.port
}

// Close stops scanning and closes the port, idempotent
func (w *Watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.closeLocked()
}

func (w *Watcher) scan() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.timer = w.sched.AfterFunc(constants.MIDIRescanInterval, w.scan)

	names := w.inputs()
	var connected, lost string
	if w.port != "" {
		if !slices.Contains(names, w.port) {
			lost = w.port
			log.Printf("midi: device disappeared: %s", lost)
			w.closeLocked()
		}
	} else if name, ok := w.pick(names); ok {
		if err := w.openLocked(name); err != nil {
			log.Printf("midi: connect failed: %v", err)
		} else {
			connected = name
		}
	}
	w.mu.Unlock()

	if lost != "" && w.events.OnLost != nil {
		w.events.OnLost(lost)
	}
	if connected != "" && w.events.OnConnect != nil {
		w.events.OnConnect(connected)
	}
}

func (w *Watcher) inputs() []string {
	ins, err := w.drv.Ins()
	if err != nil {
		log.Printf("midi: list inputs failed: %v", err)
		return nil
	}
	var names []string
	for _, in := range ins {
		name := in.String()
		if matchesAny(name, constants.MIDIExcludedPorts) {
			continue
		}
		names = append(names, name)
	}
	return names
}

// pick prefers a pattern match, otherwise the only port
func (w *Watcher) pick(names []string) (string, bool) {
	if w.pattern != "" {
		for _, name := range names {
			if containsCI(name, w.pattern) {
				return name, true
			}
		}
		return "", false
	}
	if len(names) == 1 {
		return names[0], true
	}
	if len(names) > 1 && !w.warned {
		w.warned = true
		log.Printf("midi: %d inputs found, set a port pattern to pick one: %s", len(names), strings.Join(names, ", "))
	}
	return "", false
}

func (w *Watcher) openLocked(name string) error {
	ins, err := w.drv.Ins()
	if err != nil {
		return err
	}
	var found drivers.In
	for _, in := range ins {
		if in.String() == name {
			found = in
			break
		}
	}
	if found == nil {
		return fmt.Errorf("input %q not found", name)
	}
	if err := found.Open(); err != nil {
		return fmt.Errorf("open %q: %w", name, err)
	}

	w.gen++
	gen := w.gen
	stop, err := midi.ListenTo(found, w.handle, midi.HandleError(func(listenErr error) {
		log.Printf("midi: listener error on %s: %v", name, listenErr)
		w.dispatcher.Post(func() { w.lostConnection(gen) })
	}))
	if err != nil {
		_ = found.Close()
		return fmt.Errorf("listen %q: %w", name, err)
	}

	w.in = found
	w.stop = stop
	w.port = name
	log.Printf("midi: connected to %s", name)
	return nil
}

// handle decodes on the driver goroutine and posts to the dispatcher
func (w *Watcher) handle(msg midi.Message, _ int32) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		k := int(key)
		w.dispatcher.Post(func() { w.sink.NoteOn(k) })
	case msg.GetNoteEnd(&ch, &key):
		k := int(key)
		w.dispatcher.Post(func() { w.sink.NoteOff(k) })
	}
}

func (w *Watcher) lostConnection(gen uint64) {
	w.mu.Lock()
	if w.closed || gen != w.gen || w.port == "" {
		w.mu.Unlock()
		return
	}
	lost := w.port
	w.closeLocked()
	w.mu.Unlock()

	if w.events.OnLost != nil {
		w.events.OnLost(lost)
	}
}

func (w *Watcher) closeLocked() {
	if w.stop != nil {
		w.stop()
		w.stop = nil
	}
	if w.in != nil {
		_ = w.in.Close()
		w.in = nil
	}
	w.port = ""
	w.gen++
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if containsCI(name, p) {
			return true
		}
	}
	return false
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
