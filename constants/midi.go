package constants

import "time"

// MIDI input
const (
	// MIDIRescanInterval is how often the port list is checked for plug and unplug
	MIDIRescanInterval = time.Second
)

// MIDIExcludedPorts are virtual ports never picked automatically
var MIDIExcludedPorts = []string{"Midi Through", "Through Port", "Dummy"}
