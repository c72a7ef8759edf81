package constants

import "time"

// Frame pacing
const (
	// FrameInterval caps redraws at ~60 FPS
	FrameInterval = 16 * time.Millisecond

	// HoldTimeout releases a terminal key when no auto-repeat arrives
	// Terminals report presses only, auto-repeat keeps a held key alive
	// Must outlast the auto-repeat start delay (GNOME ~500 ms, X11 660 ms)
	HoldTimeout = 700 * time.Millisecond

	// Configurable hold range
	MinHoldTimeout = 200 * time.Millisecond
	MaxHoldTimeout = 2 * time.Second
)

// Keyboard widget geometry
const (
	KeyboardMinWidth   = 36
	KeyboardMaxWidth   = 84
	KeyboardMinHeight  = 7
	KeyboardHeight     = 11
	KeyboardBottomGap  = 1
	BlackKeyWidthRatio = 0.62
	BlackKeyHeightPct  = 65
)

// Log file
const (
	LogDir      = "logs"
	LogFileName = "vi-piano.log"
	MaxLogSize  = 10 * 1024 * 1024
)
