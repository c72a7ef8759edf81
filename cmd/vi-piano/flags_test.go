package main

import (
	"testing"

	"github.com/lixenwraith/vi-piano/config"
)

// TestApplyFlags verifies flags override loaded settings and are clamped
func TestApplyFlags(t *testing.T) {
	saved := []any{*progressFlag, *muteFlag, *midiFlag, *midiPortFlag, *tempoFlag}
	defer func() {
		*progressFlag = saved[0].(string)
		*muteFlag = saved[1].(bool)
		*midiFlag = saved[2].(bool)
		*midiPortFlag = saved[3].(string)
		*tempoFlag = saved[4].(int)
	}()

	*progressFlag = "/tmp/progress.yaml"
	*muteFlag = true
	*midiFlag = true
	*midiPortFlag = "keystation"
	*tempoFlag = 50

	cfg := config.Default()
	applyFlags(&cfg)

	if cfg.ProgressPath != "/tmp/progress.yaml" {
		t.Errorf("Progress path not applied: %q", cfg.ProgressPath)
	}
	if !cfg.Audio.Muted || !cfg.MIDI.Enabled || cfg.MIDI.Port != "keystation" {
		t.Errorf("Flags not applied: %+v", cfg)
	}
	if cfg.Tempo.BeatMs != 200 {
		t.Errorf("Tempo should clamp to 200ms, got %d", cfg.Tempo.BeatMs)
	}
}
