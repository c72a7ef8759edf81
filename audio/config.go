package audio

import (
	"os"
	"strconv"

	"github.com/lixenwraith/vi-piano/constants"
)

// AudioConfig holds output settings
type AudioConfig struct {
	// Enabled false skips device init entirely, the app runs in silent mode
	Enabled bool `yaml:"enabled"`

	// Muted opens the device but keeps the master stage silent, toggled at runtime
	Muted bool `yaml:"muted"`

	MasterVolume float64 `yaml:"master_volume"`
	SampleRate   int     `yaml:"sample_rate"`
}

// DefaultAudioConfig returns the built-in defaults
func DefaultAudioConfig() AudioConfig {
	return AudioConfig{
		Enabled:      true,
		MasterVolume: 0.8,
		SampleRate:   constants.AudioSampleRate,
	}
}

// ApplyEnv overrides cfg from environment variables
func ApplyEnv(cfg *AudioConfig) {
	if enabled := os.Getenv("VI_PIANO_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume 0-100 converted to 0.0-1.0
	if volume := os.Getenv("VI_PIANO_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = float64(val) / 100.0
		}
	}

	if sampleRate := os.Getenv("VI_PIANO_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	cfg.Clamp()
}

// Clamp forces values into their valid ranges
func (c *AudioConfig) Clamp() {
	if c.MasterVolume < 0 {
		c.MasterVolume = 0
	}
	if c.MasterVolume > 1 {
		c.MasterVolume = 1
	}
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		c.SampleRate = constants.AudioSampleRate
	}
}
