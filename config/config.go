// Package config layers defaults, an optional YAML file and the environment
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/vi-piano/audio"
	"github.com/lixenwraith/vi-piano/constants"
)

// Config is the full runtime configuration
type Config struct {
	Audio    audio.AudioConfig `yaml:"audio"`
	Tempo    TempoConfig       `yaml:"tempo"`
	Keyboard KeyboardConfig    `yaml:"keyboard"`
	MIDI     MIDIConfig        `yaml:"midi"`

	// ProgressPath overrides the progress file location
	ProgressPath string `yaml:"progress_path"`
}

// TempoConfig holds challenge timing, in milliseconds as written in the file
type TempoConfig struct {
	BeatMs int `yaml:"beat_ms"`
}

// KeyboardConfig are the on-screen keyboard display and input options
type KeyboardConfig struct {
	HideBlackKeys bool `yaml:"hide_black_keys"`
	CenterBottom  bool `yaml:"center_bottom"`

	// HoldMs keeps a typed key sounding between auto-repeats, raise it for slow repeat delays
	HoldMs int `yaml:"hold_ms"`
}

// Hold returns the typed key hold timeout
func (k KeyboardConfig) Hold() time.Duration {
	return time.Duration(k.HoldMs) * time.Millisecond
}

// MIDIConfig selects a hardware input
type MIDIConfig struct {
	Enabled bool `yaml:"enabled"`

	// Port is a case-insensitive substring of the input port name, empty takes the first port
	Port string `yaml:"port"`
}

// Beat returns the sequence beat window
func (t TempoConfig) Beat() time.Duration {
	return time.Duration(t.BeatMs) * time.Millisecond
}

const (
	minBeatMs = 200
	maxBeatMs = 2000
)

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Audio:    audio.DefaultAudioConfig(),
		Tempo:    TempoConfig{BeatMs: int(constants.BeatInterval / time.Millisecond)},
		Keyboard: KeyboardConfig{
			CenterBottom: true,
			HoldMs:       int(constants.HoldTimeout / time.Millisecond),
		},
	}
}

// DefaultPath returns the config file under the user config directory
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "vi-piano", "config.yaml")
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "vi-piano", "config.yaml")
}

// Load builds the configuration from defaults, path and the environment
// A missing file at the default location is not an error, an explicit path must exist
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Default(), err
			}
		}
	}

	applyEnv(&cfg)
	cfg.Clamp()
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	audio.ApplyEnv(&cfg.Audio)

	if beat := os.Getenv("VI_PIANO_BEAT_MS"); beat != "" {
		if val, err := strconv.Atoi(beat); err == nil {
			cfg.Tempo.BeatMs = val
		}
	}
	if hold := os.Getenv("VI_PIANO_HOLD_MS"); hold != "" {
		if val, err := strconv.Atoi(hold); err == nil {
			cfg.Keyboard.HoldMs = val
		}
	}
	if path := os.Getenv("VI_PIANO_PROGRESS"); path != "" {
		cfg.ProgressPath = path
	}
}

// Clamp forces every value into its valid range
func (c *Config) Clamp() {
	c.Audio.Clamp()
	if c.Tempo.BeatMs < minBeatMs {
		c.Tempo.BeatMs = minBeatMs
	}
	if c.Tempo.BeatMs > maxBeatMs {
		c.Tempo.BeatMs = maxBeatMs
	}
	if hold := c.Keyboard.Hold(); hold < constants.MinHoldTimeout {
		c.Keyboard.HoldMs = int(constants.MinHoldTimeout / time.Millisecond)
	} else if hold > constants.MaxHoldTimeout {
		c.Keyboard.HoldMs = int(constants.MaxHoldTimeout / time.Millisecond)
	}
}
