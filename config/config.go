package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultSampleRate is used when the config does not pin one.
const DefaultSampleRate = 44100

// AudioConfig stores audio output settings.
type AudioConfig struct {
	SampleRate int `json:"sampleRate,omitempty"`
}

// PadBinding maps a pad slot to a sample file on disk.
type PadBinding struct {
	Pad  int    `json:"pad"`
	Path string `json:"path"`
}

// MIDIConfig stores MIDI input settings.
type MIDIConfig struct {
	AutoConnect bool `json:"autoConnect"`
}

// UIConfig stores UI preferences.
type UIConfig struct {
	LastTempo int `json:"lastTempo,omitempty"`
	LastSwing int `json:"lastSwing,omitempty"`
}

// Config is the main configuration structure.
type Config struct {
	Audio AudioConfig  `json:"audio,omitempty"`
	Pads  []PadBinding `json:"pads,omitempty"`
	MIDI  MIDIConfig   `json:"midi,omitempty"`
	UI    UIConfig     `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Audio: AudioConfig{SampleRate: DefaultSampleRate},
		MIDI:  MIDIConfig{AutoConnect: true},
		UI:    UIConfig{LastTempo: 120},
	}
}

// SampleRate returns the configured rate, falling back to the default.
func (c *Config) SampleRate() int {
	if c.Audio.SampleRate > 0 {
		return c.Audio.SampleRate
	}
	return DefaultSampleRate
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "samplepad"), nil
}

// ConfigPath returns the full path to config.json.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// BindPad adds or updates a pad binding.
func (c *Config) BindPad(pad int, path string) {
	for i := range c.Pads {
		if c.Pads[i].Pad == pad {
			c.Pads[i].Path = path
			return
		}
	}
	c.Pads = append(c.Pads, PadBinding{Pad: pad, Path: path})
}
