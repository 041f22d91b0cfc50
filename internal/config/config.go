// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultMasterVolume = 0.3
	DefaultBackend      = BackendSpeaker
	DefaultSampleRate   = 44100
	DefaultBuffer       = Duration(50 * time.Millisecond)
)

// Backend names accepted by audio.backend.
const (
	BackendSpeaker = "speaker"
	BackendOto     = "oto"
	BackendNone    = "none"
)

// ValidBackends returns all valid backend names.
func ValidBackends() []string {
	return []string{BackendSpeaker, BackendOto, BackendNone}
}

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "50ms", "1s", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '50ms', '1s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config represents the chemsfx configuration.
type Config struct {
	Audio   AudioConfig             `toml:"audio"`
	Presets map[string]ToneOverride `toml:"presets"`
}

// AudioConfig contains audio output settings.
type AudioConfig struct {
	Enabled      bool     `toml:"enabled"`
	MasterVolume float64  `toml:"master_volume"` // 0.0-1.0, used when a tone has no volume
	Backend      string   `toml:"backend"`       // speaker, oto, none
	SampleRate   int      `toml:"sample_rate"`
	Buffer       Duration `toml:"buffer"` // e.g. "50ms" or 50
}

// ToneOverride replaces parts of a preset's base tone.
// Zero values leave the preset default in place.
type ToneOverride struct {
	Frequency float64  `toml:"frequency,omitempty"`
	Duration  Duration `toml:"duration,omitempty"`
	Waveform  string   `toml:"waveform,omitempty"`
	Volume    float64  `toml:"volume,omitempty"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: DefaultMasterVolume,
			Backend:      DefaultBackend,
			SampleRate:   DefaultSampleRate,
			Buffer:       DefaultBuffer,
		},
		Presets: make(map[string]ToneOverride),
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "chemsfx", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Presets == nil {
		cfg.Presets = make(map[string]ToneOverride)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	a := c.Audio

	if a.MasterVolume <= 0 || a.MasterVolume > 1 {
		return fmt.Errorf("master_volume must be in (0, 1], got %g", a.MasterVolume)
	}

	validBackend := false
	for _, b := range ValidBackends() {
		if a.Backend == b {
			validBackend = true
			break
		}
	}
	if !validBackend {
		return fmt.Errorf("invalid backend %q, must be one of: %v", a.Backend, ValidBackends())
	}

	if a.SampleRate < 8000 || a.SampleRate > 192000 {
		return fmt.Errorf("sample_rate must be between 8000 and 192000, got %d", a.SampleRate)
	}
	if a.Buffer.Duration() < time.Millisecond || a.Buffer.Duration() > time.Second {
		return fmt.Errorf("buffer must be between 1ms and 1s, got %s", a.Buffer.Duration())
	}

	for name, o := range c.Presets {
		if o.Frequency < 0 {
			return fmt.Errorf("preset %q: frequency must not be negative", name)
		}
		if o.Duration < 0 {
			return fmt.Errorf("preset %q: duration must not be negative", name)
		}
		if o.Volume < 0 || o.Volume > 1 {
			return fmt.Errorf("preset %q: volume must be between 0 and 1, got %g", name, o.Volume)
		}
	}

	return nil
}
