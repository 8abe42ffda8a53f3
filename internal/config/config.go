// SPDX-License-Identifier: EPL-2.0

// Package config loads retro-rain settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

var (
	ErrInvalid    = errors.New("invalid configuration")
	ErrUnknownKey = errors.New("unknown configuration key")
)

// Duration is a time.Duration written as a string such as "100ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Config struct {
	AudioDir   string   `toml:"audio_dir"`
	Extensions []string `toml:"extensions"`

	// Output device
	SampleRate int      `toml:"sample_rate"`
	Channels   int      `toml:"channels"`
	Buffer     Duration `toml:"buffer"`

	MasterVolume float64    `toml:"master_volume"` // 0.0 - 1.0
	LogLevel     slog.Level `toml:"log_level"`
}

func Default() Config {
	return Config{
		AudioDir:     "res/audio",
		Extensions:   []string{".wav", ".mp3", ".ogg", ".aif", ".aiff"},
		SampleRate:   44100,
		Channels:     2,
		Buffer:       Duration{100 * time.Millisecond},
		MasterVolume: 1.0,
		LogLevel:     slog.LevelInfo,
	}
}

// Load reads path over the defaults. Keys missing from the file keep
// their default value; keys the program does not know are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes TOML text over the defaults and validates the result.
func Parse(text string) (Config, error) {
	cfg := Default()

	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample_rate %d must be positive", c.SampleRate))
	}
	if c.Channels < 1 || c.Channels > 2 {
		errs = append(errs, fmt.Errorf("channels %d must be 1 or 2", c.Channels))
	}
	if c.Buffer.Duration < 0 {
		errs = append(errs, fmt.Errorf("buffer %s must not be negative", c.Buffer))
	}
	if !(c.MasterVolume >= 0 && c.MasterVolume <= 1) {
		errs = append(errs, fmt.Errorf("master_volume %v outside [0, 1]", c.MasterVolume))
	}
	if len(c.Extensions) == 0 {
		errs = append(errs, errors.New("extensions must not be empty"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}

	return nil
}
