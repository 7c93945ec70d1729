// Package config loads the TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// AppName names the config, data and state directories.
const AppName = "tagdeck"

// Defaults applied by the getters.
const (
	DefaultRepeatDelay   = 500 * time.Millisecond
	DefaultRepeatEvery   = 50 * time.Millisecond
	DefaultEchoWindow    = 100 * time.Millisecond
	DefaultTopPadding    = 1
	DefaultBottomPadding = 1
	DefaultLoadDebounce  = 120 * time.Millisecond
	DefaultLogLevel      = "info"
)

type Config struct {
	StartFolder  string `koanf:"start_folder"` // empty means use cwd
	ShowHidden   bool   `koanf:"show_hidden"`
	ShowAllFiles bool   `koanf:"show_all_files"` // list every file, not only audio
	Icons        string `koanf:"icons"`          // "nerd", "unicode" or "none"

	Repeat RepeatConfig `koanf:"repeat"`
	Scroll ScrollConfig `koanf:"scroll"`
	Load   LoadConfig   `koanf:"load"`
	Rename RenameConfig `koanf:"rename"`
	Log    LogConfig    `koanf:"log"`
	State  StateConfig  `koanf:"state"`
}

// RepeatConfig tunes held-key repetition.
type RepeatConfig struct {
	DelayMS      int `koanf:"delay_ms"`
	IntervalMS   int `koanf:"interval_ms"`
	EchoWindowMS int `koanf:"echo_window_ms"`
}

// ScrollConfig sets how many rows stay visible around the focused row.
type ScrollConfig struct {
	TopPadding    *int `koanf:"top_padding"`
	BottomPadding *int `koanf:"bottom_padding"`
}

// LoadConfig tunes debounced loading.
type LoadConfig struct {
	DebounceMS int `koanf:"debounce_ms"`
}

// RenameConfig sets how file names are built from tags. Template
// placeholders: {artist} {albumartist} {album} {title} {genre} {date}
// {year} {tracknumber} {discnumber}.
type RenameConfig struct {
	Template          string `koanf:"template"`
	AndToAmpersand    bool   `koanf:"and_to_ampersand"`
	RemoveFeat        bool   `koanf:"remove_feat"`
	EllipsisNormalize bool   `koanf:"ellipsis_normalize"`
}

// LogConfig sets the log level: "debug", "info", "warn" or "error".
type LogConfig struct {
	Level string `koanf:"level"`
}

// StateConfig controls persistence.
type StateConfig struct {
	Disabled bool `koanf:"disabled"`
}

// Load reads the default config files. Missing files are skipped.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given files in order; later files override earlier ones.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.StartFolder != "" {
		cfg.StartFolder = expandPath(cfg.StartFolder)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/tagdeck/config.toml
		filepath.Join(xdg.ConfigHome, AppName, "config.toml"),
		// 2. ./tagdeck.toml (pwd, highest priority)
		AppName + ".toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func millis(v int, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return time.Duration(v) * time.Millisecond
}

// RepeatDelay returns the hold time before a key starts repeating.
func (c *Config) RepeatDelay() time.Duration {
	return millis(c.Repeat.DelayMS, DefaultRepeatDelay)
}

// RepeatInterval returns the time between repeated steps.
func (c *Config) RepeatInterval() time.Duration {
	return millis(c.Repeat.IntervalMS, DefaultRepeatEvery)
}

// EchoWindow returns how long a repeating key may go unseen before it is
// treated as released.
func (c *Config) EchoWindow() time.Duration {
	return millis(c.Repeat.EchoWindowMS, DefaultEchoWindow)
}

// LoadDebounce returns the delay between a selection change and its load.
func (c *Config) LoadDebounce() time.Duration {
	return millis(c.Load.DebounceMS, DefaultLoadDebounce)
}

// Padding returns the scroll padding above and below the focused row.
// Negative values fall back to the defaults; zero is allowed.
func (c *Config) Padding() (top, bottom int) {
	top, bottom = DefaultTopPadding, DefaultBottomPadding
	if p := c.Scroll.TopPadding; p != nil && *p >= 0 {
		top = *p
	}
	if p := c.Scroll.BottomPadding; p != nil && *p >= 0 {
		bottom = *p
	}
	return top, bottom
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() string {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		return c.Log.Level
	}
	return DefaultLogLevel
}
