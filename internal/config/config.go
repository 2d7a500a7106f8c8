// Package config loads mdir settings from defaults, an optional YAML file and
// MDIR_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/kk-code-lab/mdir/internal/errors"
	fsutil "github.com/kk-code-lab/mdir/internal/fs"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTickInterval    = 250 * time.Millisecond
	DefaultPreviewDebounce = 100 * time.Millisecond
	DefaultPreviewCap      = 1000
	DefaultQueueCapacity   = 100
)

// Environment variables consulted by ApplyEnv.
const (
	EnvTickInterval = "MDIR_TICK_INTERVAL"
	EnvPreviewCap   = "MDIR_PREVIEW_CAP"
	EnvDebug        = "MDIR_DEBUG"
	EnvLogFile      = "MDIR_LOG_FILE"
	EnvEditor       = "MDIR_EDITOR"
)

// Config holds runtime settings.
type Config struct {
	TickInterval    time.Duration `yaml:"tick_interval"`    // Event multiplexer tick cadence
	PreviewDebounce time.Duration `yaml:"preview_debounce"` // Minimum gap between preview reads
	PreviewCap      int           `yaml:"preview_cap"`      // Characters shown in the preview pane
	QueueCapacity   int           `yaml:"queue_capacity"`   // Event queue bound
	ShowHidden      bool          `yaml:"show_hidden"`      // List dot-files
	HidePatterns    []string      `yaml:"hide_patterns"`    // Name globs never listed
	Editor          string        `yaml:"editor"`           // Overrides $VISUAL/$EDITOR
	LogFile         string        `yaml:"log_file"`         // Enables logging to this file
	Debug           bool          `yaml:"debug"`            // Debug-level logging
	Watch           bool          `yaml:"watch"`            // Reload on filesystem changes
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TickInterval:    DefaultTickInterval,
		PreviewDebounce: DefaultPreviewDebounce,
		PreviewCap:      DefaultPreviewCap,
		QueueCapacity:   DefaultQueueCapacity,
		ShowHidden:      true,
		Watch:           true,
	}
}

// DefaultPath returns ~/.config/mdir/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mdir", "config.yaml"), nil
}

// Load reads path (or the default location when path is empty), applies the
// environment and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			cfg := Default()
			cfg.ApplyEnv(os.Getenv)
			return cfg, cfg.Validate()
		}
		path = p
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile merges the YAML file at path over the defaults. Keys absent from the
// file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, apperrors.E(apperrors.KindConfig, "read config", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.E(apperrors.KindConfig, "parse config", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from MDIR_* variables. Malformed values are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvTickInterval)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.TickInterval = d
		}
	}
	if v := strings.TrimSpace(getenv(EnvPreviewCap)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PreviewCap = n
		}
	}
	if v := getenv(EnvDebug); v == "1" || strings.EqualFold(v, "true") {
		c.Debug = true
	}
	if v := strings.TrimSpace(getenv(EnvLogFile)); v != "" {
		c.LogFile = v
	}
	if v := strings.TrimSpace(getenv(EnvEditor)); v != "" {
		c.Editor = v
	}
}

// Validate rejects values the event loop cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.TickInterval <= 0:
		return apperrors.Errorf(apperrors.KindConfig, "validate", "tick_interval must be positive, got %s", c.TickInterval)
	case c.PreviewDebounce <= 0:
		return apperrors.Errorf(apperrors.KindConfig, "validate", "preview_debounce must be positive, got %s", c.PreviewDebounce)
	case c.PreviewCap <= 0:
		return apperrors.Errorf(apperrors.KindConfig, "validate", "preview_cap must be positive, got %d", c.PreviewCap)
	case c.QueueCapacity <= 0:
		return apperrors.Errorf(apperrors.KindConfig, "validate", "queue_capacity must be positive, got %d", c.QueueCapacity)
	}
	if _, err := fsutil.CompilePatterns(c.HidePatterns); err != nil {
		return apperrors.E(apperrors.KindConfig, "validate", "", err)
	}
	return nil
}

// String renders the effective configuration for the debug log.
func (c *Config) String() string {
	return fmt.Sprintf("tick=%s debounce=%s cap=%d queue=%d hidden=%t watch=%t patterns=%v",
		c.TickInterval, c.PreviewDebounce, c.PreviewCap, c.QueueCapacity, c.ShowHidden, c.Watch, c.HidePatterns)
}
