package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/kk-code-lab/mdir/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("tick_interval: 50ms\npreview_cap: 200\nshow_hidden: false\nhide_patterns:\n  - \"*.pyc\"\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 200, cfg.PreviewCap)
	assert.False(t, cfg.ShowHidden)
	assert.Equal(t, []string{"*.pyc"}, cfg.HidePatterns)
	assert.Equal(t, DefaultPreviewDebounce, cfg.PreviewDebounce)
	assert.Equal(t, DefaultQueueCapacity, cfg.QueueCapacity)
	assert.True(t, cfg.Watch)
}

func TestLoadFileRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_interval: [oops"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConfig, apperrors.KindOf(err))
}

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		EnvTickInterval: "1s",
		EnvPreviewCap:   "42",
		EnvDebug:        "1",
		EnvLogFile:      "/tmp/mdir.log",
		EnvEditor:       "nano",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, 42, cfg.PreviewCap)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/tmp/mdir.log", cfg.LogFile)
	assert.Equal(t, "nano", cfg.Editor)
}

func TestApplyEnvIgnoresMalformedValues(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(func(k string) string {
		switch k {
		case EnvTickInterval:
			return "soon"
		case EnvPreviewCap:
			return "lots"
		}
		return ""
	})
	assert.Equal(t, DefaultTickInterval, cfg.TickInterval)
	assert.Equal(t, DefaultPreviewCap, cfg.PreviewCap)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tick", func(c *Config) { c.TickInterval = 0 }},
		{"negative debounce", func(c *Config) { c.PreviewDebounce = -time.Second }},
		{"zero cap", func(c *Config) { c.PreviewCap = 0 }},
		{"zero queue", func(c *Config) { c.QueueCapacity = 0 }},
		{"bad glob", func(c *Config) { c.HidePatterns = []string{"[abc"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, apperrors.KindConfig, apperrors.KindOf(err))
		})
	}
	assert.NoError(t, Default().Validate())
}
