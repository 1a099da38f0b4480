package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFilePartialOverride(t *testing.T) {
	path := writeConfig(t, `
[material]
width = 300.0
thickness = 6.35

[gcode]
cut_feed = 900.0
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 300.0, cfg.Material.Width)
	assert.Equal(t, 100.0, cfg.Material.Height)
	assert.Equal(t, 6.35, cfg.Material.Thickness)
	assert.Equal(t, 900.0, cfg.GCode.CutFeed)
	assert.Equal(t, 36, cfg.GCode.CircleSegments)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[window]
widht = 1000
`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "window.widht")
}

func TestLoadFileRejectsBadSyntax(t *testing.T) {
	path := writeConfig(t, "[window\nwidth = ")

	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadFileValidates(t *testing.T) {
	path := writeConfig(t, `
[gcode]
circle_segments = 2
`)

	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadAppliesEnvironment(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "warn"
`)
	t.Setenv(EnvConfigPath, path)
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvJSONLogs, "true")

	cfg, resolved, err := Load()
	require.NoError(t, err)

	assert.Equal(t, path, resolved)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadRejectsBadEnvLevel(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "none.toml"))
	t.Setenv(EnvLogLevel, "verbose")

	_, _, err := Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
