// Package config loads application settings from a TOML file and applies
// environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	EnvConfigPath = "ENGRAVER_CONFIG"
	EnvLogLevel   = "ENGRAVER_LOG_LEVEL"
	EnvJSONLogs   = "ENGRAVER_JSON_LOGS"

	appDirName = "linux-engraver"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Window   WindowConfig   `toml:"window"`
	Material MaterialConfig `toml:"material"`
	Log      LogConfig      `toml:"log"`
	GCode    GCodeConfig    `toml:"gcode"`
}

type WindowConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// MaterialConfig is the stock new designs start with.
type MaterialConfig struct {
	Width     float64 `toml:"width"`
	Height    float64 `toml:"height"`
	Thickness float64 `toml:"thickness"`
}

type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

type GCodeConfig struct {
	SafeZ          float64 `toml:"safe_z"`
	PlungeFeed     float64 `toml:"plunge_feed"`
	CutFeed        float64 `toml:"cut_feed"`
	CircleSegments int     `toml:"circle_segments"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{Width: 1200, Height: 800},
		Material: MaterialConfig{
			Width:     100.0,
			Height:    100.0,
			Thickness: 10.0,
		},
		Log: LogConfig{Level: "info"},
		GCode: GCodeConfig{
			SafeZ:          5.0,
			PlungeFeed:     300.0,
			CutFeed:        600.0,
			CircleSegments: 36,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/linux-engraver/config.toml or the
// platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDirName, "config.toml")
}

// Load resolves the config path from the environment, reads it if present
// and applies environment overrides. A missing file is not an error.
func Load() (Config, string, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = DefaultPath()
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return Config{}, path, err
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

// LoadFile decodes path over the defaults. Keys absent from the file keep
// their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Log.Level = strings.ToLower(level)
	}
	if os.Getenv(EnvJSONLogs) == "true" {
		cfg.Log.JSON = true
	}
}

func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Log.Level)
	}

	if c.Window.Width < 400 || c.Window.Height < 300 {
		return fmt.Errorf("%w: window size %vx%v is too small", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}

	m := c.Material
	if m.Width <= 0 || m.Height <= 0 || m.Thickness <= 0 {
		return fmt.Errorf("%w: material dimensions must be > 0", ErrInvalidConfig)
	}

	g := c.GCode
	if g.SafeZ <= 0 || g.PlungeFeed <= 0 || g.CutFeed <= 0 {
		return fmt.Errorf("%w: gcode safe_z and feeds must be > 0", ErrInvalidConfig)
	}
	if g.CircleSegments < 3 {
		return fmt.Errorf("%w: gcode circle_segments must be >= 3", ErrInvalidConfig)
	}
	return nil
}
