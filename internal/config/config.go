// Package config loads doccomp.toml, the per-project build settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"doccomp/internal/diag"
)

// FileName is the configuration file looked up from the working directory upwards.
const FileName = "doccomp.toml"

type Config struct {
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Build       BuildConfig       `toml:"build"`

	// Path is where the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type DiagnosticsConfig struct {
	Level            string   `toml:"level"`
	WarningsAsErrors bool     `toml:"warnings_as_errors"`
	ErrorIDs         []string `toml:"error_ids"`
	WarningIDs       []string `toml:"warning_ids"`
	Output           string   `toml:"output"`
	FixIts           bool     `toml:"fixits"`
	Color            string   `toml:"color"`
}

type BuildConfig struct {
	BundleID string `toml:"bundle_id"`
	Jobs     int    `toml:"jobs"`
	CacheDir string `toml:"cache_dir"`
	LogLevel string `toml:"log_level"`
}

// Default returns the settings used when no doccomp.toml exists.
func Default() *Config {
	return &Config{
		Diagnostics: DiagnosticsConfig{
			Level: "warning",
			Color: "auto",
		},
		Build: BuildConfig{
			LogLevel: "warn",
		},
	}
}

// Find walks up from startDir to locate doccomp.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and reads doccomp.toml. Without a file it returns Default and found=false.
func Load(startDir string) (*Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return Default(), false, nil
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

// LoadFile reads one config file on top of Default.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("diagnostics", "level") {
		if _, err := diag.ParseSeverity(cfg.Diagnostics.Level); err != nil {
			return nil, fmt.Errorf("%s: [diagnostics].level: %w", path, err)
		}
	}
	if meta.IsDefined("diagnostics", "color") {
		switch cfg.Diagnostics.Color {
		case "auto", "on", "off":
		default:
			return nil, fmt.Errorf("%s: [diagnostics].color must be auto, on or off, got %q", path, cfg.Diagnostics.Color)
		}
	}
	if cfg.Build.Jobs < 0 {
		return nil, fmt.Errorf("%s: [build].jobs must not be negative", path)
	}
	cfg.Path = path
	return cfg, nil
}

// EngineOptions converts the diagnostics table into engine options.
func (c *Config) EngineOptions() diag.EngineOptions {
	opts := diag.DefaultEngineOptions()
	if sev, err := diag.ParseSeverity(c.Diagnostics.Level); err == nil {
		opts.FilterLevel = sev
	}
	opts.TreatWarningsAsErrors = c.Diagnostics.WarningsAsErrors
	opts.ErrorIDs = c.Diagnostics.ErrorIDs
	opts.WarningIDs = c.Diagnostics.WarningIDs
	return opts
}

// Resolve makes relative paths in c relative to the config file's directory.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.Path), p)
}
