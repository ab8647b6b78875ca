// Package config holds runtime configuration: defaults, optional TOML file
// loading, and validation. The preset table is deliberately not configurable
// here; presets are compiled-in data.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pelletier/go-toml/v2"
)

// ColorMode controls ANSI color output for the progress bar and summary table.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultFileName is the config file looked up in the working directory when
// no --config path is given.
const DefaultFileName = "vconv.toml"

// Config holds all runtime settings. Populated by [Default], optionally
// overlaid by [Load], then by CLI flags before being passed (by pointer) to
// the packages that need it.
type Config struct {
	InputDir  string `toml:"input_dir"`  // Default: "input". Created if absent.
	OutputDir string `toml:"output_dir"` // Default: "output". Created if absent.
	LogDir    string `toml:"log_dir"`    // Default: ".". Holds process_<date>.log.

	TimeoutSeconds int `toml:"timeout_seconds"` // Per-file engine timeout; 0 disables.
	Jobs           int `toml:"jobs"`            // Concurrent jobs; 1 = sequential (default).

	ColorMode ColorMode `toml:"color"`
	Verbose   bool      `toml:"verbose"`

	// LogFilePath is computed once at startup from LogDir and the current
	// date, then injected; it never changes mid-run even if the date rolls
	// over during a long batch.
	LogFilePath string `toml:"-"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		InputDir:       "input",
		OutputDir:      "output",
		LogDir:         ".",
		TimeoutSeconds: 0,
		Jobs:           1,
		ColorMode:      ColorAuto,
	}
}

// Load returns the defaults overlaid with the TOML file at path. When path
// is empty, DefaultFileName in the working directory is used if it exists.
// The second result reports whether a file was actually read.
func Load(path string) (Config, bool, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, false, nil
		}
		return cfg, false, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, false, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, true, nil
}

// Validate checks field ranges and enum values.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}
	if c.Jobs < 1 {
		return errors.New("jobs must be at least 1")
	}
	if c.TimeoutSeconds < 0 {
		return errors.New("timeout must not be negative")
	}
	if c.InputDir == "" || c.OutputDir == "" {
		return errors.New("input and output directories must not be empty")
	}
	return nil
}

// FileTimeout returns the per-file engine timeout; zero means no timeout.
func (c *Config) FileTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ColorEnabled resolves the color mode against TTY detection and the
// NO_COLOR convention (https://no-color.org).
func (c *Config) ColorEnabled() bool {
	switch c.ColorMode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return (isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}
