// Package config loads the settings of the cprintf command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name of a project configuration file.
const FileName = "cprintf.toml"

// ErrNotFound is returned by Find when no configuration file exists.
var ErrNotFound = errors.New("config: no configuration file found")

// Color modes.
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

// Config holds the settings of the command. Flags override it.
type Config struct {
	Color     string `toml:"color"`     // auto, on or off
	Jobs      int    `toml:"jobs"`      // parallel corpus runs; 0 means one per CPU
	Capacity  int    `toml:"capacity"`  // output buffer of format; negative means unbounded
	Normalize bool   `toml:"normalize"` // NFC-normalize string operands

	Path string `toml:"-"` // file the settings were read from, if any
}

// Default returns the settings used without a configuration file.
func Default() Config {
	return Config{
		Color:    ColorAuto,
		Capacity: -1,
	}
}

// Workers returns the number of parallel jobs to run.
func (c Config) Workers() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// Validate reports a setting out of its domain.
func (c Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorOn, ColorOff:
	default:
		return fmt.Errorf("color must be auto, on or off, not %q", c.Color)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	return nil
}

// Load reads the configuration file at path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if keys := meta.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys %s", path, strings.Join(names, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Find looks for FileName in startDir and its parents, then for
// cprintf/config.toml in the user configuration directory.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if ok, err := exists(candidate); err != nil || ok {
			return candidate, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", ErrNotFound
		}
		base = filepath.Join(home, ".config")
	}
	candidate := filepath.Join(base, "cprintf", "config.toml")
	if ok, err := exists(candidate); err != nil || ok {
		return candidate, err
	}
	return "", ErrNotFound
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %q: %w", path, err)
}

// Resolve loads the file named by explicit, or the one Find locates from
// startDir. Without any file it returns the defaults.
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, err := Find(startDir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}
