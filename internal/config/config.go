// Package config discovers and decodes arkc.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up from the input path upwards.
const FileName = "arkc.toml"

// ErrNotFound is returned by Find when no arkc.toml exists up to the root.
var ErrNotFound = errors.New(FileName + " not found")

type Config struct {
	// Path is the file the values were read from; empty for defaults.
	Path     string   `toml:"-"`
	Compiler Compiler `toml:"compiler"`
	Output   Output   `toml:"output"`
	Files    Files    `toml:"files"`
}

type Compiler struct {
	MaxDiagnostics int  `toml:"max_diagnostics"`
	MaxDepth       int  `toml:"max_depth"`
	Jobs           int  `toml:"jobs"`
	Cache          bool `toml:"cache"`
}

type Output struct {
	Color  string `toml:"color"`
	Format string `toml:"format"`
}

type Files struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// Default returns the values used when no arkc.toml exists.
func Default() Config {
	return Config{
		Compiler: Compiler{MaxDiagnostics: 100, MaxDepth: 256},
		Output:   Output{Color: "auto", Format: "pretty"},
		Files:    Files{Include: []string{"**/*.ark"}},
	}
}

// Find walks up from start (a file or directory) looking for arkc.toml.
func Find(start string) (string, error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrNotFound
}

// Load decodes path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the configuration for start. When no file exists
// the defaults are returned without error.
func Discover(start string) (Config, error) {
	path, err := Find(start)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}

func (c Config) Validate() error {
	if c.Compiler.MaxDiagnostics < 0 {
		return fmt.Errorf("[compiler].max_diagnostics must be >= 0")
	}
	if c.Compiler.MaxDepth < 0 {
		return fmt.Errorf("[compiler].max_depth must be >= 0")
	}
	if c.Compiler.Jobs < 0 {
		return fmt.Errorf("[compiler].jobs must be >= 0")
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color must be auto, on or off, got %q", c.Output.Color)
	}
	switch c.Output.Format {
	case "pretty", "json":
	default:
		return fmt.Errorf("[output].format must be pretty or json, got %q", c.Output.Format)
	}
	return nil
}
