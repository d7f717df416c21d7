package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"arkc/internal/config"
	"arkc/internal/diag"
	"arkc/internal/diagfmt"
	"arkc/internal/driver"
	"arkc/internal/observ"
	"arkc/internal/source"
)

// settings merges arkc.toml with the command line; explicit flags win.
type settings struct {
	cfg     config.Config
	color   bool
	quiet   bool
	timings bool
	timer   *observ.Timer
}

func loadSettings(cmd *cobra.Command, path string) (*settings, error) {
	cfg, err := config.Discover(path)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		log.Debugf("using %s", cfg.Path)
	}

	flags := cmd.Flags()
	if flags.Changed("max-diagnostics") {
		if cfg.Compiler.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if flags.Changed("max-depth") {
		if cfg.Compiler.MaxDepth, err = flags.GetInt("max-depth"); err != nil {
			return nil, fmt.Errorf("failed to get max-depth flag: %w", err)
		}
	}
	if flags.Changed("color") {
		if cfg.Output.Color, err = flags.GetString("color"); err != nil {
			return nil, fmt.Errorf("failed to get color flag: %w", err)
		}
		cfg.Output.Color = strings.ToLower(strings.TrimSpace(cfg.Output.Color))
	}
	if flags.Changed("diag-format") {
		if cfg.Output.Format, err = flags.GetString("diag-format"); err != nil {
			return nil, fmt.Errorf("failed to get diag-format flag: %w", err)
		}
	}
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		if cfg.Compiler.Jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if flags.Lookup("cache") != nil && flags.Changed("cache") {
		if cfg.Compiler.Cache, err = flags.GetBool("cache"); err != nil {
			return nil, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &settings{cfg: cfg}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.timings {
		s.timer = observ.NewTimer()
	}
	s.color = useColor(cfg.Output.Color, os.Stderr)
	return s, nil
}

func useColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// applyColor toggles fatih/color globally for output that is not routed
// through diagfmt options.
func (s *settings) applyColor() {
	color.NoColor = !s.color
}

func (s *settings) driverOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics: s.cfg.Compiler.MaxDiagnostics,
		MaxDepth:       s.cfg.Compiler.MaxDepth,
		Jobs:           s.cfg.Compiler.Jobs,
		Include:        s.cfg.Files.Include,
		Exclude:        s.cfg.Files.Exclude,
		Timer:          s.timer,
	}
}

// printDiagnostics writes bag in the configured format. Pretty output skips
// empty bags; JSON always emits a document.
func (s *settings) printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil {
		return nil
	}
	bag.Sort()
	switch s.cfg.Output.Format {
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
	default:
		if bag.Len() == 0 {
			return nil
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     s.color,
			Context:   2,
			ShowNotes: true,
		})
		return nil
	}
}

// failIfErrors turns error diagnostics into driver.ErrDiagnostics.
func failIfErrors(path string, failed bool) error {
	if failed {
		return fmt.Errorf("%s: %w", path, driver.ErrDiagnostics)
	}
	return nil
}
