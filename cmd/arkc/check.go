package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"arkc/internal/diag"
	"arkc/internal/diagfmt"
	"arkc/internal/driver"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file.ark|directory>",
		Short: "Report diagnostics for an Ark source file or directory",
		Long:  `Check lexes and parses a file, or every matching file in a directory, and reports diagnostics`,
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("cache", false, "reuse results from the on-disk cache")
	cmd.Flags().Bool("clear-cache", false, "drop the on-disk cache before checking")
	cmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	s, err := loadSettings(cmd, path)
	if err != nil {
		return err
	}
	opts := s.driverOptions()
	if opts.Cache, err = openCache(cmd, s); err != nil {
		return err
	}

	if !st.IsDir() {
		fs, res, err := driver.Check(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		if s.timings {
			driver.AppendTimings(res.Bag, "check", path, s.timer)
		}
		if err := s.printDiagnostics(cmd.ErrOrStderr(), res.Bag, fs); err != nil {
			return err
		}
		return failIfErrors(path, res.Failed)
	}
	return checkDir(cmd, s, path, opts)
}

// openCache returns nil when caching is disabled. The bare root command
// shares runCheck but has no cache flags.
func openCache(cmd *cobra.Command, s *settings) (*driver.DiskCache, error) {
	drop := false
	if cmd.Flags().Lookup("clear-cache") != nil {
		var err error
		if drop, err = cmd.Flags().GetBool("clear-cache"); err != nil {
			return nil, fmt.Errorf("failed to get clear-cache flag: %w", err)
		}
	}
	if !s.cfg.Compiler.Cache && !drop {
		return nil, nil
	}
	cache, err := driver.OpenDiskCache("arkc")
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if drop {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("clear cache: %w", err)
		}
		log.Infof("cache cleared")
	}
	if !s.cfg.Compiler.Cache {
		return nil, nil
	}
	return cache, nil
}

func checkDir(cmd *cobra.Command, s *settings, dir string, opts driver.Options) error {
	mode := uiModeOff
	if cmd.Flags().Lookup("ui") != nil {
		value, err := cmd.Flags().GetString("ui")
		if err != nil {
			return fmt.Errorf("failed to get ui flag: %w", err)
		}
		if mode, err = readUIMode(value); err != nil {
			return err
		}
	}

	var (
		result *driver.DirResult
		err    error
	)
	if shouldUseTUI(mode) && !s.quiet {
		files, listErr := driver.ListFiles(dir, opts.Include, opts.Exclude)
		if listErr != nil {
			return listErr
		}
		result, err = runCheckDirWithUI(cmd, "checking "+dir, dir, files, opts)
	} else {
		result, err = driver.CheckDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	out := cmd.ErrOrStderr()
	if s.cfg.Output.Format == "json" {
		if err := writeDirJSON(out, result); err != nil {
			return err
		}
	} else {
		for i := range result.Files {
			if err := s.printDiagnostics(out, result.Files[i].Bag, result.FileSet); err != nil {
				return err
			}
		}
		if !s.quiet {
			printDirSummary(out, result)
		}
		if s.timings {
			fmt.Fprint(out, s.timer.Summary())
		}
	}
	return failIfErrors(dir, result.Failed())
}

// writeDirJSON emits one diagnostics document per file keyed by path.
func writeDirJSON(w io.Writer, result *driver.DirResult) error {
	output := make(map[string]diagfmt.DiagnosticsOutput, len(result.Files))
	for i := range result.Files {
		r := &result.Files[i]
		bag := r.Bag
		if bag == nil {
			bag = diag.NewBag(0)
		}
		bag.Sort()
		output[r.Path] = diagfmt.BuildDiagnosticsOutput(bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func printDirSummary(w io.Writer, result *driver.DirResult) {
	failed, cached := 0, 0
	for i := range result.Files {
		if result.Files[i].Failed {
			failed++
		}
		if result.Files[i].Cached {
			cached++
		}
	}
	fmt.Fprintf(w, "checked %d files: %d with errors", len(result.Files), failed)
	if cached > 0 {
		fmt.Fprintf(w, ", %d cached", cached)
	}
	fmt.Fprintln(w)
}
