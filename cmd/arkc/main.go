package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"golang.org/x/term"

	"arkc/internal/driver"
	"arkc/internal/prof"
	"arkc/internal/version"
)

var log = commonlog.GetLogger("arkc.cli")

// newRootCmd builds the command tree. A bare `arkc <file>` checks the file.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "arkc [flags] <file.ark>",
		Short:         "Ark compiler front end",
		Long:          `arkc lexes and parses Ark source files, reports diagnostics and emits module declarations`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version.Short(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := configureLogging(cmd); err != nil {
				return err
			}
			return startProfiling(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runCheck(cmd, args)
		},
	}

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to keep per file")
	pf.Int("max-depth", 256, "maximum syntactic nesting depth")
	pf.String("diag-format", "pretty", "diagnostics format (pretty|json)")
	pf.CountP("verbose", "v", "increase log verbosity (repeatable)")
	pf.String("log-file", "", "write logs to this file instead of stderr")
	pf.String("cpuprofile", "", "write a CPU profile to this file")
	pf.String("memprofile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a runtime trace to this file")

	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newEmitCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, newRootCmd(), os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs root and maps the outcome to the process exit code:
// 0 on success, 2 when error diagnostics were reported, 1 otherwise.
func execute(ctx context.Context, root *cobra.Command, stderr io.Writer) int {
	err := root.ExecuteContext(ctx)
	if perr := profSession.Stop(); perr != nil && err == nil {
		err = fmt.Errorf("profiling: %w", perr)
	}
	profSession = nil
	switch {
	case err == nil:
		return 0
	case errors.Is(err, driver.ErrDiagnostics):
		log.Debugf("%s", err)
		return 2
	default:
		fmt.Fprintf(stderr, "arkc: %v\n", err)
		return 1
	}
}

func configureLogging(cmd *cobra.Command) error {
	verbosity, err := cmd.Flags().GetCount("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	logFile, err := cmd.Flags().GetString("log-file")
	if err != nil {
		return fmt.Errorf("failed to get log-file flag: %w", err)
	}
	var path *string
	if logFile != "" {
		path = &logFile
	}
	commonlog.Configure(verbosity, path)
	return nil
}

// profSession is the profiling run started for the current command, if any.
var profSession *prof.Session

func startProfiling(cmd *cobra.Command) error {
	var opts prof.Options
	var err error
	if opts.CPU, err = cmd.Flags().GetString("cpuprofile"); err != nil {
		return fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if opts.Mem, err = cmd.Flags().GetString("memprofile"); err != nil {
		return fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if opts.Trace, err = cmd.Flags().GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil
	}
	profSession, err = prof.Start(opts)
	return err
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
