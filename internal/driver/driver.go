// Package driver runs the front end over files and directories on behalf of
// the command line: it loads sources, drives compilation units, caches
// results and reports progress.
package driver

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
	"github.com/tliron/commonlog"

	"arkc/internal/backend"
	"arkc/internal/observ"
	"arkc/internal/parser"
	"arkc/internal/unit"
)

// ErrDiagnostics marks a run that completed but reported error diagnostics.
var ErrDiagnostics = errors.New("errors reported")

var log = commonlog.GetLogger("arkc.driver")

type Options struct {
	MaxDiagnostics int
	MaxDepth       int
	// Jobs bounds parallel units in directory mode; <= 0 uses GOMAXPROCS.
	Jobs     int
	Include  []string
	Exclude  []string
	Backend  backend.Backend
	Cache    *DiskCache
	Timer    *observ.Timer
	Progress ProgressFunc
}

func (o Options) unitOptions() (unit.Options, error) {
	maxErrors, err := safecast.Conv[uint](max(o.MaxDiagnostics, 0))
	if err != nil {
		return unit.Options{}, fmt.Errorf("max diagnostics: %w", err)
	}
	depth := o.MaxDepth
	if depth <= 0 {
		depth = parser.DefaultMaxDepth
	}
	return unit.Options{
		Backend:        o.Backend,
		MaxDiagnostics: o.MaxDiagnostics,
		MaxErrors:      maxErrors,
		MaxDepth:       depth,
		Timer:          o.Timer,
	}, nil
}
