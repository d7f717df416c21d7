package driver

import (
	"context"
	"errors"
	"os"

	"arkc/internal/ast"
	"arkc/internal/diag"
	"arkc/internal/source"
	"arkc/internal/unit"
)

// ParseResult owns an open unit; callers must Close it.
type ParseResult struct {
	FileSet *source.FileSet
	Unit    *unit.Unit
}

func (r *ParseResult) File() *ast.File { return r.Unit.AST() }

func (r *ParseResult) Bag() *diag.Bag { return r.Unit.Diagnostics() }

// Failed reports whether the unit produced error diagnostics.
func (r *ParseResult) Failed() bool { return r.Unit.Failed() }

func (r *ParseResult) Close() error { return r.Unit.Close() }

// Parse reads and parses a single file. Syntax errors are not Go errors:
// they end up in Bag and Failed reports them.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	return parseContent(ctx, fs, path, content, opts)
}

func parseContent(ctx context.Context, fs *source.FileSet, path string, content []byte, opts Options) (*ParseResult, error) {
	uopts, err := opts.unitOptions()
	if err != nil {
		return nil, err
	}
	uopts.FileSet = fs
	u := unit.New(path, content, uopts)
	if err := u.Run(ctx); err != nil && !errors.Is(err, unit.ErrFailed) {
		_ = u.Close()
		return nil, err
	}
	return &ParseResult{FileSet: fs, Unit: u}, nil
}
