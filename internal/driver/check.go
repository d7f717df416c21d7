package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"arkc/internal/diag"
	"arkc/internal/source"
)

// CheckResult is the outcome of checking one file. It holds no syntax tree:
// the unit is closed before Check returns.
type CheckResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Items  int
	Failed bool
	Cached bool
}

// Check lexes and parses one file and reports its diagnostics.
func Check(ctx context.Context, path string, opts Options) (*source.FileSet, *CheckResult, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return nil, nil, err
	}
	fs := source.NewFileSet()
	res, err := checkContent(ctx, fs, path, content, opts)
	if err != nil {
		return fs, nil, err
	}
	return fs, res, nil
}

func checkContent(ctx context.Context, fs *source.FileSet, path string, content []byte, opts Options) (*CheckResult, error) {
	start := time.Now()
	var key Digest
	if opts.Cache != nil {
		key = cacheKey(content, opts)
		var payload DiskPayload
		found, err := opts.Cache.Get(key, &payload)
		if err != nil {
			// битый кэш не повод падать
			log.Warningf("cache read %s: %s", path, err)
		}
		if found {
			id, err := fs.AddBytes(path, content)
			if err != nil {
				return nil, err
			}
			bag := diag.NewBag(opts.MaxDiagnostics)
			payload.restore(id, bag)
			log.Debugf("cache hit %s", path)
			opts.Progress.emit(ProgressEvent{File: path, Stage: StageParse, Status: StatusCached, Elapsed: time.Since(start)})
			return &CheckResult{Path: path, FileID: id, Bag: bag, Items: payload.Items, Failed: payload.Failed, Cached: true}, nil
		}
	}

	opts.Progress.emit(ProgressEvent{File: path, Stage: StageParse, Status: StatusWorking})
	pr, err := parseContent(ctx, fs, path, content, opts)
	if err != nil {
		opts.Progress.emit(ProgressEvent{File: path, Stage: StageParse, Status: StatusError, Elapsed: time.Since(start)})
		return nil, err
	}
	res := &CheckResult{
		Path:   path,
		FileID: pr.Unit.Source().ID,
		Bag:    pr.Bag(),
		Items:  len(pr.File().Items),
		Failed: pr.Failed(),
	}
	if err := pr.Close(); err != nil {
		return nil, err
	}

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, toDiskPayload(path, key, res.Items, res.Failed, res.Bag.Items())); err != nil {
			log.Warningf("cache write %s: %s", path, err)
		}
	}
	status := StatusDone
	if res.Failed {
		status = StatusError
	}
	opts.Progress.emit(ProgressEvent{File: path, Stage: StageParse, Status: status, Elapsed: time.Since(start)})
	return res, nil
}

type irModule interface {
	IR() string
}

// Emit parses path and renders the backend module. A file with error
// diagnostics yields ErrDiagnostics and no IR.
func Emit(ctx context.Context, path string, opts Options) (ir string, pr *ParseResult, err error) {
	if opts.Backend == nil {
		return "", nil, errors.New("emit: no backend configured")
	}
	pr, err = Parse(ctx, path, opts)
	if err != nil {
		return "", nil, err
	}
	if pr.Failed() {
		return "", pr, fmt.Errorf("%s: %w", path, ErrDiagnostics)
	}
	idx := opts.Timer.Begin("emit")
	mod, err := pr.Unit.Module(ctx)
	opts.Timer.End(idx, "")
	if err != nil {
		return "", pr, err
	}
	m, ok := mod.(irModule)
	if !ok {
		return "", pr, fmt.Errorf("emit: backend module %T has no textual form", mod)
	}
	return m.IR(), pr, nil
}
