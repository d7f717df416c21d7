package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"arkc/internal/diag"
	"arkc/internal/source"
)

// DefaultInclude selects source files in directory mode.
var DefaultInclude = []string{"**/*.ark"}

// DirResult collects per-file results in path order.
type DirResult struct {
	FileSet *source.FileSet
	Files   []CheckResult
}

// Failed reports whether any file produced error diagnostics.
func (r *DirResult) Failed() bool {
	for i := range r.Files {
		if r.Files[i].Failed {
			return true
		}
	}
	return false
}

// ListFiles returns the files under dir matching include and none of
// exclude, as sorted slash-separated paths relative to dir.
func ListFiles(dir string, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	for _, p := range append(append([]string(nil), include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob %q", p)
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if matchAny(include, rel) && !matchAny(exclude, rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// CheckDir checks every matching file under dir with independent units in
// parallel. Files that cannot be read get an IO diagnostic instead of
// aborting the run.
func CheckDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	files, err := ListFiles(dir, opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	result := &DirResult{FileSet: fileSet, Files: make([]CheckResult, len(files))}
	if len(files) == 0 {
		return result, nil
	}

	for _, path := range files {
		opts.Progress.emit(ProgressEvent{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	log.Debugf("check %s: %d files, %d jobs", dir, len(files), jobs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			full := filepath.Join(dir, filepath.FromSlash(path))
			content, err := os.ReadFile(full) // #nosec G304 -- path comes from walking dir
			if err != nil {
				result.Files[i] = loadFailure(path, err, opts.MaxDiagnostics)
				opts.Progress.emit(ProgressEvent{File: path, Stage: StageLoad, Status: StatusError})
				return nil
			}
			res, err := checkContent(gctx, fileSet, path, content, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			// индекс i уникален для горутины, мьютекс не нужен
			result.Files[i] = *res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	opts.Progress.emit(ProgressEvent{Stage: StageParse, Status: StatusDone})
	return result, nil
}

func loadFailure(path string, err error, maxDiagnostics int) CheckResult {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
	return CheckResult{Path: path, Bag: bag, Failed: true}
}
