// Package unit ties one source text to its tokens, syntax tree and backend
// module, and owns all three until Close.
//
// A Unit is used from one goroutine at a time. Independent units share
// nothing but an optional FileSet, Timer and Backend, all of which are safe
// for concurrent use.
package unit

import (
	"context"
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"arkc/internal/ast"
	"arkc/internal/backend"
	"arkc/internal/diag"
	"arkc/internal/lexer"
	"arkc/internal/observ"
	"arkc/internal/parser"
	"arkc/internal/source"
	"arkc/internal/token"
)

var (
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("compilation unit is closed")
	// ErrNotParsed is returned by Module before a successful Run.
	ErrNotParsed = errors.New("compilation unit has not been parsed")
	// ErrFailed reports that the unit produced error diagnostics.
	ErrFailed = errors.New("compilation unit failed")
	// ErrNoBackend is returned by Module when Options.Backend is nil.
	ErrNoBackend = errors.New("no backend configured")
)

var log = commonlog.GetLogger("arkc.unit")

// State is the lifecycle position of a unit.
type State uint8

const (
	StateNew State = iota
	StateParsed
	StateFailed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateParsed:
		return "parsed"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

type Options struct {
	// FileSet receives the unit's source; nil creates a private set.
	FileSet *source.FileSet
	// Backend is used by Module; may be nil when no module is needed.
	Backend backend.Backend
	// MaxDiagnostics bounds the unit's bag; 0 is unlimited.
	MaxDiagnostics int
	MaxErrors      uint
	MaxDepth       int
	Timer          *observ.Timer
	// Reporter, when set, additionally receives every diagnostic.
	Reporter diag.Reporter
	// OnRelease observes each syntax tree node released by Close.
	OnRelease func(ast.Node)
}

// Unit is a single compilation unit.
type Unit struct {
	name     string
	contents []byte
	opts     Options

	fs     *source.FileSet
	file   *source.File
	bag    *diag.Bag
	tokens []token.Token
	result parser.Result
	module backend.Module
	state  State
	ran    bool
	runErr error
}

// New creates a unit over contents. Nothing is scanned until Run.
func New(name string, contents []byte, opts Options) *Unit {
	fs := opts.FileSet
	if fs == nil {
		fs = source.NewFileSet()
	}
	return &Unit{
		name:     name,
		contents: contents,
		opts:     opts,
		fs:       fs,
		bag:      diag.NewBag(opts.MaxDiagnostics),
	}
}

func (u *Unit) Name() string { return u.name }

func (u *Unit) State() State { return u.state }

func (u *Unit) FileSet() *source.FileSet { return u.fs }

// Source returns the normalized source file, nil before Run.
func (u *Unit) Source() *source.File { return u.file }

// Tokens returns the scanned tokens; the slice is owned by the unit.
func (u *Unit) Tokens() []token.Token { return u.tokens }

// AST returns the syntax tree, nil before Run or after Close.
func (u *Unit) AST() *ast.File { return u.result.File }

// Result returns the parser result including recorded failures.
func (u *Unit) Result() parser.Result { return u.result }

// Diagnostics returns the unit's bag.
func (u *Unit) Diagnostics() *diag.Bag { return u.bag }

// Failed reports whether Run produced any error diagnostic.
func (u *Unit) Failed() bool { return u.state == StateFailed }

func (u *Unit) reporter() diag.Reporter {
	var r diag.Reporter = diag.BagReporter{Bag: u.bag}
	if u.opts.Reporter != nil {
		r = teeReporter{r, u.opts.Reporter}
	}
	return diag.NewDedupReporter(r)
}

// Run lexes the whole source, then parses the tokens. A second call returns
// the outcome of the first. Error diagnostics yield ErrFailed; the syntax
// tree is still available for inspection. Cancellation is reported as the
// context error and is also final.
func (u *Unit) Run(ctx context.Context) error {
	if u.state == StateClosed {
		return ErrClosed
	}
	if u.ran {
		return u.outcome()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	id, err := u.fs.AddBytes(u.name, u.contents)
	if err != nil {
		return fmt.Errorf("load %s: %w", u.name, err)
	}
	u.file = u.fs.Get(id)
	u.contents = nil
	rep := u.reporter()

	idx := u.opts.Timer.Begin("lex " + u.name)
	lx := lexer.New(u.file, lexer.Options{Reporter: rep})
	u.tokens = lexer.Tokenize(lx)
	u.opts.Timer.End(idx, fmt.Sprintf("%d tokens", len(u.tokens)))
	log.Debugf("%s: lexed %d tokens", u.name, len(u.tokens))

	idx = u.opts.Timer.Begin("parse " + u.name)
	res, err := parser.ParseFile(ctx, u.name, u.tokens, parser.Options{
		MaxErrors: u.opts.MaxErrors,
		MaxDepth:  u.opts.MaxDepth,
		Reporter:  rep,
	})
	u.opts.Timer.End(idx, fmt.Sprintf("%d items", itemCount(res.File)))
	u.result = res
	u.ran = true
	if err != nil {
		// отмена окончательна: частичное дерево остаётся у юнита до Close
		u.runErr = fmt.Errorf("parse %s: %w", u.name, err)
		u.state = StateFailed
		return u.runErr
	}
	u.state = StateParsed
	if res.Failed() || u.bag.HasErrors() {
		u.state = StateFailed
	}
	log.Debugf("%s: parsed, state=%s, diagnostics=%d", u.name, u.state, u.bag.Len())
	return u.outcome()
}

func (u *Unit) outcome() error {
	if u.runErr != nil {
		return u.runErr
	}
	if u.state == StateFailed {
		return fmt.Errorf("%s: %w", u.name, ErrFailed)
	}
	return nil
}

func itemCount(f *ast.File) int {
	if f == nil {
		return 0
	}
	return len(f.Items)
}

// Module returns the backend module for the unit, creating it on first use.
func (u *Unit) Module(ctx context.Context) (backend.Module, error) {
	switch {
	case u.state == StateClosed:
		return nil, ErrClosed
	case !u.ran:
		return nil, ErrNotParsed
	case u.state == StateFailed:
		return nil, fmt.Errorf("%s: %w", u.name, ErrFailed)
	case u.module != nil:
		return u.module, nil
	case u.opts.Backend == nil:
		return nil, ErrNoBackend
	}
	idx := u.opts.Timer.Begin("module " + u.name)
	mod, err := u.opts.Backend.NewModule(ctx, u.name, u.result.File)
	u.opts.Timer.End(idx, "")
	if err != nil {
		return nil, fmt.Errorf("module %s: %w", u.name, err)
	}
	log.Debugf("%s: backend module created", u.name)
	u.module = mod
	return mod, nil
}

// Close releases the tokens, the syntax tree and the backend module. Only
// the first call does work; later calls return nil.
func (u *Unit) Close() error {
	if u.state == StateClosed {
		return nil
	}
	u.state = StateClosed
	u.tokens = nil
	u.contents = nil

	released := 0
	if u.result.File != nil {
		released = ast.Release(u.result.File, u.opts.OnRelease)
		u.result.File = nil
	}
	u.result.Failures = nil

	var err error
	if u.module != nil {
		if rerr := u.module.Release(); rerr != nil {
			err = fmt.Errorf("release module %s: %w", u.name, rerr)
		}
		u.module = nil
	}
	log.Debugf("%s: closed, released %d nodes", u.name, released)
	return err
}

type teeReporter [2]diag.Reporter

func (t teeReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	t[0].Report(code, sev, primary, msg, notes)
	t[1].Report(code, sev, primary, msg, notes)
}
