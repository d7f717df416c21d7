package unit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"arkc/internal/ast"
	"arkc/internal/backend"
	"arkc/internal/backend/llvm"
	"arkc/internal/diag"
	"arkc/internal/observ"
	"arkc/internal/token"
)

// tracker records every released node and fails on a double release.
type tracker struct {
	t    *testing.T
	seen map[ast.Node]int
}

func newTracker(t *testing.T) *tracker {
	return &tracker{t: t, seen: make(map[ast.Node]int)}
}

func (tr *tracker) observe(n ast.Node) {
	tr.seen[n]++
	if tr.seen[n] > 1 {
		tr.t.Errorf("node %s released twice", n.Kind())
	}
}

func TestRunSuccess(t *testing.T) {
	u := New("a.ark", []byte("x = 1 + 2"), Options{})
	require.Equal(t, StateNew, u.State())
	require.NoError(t, u.Run(context.Background()))
	require.Equal(t, StateParsed, u.State())

	kinds := make([]token.Kind, 0, len(u.Tokens()))
	for _, tok := range u.Tokens() {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []token.Kind{token.Ident, token.Assign, token.IntLit, token.Plus, token.IntLit, token.EOF}, kinds)
	require.Len(t, u.AST().Items, 1)
	require.IsType(t, &ast.AssignStmt{}, u.AST().Items[0])
	require.Equal(t, 0, u.Diagnostics().Len())
}

func TestRunEmpty(t *testing.T) {
	u := New("empty.ark", nil, Options{})
	require.NoError(t, u.Run(context.Background()))
	require.Len(t, u.Tokens(), 1)
	require.Empty(t, u.AST().Items)
	require.False(t, u.Failed())
}

func TestRunMissingExpression(t *testing.T) {
	u := New("a.ark", []byte("x = "), Options{})
	err := u.Run(context.Background())
	require.ErrorIs(t, err, ErrFailed)
	require.True(t, u.Failed())
	require.Equal(t, StateFailed, u.State())

	items := u.Diagnostics().Items()
	require.Len(t, items, 1)
	require.Equal(t, diag.SynExpectExpression, items[0].Code)
	require.Contains(t, items[0].Message, "expected expression")

	// повторный Run возвращает тот же итог
	require.ErrorIs(t, u.Run(context.Background()), ErrFailed)
}

func TestRunUnterminatedString(t *testing.T) {
	u := New("a.ark", []byte(`x = "abc`), Options{})
	require.ErrorIs(t, u.Run(context.Background()), ErrFailed)

	var sawInvalid bool
	for _, tok := range u.Tokens() {
		if tok.Kind == token.Invalid {
			sawInvalid = true
		}
	}
	require.True(t, sawInvalid)
	codes := make([]diag.Code, 0)
	for _, d := range u.Diagnostics().Items() {
		codes = append(codes, d.Code)
	}
	require.Contains(t, codes, diag.LexUnterminatedString)
	require.Greater(t, len(codes), 1, "parser must report too")
}

func TestRunForwardsToReporter(t *testing.T) {
	extra := diag.NewBag(0)
	u := New("a.ark", []byte("x = "), Options{Reporter: diag.BagReporter{Bag: extra}})
	require.Error(t, u.Run(context.Background()))
	require.Equal(t, u.Diagnostics().Len(), extra.Len())
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	u := New("a.ark", []byte("x = 1"), Options{})
	require.ErrorIs(t, u.Run(ctx), context.Canceled)
}

func TestRunOutcomeIsFinal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	u := New("a.ark", []byte("a = 1\nb = 2"), Options{})
	require.NoError(t, u.Run(ctx))
	cancel()
	// итог уже зафиксирован
	require.NoError(t, u.Run(ctx))
}

func TestModuleLifecycle(t *testing.T) {
	be := llvm.New("")
	tr := newTracker(t)
	u := New("m.ark", []byte("func f(a: int): int { return a }\nmut g: int = 1"), Options{Backend: be, OnRelease: tr.observe})

	_, err := u.Module(context.Background())
	require.ErrorIs(t, err, ErrNotParsed)

	require.NoError(t, u.Run(context.Background()))
	mod, err := u.Module(context.Background())
	require.NoError(t, err)
	again, err := u.Module(context.Background())
	require.NoError(t, err)
	require.Same(t, mod, again, "module is created once")
	require.Equal(t, 1, be.Created())
	require.Contains(t, mod.(*llvm.Module).IR(), "declare i64 @f(i64)")

	total := ast.Count(u.AST())
	require.NoError(t, u.Close())
	require.Len(t, tr.seen, total)
	require.Equal(t, 0, be.Live())
	require.Nil(t, u.AST())
	require.Nil(t, u.Tokens())

	require.NoError(t, u.Close(), "second close is a no-op")
	require.Len(t, tr.seen, total)

	require.ErrorIs(t, u.Run(context.Background()), ErrClosed)
	_, err = u.Module(context.Background())
	require.ErrorIs(t, err, ErrClosed)
}

func TestModuleFailedUnit(t *testing.T) {
	u := New("m.ark", []byte("func ("), Options{Backend: llvm.New("")})
	require.Error(t, u.Run(context.Background()))
	_, err := u.Module(context.Background())
	require.ErrorIs(t, err, ErrFailed)
	require.NoError(t, u.Close())
}

func TestModuleNoBackend(t *testing.T) {
	u := New("m.ark", []byte("func f() {}"), Options{})
	require.NoError(t, u.Run(context.Background()))
	_, err := u.Module(context.Background())
	require.ErrorIs(t, err, ErrNoBackend)
}

type failingModule struct{ released int }

func (m *failingModule) Name() string { return "bad" }

func (m *failingModule) Release() error {
	m.released++
	return errors.New("boom")
}

type stubBackend struct{ mod *failingModule }

func (b stubBackend) NewModule(context.Context, string, *ast.File) (backend.Module, error) {
	return b.mod, nil
}

func TestCloseReportsReleaseErrorOnce(t *testing.T) {
	mod := &failingModule{}
	u := New("m.ark", []byte("x = 1"), Options{Backend: stubBackend{mod: mod}})
	require.NoError(t, u.Run(context.Background()))
	_, err := u.Module(context.Background())
	require.NoError(t, err)
	require.ErrorContains(t, u.Close(), "boom")
	require.NoError(t, u.Close())
	require.Equal(t, 1, mod.released)
}

func TestCloseWithoutRun(t *testing.T) {
	u := New("m.ark", []byte("x = 1"), Options{})
	require.NoError(t, u.Close())
	require.Equal(t, StateClosed, u.State())
}

func TestUnitsInParallel(t *testing.T) {
	be := llvm.New("")
	timer := observ.NewTimer()
	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u := New("p.ark", []byte("func f() {}\nstruct S { a: int }"), Options{Backend: be, Timer: timer})
			if err := u.Run(context.Background()); err != nil {
				errs[i] = err
				return
			}
			if _, err := u.Module(context.Background()); err != nil {
				errs[i] = err
				return
			}
			errs[i] = u.Close()
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, 16, be.Created())
	require.Equal(t, 0, be.Live())
	require.Len(t, timer.Phases(), 16*3)
}
