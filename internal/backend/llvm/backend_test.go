package llvm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"arkc/internal/ast"
	"arkc/internal/backend"
	"arkc/internal/diag"
	"arkc/internal/lexer"
	"arkc/internal/parser"
	"arkc/internal/source"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("m.ark", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(lexer.New(file, lexer.Options{Reporter: rep}))
	res, err := parser.ParseFile(context.Background(), "m.ark", toks, parser.Options{Reporter: rep})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Failed() || bag.HasErrors() {
		t.Fatalf("unexpected syntax errors in %q", src)
	}
	return res.File
}

func TestEmitDeclarations(t *testing.T) {
	src := `
struct Point { x: int, mut y: float }
struct Empty {}
func add(a: int, b: ^Point): int { return a }
func touch(xs: []int, n: Node) {}
mut counter: int = 5
flag := true
name := "hi"
origin: Point
`
	ir, err := EmitModule(context.Background(), "m", DefaultTriple, parse(t, src))
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	for _, want := range []string{
		"; ModuleID = 'm'\n",
		"target triple = \"x86_64-linux-gnu\"\n",
		"%slice = type { ptr, i64, i64 }",
		"%Node = type opaque\n",
		"%Empty = type {}\n",
		"%Point = type { i64, double }\n",
		"@.str.0 = private unnamed_addr constant [3 x i8] c\"\\68\\69\\00\"\n",
		"@counter = global i64 5\n",
		"@flag = constant i1 true\n",
		"@name = constant ptr @.str.0\n",
		"@origin = constant %Point zeroinitializer\n",
		"declare i64 @add(i64, ptr)\n",
		"declare void @touch(%slice, %Node)\n",
	} {
		if !strings.Contains(ir, want) {
			t.Errorf("IR missing %q:\n%s", want, ir)
		}
	}
	// типы объявлены раньше глобалов
	if strings.Index(ir, "%Point = type") > strings.Index(ir, "@origin") {
		t.Errorf("struct type after its use:\n%s", ir)
	}
}

func TestEmitStringGlobals(t *testing.T) {
	src := "b := \"zz\"\na := \"aa\"\nc := \"zz\"\n"
	ir, err := EmitModule(context.Background(), "m", DefaultTriple, parse(t, src))
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	for _, want := range []string{
		"@.str.0 = private unnamed_addr constant [3 x i8] c\"\\61\\61\\00\"\n",
		"@.str.1 = private unnamed_addr constant [3 x i8] c\"\\7A\\7A\\00\"\n",
		"@b = constant ptr @.str.1\n",
		"@a = constant ptr @.str.0\n",
		"@c = constant ptr @.str.1\n",
	} {
		if !strings.Contains(ir, want) {
			t.Errorf("IR missing %q:\n%s", want, ir)
		}
	}
	if strings.Contains(ir, "ptr @\n") {
		t.Errorf("global references an unnamed constant:\n%s", ir)
	}
	if n := strings.Count(ir, "unnamed_addr"); n != 2 {
		t.Errorf("got %d string constants, want 2 (equal literals share one)", n)
	}
}

func TestEmitNilFile(t *testing.T) {
	if _, err := EmitModule(context.Background(), "m", DefaultTriple, nil); err == nil {
		t.Fatal("expected error for nil file")
	}
}

func TestModuleRelease(t *testing.T) {
	b := New("")
	mod, err := b.NewModule(context.Background(), "m", parse(t, "func f() {}"))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if mod.Name() != "m" || b.Live() != 1 {
		t.Fatalf("name=%q live=%d", mod.Name(), b.Live())
	}
	if !strings.Contains(mod.(*Module).IR(), "declare void @f()") {
		t.Fatalf("IR: %s", mod.(*Module).IR())
	}
	if err := mod.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := mod.Release(); !errors.Is(err, backend.ErrReleased) {
		t.Fatalf("second release: %v", err)
	}
	if b.Live() != 0 || b.Created() != 1 {
		t.Fatalf("live=%d created=%d", b.Live(), b.Created())
	}
}

func TestNewModuleCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New("").NewModule(ctx, "m", parse(t, "")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConcurrentModules(t *testing.T) {
	b := New("")
	file := parse(t, "func f(a: int): int { return a }\nstruct S { v: []int }")
	var wg sync.WaitGroup
	mods := make([]backend.Module, 32)
	errs := make([]error, len(mods))
	for i := range mods {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mods[i], errs[i] = b.NewModule(context.Background(), fmt.Sprintf("m%d", i%4), file)
		}()
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("module %d: %v", i, err)
		}
	}
	if b.Live() != len(mods) {
		t.Fatalf("live=%d", b.Live())
	}
	for _, m := range mods {
		if err := m.Release(); err != nil {
			t.Fatalf("release: %v", err)
		}
	}
	if b.Live() != 0 {
		t.Fatalf("live after release=%d", b.Live())
	}
}
