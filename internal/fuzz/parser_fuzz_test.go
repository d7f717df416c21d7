package fuzztests

import (
	"context"
	"errors"
	"testing"
	"time"

	"arkc/internal/ast"
	"arkc/internal/diag"
	"arkc/internal/format"
	"arkc/internal/lexer"
	"arkc/internal/parser"
	"arkc/internal/source"
	"arkc/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func parseInput(ctx context.Context, input []byte) (parser.Result, *source.File, *diag.Bag, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.ark", input))

	bag := diag.NewBag(128)
	reporter := diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(lexer.New(file, lexer.Options{Reporter: reporter}))
	res, err := parser.ParseFile(ctx, "fuzz.ark", toks, parser.Options{
		Reporter:  reporter,
		MaxErrors: 128,
	})
	return res, file, bag, err
}

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		res, file, bag, err := parseInput(context.Background(), input)
		if err != nil {
			t.Fatalf("ParseFile: %v", err)
		}
		if res.File == nil {
			t.Fatal("ParseFile returned nil file")
		}
		if res.Failed() && !bag.HasErrors() {
			t.Fatalf("parse failed without error diagnostics: %+v", res.Failures)
		}
		if err := testkit.CheckTreeInvariants(res.File, file); err != nil {
			t.Fatalf("tree invariants: %v", err)
		}

		// освобождение обходит каждый узел ровно один раз
		total := ast.Count(res.File)
		if released := ast.Release(res.File, nil); released != total {
			t.Fatalf("Release freed %d nodes, tree has %d", released, total)
		}
		if again := ast.Release(res.File, nil); again != 0 {
			t.Fatalf("second Release freed %d nodes", again)
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// It uses a timeout to detect infinite loops that could be caused by
// malformed input or edge cases in error recovery.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("func f() { x + y\nz: int = 3 }"))
	f.Add([]byte("{ x = 1 }"))
	f.Add([]byte("} } } ) ) ]"))
	f.Add([]byte("func f(a: int b: int) {}"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _, _, _ = parseInput(context.Background(), input)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzFormatRoundTrip checks that every cleanly parsed input formats into
// source that parses back into the same tree.
func FuzzFormatRoundTrip(f *testing.F) {
	addBuiltinSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		_, err := format.CheckRoundTrip(context.Background(), "fuzz.ark", input, format.Options{})
		if err != nil && !errors.Is(err, format.ErrInvalidSource) {
			t.Fatalf("round trip of %q: %v", truncateForLog(input, 200), err)
		}
	})
}
