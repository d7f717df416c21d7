package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"arkc/internal/diag"
	"arkc/internal/lexer"
	"arkc/internal/source"
	"arkc/internal/token"
)

type parsed struct {
	res  Result
	bag  *diag.Bag
	toks []token.Token
}

func parseSource(t *testing.T, src string) parsed {
	t.Helper()
	return parseSourceOpts(t, src, Options{})
}

func parseSourceOpts(t *testing.T, src string, opts Options) parsed {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ark", []byte(src)))
	bag := diag.NewBag(0)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	toks := lexer.Tokenize(lexer.New(file, lexer.Options{Reporter: reporter}))
	opts.Reporter = reporter
	res, err := ParseFile(context.Background(), "test.ark", toks, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return parsed{res: res, bag: bag, toks: toks}
}

func mustParse(t *testing.T, src string) Result {
	t.Helper()
	p := parseSource(t, src)
	if p.res.Failed() || p.bag.HasErrors() {
		t.Fatalf("unexpected failure for %q: %s", src, diagnosticsSummary(p.bag))
	}
	return p.res
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func codesOf(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}
