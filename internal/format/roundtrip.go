package format

import (
	"context"
	"errors"
	"fmt"

	"arkc/internal/ast"
	"arkc/internal/diag"
	"arkc/internal/lexer"
	"arkc/internal/parser"
	"arkc/internal/source"
)

// ErrNotRoundTrip is wrapped by CheckRoundTrip when the formatted output
// parses into a different tree.
var ErrNotRoundTrip = errors.New("formatted output does not round-trip")

// ErrInvalidSource is wrapped by CheckRoundTrip when the input itself does
// not parse cleanly.
var ErrInvalidSource = errors.New("source has syntax errors")

func parseOnce(ctx context.Context, name string, src []byte) (*ast.File, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, src))
	bag := diag.NewBag(0)
	reporter := diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(lexer.New(file, lexer.Options{Reporter: reporter}))
	res, err := parser.ParseFile(ctx, name, toks, parser.Options{Reporter: reporter})
	if err != nil {
		return nil, err
	}
	if res.Failed() || bag.HasErrors() {
		return res.File, fmt.Errorf("%s: %d syntax errors", name, max(bag.ErrorCount(), len(res.Failures)))
	}
	return res.File, nil
}

// CheckRoundTrip parses src, formats the tree, parses the output again and
// compares both trees. It returns the formatted bytes.
func CheckRoundTrip(ctx context.Context, name string, src []byte, opt Options) ([]byte, error) {
	orig, err := parseOnce(ctx, name, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}
	out := FormatFile(orig, opt)
	again, err := parseOnce(ctx, name, out)
	if err != nil {
		return out, fmt.Errorf("parse formatted: %w", err)
	}
	if !ast.Equal(orig, again) {
		return out, fmt.Errorf("%w:\n%s", ErrNotRoundTrip, ast.Diff(orig, again))
	}
	// вывод должен быть неподвижной точкой
	if second := FormatFile(again, opt); string(second) != string(out) {
		return out, fmt.Errorf("%w: output is not stable", ErrNotRoundTrip)
	}
	return out, nil
}
