// Package testkit holds structural checks shared by parser tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"arkc/internal/ast"
	"arkc/internal/source"
)

// CheckTreeInvariants runs a minimal set of invariants on a parsed file:
// 1) every span is well-formed and within the source content
// 2) every child points back at its parent
// 3) every non-empty item span lies inside the file span
// 4) the tree has not been released
func CheckTreeInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file or source")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	for n := range ast.Preorder(f) {
		sp := n.Span()
		switch {
		case ast.Released(n):
			return fmt.Errorf("%s at %v is released", n.Kind(), sp)
		case sp.End < sp.Start:
			return fmt.Errorf("%s has inverted span %v", n.Kind(), sp)
		case sp.End > lenContent:
			return fmt.Errorf("%s span end beyond content: %d > %d", n.Kind(), sp.End, lenContent)
		}
		for _, c := range ast.Children(n) {
			if c.Parent() != n {
				return fmt.Errorf("%s at %v does not point at its parent %s", c.Kind(), c.Span(), n.Kind())
			}
		}
	}

	fileSpan := f.Span()
	for _, it := range f.Items {
		sp := it.Span()
		if sp.Empty() {
			continue
		}
		if sp.Start < fileSpan.Start || sp.End > fileSpan.End {
			return fmt.Errorf("%s span %v outside file span %v", it.Kind(), sp, fileSpan)
		}
	}
	return nil
}
