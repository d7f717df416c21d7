package ast

import (
	"testing"

	"arkc/internal/source"
	"arkc/internal/token"
)

func sp(start, end uint32) source.Span { return source.Span{Start: start, End: end} }

// x = 1 + 2
func sampleAssign() *File {
	x := NewIdent(sp(0, 1), "x")
	sum := NewBinary(token.Plus, NewIntLit(sp(4, 5), "1", 1), NewIntLit(sp(8, 9), "2", 2))
	assign := NewAssignStmt(sp(0, 9), x, sum)
	return NewFile(sp(0, 9), "test.ark", []Item{assign})
}

func sampleFunc() *File {
	a := NewParam(sp(9, 15), false, NewIdent(sp(9, 10), "a"), NewNamedType(NewIdent(sp(12, 15), "int")))
	ret := NewReturnStmt(sp(25, 33), NewUnary(sp(32, 34), token.Minus, NewIdent(sp(33, 34), "a")))
	body := NewBlockStmt(sp(23, 36), []Stmt{ret})
	fn := NewFuncDecl(sp(0, 36), []string{"negate"}, NewIdent(sp(5, 8), "neg"), []*Param{a}, false,
		NewPointerType(sp(18, 22), NewNamedType(NewIdent(sp(19, 22), "int"))), body)
	point := NewStructDecl(sp(37, 60), nil, NewIdent(sp(44, 49), "Point"), []*Field{
		NewField(sp(52, 58), true, NewIdent(sp(52, 53), "x"), NewSliceType(sp(55, 58), NewNamedType(NewIdent(sp(57, 58), "f")))),
	})
	return NewFile(sp(0, 60), "fn.ark", []Item{fn, point})
}

func TestFactoriesBindParents(t *testing.T) {
	f := sampleAssign()
	assign := f.Items[0].(*AssignStmt)
	if assign.Parent() != f {
		t.Fatalf("assign parent must be the file")
	}
	bin := assign.Value.(*Binary)
	if bin.Parent() != assign || bin.X.Parent() != bin || bin.Y.Parent() != bin {
		t.Fatalf("binary parents are not bound")
	}
	if bin.Span() != sp(4, 9) {
		t.Fatalf("binary span must cover operands, got %v", bin.Span())
	}
	if f.Parent() != nil {
		t.Fatalf("root must have no parent")
	}
}

func TestEveryNodeHasParentExceptRoot(t *testing.T) {
	f := sampleFunc()
	for n := range Preorder(f) {
		if n == Node(f) {
			continue
		}
		p := n.Parent()
		if p == nil {
			t.Fatalf("%s has no parent", n.Kind())
		}
		found := false
		for _, c := range Children(p) {
			if c == n {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s is not a child of its parent %s", n.Kind(), p.Kind())
		}
	}
}

func TestInspectOrder(t *testing.T) {
	var got []Kind
	Inspect(sampleAssign(), func(n Node) bool {
		if n != nil {
			got = append(got, n.Kind())
		}
		return true
	})
	want := []Kind{KindFile, KindAssignStmt, KindIdent, KindBinary, KindIntLit, KindIntLit}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	visited := 0
	Inspect(sampleFunc(), func(n Node) bool {
		if n == nil {
			return false
		}
		visited++
		_, isFunc := n.(*FuncDecl)
		return !isFunc
	})
	// File, FuncDecl, StructDecl, Ident, Field, Ident, SliceType, NamedType, Ident
	if visited != 9 {
		t.Fatalf("expected 9 visited nodes, got %d", visited)
	}
}

func TestReleaseIsTotalAndOnce(t *testing.T) {
	f := sampleFunc()
	total := Count(f)
	seen := make(map[Node]int)
	n := Release(f, func(n Node) { seen[n]++ })
	if n != total {
		t.Fatalf("released %d of %d nodes", n, total)
	}
	if len(seen) != total {
		t.Fatalf("observer saw %d distinct nodes, want %d", len(seen), total)
	}
	for node, c := range seen {
		if c != 1 {
			t.Fatalf("%s released %d times", node.Kind(), c)
		}
		if node.Parent() != nil {
			t.Fatalf("%s still linked to its parent", node.Kind())
		}
		if !Released(node) {
			t.Fatalf("%s not marked released", node.Kind())
		}
	}
	if again := Release(f, func(Node) { t.Fatal("double release") }); again != 0 {
		t.Fatalf("second release must be a no-op, got %d", again)
	}
}

func TestReleaseChildrenBeforeParent(t *testing.T) {
	var order []Kind
	Release(sampleAssign(), func(n Node) { order = append(order, n.Kind()) })
	if order[len(order)-1] != KindFile {
		t.Fatalf("root must be released last, got %v", order)
	}
	if order[0] != KindIdent {
		t.Fatalf("leaves must be released first, got %v", order)
	}
}

func TestEqualIgnoresSpans(t *testing.T) {
	a := sampleAssign()
	x := NewIdent(sp(10, 11), "x")
	sum := NewBinary(token.Plus, NewIntLit(sp(20, 21), "1", 1), NewIntLit(sp(30, 31), "2", 2))
	b := NewFile(sp(0, 40), "other.ark", []Item{NewAssignStmt(sp(10, 31), x, sum)})
	if !Equal(a, b) {
		t.Fatalf("trees must be equal:\n%s", Diff(a, b))
	}
	c := NewFile(sp(0, 1), "c.ark", []Item{NewAssignStmt(sp(0, 1), NewIdent(sp(0, 1), "y"), NewIntLit(sp(0, 1), "3", 3))})
	if Equal(a, c) {
		t.Fatalf("different trees compare equal")
	}
}

func TestDeclsAndMarkers(t *testing.T) {
	f := sampleFunc()
	if len(f.Decls()) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(f.Decls()))
	}
	var item Item = NewVarDecl(sp(0, 1), false, NewIdent(sp(0, 1), "v"), nil, nil)
	if _, ok := item.(Decl); !ok {
		t.Fatal("VarDecl must be a Decl")
	}
	if _, ok := item.(Stmt); !ok {
		t.Fatal("VarDecl must be a Stmt")
	}
}

func TestKindString(t *testing.T) {
	if KindFuncDecl.String() != "FuncDecl" || KindSliceType.String() != "SliceType" {
		t.Fatal("unexpected kind names")
	}
	if Kind(200).String() != "Kind(?)" {
		t.Fatal("unknown kind must render as Kind(?)")
	}
}
