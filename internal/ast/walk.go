package ast

import (
	"fmt"
	"iter"
)

// Children returns the nodes directly owned by n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	switch n := n.(type) {
	case *File:
		for _, it := range n.Items {
			add(it)
		}
	case *FuncDecl:
		add(n.Name)
		for _, p := range n.Params {
			add(p)
		}
		if n.Result != nil {
			add(n.Result)
		}
		add(n.Body)
	case *Param:
		add(n.Name)
		add(n.Type)
	case *StructDecl:
		add(n.Name)
		for _, f := range n.Fields {
			add(f)
		}
	case *Field:
		add(n.Name)
		add(n.Type)
	case *VarDecl:
		add(n.Name)
		if n.Type != nil {
			add(n.Type)
		}
		if n.Value != nil {
			add(n.Value)
		}
	case *BlockStmt:
		for _, s := range n.Stmts {
			add(s)
		}
	case *ReturnStmt:
		if n.Result != nil {
			add(n.Result)
		}
	case *IfStmt:
		add(n.Cond)
		add(n.Then)
		if n.Else != nil {
			add(n.Else)
		}
	case *AssignStmt:
		add(n.Target)
		add(n.Value)
	case *ExprStmt:
		add(n.X)
	case *Ident, *IntLit, *FloatLit, *StringLit, *RuneLit, *BoolLit:
		// листья
	case *Unary:
		add(n.X)
	case *Binary:
		add(n.X)
		add(n.Y)
	case *Paren:
		add(n.X)
	case *Call:
		add(n.Fun)
		for _, a := range n.Args {
			add(a)
		}
	case *Member:
		add(n.X)
		add(n.Name)
	case *Index:
		add(n.X)
		add(n.Index)
	case *NamedType:
		add(n.Name)
	case *PointerType:
		add(n.Elem)
	case *SliceType:
		add(n.Elem)
	default:
		panic(fmt.Sprintf("ast.Children: unexpected node type %T", n))
	}
	return out
}

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// of node with the visitor w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses the tree in depth-first order. It never mutates nodes.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, c := range Children(node) {
		Walk(v, c)
	}
	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect calls f(node) for each node in depth-first order; if f returns
// false the children of that node are skipped. After the children f(nil) is
// called, like go/ast.Inspect.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Preorder yields the nodes of the tree rooted at root in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var walk func(n Node) bool
		walk = func(n Node) bool {
			if !yield(n) {
				return false
			}
			for _, c := range Children(n) {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(root)
	}
}

// Count returns the number of nodes in the tree rooted at root.
func Count(root Node) int {
	n := 0
	for range Preorder(root) {
		n++
	}
	return n
}
