package ast

import (
	"arkc/internal/source"
	"arkc/internal/token"
)

type Ident struct {
	exprBase
	Name string
}

func (*Ident) Kind() Kind { return KindIdent }

func NewIdent(sp source.Span, name string) *Ident {
	return &Ident{exprBase: exprBase{nodeBase{span: sp}}, Name: name}
}

// IntLit keeps the source spelling next to the decoded value so that the
// printer reproduces 0xff as 0xff.
type IntLit struct {
	exprBase
	Raw   string
	Value uint64
}

func (*IntLit) Kind() Kind { return KindIntLit }

func NewIntLit(sp source.Span, raw string, v uint64) *IntLit {
	return &IntLit{exprBase: exprBase{nodeBase{span: sp}}, Raw: raw, Value: v}
}

type FloatLit struct {
	exprBase
	Raw   string
	Value float64
}

func (*FloatLit) Kind() Kind { return KindFloatLit }

func NewFloatLit(sp source.Span, raw string, v float64) *FloatLit {
	return &FloatLit{exprBase: exprBase{nodeBase{span: sp}}, Raw: raw, Value: v}
}

type StringLit struct {
	exprBase
	Raw   string // с кавычками и escape как в исходнике
	Value string
}

func (*StringLit) Kind() Kind { return KindStringLit }

func NewStringLit(sp source.Span, raw, v string) *StringLit {
	return &StringLit{exprBase: exprBase{nodeBase{span: sp}}, Raw: raw, Value: v}
}

type RuneLit struct {
	exprBase
	Raw   string
	Value rune
}

func (*RuneLit) Kind() Kind { return KindRuneLit }

func NewRuneLit(sp source.Span, raw string, v rune) *RuneLit {
	return &RuneLit{exprBase: exprBase{nodeBase{span: sp}}, Raw: raw, Value: v}
}

type BoolLit struct {
	exprBase
	Value bool
}

func (*BoolLit) Kind() Kind { return KindBoolLit }

func NewBoolLit(sp source.Span, v bool) *BoolLit {
	return &BoolLit{exprBase: exprBase{nodeBase{span: sp}}, Value: v}
}

// Unary: Op X, Op is one of Minus, Bang, Tilde, Caret (address-of), At (deref).
type Unary struct {
	exprBase
	Op token.Kind
	X  Expr
}

func (*Unary) Kind() Kind { return KindUnary }

func NewUnary(sp source.Span, op token.Kind, x Expr) *Unary {
	u := &Unary{exprBase: exprBase{nodeBase{span: sp}}, Op: op, X: x}
	adopt(u, x)
	return u
}

type Binary struct {
	exprBase
	Op token.Kind
	X  Expr
	Y  Expr
}

func (*Binary) Kind() Kind { return KindBinary }

// NewBinary spans from the start of x to the end of y.
func NewBinary(op token.Kind, x, y Expr) *Binary {
	b := &Binary{exprBase: exprBase{nodeBase{span: x.Span().Cover(y.Span())}}, Op: op, X: x, Y: y}
	adopt(b, x, y)
	return b
}

// Paren keeps explicit grouping so the printer can reproduce it.
type Paren struct {
	exprBase
	X Expr
}

func (*Paren) Kind() Kind { return KindParen }

func NewParen(sp source.Span, x Expr) *Paren {
	p := &Paren{exprBase: exprBase{nodeBase{span: sp}}, X: x}
	adopt(p, x)
	return p
}

type Call struct {
	exprBase
	Fun  Expr
	Args []Expr
}

func (*Call) Kind() Kind { return KindCall }

func NewCall(sp source.Span, fun Expr, args []Expr) *Call {
	c := &Call{exprBase: exprBase{nodeBase{span: sp}}, Fun: fun, Args: args}
	adopt(c, fun)
	adoptAll(c, args)
	return c
}

// Member: X.Name
type Member struct {
	exprBase
	X    Expr
	Name *Ident
}

func (*Member) Kind() Kind { return KindMember }

func NewMember(sp source.Span, x Expr, name *Ident) *Member {
	m := &Member{exprBase: exprBase{nodeBase{span: sp}}, X: x, Name: name}
	adopt(m, x, name)
	return m
}

// Index: X[Index]
type Index struct {
	exprBase
	X     Expr
	Index Expr
}

func (*Index) Kind() Kind { return KindIndex }

func NewIndex(sp source.Span, x, index Expr) *Index {
	n := &Index{exprBase: exprBase{nodeBase{span: sp}}, X: x, Index: index}
	adopt(n, x, index)
	return n
}
