package ast

import "arkc/internal/source"

type BlockStmt struct {
	stmtBase
	Stmts []Stmt
}

func (*BlockStmt) Kind() Kind { return KindBlockStmt }

func NewBlockStmt(sp source.Span, stmts []Stmt) *BlockStmt {
	b := &BlockStmt{stmtBase: stmtBase{nodeBase{span: sp}}, Stmts: stmts}
	adoptAll(b, stmts)
	return b
}

type ReturnStmt struct {
	stmtBase
	Result Expr // nil для голого return
}

func (*ReturnStmt) Kind() Kind { return KindReturnStmt }

func NewReturnStmt(sp source.Span, result Expr) *ReturnStmt {
	r := &ReturnStmt{stmtBase: stmtBase{nodeBase{span: sp}}, Result: result}
	adopt(r, result)
	return r
}

// IfStmt: if Cond Then [else Else]; Else is nil, *IfStmt or *BlockStmt.
type IfStmt struct {
	stmtBase
	Cond Expr
	Then *BlockStmt
	Else Stmt
}

func (*IfStmt) Kind() Kind { return KindIfStmt }

func NewIfStmt(sp source.Span, cond Expr, then *BlockStmt, els Stmt) *IfStmt {
	s := &IfStmt{stmtBase: stmtBase{nodeBase{span: sp}}, Cond: cond, Then: then, Else: els}
	adopt(s, cond, then, els)
	return s
}

// AssignStmt: Target = Value
type AssignStmt struct {
	stmtBase
	Target Expr
	Value  Expr
}

func (*AssignStmt) Kind() Kind { return KindAssignStmt }

func NewAssignStmt(sp source.Span, target, value Expr) *AssignStmt {
	s := &AssignStmt{stmtBase: stmtBase{nodeBase{span: sp}}, Target: target, Value: value}
	adopt(s, target, value)
	return s
}

// ExprStmt is an expression evaluated for its effect, typically a call.
type ExprStmt struct {
	stmtBase
	X Expr
}

func (*ExprStmt) Kind() Kind { return KindExprStmt }

func NewExprStmt(sp source.Span, x Expr) *ExprStmt {
	s := &ExprStmt{stmtBase: stmtBase{nodeBase{span: sp}}, X: x}
	adopt(s, x)
	return s
}
