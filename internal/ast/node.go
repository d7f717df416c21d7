package ast

import (
	"arkc/internal/source"
)

// Kind is the tag of a node variant.
type Kind uint8

const (
	KindFile Kind = iota
	KindFuncDecl
	KindParam
	KindStructDecl
	KindField
	KindVarDecl
	KindBlockStmt
	KindReturnStmt
	KindIfStmt
	KindAssignStmt
	KindExprStmt
	KindIdent
	KindIntLit
	KindFloatLit
	KindStringLit
	KindRuneLit
	KindBoolLit
	KindUnary
	KindBinary
	KindParen
	KindCall
	KindMember
	KindIndex
	KindNamedType
	KindPointerType
	KindSliceType

	kindCount
)

var kindNames = [kindCount]string{
	KindFile:        "File",
	KindFuncDecl:    "FuncDecl",
	KindParam:       "Param",
	KindStructDecl:  "StructDecl",
	KindField:       "Field",
	KindVarDecl:     "VarDecl",
	KindBlockStmt:   "BlockStmt",
	KindReturnStmt:  "ReturnStmt",
	KindIfStmt:      "IfStmt",
	KindAssignStmt:  "AssignStmt",
	KindExprStmt:    "ExprStmt",
	KindIdent:       "Ident",
	KindIntLit:      "IntLit",
	KindFloatLit:    "FloatLit",
	KindStringLit:   "StringLit",
	KindRuneLit:     "RuneLit",
	KindBoolLit:     "BoolLit",
	KindUnary:       "Unary",
	KindBinary:      "Binary",
	KindParen:       "Paren",
	KindCall:        "Call",
	KindMember:      "Member",
	KindIndex:       "Index",
	KindNamedType:   "NamedType",
	KindPointerType: "PointerType",
	KindSliceType:   "SliceType",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Node is implemented by every tree node.
type Node interface {
	Span() source.Span
	Kind() Kind
	// Parent returns the enclosing node or nil for a root. The reference is
	// informational and never owns the parent.
	Parent() Node
	base() *nodeBase
}

// Item is a top-level construct: a declaration or a statement.
type Item interface {
	Node
	itemNode()
}

// Decl is a named module-level declaration.
type Decl interface {
	Item
	declNode()
}

// Stmt may appear in a block or at the top level.
type Stmt interface {
	Item
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

// TypeExpr is a type reference: ^T, []T or a name.
type TypeExpr interface {
	Node
	typeNode()
}

type nodeBase struct {
	span     source.Span
	parent   Node
	released bool
}

func (b *nodeBase) Span() source.Span { return b.span }
func (b *nodeBase) Parent() Node      { return b.parent }
func (b *nodeBase) base() *nodeBase   { return b }

type declBase struct{ nodeBase }

func (declBase) itemNode() {}
func (declBase) declNode() {}

type stmtBase struct{ nodeBase }

func (stmtBase) itemNode() {}
func (stmtBase) stmtNode() {}

type exprBase struct{ nodeBase }

func (exprBase) exprNode() {}

type typeBase struct{ nodeBase }

func (typeBase) typeNode() {}

// adopt binds children to parent. Nil interfaces are skipped; callers must
// not pass typed nil pointers.
func adopt(parent Node, children ...Node) {
	for _, c := range children {
		if c != nil {
			c.base().parent = parent
		}
	}
}

func adoptAll[T Node](parent Node, children []T) {
	for _, c := range children {
		c.base().parent = parent
	}
}
