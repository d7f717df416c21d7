package ast

import "arkc/internal/source"

// FuncDecl: func Name(params) [: [mut] Result] Body
type FuncDecl struct {
	declBase
	Doc       []string // строки /// без префикса
	Name      *Ident
	Params    []*Param
	ResultMut bool
	Result    TypeExpr // nil если тип результата не указан
	Body      *BlockStmt
}

func (*FuncDecl) Kind() Kind { return KindFuncDecl }

func NewFuncDecl(sp source.Span, doc []string, name *Ident, params []*Param, resultMut bool, result TypeExpr, body *BlockStmt) *FuncDecl {
	d := &FuncDecl{
		declBase:  declBase{nodeBase{span: sp}},
		Doc:       doc,
		Name:      name,
		Params:    params,
		ResultMut: resultMut,
		Result:    result,
		Body:      body,
	}
	adopt(d, name)
	adoptAll(d, params)
	adopt(d, result)
	adopt(d, body)
	return d
}

type Param struct {
	nodeBase
	Mut  bool
	Name *Ident
	Type TypeExpr
}

func (*Param) Kind() Kind { return KindParam }

func NewParam(sp source.Span, mut bool, name *Ident, typ TypeExpr) *Param {
	p := &Param{nodeBase: nodeBase{span: sp}, Mut: mut, Name: name, Type: typ}
	adopt(p, name, typ)
	return p
}

// StructDecl: struct Name { fields }
type StructDecl struct {
	declBase
	Doc    []string
	Name   *Ident
	Fields []*Field
}

func (*StructDecl) Kind() Kind { return KindStructDecl }

func NewStructDecl(sp source.Span, doc []string, name *Ident, fields []*Field) *StructDecl {
	d := &StructDecl{declBase: declBase{nodeBase{span: sp}}, Doc: doc, Name: name, Fields: fields}
	adopt(d, name)
	adoptAll(d, fields)
	return d
}

type Field struct {
	nodeBase
	Mut  bool
	Name *Ident
	Type TypeExpr
}

func (*Field) Kind() Kind { return KindField }

func NewField(sp source.Span, mut bool, name *Ident, typ TypeExpr) *Field {
	f := &Field{nodeBase: nodeBase{span: sp}, Mut: mut, Name: name, Type: typ}
	adopt(f, name, typ)
	return f
}

// VarDecl: [mut] name : [Type] [= Value]. It is both a declaration at the
// top level and a statement inside blocks.
type VarDecl struct {
	stmtBase
	Mut   bool
	Name  *Ident
	Type  TypeExpr // nil: тип выводится из Value
	Value Expr     // nil: без инициализатора
}

func (*VarDecl) Kind() Kind { return KindVarDecl }
func (*VarDecl) declNode()  {}

func NewVarDecl(sp source.Span, mut bool, name *Ident, typ TypeExpr, value Expr) *VarDecl {
	d := &VarDecl{stmtBase: stmtBase{nodeBase{span: sp}}, Mut: mut, Name: name, Type: typ, Value: value}
	adopt(d, name, typ, value)
	return d
}
