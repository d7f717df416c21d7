package ast

import "arkc/internal/source"

type NamedType struct {
	typeBase
	Name *Ident
}

func (*NamedType) Kind() Kind { return KindNamedType }

func NewNamedType(name *Ident) *NamedType {
	t := &NamedType{typeBase: typeBase{nodeBase{span: name.Span()}}, Name: name}
	adopt(t, name)
	return t
}

// PointerType: ^Elem
type PointerType struct {
	typeBase
	Elem TypeExpr
}

func (*PointerType) Kind() Kind { return KindPointerType }

func NewPointerType(sp source.Span, elem TypeExpr) *PointerType {
	t := &PointerType{typeBase: typeBase{nodeBase{span: sp}}, Elem: elem}
	adopt(t, elem)
	return t
}

// SliceType: []Elem
type SliceType struct {
	typeBase
	Elem TypeExpr
}

func (*SliceType) Kind() Kind { return KindSliceType }

func NewSliceType(sp source.Span, elem TypeExpr) *SliceType {
	t := &SliceType{typeBase: typeBase{nodeBase{span: sp}}, Elem: elem}
	adopt(t, elem)
	return t
}
