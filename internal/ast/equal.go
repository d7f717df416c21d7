package ast

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// structural ignores positions, parent links and release state: two trees
// parsed from differently formatted sources compare equal.
var structural = cmp.Options{
	cmpopts.IgnoreUnexported(
		File{}, FuncDecl{}, Param{}, StructDecl{}, Field{}, VarDecl{},
		BlockStmt{}, ReturnStmt{}, IfStmt{}, AssignStmt{}, ExprStmt{},
		Ident{}, IntLit{}, FloatLit{}, StringLit{}, RuneLit{}, BoolLit{},
		Unary{}, Binary{}, Paren{}, Call{}, Member{}, Index{},
		NamedType{}, PointerType{}, SliceType{},
	),
	cmpopts.IgnoreFields(File{}, "Name"),
	cmpopts.EquateEmpty(),
	cmpopts.EquateNaNs(),
}

// Equal reports whether a and b have the same shape and contents.
func Equal(a, b Node) bool {
	return cmp.Equal(a, b, structural)
}

// Diff renders the structural difference between a and b, empty when Equal.
func Diff(a, b Node) string {
	return cmp.Diff(a, b, structural)
}
