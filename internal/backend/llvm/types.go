package llvm

import (
	"fmt"

	"arkc/internal/ast"
)

const (
	sliceHeaderSize  = 24
	sliceHeaderAlign = 8
)

// builtin names that map directly to LLVM scalar types.
var scalarTypes = map[string]string{
	"int":    "i64",
	"uint":   "i64",
	"int32":  "i32",
	"uint32": "i32",
	"int8":   "i8",
	"uint8":  "i8",
	"byte":   "i8",
	"bool":   "i1",
	"rune":   "i32",
	"float":  "double",
	"f32":    "float",
	"string": "ptr",
}

// llvmType maps a type expression to its LLVM spelling. Unknown names that
// are not declared structs become opaque types.
func (e *Emitter) llvmType(t ast.TypeExpr) (string, error) {
	switch t := t.(type) {
	case nil:
		return "void", nil
	case *ast.NamedType:
		name := t.Name.Name
		if s, ok := scalarTypes[name]; ok {
			return s, nil
		}
		if _, ok := e.structs[name]; !ok {
			e.opaque[name] = struct{}{}
		}
		return "%" + name, nil
	case *ast.PointerType:
		return "ptr", nil
	case *ast.SliceType:
		e.needSlice = true
		return "%slice", nil
	default:
		return "", fmt.Errorf("unsupported type expression %T", t)
	}
}

// valueType: тип значения глобала: void для него недопустим.
func (e *Emitter) valueType(t ast.TypeExpr) (string, error) {
	ty, err := e.llvmType(t)
	if err != nil {
		return "", err
	}
	if ty == "void" {
		return "i8", nil
	}
	return ty, nil
}
