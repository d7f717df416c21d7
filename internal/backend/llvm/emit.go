package llvm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"arkc/internal/ast"
)

type stringConst struct {
	bytes      []byte
	arrayLen   int
	globalName string
}

// Emitter renders module-level declarations of a file as textual LLVM IR.
// Function bodies are not lowered: every function becomes a declaration.
type Emitter struct {
	triple       string
	file         *ast.File
	buf          strings.Builder
	structs      map[string]*ast.StructDecl
	opaque       map[string]struct{}
	stringConsts map[string]*stringConst
	stringOrder  []string
	needSlice    bool
}

// EmitModule renders file as an IR module named name.
func EmitModule(ctx context.Context, name, triple string, file *ast.File) (string, error) {
	e := &Emitter{
		triple:       triple,
		file:         file,
		structs:      make(map[string]*ast.StructDecl),
		opaque:       make(map[string]struct{}),
		stringConsts: make(map[string]*stringConst),
	}
	if file == nil {
		return "", fmt.Errorf("module %s: nil file", name)
	}
	e.collectStructs()
	e.collectStringConsts()

	// тело собираем отдельно: типы и строки надо вывести до него
	var body strings.Builder
	if err := e.emitStructTypes(&body); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	globals, err := e.emitGlobals()
	if err != nil {
		return "", err
	}
	funcs, err := e.emitFunctions()
	if err != nil {
		return "", err
	}

	fmt.Fprintf(&e.buf, "; ModuleID = '%s'\n", name)
	e.emitPreamble()
	e.emitTypeDecls()
	e.buf.WriteString(body.String())
	e.emitStringConsts()
	e.buf.WriteString(globals)
	e.buf.WriteString(funcs)
	return e.buf.String(), nil
}

func (e *Emitter) emitPreamble() {
	fmt.Fprintf(&e.buf, "target triple = %q\n\n", e.triple)
}

func (e *Emitter) collectStructs() {
	for _, d := range e.file.Decls() {
		if st, ok := d.(*ast.StructDecl); ok {
			e.structs[st.Name.Name] = st
		}
	}
}

func (e *Emitter) collectStringConsts() {
	for _, d := range e.file.Decls() {
		v, ok := d.(*ast.VarDecl)
		if !ok {
			continue
		}
		if lit, ok := v.Value.(*ast.StringLit); ok {
			if _, seen := e.stringConsts[lit.Value]; !seen {
				data := []byte(lit.Value)
				e.stringConsts[lit.Value] = &stringConst{bytes: data, arrayLen: len(data) + 1}
				e.stringOrder = append(e.stringOrder, lit.Value)
			}
		}
	}
	// имена раздаём до emitGlobals: инициализаторы ссылаются на .str.N
	sort.Strings(e.stringOrder)
	for idx, raw := range e.stringOrder {
		e.stringConsts[raw].globalName = fmt.Sprintf(".str.%d", idx)
	}
}

func (e *Emitter) emitStructTypes(out *strings.Builder) error {
	names := make([]string, 0, len(e.structs))
	for name := range e.structs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		st := e.structs[name]
		fields := make([]string, 0, len(st.Fields))
		for _, f := range st.Fields {
			ty, err := e.valueType(f.Type)
			if err != nil {
				return fmt.Errorf("struct %s field %s: %w", name, f.Name.Name, err)
			}
			fields = append(fields, ty)
		}
		if len(fields) == 0 {
			fmt.Fprintf(out, "%%%s = type {}\n", name)
			continue
		}
		fmt.Fprintf(out, "%%%s = type { %s }\n", name, strings.Join(fields, ", "))
	}
	if len(names) > 0 {
		out.WriteString("\n")
	}
	return nil
}

// emitTypeDecls выводит служебные и opaque типы, найденные при обходе.
func (e *Emitter) emitTypeDecls() {
	wrote := false
	if e.needSlice {
		fmt.Fprintf(&e.buf, "%%slice = type { ptr, i64, i64 } ; size %d, align %d\n", sliceHeaderSize, sliceHeaderAlign)
		wrote = true
	}
	names := make([]string, 0, len(e.opaque))
	for name := range e.opaque {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&e.buf, "%%%s = type opaque\n", name)
		wrote = true
	}
	if wrote {
		e.buf.WriteString("\n")
	}
}

func (e *Emitter) emitStringConsts() {
	if len(e.stringOrder) == 0 {
		return
	}
	for _, raw := range e.stringOrder {
		sc := e.stringConsts[raw]
		lit := formatLLVMBytes(sc.bytes, sc.arrayLen)
		fmt.Fprintf(&e.buf, "@%s = private unnamed_addr constant [%d x i8] %s\n", sc.globalName, sc.arrayLen, lit)
	}
	e.buf.WriteString("\n")
}

func (e *Emitter) emitGlobals() (string, error) {
	var out strings.Builder
	for _, d := range e.file.Decls() {
		v, ok := d.(*ast.VarDecl)
		if !ok {
			continue
		}
		ty, init, err := e.globalInit(v)
		if err != nil {
			return "", fmt.Errorf("global %s: %w", v.Name.Name, err)
		}
		kind := "constant"
		if v.Mut {
			kind = "global"
		}
		fmt.Fprintf(&out, "@%s = %s %s %s\n", v.Name.Name, kind, ty, init)
	}
	if out.Len() > 0 {
		out.WriteString("\n")
	}
	return out.String(), nil
}

// globalInit подбирает тип и инициализатор. Без явного типа тип берётся из
// литерала; всё, что не литерал, инициализируется нулём.
func (e *Emitter) globalInit(v *ast.VarDecl) (ty, init string, err error) {
	if v.Type != nil {
		if ty, err = e.valueType(v.Type); err != nil {
			return "", "", err
		}
	}
	switch lit := v.Value.(type) {
	case *ast.IntLit:
		if ty == "" {
			ty = "i64"
		}
		if isIntType(ty) {
			return ty, fmt.Sprintf("%d", lit.Value), nil
		}
	case *ast.BoolLit:
		if ty == "" {
			ty = "i1"
		}
		if ty == "i1" {
			if lit.Value {
				return ty, "true", nil
			}
			return ty, "false", nil
		}
	case *ast.FloatLit:
		if ty == "" {
			ty = "double"
		}
		if ty == "double" || ty == "float" {
			return ty, formatFloat(lit.Value), nil
		}
	case *ast.RuneLit:
		if ty == "" {
			ty = "i32"
		}
		if isIntType(ty) {
			return ty, fmt.Sprintf("%d", lit.Value), nil
		}
	case *ast.StringLit:
		if ty == "" {
			ty = "ptr"
		}
		if ty == "ptr" {
			return ty, "@" + e.stringConsts[lit.Value].globalName, nil
		}
	}
	if ty == "" {
		ty = "i64"
	}
	return ty, "zeroinitializer", nil
}

func (e *Emitter) emitFunctions() (string, error) {
	var out strings.Builder
	for _, d := range e.file.Decls() {
		fn, ok := d.(*ast.FuncDecl)
		if !ok {
			continue
		}
		ret, err := e.llvmType(fn.Result)
		if err != nil {
			return "", fmt.Errorf("func %s result: %w", fn.Name.Name, err)
		}
		params := make([]string, 0, len(fn.Params))
		for _, prm := range fn.Params {
			ty, err := e.valueType(prm.Type)
			if err != nil {
				return "", fmt.Errorf("func %s param %s: %w", fn.Name.Name, prm.Name.Name, err)
			}
			params = append(params, ty)
		}
		fmt.Fprintf(&out, "declare %s @%s(%s)\n", ret, fn.Name.Name, strings.Join(params, ", "))
	}
	return out.String(), nil
}
