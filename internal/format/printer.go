package format

import (
	"strings"

	"arkc/internal/ast"
	"arkc/internal/parser"
	"arkc/internal/token"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

type printer struct {
	w *Writer
}

// FormatFile renders the tree as canonical source.
func FormatFile(file *ast.File, opt Options) []byte {
	p := printer{w: NewWriter(opt)}
	p.printItems(file.Items)
	return p.w.Bytes()
}

// Node renders a single node without a trailing newline.
func Node(n ast.Node) string {
	p := printer{w: NewWriter(Options{})}
	switch n := n.(type) {
	case ast.Expr:
		p.expr(n)
	case ast.TypeExpr:
		p.typeExpr(n)
	case *ast.File:
		p.printItems(n.Items)
	case ast.Item:
		p.item(n)
	}
	return strings.TrimSuffix(string(p.w.Bytes()), "\n")
}

func (p *printer) printItems(items []ast.Item) {
	for i, it := range items {
		_, isDecl := it.(ast.Decl)
		_, isVar := it.(*ast.VarDecl)
		// функции и структуры отделяем пустой строкой
		if i > 0 && isDecl && !isVar {
			p.w.BlankLine()
		}
		p.item(it)
		var next ast.Item
		if i+1 < len(items) {
			next = items[i+1]
		}
		p.terminate(it, next)
		if isDecl && !isVar && next != nil {
			p.w.BlankLine()
		}
	}
}

func (p *printer) item(it ast.Item) {
	switch it := it.(type) {
	case *ast.FuncDecl:
		p.funcDecl(it)
	case *ast.StructDecl:
		p.structDecl(it)
	case ast.Stmt:
		p.stmt(it)
	}
}

// terminate завершает строку. ';' ставим только там, где следующая строка
// иначе продолжила бы выражение: "a\n(b)" читается как вызов.
func (p *printer) terminate(cur, next ast.Item) {
	if next != nil && endsWithExpr(cur) && continuesExpr(next) {
		p.w.WriteString(";")
	}
	p.w.Newline()
}

func endsWithExpr(it ast.Item) bool {
	switch it := it.(type) {
	case *ast.ExprStmt, *ast.AssignStmt:
		return true
	case *ast.VarDecl:
		return it.Value != nil
	case *ast.ReturnStmt:
		return it.Result != nil
	}
	return false
}

func continuesExpr(it ast.Item) bool {
	var first ast.Expr
	switch it := it.(type) {
	case *ast.ExprStmt:
		first = it.X
	case *ast.AssignStmt:
		first = it.Target
	default:
		return false
	}
	for {
		switch e := first.(type) {
		case *ast.Binary:
			first = e.X
		case *ast.Call:
			first = e.Fun
		case *ast.Member:
			first = e.X
		case *ast.Index:
			first = e.X
		case *ast.Paren:
			return true
		case *ast.Unary:
			return e.Op == token.Minus || e.Op == token.Caret
		default:
			return false
		}
	}
}

func (p *printer) doc(lines []string) {
	for _, l := range lines {
		if l == "" {
			p.w.WriteString("///")
		} else {
			p.w.WriteString("/// " + l)
		}
		p.w.Newline()
	}
}

func (p *printer) funcDecl(fn *ast.FuncDecl) {
	p.doc(fn.Doc)
	p.w.WriteString("func " + fn.Name.Name + "(")
	for i, prm := range fn.Params {
		if i > 0 {
			p.w.WriteString(", ")
		}
		if prm.Mut {
			p.w.WriteString("mut ")
		}
		p.w.WriteString(prm.Name.Name + ": ")
		p.typeExpr(prm.Type)
	}
	p.w.WriteString(")")
	if fn.Result != nil {
		p.w.WriteString(": ")
		if fn.ResultMut {
			p.w.WriteString("mut ")
		}
		p.typeExpr(fn.Result)
	}
	p.w.WriteString(" ")
	p.block(fn.Body)
}

func (p *printer) structDecl(st *ast.StructDecl) {
	p.doc(st.Doc)
	p.w.WriteString("struct " + st.Name.Name + " {")
	if len(st.Fields) == 0 {
		p.w.WriteString("}")
		return
	}
	p.w.Newline()
	p.w.Indent()
	for _, f := range st.Fields {
		if f.Mut {
			p.w.WriteString("mut ")
		}
		p.w.WriteString(f.Name.Name + ": ")
		p.typeExpr(f.Type)
		p.w.WriteString(",")
		p.w.Newline()
	}
	p.w.Dedent()
	p.w.WriteString("}")
}

func (p *printer) block(b *ast.BlockStmt) {
	p.w.WriteString("{")
	if len(b.Stmts) == 0 {
		p.w.WriteString("}")
		return
	}
	p.w.Newline()
	p.w.Indent()
	for i, s := range b.Stmts {
		p.stmt(s)
		var next ast.Item
		if i+1 < len(b.Stmts) {
			next = b.Stmts[i+1]
		}
		p.terminate(s, next)
	}
	p.w.Dedent()
	p.w.WriteString("}")
}

func (p *printer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.VarDecl:
		if s.Mut {
			p.w.WriteString("mut ")
		}
		if s.Type == nil && s.Value != nil {
			p.w.WriteString(s.Name.Name + " := ")
			p.expr(s.Value)
			return
		}
		p.w.WriteString(s.Name.Name + ":")
		if s.Type != nil {
			p.w.WriteString(" ")
			p.typeExpr(s.Type)
			if s.Value != nil {
				p.w.WriteString(" ")
			}
		}
		if s.Value != nil {
			p.w.WriteString("= ")
			p.expr(s.Value)
		}
	case *ast.BlockStmt:
		p.block(s)
	case *ast.ReturnStmt:
		p.w.WriteString("return")
		if s.Result != nil {
			p.w.WriteString(" ")
			p.expr(s.Result)
		}
	case *ast.IfStmt:
		p.w.WriteString("if ")
		p.expr(s.Cond)
		p.w.WriteString(" ")
		p.block(s.Then)
		if s.Else != nil {
			p.w.WriteString(" else ")
			p.stmt(s.Else)
		}
	case *ast.AssignStmt:
		p.expr(s.Target)
		p.w.WriteString(" = ")
		p.expr(s.Value)
	case *ast.ExprStmt:
		p.expr(s.X)
	}
}

func (p *printer) typeExpr(t ast.TypeExpr) {
	switch t := t.(type) {
	case *ast.NamedType:
		p.w.WriteString(t.Name.Name)
	case *ast.PointerType:
		p.w.WriteString("^")
		p.typeExpr(t.Elem)
	case *ast.SliceType:
		p.w.WriteString("[]")
		p.typeExpr(t.Elem)
	}
}

func (p *printer) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Ident:
		p.w.WriteString(e.Name)
	case *ast.IntLit:
		p.w.WriteString(e.Raw)
	case *ast.FloatLit:
		p.w.WriteString(e.Raw)
	case *ast.StringLit:
		p.w.WriteString(e.Raw)
	case *ast.RuneLit:
		p.w.WriteString(e.Raw)
	case *ast.BoolLit:
		if e.Value {
			p.w.WriteString("true")
		} else {
			p.w.WriteString("false")
		}
	case *ast.Unary:
		p.w.WriteString(opText(e.Op))
		p.operand(e.X, isLooser(e.X, precUnary))
	case *ast.Binary:
		prec := parser.BinaryPrec(e.Op)
		p.operand(e.X, isLooser(e.X, prec))
		p.w.WriteString(" " + opText(e.Op) + " ")
		p.operand(e.Y, isLooser(e.Y, prec+1))
	case *ast.Paren:
		p.w.WriteString("(")
		p.expr(e.X)
		p.w.WriteString(")")
	case *ast.Call:
		p.operand(e.Fun, isLooser(e.Fun, precPostfix))
		p.w.WriteString("(")
		for i, a := range e.Args {
			if i > 0 {
				p.w.WriteString(", ")
			}
			p.expr(a)
		}
		p.w.WriteString(")")
	case *ast.Member:
		p.operand(e.X, isLooser(e.X, precPostfix))
		p.w.WriteString("." + e.Name.Name)
	case *ast.Index:
		p.operand(e.X, isLooser(e.X, precPostfix))
		p.w.WriteString("[")
		p.expr(e.Index)
		p.w.WriteString("]")
	}
}

// operand печатает подвыражение, при необходимости в скобках. Деревья из
// парсера скобки уже содержат явно; это нужно для деревьев, собранных руками.
func (p *printer) operand(e ast.Expr, wrap bool) {
	if wrap {
		p.w.WriteString("(")
		p.expr(e)
		p.w.WriteString(")")
		return
	}
	p.expr(e)
}

const (
	precUnary   = 100
	precPostfix = 200
)

// isLooser: связывает ли e слабее, чем требует контекст с приоритетом min.
func isLooser(e ast.Expr, min int) bool {
	switch e := e.(type) {
	case *ast.Binary:
		return parser.BinaryPrec(e.Op) < min
	case *ast.Unary:
		return precUnary < min
	}
	return false
}

func opText(k token.Kind) string {
	switch k {
	case token.Plus:
		return "+"
	case token.Minus:
		return "-"
	case token.Star:
		return "*"
	case token.Slash:
		return "/"
	case token.Percent:
		return "%"
	case token.EqEq:
		return "=="
	case token.Bang:
		return "!"
	case token.BangEq:
		return "!="
	case token.Lt:
		return "<"
	case token.LtEq:
		return "<="
	case token.Gt:
		return ">"
	case token.GtEq:
		return ">="
	case token.Shl:
		return "<<"
	case token.Shr:
		return ">>"
	case token.Amp:
		return "&"
	case token.Pipe:
		return "|"
	case token.Caret:
		return "^"
	case token.Tilde:
		return "~"
	case token.At:
		return "@"
	case token.AndAnd:
		return "&&"
	case token.OrOr:
		return "||"
	}
	return "?"
}
