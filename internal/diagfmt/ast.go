package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"arkc/internal/ast"
	"arkc/internal/format"
	"arkc/internal/source"
)

// SpanOutput is a byte range in JSON and YAML dumps.
type SpanOutput struct {
	Start uint32 `json:"start" yaml:"start"`
	End   uint32 `json:"end" yaml:"end"`
}

type ASTNodeOutput struct {
	Type     string          `json:"type" yaml:"type"`
	Span     SpanOutput      `json:"span" yaml:"span"`
	Text     string          `json:"text,omitempty" yaml:"text,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty" yaml:"children,omitempty"`
}

// BuildASTOutput converts a subtree into the serializable dump form.
func BuildASTOutput(n ast.Node) ASTNodeOutput {
	sp := n.Span()
	out := ASTNodeOutput{
		Type:   n.Kind().String(),
		Span:   SpanOutput{Start: sp.Start, End: sp.End},
		Fields: nodeFields(n),
	}
	switch n.(type) {
	case ast.Expr, ast.TypeExpr:
		out.Text = format.Node(n)
	}
	for _, c := range ast.Children(n) {
		out.Children = append(out.Children, BuildASTOutput(c))
	}
	return out
}

func nodeFields(n ast.Node) map[string]any {
	switch n := n.(type) {
	case *ast.File:
		return map[string]any{"name": n.Name}
	case *ast.FuncDecl:
		f := map[string]any{"name": n.Name.Name, "params": len(n.Params)}
		if len(n.Doc) > 0 {
			f["doc"] = n.Doc
		}
		if n.ResultMut {
			f["result_mut"] = true
		}
		return f
	case *ast.StructDecl:
		f := map[string]any{"name": n.Name.Name, "fields": len(n.Fields)}
		if len(n.Doc) > 0 {
			f["doc"] = n.Doc
		}
		return f
	case *ast.Param:
		return mutName(n.Mut, n.Name)
	case *ast.Field:
		return mutName(n.Mut, n.Name)
	case *ast.VarDecl:
		return mutName(n.Mut, n.Name)
	case *ast.Ident:
		return map[string]any{"name": n.Name}
	case *ast.IntLit:
		return map[string]any{"value": n.Value}
	case *ast.FloatLit:
		return map[string]any{"value": n.Value}
	case *ast.StringLit:
		return map[string]any{"value": n.Value}
	case *ast.RuneLit:
		return map[string]any{"value": string(n.Value)}
	case *ast.BoolLit:
		return map[string]any{"value": n.Value}
	case *ast.Unary:
		return map[string]any{"op": n.Op.String()}
	case *ast.Binary:
		return map[string]any{"op": n.Op.String()}
	case *ast.Call:
		return map[string]any{"args": len(n.Args)}
	}
	return nil
}

func mutName(mut bool, name *ast.Ident) map[string]any {
	f := map[string]any{"name": name.Name}
	if mut {
		f["mut"] = true
	}
	return f
}

// FormatASTJSON выводит дерево в JSON.
func FormatASTJSON(w io.Writer, file *ast.File) error {
	if file == nil {
		return fmt.Errorf("file not found")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildASTOutput(file))
}

// FormatASTYAML выводит дерево в YAML.
func FormatASTYAML(w io.Writer, file *ast.File) error {
	if file == nil {
		return fmt.Errorf("file not found")
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildASTOutput(file)); err != nil {
		return err
	}
	return enc.Close()
}

// FormatASTPretty печатает дерево с псевдографикой.
func FormatASTPretty(w io.Writer, file *ast.File, fs *source.FileSet) error {
	if file == nil {
		return fmt.Errorf("file not found")
	}
	header := "File"
	switch {
	case fs != nil:
		header = filePath(fs, file.Span().File, PathModeAuto)
	case file.Name != "":
		header = file.Name
	}
	fmt.Fprintf(w, "%s (span: %s)\n", header, formatSpan(file.Span(), fs))
	items := ast.Children(file)
	for i, it := range items {
		writePrettyNode(w, it, fs, "", i == len(items)-1)
	}
	return nil
}

func writePrettyNode(w io.Writer, n ast.Node, fs *source.FileSet, prefix string, last bool) {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, branch, prettyLabel(n, fs))
	children := ast.Children(n)
	for i, c := range children {
		writePrettyNode(w, c, fs, prefix+next, i == len(children)-1)
	}
}

func prettyLabel(n ast.Node, fs *source.FileSet) string {
	var sb strings.Builder
	sb.WriteString(n.Kind().String())
	switch n := n.(type) {
	case *ast.FuncDecl:
		sb.WriteString(" " + n.Name.Name)
	case *ast.StructDecl:
		sb.WriteString(" " + n.Name.Name)
	case *ast.Param:
		sb.WriteString(" " + mutPrefix(n.Mut) + n.Name.Name)
	case *ast.Field:
		sb.WriteString(" " + mutPrefix(n.Mut) + n.Name.Name)
	case *ast.VarDecl:
		sb.WriteString(" " + mutPrefix(n.Mut) + n.Name.Name)
	case ast.Expr, ast.TypeExpr:
		sb.WriteString(" " + fmt.Sprintf("%q", format.Node(n)))
	}
	fmt.Fprintf(&sb, " (span: %s)", formatSpan(n.Span(), fs))
	return sb.String()
}

func mutPrefix(mut bool) string {
	if mut {
		return "mut "
	}
	return ""
}
