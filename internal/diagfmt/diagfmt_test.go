package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"arkc/internal/diag"
	"arkc/internal/lexer"
	"arkc/internal/parser"
	"arkc/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("x = \"unterminated string\n")
	fileID := fs.Add("/home/user/project/src/test.ark", content, 0)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 4, End: 24}, "Unterminated string literal"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/src/test.ark:1:5"},
		{name: "Relative path", mode: PathModeRelative, contains: "src/test.ark:1:5"},
		{name: "Basename only", mode: PathModeBasename, contains: "test.ark:1:5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()
			for _, want := range []string{tt.contains, "ERROR", "LEX1002", "Unterminated string"} {
				if !strings.Contains(output, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, output)
				}
			}
		})
	}
}

func TestPrettySnippetAndCarets(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("a = 1\nполе = 日本 + x\nb = 2\n")
	id := fs.AddVirtual("w.ark", content)
	start := uint32(strings.Index(string(content), "日本"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: start, End: start + uint32(len("日本"))}, "wide"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	lines := strings.Split(buf.String(), "\n")
	// заголовок, три строки контекста и каретка после второй
	if len(lines) < 5 {
		t.Fatalf("short output:\n%s", buf.String())
	}
	if lines[1] != " 1 | a = 1" || lines[2] != " 2 | поле = 日本 + x" || lines[4] != " 3 | b = 2" {
		t.Fatalf("unexpected snippet:\n%s", buf.String())
	}
	// "поле = " занимает 7 ячеек, "日本" четыре
	if lines[3] != "   | "+strings.Repeat(" ", 7)+"^~~~" {
		t.Fatalf("unexpected caret line %q", lines[3])
	}
}

func TestPrettyNotesAndSpanless(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("n.ark", []byte("func f( {\n"))
	d := diag.NewError(diag.SynUnclosedParen, source.Span{File: id, Start: 9, End: 10}, "expected ')', got end of file").
		WithNote(source.Span{File: id, Start: 6, End: 7}, "unclosed '(' opened here")
	bag := diag.NewBag(0)
	bag.Add(d)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: boom"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	out := buf.String()
	if !strings.Contains(out, "note: n.ark:1:7: unclosed '(' opened here") {
		t.Fatalf("missing note:\n%s", out)
	}
	if !strings.Contains(out, "ERROR IO4001: failed to load file: boom\n") {
		t.Fatalf("missing spanless diagnostic:\n%s", out)
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("c.ark", []byte("x"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: 0, End: 1}, "m"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output has escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escapes: %q", colored.String())
	}
}

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ark", []byte("func main() {\n\tx = \"unterminated\n}"))
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 19, End: 32}, "Unterminated string literal"))
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "timings").WithNote(source.Span{}, `{"kind":"pipeline"}`))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 2 {
		t.Fatalf("expected count=2, got %d", output.Count)
	}
	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1002" || d.Location == nil {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Location.File != "test.ark" || d.Location.StartLine != 2 || d.Location.StartCol != 6 {
		t.Fatalf("unexpected location %+v", *d.Location)
	}
	timing := output.Diagnostics[1]
	if timing.Location != nil || len(timing.Notes) != 1 {
		t.Fatalf("timing diagnostic should carry its note and no location: %+v", timing)
	}
}

func TestJSONMax(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.ark", []byte("abc"))
	bag := diag.NewBag(0)
	for i := range 3 {
		bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: uint32(i), End: uint32(i + 1)}, "x"))
	}
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || !out.Truncated {
		t.Fatalf("unexpected output %+v", out)
	}
}

func parseForDump(t *testing.T, src string) (*source.FileSet, parser.Result) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("d.ark", []byte(src)))
	bag := diag.NewBag(0)
	toks := lexer.Tokenize(lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}))
	res, err := parser.ParseFile(context.Background(), "d.ark", toks, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err != nil || bag.HasErrors() {
		t.Fatalf("parse failed: %v", err)
	}
	return fs, res
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.ark", []byte("// c\nx = 1")))
	toks := lexer.Tokenize(lexer.New(file, lexer.Options{}))

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `Ident           "x" at 2:1-2:2 (leading:`) {
		t.Fatalf("unexpected pretty tokens:\n%s", out)
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var decoded []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 4 || decoded[3].Kind != "EOF" {
		t.Fatalf("unexpected tokens %+v", decoded)
	}
}

func TestFormatAST(t *testing.T) {
	fs, res := parseForDump(t, "func add(mut a: int): int { return a + 1 }\nx = f(2)")

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, res.File, fs); err != nil {
		t.Fatal(err)
	}
	pretty := buf.String()
	for _, want := range []string{
		"d.ark (span: 1:1-",
		"├─ FuncDecl add (span: 1:1-1:43)",
		"│  ├─ Param mut a",
		`Binary "a + 1"`,
		"└─ AssignStmt",
		`Call "f(2)"`,
	} {
		if !strings.Contains(pretty, want) {
			t.Errorf("pretty dump missing %q:\n%s", want, pretty)
		}
	}

	buf.Reset()
	if err := FormatASTJSON(&buf, res.File); err != nil {
		t.Fatal(err)
	}
	var node ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &node); err != nil {
		t.Fatal(err)
	}
	if node.Type != "File" || len(node.Children) != 2 || node.Children[0].Fields["name"] != "add" {
		t.Fatalf("unexpected json dump: %+v", node)
	}

	buf.Reset()
	if err := FormatASTYAML(&buf, res.File); err != nil {
		t.Fatal(err)
	}
	var fromYAML ASTNodeOutput
	if err := yaml.Unmarshal(buf.Bytes(), &fromYAML); err != nil {
		t.Fatal(err)
	}
	if fromYAML.Children[1].Type != "AssignStmt" || fromYAML.Children[1].Children[1].Text != "f(2)" {
		t.Fatalf("unexpected yaml dump:\n%s", buf.String())
	}
}
