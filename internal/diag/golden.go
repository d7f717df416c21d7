package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"arkc/internal/source"
)

// goldenLine: одна строка golden-вывода.
type goldenLine struct {
	sev  string
	code string
	path string
	line uint32
	col  uint32
	msg  string
}

func (g goldenLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", g.sev, g.code, g.path, g.line, g.col, g.msg)
}

func compareGolden(a, b goldenLine) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.line, b.line),
		cmp.Compare(a.col, b.col),
		cmp.Compare(a.sev, b.sev),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.msg, b.msg),
	)
}

// FormatGoldenDiagnostics renders one line per diagnostic (and per note when
// includeNotes is set), sorted by location, with paths relative to the file
// set base. Entries whose span points at no known file are skipped.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	lines := make([]goldenLine, 0, len(diags))
	add := func(sev string, code Code, sp source.Span, msg string) {
		file := fs.Get(sp.File)
		if file == nil {
			return
		}
		start, _ := fs.Resolve(sp)
		lines = append(lines, goldenLine{
			sev:  sev,
			code: code.ID(),
			path: goldenPath(file.FormatPath("relative", fs.BaseDir())),
			line: start.Line,
			col:  start.Col,
			msg:  flattenMessage(msg),
		})
	}
	for i := range diags {
		d := &diags[i]
		add(strings.ToLower(d.Severity.String()), d.Code, d.Primary, d.Message)
		if includeNotes {
			for _, note := range d.Notes {
				add("note", d.Code, note.Span, note.Msg)
			}
		}
	}
	slices.SortStableFunc(lines, compareGolden)

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func goldenPath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

// flattenMessage сводит многострочное сообщение в одну строку.
func flattenMessage(msg string) string {
	msg = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg)
	return strings.TrimSpace(msg)
}
