package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rivo/uniseg"

	"arkc/internal/diag"
	"arkc/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	items := bag.Items()
	for i := range items {
		d := &items[i]
		sev := pal.severity(d.Severity).Sprint(d.Severity.String())
		code := pal.code.Sprint(d.Code.ID())
		if spanless(d) {
			fmt.Fprintf(w, "%s %s: %s\n", sev, code, d.Message)
		} else {
			start, _ := fs.Resolve(d.Primary)
			fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
				filePath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col, sev, code, d.Message)
			writeSnippet(w, fs, d.Primary, int(opts.Context), pal)
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			label := pal.note.Sprint("note")
			if n.Span == (source.Span{}) && spanless(d) {
				fmt.Fprintf(w, "  %s: %s\n", label, n.Msg)
				continue
			}
			start, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n", label,
				filePath(fs, n.Span.File, opts.PathMode), start.Line, start.Col, n.Msg)
		}
	}
	if bag.Truncated() {
		fmt.Fprintf(w, "%s: diagnostic limit reached, further errors were dropped\n", pal.warn.Sprint("WARNING"))
	}
}

// writeSnippet prints the primary line, optional context lines and a caret
// line under the span. Columns are measured in terminal cells.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, context int, pal palette) {
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	first := max(int(start.Line)-context, 1)
	last := min(int(start.Line)+context, len(f.LineIdx)+1)
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		line := f.GetLine(uint32(ln)) // #nosec G115 -- ln bounded by resolved line numbers
		line = expandTabs(line)
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), line)
		if ln != int(start.Line) {
			continue
		}
		raw := f.GetLine(start.Line)
		prefix, marked := splitForCaret(raw, int(start.Col)-1, caretEnd(start, end, len(raw)))
		pad := uniseg.StringWidth(expandTabs(prefix))
		width := max(uniseg.StringWidth(expandTabs(marked)), 1)
		carets := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), pal.caret.Sprint(carets))
	}
}

// caretEnd: для многострочного span подчёркиваем до конца первой строки.
func caretEnd(start, end source.LineCol, lineLen int) int {
	if end.Line != start.Line {
		return lineLen
	}
	return int(end.Col) - 1
}

func splitForCaret(line string, from, to int) (prefix, marked string) {
	from = min(max(from, 0), len(line))
	to = min(max(to, from), len(line))
	return line[:from], line[from:to]
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
