package diagfmt

import (
	"fmt"

	"arkc/internal/diag"
	"arkc/internal/source"
)

// formatSpan formats a source.Span into a string.
// If fs is non-nil, it resolves the span to start and end positions and returns "startLine:startCol-endLine:endCol".
// If fs is nil, it returns "span(start-end)".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// spanless: диагностики без места в исходнике (I/O, таймеры).
func spanless(d *diag.Diagnostic) bool {
	if d.Primary != (source.Span{}) {
		return false
	}
	return d.Code == diag.IOLoadFileError || d.Code == diag.ObsTimings || d.Code == diag.ObsInfo
}

func filePath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if fs == nil {
		return "<unknown>"
	}
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	return f.FormatPath(mode.mode(), fs.BaseDir())
}
