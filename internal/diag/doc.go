// Package diag defines the diagnostic model shared by the lexer, the parser
// and the compilation unit.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form (LEX1xxx, SYN2xxx, IO4xxx), a short Message, the Primary
// span and optional Notes. Recoverable source problems are always reported as
// diagnostics, never as Go errors.
//
// Phases emit through a Reporter so that storage stays decoupled from
// production. BagReporter stores into a bounded Bag; DedupReporter suppresses
// repeated reports for the same span.
//
// Package diag performs no IO and no terminal formatting; rendering lives in
// internal/diagfmt.
package diag
