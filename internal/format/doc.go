// Package format prints a syntax tree back as canonical source.
//
// The output of FormatFile parses back into a tree that ast.Equal considers
// identical to the input; CheckRoundTrip verifies that for a given source.
package format
