// Package token defines lexical token kinds and trivia for the Ark front end.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Every token stream ends with exactly one EOF token with an empty span.
//   - Comments and whitespace never appear in the stream; they are carried as
//     leading Trivia of the next significant token.
//   - Lexical errors are represented by Invalid tokens (Class ClassError).
//   - Built-in type names (int, float, bool, ...) are identifiers.
package token
