package token

import (
	"arkc/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// Class returns the coarse category of the token.
func (t Token) Class() Class { return t.Kind.Class() }

// IsLiteral reports whether the token is a numeric, boolean, string or rune literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, RuneLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	c := t.Class()
	return c == ClassOperator || c == ClassPunct
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Class() == ClassKeyword }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Describe renders the token for "expected X, got Y" messages.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of file"
	case Invalid:
		return "invalid token"
	default:
		return "\"" + t.Text + "\""
	}
}
