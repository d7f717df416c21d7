package token_test

import (
	"testing"

	"arkc/internal/source"
	"arkc/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.IntLit, token.FloatLit, token.StringLit, token.RuneLit, token.KwTrue, token.KwFalse}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwFunc, token.Plus, token.LParen, token.EOF}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestClassCoversEveryKind(t *testing.T) {
	for k := token.Invalid; k.String() != "Kind(?)"; k++ {
		c := k.Class()
		if k == token.Invalid {
			if c != token.ClassError {
				t.Fatalf("Invalid must be ClassError, got %v", c)
			}
			continue
		}
		if c == token.ClassError {
			t.Fatalf("%v has no class", k)
		}
	}
}

func TestClassExamples(t *testing.T) {
	cases := map[token.Kind]token.Class{
		token.EOF:       token.ClassEOF,
		token.Ident:     token.ClassIdent,
		token.KwReturn:  token.ClassKeyword,
		token.IntLit:    token.ClassNumber,
		token.FloatLit:  token.ClassNumber,
		token.StringLit: token.ClassString,
		token.RuneLit:   token.ClassString,
		token.Assign:    token.ClassOperator,
		token.OrOr:      token.ClassOperator,
		token.Colon:     token.ClassPunct,
		token.RBracket:  token.ClassPunct,
	}
	for k, want := range cases {
		if got := k.Class(); got != want {
			t.Errorf("%v: want %v, got %v", k, want, got)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	for _, word := range []string{"func", "struct", "mut", "return", "if", "else", "true", "false"} {
		k, ok := token.LookupKeyword(word)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok", word)
		}
		back, ok := token.Keyword(k)
		if !ok || back != word {
			t.Fatalf("Keyword(%v) = %q, want %q", k, back, word)
		}
	}
	for _, word := range []string{"Func", "RETURN", "fn", "let", ""} {
		if _, ok := token.LookupKeyword(word); ok {
			t.Fatalf("%q must not be a keyword", word)
		}
	}
}

func TestDescribe(t *testing.T) {
	if got := tok(token.EOF).Describe(); got != "end of file" {
		t.Errorf("EOF: %q", got)
	}
	ident := token.Token{Kind: token.Ident, Text: "x"}
	if got := ident.Describe(); got != `"x"` {
		t.Errorf("ident: %q", got)
	}
}
