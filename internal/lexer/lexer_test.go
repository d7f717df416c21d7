package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"arkc/internal/diag"
	"arkc/internal/lexer"
	"arkc/internal/source"
	"arkc/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.New(sev, code, primary, msg))
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ark", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: reporter}), reporter
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%s(%q)", tok.Kind, tok.Text)
	}
	return strings.Join(parts, " ")
}

func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, rep := makeTestLexer(input)
	toks := lexer.Tokenize(lx)
	expected = append(expected, token.EOF)
	got := kinds(toks)
	if len(got) != len(expected) {
		t.Fatalf("input %q: expected %d tokens, got %d: %s", input, len(expected), len(got), tokensToString(toks))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("input %q: token %d: expected %s, got %s (%s)", input, i, expected[i], got[i], tokensToString(toks))
		}
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("input %q: unexpected diagnostics %v", input, rep.codes())
	}
	return toks
}

func TestAssignmentScenario(t *testing.T) {
	toks := expectTokens(t, "x = 1 + 2", token.Ident, token.Assign, token.IntLit, token.Plus, token.IntLit)
	texts := []string{"x", "=", "1", "+", "2", ""}
	for i, want := range texts {
		if toks[i].Text != want {
			t.Errorf("token %d: expected text %q, got %q", i, want, toks[i].Text)
		}
	}
	if toks[5].Span.Start != 9 || toks[5].Span.End != 9 {
		t.Errorf("EOF span must be empty at end, got %v", toks[5].Span)
	}
}

func TestEmptyInput(t *testing.T) {
	toks := expectTokens(t, "")
	if len(toks[0].Leading) != 0 {
		t.Fatalf("EOF must not carry trivia")
	}
}

func TestOnlyWhitespaceAndComments(t *testing.T) {
	expectTokens(t, "  \n\t// hi\n/* block */\n")
}

func TestEOFIsIdempotent(t *testing.T) {
	lx, _ := makeTestLexer("a")
	if tok := lx.Next(); tok.Kind != token.Ident {
		t.Fatalf("expected ident, got %s", tok.Kind)
	}
	for i := range 5 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("call %d after end: expected EOF, got %s", i, tok.Kind)
		}
	}
}

func TestTokenizeSingleEOF(t *testing.T) {
	inputs := []string{"", "a", "func main() {}", "x = \"abc", "/* open", "@@@"}
	for _, in := range inputs {
		lx, _ := makeTestLexer(in)
		toks := lexer.Tokenize(lx)
		eofs := 0
		for _, tok := range toks {
			if tok.Kind == token.EOF {
				eofs++
			}
		}
		if eofs != 1 || toks[len(toks)-1].Kind != token.EOF {
			t.Errorf("input %q: expected exactly one trailing EOF, got %s", in, tokensToString(toks))
		}
	}
}

func TestResetIsDeterministic(t *testing.T) {
	lx, rep := makeTestLexer("func f(a: int): int { return a * 0x1F }")
	first := lexer.Tokenize(lx)
	lx.Reset()
	second := lexer.Tokenize(lx)
	if tokensToString(first) != tokensToString(second) {
		t.Fatalf("tokens differ after reset:\n%s\n%s", tokensToString(first), tokensToString(second))
	}
	for i := range first {
		if first[i].Span != second[i].Span {
			t.Fatalf("span %d differs after reset", i)
		}
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics %v", rep.codes())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	p1 := lx.Peek()
	p2 := lx.Peek()
	if p1.Text != "a" || p2.Text != "a" {
		t.Fatalf("peek must be stable, got %q and %q", p1.Text, p2.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next after peek must return the peeked token, got %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("expected b, got %q", n.Text)
	}
}

func TestKeywords(t *testing.T) {
	expectTokens(t, "func struct mut return if else true false",
		token.KwFunc, token.KwStruct, token.KwMut, token.KwReturn,
		token.KwIf, token.KwElse, token.KwTrue, token.KwFalse)
	// регистр важен
	expectTokens(t, "Func STRUCT Mut", token.Ident, token.Ident, token.Ident)
}

func TestIdentifiers(t *testing.T) {
	toks := expectTokens(t, "_tmp x1 переменная αβ", token.Ident, token.Ident, token.Ident, token.Ident)
	if toks[2].Text != "переменная" {
		t.Errorf("unicode ident text: %q", toks[2].Text)
	}
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		in   string
		kind token.Kind
	}{
		{"0", token.IntLit},
		{"1_000_000", token.IntLit},
		{"0xFF_ff", token.IntLit},
		{"0b1010", token.IntLit},
		{"0o755", token.IntLit},
		{"1.5", token.FloatLit},
		{"1e10", token.FloatLit},
		{"2.5E-3", token.FloatLit},
		{"3f", token.FloatLit},
		{"4d", token.FloatLit},
		{"1.25f", token.FloatLit},
	}
	for _, tc := range cases {
		toks := expectTokens(t, tc.in, tc.kind)
		if toks[0].Text != tc.in {
			t.Errorf("%q: text %q", tc.in, toks[0].Text)
		}
	}
}

func TestNumberFollowedByMember(t *testing.T) {
	expectTokens(t, "1.foo", token.IntLit, token.Dot, token.Ident)
}

func TestMalformedNumbers(t *testing.T) {
	cases := []string{"0x", "0b102", "0o8", "1e", "1e+", "1.2.3", "12abc"}
	for _, in := range cases {
		lx, rep := makeTestLexer(in)
		toks := lexer.Tokenize(lx)
		if len(toks) != 2 || toks[0].Kind != token.Invalid {
			t.Errorf("%q: expected one Invalid token, got %s", in, tokensToString(toks))
			continue
		}
		if toks[0].Text != in {
			t.Errorf("%q: malformed number must be consumed whole, got %q", in, toks[0].Text)
		}
		if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexBadNumber {
			t.Errorf("%q: expected one LexBadNumber, got %v", in, rep.codes())
		}
	}
}

func TestStrings(t *testing.T) {
	toks := expectTokens(t, `"hello" "a\n\t\"\\\x41\0"`, token.StringLit, token.StringLit)
	if toks[0].Text != `"hello"` {
		t.Errorf("string text must include quotes, got %s", toks[0].Text)
	}
}

func TestRunes(t *testing.T) {
	expectTokens(t, `'a' '\n' 'ж'`, token.RuneLit, token.RuneLit, token.RuneLit)
}

func TestUnterminatedStringScenario(t *testing.T) {
	lx, rep := makeTestLexer(`x = "abc`)
	toks := lexer.Tokenize(lx)
	want := []token.Kind{token.Ident, token.Assign, token.Invalid, token.EOF}
	got := kinds(toks)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected LexUnterminatedString, got %v", rep.codes())
	}
	if rep.diagnostics[0].Primary.Start != 4 {
		t.Errorf("diagnostic must point at the opening quote, got %v", rep.diagnostics[0].Primary)
	}
}

func TestNewlineInStringRecovers(t *testing.T) {
	lx, rep := makeTestLexer("\"abc\ny")
	toks := lexer.Tokenize(lx)
	want := []token.Kind{token.Invalid, token.Ident, token.EOF}
	if fmt.Sprint(kinds(toks)) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %s", want, tokensToString(toks))
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Fatalf("unexpected diagnostics %v", rep.codes())
	}
}

func TestBadEscape(t *testing.T) {
	lx, rep := makeTestLexer(`"a\qb" "\x4"`)
	toks := lexer.Tokenize(lx)
	want := []token.Kind{token.Invalid, token.Invalid, token.EOF}
	if fmt.Sprint(kinds(toks)) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %s", want, tokensToString(toks))
	}
	if len(rep.diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", rep.codes())
	}
	for _, d := range rep.diagnostics {
		if d.Code != diag.LexBadEscape {
			t.Errorf("expected LexBadEscape, got %s", d.Code.ID())
		}
	}
}

func TestUnterminatedRune(t *testing.T) {
	lx, rep := makeTestLexer("'a")
	toks := lexer.Tokenize(lx)
	if toks[0].Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %s", toks[0].Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedRune {
		t.Fatalf("unexpected diagnostics %v", rep.codes())
	}
}

func TestOperatorsAndPunct(t *testing.T) {
	expectTokens(t, "+ - * / % = == ! != < <= > >= << >> & | ^ ~ @ && ||",
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Assign, token.EqEq, token.Bang, token.BangEq,
		token.Lt, token.LtEq, token.Gt, token.GtEq, token.Shl, token.Shr,
		token.Amp, token.Pipe, token.Caret, token.Tilde, token.At,
		token.AndAnd, token.OrOr)
	expectTokens(t, ": ; , . ( ) { } [ ]",
		token.Colon, token.Semicolon, token.Comma, token.Dot,
		token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.LBracket, token.RBracket)
}

func TestOperatorsGreedy(t *testing.T) {
	expectTokens(t, "a<<=b", token.Ident, token.Shl, token.Assign, token.Ident)
	expectTokens(t, "a===b", token.Ident, token.EqEq, token.Assign, token.Ident)
	expectTokens(t, "a&&&b", token.Ident, token.AndAnd, token.Amp, token.Ident)
}

func TestUnknownCharacter(t *testing.T) {
	lx, rep := makeTestLexer("a $ b € c")
	toks := lexer.Tokenize(lx)
	want := []token.Kind{token.Ident, token.Invalid, token.Ident, token.Invalid, token.Ident, token.EOF}
	if fmt.Sprint(kinds(toks)) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %s", want, tokensToString(toks))
	}
	if toks[3].Text != "€" {
		t.Errorf("invalid rune must be consumed whole, got %q", toks[3].Text)
	}
	if len(rep.diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", rep.codes())
	}
}

func TestTrivia(t *testing.T) {
	toks := expectTokens(t, "/// doc\n// line\n/* a /* nested */ b */ x", token.Ident)
	lead := toks[0].Leading
	want := []token.TriviaKind{
		token.TriviaDocLine, token.TriviaNewline,
		token.TriviaLineComment, token.TriviaNewline,
		token.TriviaBlockComment, token.TriviaSpace,
	}
	if len(lead) != len(want) {
		t.Fatalf("expected %d trivia, got %d", len(want), len(lead))
	}
	for i := range want {
		if lead[i].Kind != want[i] {
			t.Errorf("trivia %d: expected %s, got %s", i, want[i], lead[i].Kind)
		}
	}
	if lead[4].Text != "/* a /* nested */ b */" {
		t.Errorf("nested block comment text: %q", lead[4].Text)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, rep := makeTestLexer("a /* /* */")
	toks := lexer.Tokenize(lx)
	if fmt.Sprint(kinds(toks)) != fmt.Sprint([]token.Kind{token.Ident, token.EOF}) {
		t.Fatalf("unexpected tokens %s", tokensToString(toks))
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("unexpected diagnostics %v", rep.codes())
	}
}

func TestFunctionDefinition(t *testing.T) {
	expectTokens(t, "func add(mut a: int, b: ^int): int {\n  return a + @b;\n}",
		token.KwFunc, token.Ident, token.LParen,
		token.KwMut, token.Ident, token.Colon, token.Ident, token.Comma,
		token.Ident, token.Colon, token.Caret, token.Ident, token.RParen,
		token.Colon, token.Ident, token.LBrace,
		token.KwReturn, token.Ident, token.Plus, token.At, token.Ident, token.Semicolon,
		token.RBrace)
}

func TestSpansCoverText(t *testing.T) {
	input := "struct Point { x: int, y: []float }"
	lx, _ := makeTestLexer(input)
	var prevEnd uint32
	for tok := range lx.All() {
		if tok.Span.Start < prevEnd {
			t.Fatalf("spans must not overlap: %v after %d", tok.Span, prevEnd)
		}
		if got := input[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Fatalf("span %v covers %q, text is %q", tok.Span, got, tok.Text)
		}
		prevEnd = tok.Span.End
	}
}

func BenchmarkLexerLargeFile(b *testing.B) {
	var sb strings.Builder
	for i := range 1000 {
		fmt.Fprintf(&sb, "func f%d(a: int): int { return a * %d + 0x%x }\n", i, i, i)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("bench.ark", []byte(sb.String())))
	b.ResetTimer()
	for b.Loop() {
		lx := lexer.New(file, lexer.Options{})
		for tok := range lx.All() {
			_ = tok
		}
	}
}
