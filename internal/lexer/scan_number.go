package lexer

import (
	"arkc/internal/diag"
	"arkc/internal/token"
)

// Поддержка: 0, 1_000, 0b1010, 0o17, 0xff, 1.5, 1e-3, 2.5e+10, 3f, 4d.
// Суффиксы f/d делают литерал вещественным и остаются в Token.Text.
// Неверные формы съедаются целиком и дают Invalid + LexBadNumber.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	bad := ""

	if lx.cursor.Peek() == '0' {
		var base int
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 0 {
			lx.cursor.Bump()
			lx.cursor.Bump()
			digits := 0
			for {
				b := lx.cursor.Peek()
				if b == '_' {
					lx.cursor.Bump()
					continue
				}
				if !isHex(b) {
					break
				}
				if digitValue(b) >= base && bad == "" {
					bad = "digit '" + string(b) + "' out of range for base " + baseName(base)
				}
				digits++
				lx.cursor.Bump()
			}
			if digits == 0 && bad == "" {
				bad = "missing digits after base prefix"
			}
			return lx.finishNumber(start, token.IntLit, bad)
		}
	}

	kind := token.IntLit
	lx.eatDecimals()

	// дробная часть только если за точкой цифра: "1.foo" это 1 . foo
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.eatDecimals()
		if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
			bad = "second decimal point in number"
			lx.cursor.Bump()
			lx.eatDecimals()
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) && bad == "" {
			bad = "expected digit after exponent"
		}
		lx.eatDecimals()
	}

	if b := lx.cursor.Peek(); b == 'f' || b == 'F' || b == 'd' || b == 'D' {
		kind = token.FloatLit
		lx.cursor.Bump()
	}

	return lx.finishNumber(start, kind, bad)
}

// finishNumber съедает хвост из букв/цифр ("12abc") и собирает токен.
func (lx *Lexer) finishNumber(start Mark, kind token.Kind, bad string) token.Token {
	if isIdentContinueByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		if bad == "" {
			bad = "invalid suffix on number"
		}
	}
	sp := lx.cursor.SpanFrom(start)
	if bad != "" {
		lx.errLex(diag.LexBadNumber, sp, "malformed number literal: "+bad)
		return lx.invalid(sp)
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) eatDecimals() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func digitValue(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return 99
}

func baseName(base int) string {
	switch base {
	case 2:
		return "2"
	case 8:
		return "8"
	default:
		return "16"
	}
}
