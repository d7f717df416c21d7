package lexer

import (
	"arkc/internal/diag"
	"arkc/internal/source"
	"arkc/internal/token"
)

// scanString: "..." с escape \n \t \r \\ \" \' \0 \xNN.
// Перевод строки или EOF до закрывающей кавычки: LexUnterminatedString.
func (lx *Lexer) scanString() token.Token {
	return lx.scanQuoted('"', token.StringLit, diag.LexUnterminatedString, "string")
}

// scanRune: 'x'. Количество рун проверяет парсер при декодировании.
func (lx *Lexer) scanRune() token.Token {
	return lx.scanQuoted('\'', token.RuneLit, diag.LexUnterminatedRune, "rune")
}

func (lx *Lexer) scanQuoted(quote byte, kind token.Kind, unterminated diag.Code, what string) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая кавычка
	badEscape := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			if badEscape {
				return lx.invalid(sp)
			}
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		case '\\':
			if !lx.scanEscape() {
				badEscape = true
			}
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(unterminated, sp, "newline in "+what+" literal")
			return lx.invalid(sp)
		default:
			lx.bumpRune()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(unterminated, sp, "unterminated "+what+" literal")
	return lx.invalid(sp)
}

// scanEscape съедает escape-последовательность, начиная с '\'.
func (lx *Lexer) scanEscape() bool {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	switch lx.cursor.Peek() {
	case 'n', 't', 'r', '\\', '"', '\'', '0':
		lx.cursor.Bump()
		return true
	case 'x':
		lx.cursor.Bump()
		for range 2 {
			if !isHex(lx.cursor.Peek()) {
				lx.reportEscape(lx.cursor.SpanFrom(start), "\\x escape needs two hex digits")
				return false
			}
			lx.cursor.Bump()
		}
		return true
	case 0, '\n':
		// пусть незакрытость литерала обработает scanQuoted
		lx.reportEscape(lx.cursor.SpanFrom(start), "incomplete escape sequence")
		return false
	default:
		lx.bumpRune()
		lx.reportEscape(lx.cursor.SpanFrom(start), "unknown escape sequence "+lx.text(lx.cursor.SpanFrom(start)))
		return false
	}
}

func (lx *Lexer) reportEscape(sp source.Span, msg string) {
	lx.errLex(diag.LexBadEscape, sp, msg)
}
