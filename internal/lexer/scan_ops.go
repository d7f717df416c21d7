package lexer

import (
	"arkc/internal/diag"
	"arkc/internal/token"
)

// pairOps: двухсимвольные операторы; проверяются раньше одиночных.
var pairOps = map[[2]byte]token.Kind{
	{'&', '&'}: token.AndAnd,
	{'|', '|'}: token.OrOr,
	{'=', '='}: token.EqEq,
	{'!', '='}: token.BangEq,
	{'<', '='}: token.LtEq,
	{'>', '='}: token.GtEq,
	{'<', '<'}: token.Shl,
	{'>', '>'}: token.Shr,
}

// singleOps maps a byte to its token; Invalid marks bytes that start nothing.
var singleOps = [256]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash, '%': token.Percent,
	'=': token.Assign, '!': token.Bang, '<': token.Lt, '>': token.Gt,
	'&': token.Amp, '|': token.Pipe, '^': token.Caret, '~': token.Tilde, '@': token.At,
	':': token.Colon, ';': token.Semicolon, ',': token.Comma, '.': token.Dot,
	'(': token.LParen, ')': token.RParen, '{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	kind := token.Invalid
	if b0, b1, ok := lx.cursor.Peek2(); ok {
		if k, found := pairOps[[2]byte{b0, b1}]; found {
			lx.cursor.Bump()
			lx.cursor.Bump()
			kind = k
		}
	}
	if kind == token.Invalid {
		ch := lx.cursor.Bump()
		kind = singleOps[ch]
		if kind == token.Invalid {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteRune(rune(ch)))
			return lx.invalid(sp)
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
