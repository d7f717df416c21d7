package parser

import (
	"arkc/internal/token"
)

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет; все левоассоциативные.
const (
	precLogicalOr      = 1  // ||
	precLogicalAnd     = 2  // &&
	precEquality       = 3  // == !=
	precComparison     = 4  // < <= > >=
	precBitwiseOr      = 5  // |
	precBitwiseXor     = 6  // ^
	precBitwiseAnd     = 7  // &
	precShift          = 8  // << >>
	precAdditive       = 9  // + -
	precMultiplicative = 10 // * / %
)

// binaryPrec возвращает приоритет оператора или -1, если это не бинарный оператор.
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.OrOr:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd
	case token.EqEq, token.BangEq:
		return precEquality
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison
	case token.Pipe:
		return precBitwiseOr
	case token.Caret:
		return precBitwiseXor
	case token.Amp:
		return precBitwiseAnd
	case token.Shl, token.Shr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	default:
		return -1
	}
}

// BinaryPrec exposes the precedence table to the printer.
func BinaryPrec(kind token.Kind) int { return binaryPrec(kind) }

// unaryOp: - ! ~ ^ (адрес) @ (разыменование)
func unaryOp(kind token.Kind) (token.Kind, bool) {
	switch kind {
	case token.Minus, token.Bang, token.Tilde, token.Caret, token.At:
		return kind, true
	default:
		return token.Invalid, false
	}
}
