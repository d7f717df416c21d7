package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"arkc/internal/ast"
	"arkc/internal/diag"
	"arkc/internal/token"
)

// Лексер уже отсеял синтаксически битые литералы; здесь остаются ошибки
// значения: переполнение и руны не из одного символа. Такие ошибки не
// прерывают разбор конструкции, но фиксируются как Failure.

func (p *Parser) badLiteral(tok token.Token, expected, msg string) {
	p.failures = append(p.failures, Failure{Token: tok, Code: diag.SynBadLiteral, Expected: expected})
	p.report(diag.SynBadLiteral, diag.SevError, tok.Span, msg)
}

func (p *Parser) decodeInt(tok token.Token) *ast.IntLit {
	digits := strings.ReplaceAll(tok.Text, "_", "")
	base := 10
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 10 {
			digits = digits[2:]
		}
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		p.badLiteral(tok, "integer literal that fits in 64 bits", "integer literal "+tok.Text+" out of range")
		v = 0
	}
	return ast.NewIntLit(tok.Span, tok.Text, v)
}

func (p *Parser) decodeFloat(tok token.Token) *ast.FloatLit {
	s := strings.ReplaceAll(tok.Text, "_", "")
	s = strings.TrimRight(s, "fFdD")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.badLiteral(tok, "float literal in range of float64", "float literal "+tok.Text+" out of range")
		v = 0
	}
	return ast.NewFloatLit(tok.Span, tok.Text, v)
}

func (p *Parser) decodeString(tok token.Token) *ast.StringLit {
	v, ok := unquote(tok.Text)
	if !ok {
		p.badLiteral(tok, "well-formed string literal", "malformed string literal")
	}
	return ast.NewStringLit(tok.Span, tok.Text, v)
}

func (p *Parser) decodeRune(tok token.Token) *ast.RuneLit {
	v, ok := unquote(tok.Text)
	if !ok || utf8.RuneCountInString(v) != 1 {
		p.badLiteral(tok, "exactly one character in rune literal", "rune literal must contain exactly one character")
		return ast.NewRuneLit(tok.Span, tok.Text, utf8.RuneError)
	}
	r, _ := utf8.DecodeRuneInString(v)
	return ast.NewRuneLit(tok.Span, tok.Text, r)
}

// unquote снимает кавычки и раскрывает \n \t \r \\ \" \' \0 \xNN.
func unquote(raw string) (string, bool) {
	if len(raw) < 2 {
		return "", false
	}
	body := raw[1 : len(raw)-1]
	if !strings.Contains(body, `\`) {
		return body, true
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return b.String(), false
		}
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\', '"', '\'':
			b.WriteByte(body[i])
		case '0':
			b.WriteByte(0)
		case 'x':
			if i+3 > len(body) {
				return b.String(), false
			}
			n, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return b.String(), false
			}
			b.WriteByte(byte(n))
			i += 2
		default:
			return b.String(), false
		}
	}
	return b.String(), true
}
