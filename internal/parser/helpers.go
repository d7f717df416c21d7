package parser

import (
	"strconv"

	"arkc/internal/diag"
	"arkc/internal/source"
	"arkc/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд; за концом всегда EOF.
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// advance: съедает текущий токен и обновляет lastSpan.
// На EOF курсор не двигается.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return tok
	}
	if p.opts.Trace != nil {
		p.opts.Trace(p.pos, tok)
	}
	p.pos++
	if tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// eat съедает токен k, если он следующий.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// getDiagnosticSpan: возвращает лучший span для диагностики.
// На EOF указываем сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.EndPoint()
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет: фиксируем ошибку.
func (p *Parser) expect(k token.Kind, code diag.Code, what string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.fail(code, what)
	return p.peek(), false
}

// expectClosing: как expect, но с заметкой о том, где открыли скобку.
func (p *Parser) expectClosing(k token.Kind, code diag.Code, what string, open token.Token) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.failWithNote(code, what, open.Span, "unclosed "+open.Describe()+" opened here")
	return p.peek(), false
}

// fail фиксирует Failure на текущем токене и репортит "expected X, got Y".
func (p *Parser) fail(code diag.Code, expected string) {
	p.failWithNote(code, expected, source.Span{}, "")
}

func (p *Parser) failWithNote(code diag.Code, expected string, noteSpan source.Span, note string) {
	tok := p.peek()
	p.failures = append(p.failures, Failure{Token: tok, Code: code, Expected: expected})
	msg := "expected " + expected + ", got " + tok.Describe()
	if note == "" {
		p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
		return
	}
	p.errors++
	if p.opts.Reporter == nil || p.enough() {
		return
	}
	diag.ReportError(p.opts.Reporter, code, p.getDiagnosticSpan(), msg).
		WithNote(noteSpan, note).
		Emit()
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		p.errors++
	}
	if p.opts.Reporter == nil || p.enough() {
		return false // нет reporter или достигли лимита
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

// enter/leave считают глубину рекурсии. При переполнении репортим один раз
// на top-level конструкцию.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth <= p.opts.MaxDepth {
		return true
	}
	if !p.tooDeep {
		p.tooDeep = true
		limit := strconv.Itoa(p.opts.MaxDepth)
		tok := p.peek()
		p.failures = append(p.failures, Failure{Token: tok, Code: diag.SynNestingTooDeep, Expected: "nesting depth at most " + limit})
		p.report(diag.SynNestingTooDeep, diag.SevError, p.getDiagnosticSpan(), "nesting too deep: limit is "+limit)
	}
	return false
}

func (p *Parser) leave() {
	p.depth--
}

// startsLine: стоит ли токен первым на своей строке.
func startsLine(tok token.Token) bool {
	for _, tr := range tok.Leading {
		if tr.Kind == token.TriviaNewline {
			return true
		}
	}
	return false
}

func canStartExpr(k token.Kind) bool {
	switch k {
	case token.Ident, token.IntLit, token.FloatLit, token.StringLit, token.RuneLit,
		token.KwTrue, token.KwFalse, token.LParen, token.Invalid:
		return true
	}
	_, ok := unaryOp(k)
	return ok
}

func canStartItem(k token.Kind) bool {
	switch k {
	case token.KwFunc, token.KwStruct, token.KwMut, token.KwReturn, token.KwIf, token.LBrace:
		return true
	case token.Invalid:
		return false
	}
	return canStartExpr(k)
}
