package parser

import (
	"arkc/internal/ast"
	"arkc/internal/diag"
	"arkc/internal/token"
)

// parseType: '^' type | '[' ']' type | IDENT
func (p *Parser) parseType() (ast.TypeExpr, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	tok := p.peek()
	switch tok.Kind {
	case token.Caret:
		p.advance()
		elem, ok := p.parseType()
		if !ok {
			return nil, false
		}
		return ast.NewPointerType(tok.Span.Cover(elem.Span()), elem), true
	case token.LBracket:
		p.advance()
		if _, ok := p.expectClosing(token.RBracket, diag.SynUnclosedBracket, "']' in slice type", tok); !ok {
			return nil, false
		}
		elem, ok := p.parseType()
		if !ok {
			return nil, false
		}
		return ast.NewSliceType(tok.Span.Cover(elem.Span()), elem), true
	case token.Ident:
		p.advance()
		return ast.NewNamedType(ast.NewIdent(tok.Span, tok.Text)), true
	default:
		p.fail(diag.SynExpectType, "type")
		return nil, false
	}
}

// atTypeStart: может ли текущий токен начинать тип.
func (p *Parser) atTypeStart() bool {
	switch p.peek().Kind {
	case token.Caret, token.LBracket, token.Ident:
		return true
	}
	return false
}
