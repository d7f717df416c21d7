package parser

import (
	"arkc/internal/ast"
	"arkc/internal/diag"
	"arkc/internal/source"
	"arkc/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ast.Expr, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()
	return p.parseBinaryExpr(precLogicalOr)
}

// parseBinaryExpr: precedence climbing; minPrec: минимальный приоритет уровня.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Expr, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}

	for {
		prec := binaryPrec(p.peek().Kind)
		if prec < minPrec {
			return left, true
		}
		opTok := p.advance()

		// все операторы левоассоциативны
		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return nil, false
		}
		left = ast.NewBinary(opTok.Kind, left, right)
	}
}

// parseUnaryExpr собирает префиксы циклом, а не рекурсией: "------x" не
// расходует стек.
func (p *Parser) parseUnaryExpr() (ast.Expr, bool) {
	type prefixOp struct {
		op   token.Kind
		span source.Span
	}
	var prefixes []prefixOp

	for {
		op, ok := unaryOp(p.peek().Kind)
		if !ok {
			break
		}
		tok := p.advance()
		prefixes = append(prefixes, prefixOp{op: op, span: tok.Span})
	}

	expr, ok := p.parsePostfixExpr()
	if !ok {
		return nil, false
	}

	// Применяем префиксы справа налево
	for i := len(prefixes) - 1; i >= 0; i-- {
		expr = ast.NewUnary(prefixes[i].span.Cover(expr.Span()), prefixes[i].op, expr)
	}
	return expr, true
}

// parsePostfixExpr: вызовы, доступ к полю, индексация
func (p *Parser) parsePostfixExpr() (ast.Expr, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return nil, false
	}

	for {
		switch p.peek().Kind {
		case token.LParen:
			expr, ok = p.parseCallExpr(expr)
		case token.LBracket:
			expr, ok = p.parseIndexExpr(expr)
		case token.Dot:
			expr, ok = p.parseMemberExpr(expr)
		default:
			return expr, true
		}
		if !ok {
			return nil, false
		}
	}
}

func (p *Parser) parseCallExpr(fun ast.Expr) (ast.Expr, bool) {
	open := p.advance() // '('
	var args []ast.Expr
	for !p.at(token.RParen) {
		arg, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	closeTok, ok := p.expectClosing(token.RParen, diag.SynUnclosedParen, "',' or ')' in argument list", open)
	if !ok {
		return nil, false
	}
	return ast.NewCall(fun.Span().Cover(closeTok.Span), fun, args), true
}

func (p *Parser) parseIndexExpr(x ast.Expr) (ast.Expr, bool) {
	open := p.advance() // '['
	index, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	closeTok, ok := p.expectClosing(token.RBracket, diag.SynUnclosedBracket, "']'", open)
	if !ok {
		return nil, false
	}
	return ast.NewIndex(x.Span().Cover(closeTok.Span), x, index), true
}

func (p *Parser) parseMemberExpr(x ast.Expr) (ast.Expr, bool) {
	p.advance() // '.'
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	return ast.NewMember(x.Span().Cover(name.Span()), x, name), true
}

// parsePrimaryExpr парсит атомарные выражения
func (p *Parser) parsePrimaryExpr() (ast.Expr, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return ast.NewIdent(tok.Span, tok.Text), true
	case token.IntLit:
		p.advance()
		return p.decodeInt(tok), true
	case token.FloatLit:
		p.advance()
		return p.decodeFloat(tok), true
	case token.StringLit:
		p.advance()
		return p.decodeString(tok), true
	case token.RuneLit:
		p.advance()
		return p.decodeRune(tok), true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return ast.NewBoolLit(tok.Span, tok.Kind == token.KwTrue), true
	case token.LParen:
		open := p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		closeTok, ok := p.expectClosing(token.RParen, diag.SynUnclosedParen, "')'", open)
		if !ok {
			return nil, false
		}
		return ast.NewParen(open.Span.Cover(closeTok.Span), inner), true
	default:
		p.fail(diag.SynExpectExpression, "expression")
		return nil, false
	}
}

// parseIdent: ожидает Ident. На ошибке: SynExpectIdentifier.
func (p *Parser) parseIdent() (*ast.Ident, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "identifier")
	if !ok {
		return nil, false
	}
	return ast.NewIdent(tok.Span, tok.Text), true
}
