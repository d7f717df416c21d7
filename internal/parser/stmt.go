package parser

import (
	"arkc/internal/ast"
	"arkc/internal/diag"
	"arkc/internal/token"
)

// parseStmt: return | if | block | varDecl | simpleStmt
func (p *Parser) parseStmt() (ast.Stmt, bool) {
	switch p.peek().Kind {
	case token.LBrace:
		if b, ok := p.parseBlock(); ok {
			return b, true
		}
		return nil, false
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwIf:
		if s, ok := p.parseIfStmt(); ok {
			return s, true
		}
		return nil, false
	}
	if p.atVarDecl() {
		if d, ok := p.parseVarDecl(); ok {
			return d, true
		}
		return nil, false
	}
	if canStartExpr(p.peek().Kind) {
		return p.parseSimpleStmt()
	}
	p.fail(diag.SynUnexpectedToken, "statement")
	return nil, false
}

// parseBlock: { { stmt } }
func (p *Parser) parseBlock() (*ast.BlockStmt, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "'{'")
	if !ok {
		return nil, false
	}
	p.nest++

	var stmts []ast.Stmt
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		s, ok := p.parseStmt()
		if !ok {
			return nil, false
		}
		stmts = append(stmts, s)
	}
	closeTok, ok := p.expectClosing(token.RBrace, diag.SynUnclosedBrace, "'}'", open)
	if !ok {
		return nil, false
	}
	p.nest--
	return ast.NewBlockStmt(open.Span.Cover(closeTok.Span), stmts), true
}

// parseReturnStmt: return [expr] [;]. Выражение на следующей строке к return
// не относится.
func (p *Parser) parseReturnStmt() (ast.Stmt, bool) {
	kw := p.advance()
	sp := kw.Span
	var result ast.Expr
	if next := p.peek(); canStartExpr(next.Kind) && !startsLine(next) {
		var ok bool
		if result, ok = p.parseExpr(); !ok {
			return nil, false
		}
		sp = sp.Cover(result.Span())
	}
	p.eat(token.Semicolon)
	return ast.NewReturnStmt(sp, result), true
}

// parseIfStmt: if expr block [ else ( ifStmt | block ) ]
func (p *Parser) parseIfStmt() (*ast.IfStmt, bool) {
	kw := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	sp := kw.Span.Cover(then.Span())

	var els ast.Stmt
	if p.eat(token.KwElse) {
		if p.at(token.KwIf) {
			if !p.enter() {
				return nil, false
			}
			elif, ok := p.parseIfStmt()
			p.leave()
			if !ok {
				return nil, false
			}
			els = elif
		} else {
			block, ok := p.parseBlock()
			if !ok {
				return nil, false
			}
			els = block
		}
		sp = sp.Cover(els.Span())
	}
	return ast.NewIfStmt(sp, cond, then, els), true
}

// parseSimpleStmt: expr [ = expr ] [;]
func (p *Parser) parseSimpleStmt() (ast.Stmt, bool) {
	lhs, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if p.eat(token.Assign) {
		rhs, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		p.eat(token.Semicolon)
		return ast.NewAssignStmt(lhs.Span().Cover(rhs.Span()), lhs, rhs), true
	}
	p.eat(token.Semicolon)
	return ast.NewExprStmt(lhs.Span(), lhs), true
}
