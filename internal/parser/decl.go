package parser

import (
	"strings"

	"arkc/internal/ast"
	"arkc/internal/diag"
	"arkc/internal/token"
)

// parseFuncDecl: func IDENT ( params ) [ : [mut] type ] block
func (p *Parser) parseFuncDecl() (*ast.FuncDecl, bool) {
	kw := p.advance() // 'func'
	doc := docLines(kw)

	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "'(' after function name")
	if !ok {
		return nil, false
	}

	var params []*ast.Param
	for !p.at(token.RParen) {
		param, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expectClosing(token.RParen, diag.SynUnclosedParen, "',' or ')' in parameter list", open); !ok {
		return nil, false
	}

	resultMut := false
	var result ast.TypeExpr
	if p.eat(token.Colon) {
		resultMut = p.eat(token.KwMut)
		if result, ok = p.parseType(); !ok {
			return nil, false
		}
	}

	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return ast.NewFuncDecl(kw.Span.Cover(body.Span()), doc, name, params, resultMut, result, body), true
}

// parseParam: [mut] IDENT : type
func (p *Parser) parseParam() (*ast.Param, bool) {
	start := p.peek()
	mut := p.eat(token.KwMut)
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "':' after parameter name"); !ok {
		return nil, false
	}
	typ, ok := p.parseType()
	if !ok {
		return nil, false
	}
	return ast.NewParam(start.Span.Cover(typ.Span()), mut, name, typ), true
}

// parseStructDecl: struct IDENT { { field [,] } }
func (p *Parser) parseStructDecl() (*ast.StructDecl, bool) {
	kw := p.advance() // 'struct'
	doc := docLines(kw)

	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "'{' after struct name")
	if !ok {
		return nil, false
	}
	p.nest++

	var fields []*ast.Field
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		start := p.peek()
		mut := p.eat(token.KwMut)
		fieldName, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "':' after field name"); !ok {
			return nil, false
		}
		typ, ok := p.parseType()
		if !ok {
			return nil, false
		}
		fields = append(fields, ast.NewField(start.Span.Cover(typ.Span()), mut, fieldName, typ))
		if !p.eat(token.Comma) {
			p.eat(token.Semicolon)
		}
	}
	closeTok, ok := p.expectClosing(token.RBrace, diag.SynUnclosedBrace, "'}' after struct fields", open)
	if !ok {
		return nil, false
	}
	p.nest--
	return ast.NewStructDecl(kw.Span.Cover(closeTok.Span), doc, name, fields), true
}

// parseVarDecl: [mut] IDENT : [type] [= expr] [;]
func (p *Parser) parseVarDecl() (*ast.VarDecl, bool) {
	start := p.peek()
	mut := p.eat(token.KwMut)
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	colon, ok := p.expect(token.Colon, diag.SynExpectColon, "':' after variable name")
	if !ok {
		return nil, false
	}
	end := colon.Span

	var typ ast.TypeExpr
	if p.atTypeStart() {
		if typ, ok = p.parseType(); !ok {
			return nil, false
		}
		end = typ.Span()
	}

	var value ast.Expr
	if p.eat(token.Assign) {
		if value, ok = p.parseExpr(); !ok {
			return nil, false
		}
		end = value.Span()
	} else if typ == nil {
		p.fail(diag.SynExpectType, "type or '=' after ':'")
		return nil, false
	}

	p.eat(token.Semicolon)
	return ast.NewVarDecl(start.Span.Cover(end), mut, name, typ, value), true
}

// docLines вытаскивает /// строки из leading trivia ключевого слова.
func docLines(tok token.Token) []string {
	var out []string
	for _, tr := range tok.Leading {
		switch tr.Kind {
		case token.TriviaDocLine:
			line := strings.TrimPrefix(tr.Text, "///")
			out = append(out, strings.TrimPrefix(line, " "))
		case token.TriviaLineComment, token.TriviaBlockComment:
			// обычный комментарий разрывает doc-блок
			out = nil
		}
	}
	return out
}
