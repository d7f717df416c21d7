package parser

import (
	"context"

	"arkc/internal/ast"
	"arkc/internal/diag"
	"arkc/internal/source"
	"arkc/internal/token"
)

// DefaultMaxDepth ограничивает вложенность выражений, типов и блоков.
const DefaultMaxDepth = 256

type Options struct {
	MaxErrors uint // 0: без лимита диагностик
	MaxDepth  int  // 0: DefaultMaxDepth
	Reporter  diag.Reporter
	// Trace, если задан, вызывается на каждый потреблённый токен.
	Trace func(pos int, tok token.Token)
}

// Failure describes one aborted construct: the token the parser stopped at and
// what it expected there.
type Failure struct {
	Token    token.Token
	Code     diag.Code
	Expected string
}

type Result struct {
	File     *ast.File
	Failures []Failure
	// Unrecovered is set when panic-mode recovery ran into end of file without
	// finding a synchronization point.
	Unrecovered bool
}

// Failed reports whether any construct failed to parse.
func (r Result) Failed() bool {
	return len(r.Failures) > 0 || r.Unrecovered
}

// Parser: состояние парсера на один файл
type Parser struct {
	toks     []token.Token
	pos      int
	opts     Options
	depth    int
	nest     int // открытые '{' на момент ошибки
	tooDeep  bool
	errors   uint
	failures []Failure
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// New creates a parser over toks with the cursor at zero. A missing trailing
// EOF token is supplied so that the sequence is always terminated.
func New(toks []token.Token, opts Options) *Parser {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		var sp source.Span
		if len(toks) > 0 {
			sp = toks[len(toks)-1].Span.EndPoint()
		}
		toks = append(toks[:len(toks):len(toks)], token.Token{Kind: token.EOF, Span: sp})
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Parser{toks: toks, opts: opts}
}

// Pos returns the cursor: the index of the next unconsumed token. It never
// decreases and always stays below Len.
func (p *Parser) Pos() int { return p.pos }

// Len returns the number of tokens including the terminating EOF.
func (p *Parser) Len() int { return len(p.toks) }

// ParseFile: входная точка для разбора одного файла.
func ParseFile(ctx context.Context, name string, toks []token.Token, opts Options) (Result, error) {
	return New(toks, opts).Parse(ctx, name)
}

// Parse recognizes top-level items until EOF. ctx is checked between items;
// on cancellation the items parsed so far are returned together with ctx.Err().
func (p *Parser) Parse(ctx context.Context, name string) (Result, error) {
	startSpan := p.peek().Span
	items := make([]ast.Item, 0, 8)
	unrecovered := false
	var err error

	for !p.at(token.EOF) {
		if err = ctx.Err(); err != nil {
			break
		}
		start := p.pos
		item, ok := p.parseItem()
		if ok {
			items = append(items, item)
			continue
		}
		if !p.resyncTop(start) {
			unrecovered = true
		}
	}

	file := ast.NewFile(startSpan.Cover(p.peek().Span), name, items)
	return Result{
		File:        file,
		Failures:    p.failures,
		Unrecovered: unrecovered,
	}, err
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem() (ast.Item, bool) {
	p.depth = 0
	p.nest = 0
	p.tooDeep = false

	tok := p.peek()
	switch {
	case tok.Kind == token.KwFunc:
		if d, ok := p.parseFuncDecl(); ok {
			return d, true
		}
	case tok.Kind == token.KwStruct:
		if d, ok := p.parseStructDecl(); ok {
			return d, true
		}
	case p.atVarDecl():
		if d, ok := p.parseVarDecl(); ok {
			return d, true
		}
	case tok.Kind == token.KwReturn, tok.Kind == token.KwIf, tok.Kind == token.LBrace, canStartExpr(tok.Kind):
		if s, ok := p.parseStmt(); ok {
			return s, true
		}
	default:
		p.fail(diag.SynUnexpectedTopLevel, "declaration or statement")
	}
	return nil, false
}

// resyncTop: panic-mode восстановление после ошибки на верхнем уровне.
// Пропускаем токены до ';' (съедаем), до 'func'/'struct'/'mut' или до '}',
// закрывающего конструкцию, внутри которой случилась ошибка.
// Возвращает false, если внутри незакрытого блока дошли до EOF.
func (p *Parser) resyncTop(itemStart int) bool {
	depth := p.nest
	p.nest = 0
	skipped := 0
	var first token.Token

	for {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF:
			// на верхнем уровне EOF сам по себе граница; внутри
			// незакрытого блока синхронизироваться не с чем
			if skipped > 0 && depth > 0 {
				p.report(diag.SynUnrecoverable, diag.SevError, first.Span.Cover(tok.Span),
					"no synchronization point before end of file; rest of file skipped")
				return false
			}
			return true
		case token.KwFunc, token.KwStruct:
			if p.pos > itemStart {
				return true
			}
		case token.KwMut:
			if depth == 0 && p.pos > itemStart {
				return true
			}
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return true
			}
		case token.LBrace:
			depth++
		case token.RBrace:
			// '}' закрывает конструкцию с ошибкой или сам по себе лишний
			if depth <= 1 {
				p.advance()
				return true
			}
			depth--
		default:
			// новая строка, начинающаяся как statement, тоже годится
			if depth == 0 && skipped > 0 && startsLine(tok) && canStartItem(tok.Kind) {
				return true
			}
		}
		if skipped == 0 {
			first = tok
		}
		p.advance()
		skipped++
	}
}

// atVarDecl: [mut] IDENT ':'
func (p *Parser) atVarDecl() bool {
	if p.at(token.KwMut) {
		return true
	}
	return p.at(token.Ident) && p.peekN(1).Kind == token.Colon
}

func (p *Parser) enough() bool {
	if p.opts.MaxErrors == 0 {
		return false
	}
	return p.errors > p.opts.MaxErrors
}
