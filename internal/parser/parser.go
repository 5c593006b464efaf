package parser

import (
	"lox-lang/impl/internal/diag"
	"lox-lang/impl/internal/token"
)

// parseError unwinds a failed declaration back to the point where the parser
// can resynchronise. It has already been reported when it is created.
type parseError struct {
	tok token.Token
	msg string
}

func (e *parseError) Error() string { return e.msg }

type Parser struct {
	toks  []token.Token
	i     int
	diags diag.List
}

// New expects toks to end with an EOF token, as produced by lexer.Lex.
func New(toks []token.Token) *Parser {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		line := 1
		if len(toks) > 0 {
			line = toks[len(toks)-1].Line
		}
		toks = append(toks[:len(toks):len(toks)], token.Token{Kind: token.EOF, Line: line})
	}
	return &Parser{toks: toks}
}

// Parse is shorthand for New(toks).ParseProgram().
func Parse(toks []token.Token) (Program, diag.List) { return New(toks).ParseProgram() }

func (p *Parser) cur() token.Token { return p.toks[p.i] }

func (p *Parser) prev() token.Token { return p.toks[p.i-1] }

func (p *Parser) atEnd() bool { return p.cur().Kind == token.EOF }

func (p *Parser) next() token.Token {
	t := p.cur()
	if !p.atEnd() {
		p.i++
	}
	return t
}

func (p *Parser) check(kind token.Kind) bool {
	return !p.atEnd() && p.cur().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.next()
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind token.Kind, msg string) (token.Token, error) {
	if p.check(kind) {
		return p.next(), nil
	}
	return token.Token{}, p.fail(p.cur(), msg)
}

func (p *Parser) fail(tok token.Token, msg string) error {
	p.diags.SyntaxError(tok, msg)
	return &parseError{tok: tok, msg: msg}
}

// ParseProgram parses every declaration in the stream. Declarations that fail
// to parse are reported and left out; the returned diagnostics tell the
// caller whether the program may be run.
func (p *Parser) ParseProgram() (Program, diag.List) {
	stmts := []Statement{}
	for !p.atEnd() {
		if st := p.declaration(); st != nil {
			stmts = append(stmts, st)
		}
	}
	return Program{Statements: stmts, Type: "Program"}, p.diags
}

func (p *Parser) declaration() Statement {
	var st Statement
	var err error
	switch {
	case p.match(token.Var):
		st, err = p.varDeclaration()
	case p.match(token.LeftBrace):
		var stmts []Statement
		stmts, err = p.block()
		st = NewBlockStmt(stmts)
	default:
		st, err = p.statement()
	}
	if err != nil {
		p.synchronize()
		return nil
	}
	return st
}

func (p *Parser) varDeclaration() (Statement, error) {
	name, err := p.expect(token.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var init Expr
	if p.match(token.Equal) {
		if init, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return NewVarStmt(name, init), nil
}

// block parses declarations up to the closing brace; the opening brace has
// already been consumed.
func (p *Parser) block() ([]Statement, error) {
	stmts := []Statement{}
	for !p.check(token.RightBrace) && !p.atEnd() {
		if st := p.declaration(); st != nil {
			stmts = append(stmts, st)
		}
	}
	if _, err := p.expect(token.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) statement() (Statement, error) {
	if p.match(token.Print) {
		v, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Semicolon, "Expect ';' after value."); err != nil {
			return nil, err
		}
		return NewPrintStmt(v), nil
	}
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return NewExpressionStmt(e), nil
}

func (p *Parser) expression() (Expr, error) { return p.assignment() }

func (p *Parser) assignment() (Expr, error) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}
	if !p.match(token.Equal) {
		return left, nil
	}
	equals := p.prev()
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	if v, ok := left.(Variable); ok {
		return NewAssign(v.Name, value), nil
	}
	return nil, p.fail(equals, "Invalid assignment target.")
}

// binary parses one left-associative precedence level: operand (op operand)*.
func (p *Parser) binary(operand func() (Expr, error), ops ...token.Kind) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.prev()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = NewBinary(left, op, right)
	}
	return left, nil
}

func (p *Parser) equality() (Expr, error) {
	return p.binary(p.comparison, token.BangEqual, token.EqualEqual)
}

func (p *Parser) comparison() (Expr, error) {
	return p.binary(p.addition, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *Parser) addition() (Expr, error) {
	return p.binary(p.multiplication, token.Minus, token.Plus)
}

func (p *Parser) multiplication() (Expr, error) {
	return p.binary(p.unary, token.Slash, token.Star)
}

func (p *Parser) unary() (Expr, error) {
	if p.match(token.Bang, token.Minus) {
		op := p.prev()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return NewUnary(op, operand), nil
	}
	return p.primary()
}

func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(token.False):
		return NewLiteral(false), nil
	case p.match(token.True):
		return NewLiteral(true), nil
	case p.match(token.Nil):
		return NewLiteral(nil), nil
	case p.match(token.Number, token.String):
		return NewLiteral(p.prev().Literal), nil
	case p.match(token.Identifier):
		return NewVariable(p.prev()), nil
	case p.match(token.LeftParen):
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return NewGrouping(inner), nil
	}
	return nil, p.fail(p.cur(), "Expect expression.")
}

// synchronize discards tokens until a likely statement boundary: just past a
// ';' or just before a keyword that starts a declaration or statement.
func (p *Parser) synchronize() {
	p.next()
	for !p.atEnd() {
		if p.prev().Kind == token.Semicolon {
			return
		}
		switch p.cur().Kind {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.next()
	}
}
