/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Hesab Authors
*/

package expr

import (
	"fmt"
	"strconv"
)

// Parser parses tokens into an AST
type Parser struct {
	lexer *Lexer
	env   *Env
	cur   Token
}

// NewParser creates a new parser resolving names against env
func NewParser(input string, env *Env) *Parser {
	if env == nil {
		env = DefaultEnv()
	}
	return &Parser{lexer: NewLexer(input, env), env: env}
}

func (p *Parser) advance() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidExpression}, args...)...)
}

// Parse parses the whole input and returns the AST. Trailing tokens, such as
// an unmatched ')', are an error.
func (p *Parser) Parse() (Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != TOKEN_EOF {
		return nil, p.errorf("unexpected '%s' at position %d", p.cur.Text(), p.cur.Pos)
	}
	return node, nil
}

// Expression parsing with precedence climbing
// Precedence (low to high):
// 1. +, -
// 2. *, /, %
// 3. unary -, +
// 4. ** (right associative, exponent may be signed)
// 5. function application
// 6. numbers, constants, parentheses

func (p *Parser) parseExpr() (Node, error) {
	return p.parseAddSub()
}

func (p *Parser) parseAddSub() (Node, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}

	for p.cur.Type == TOKEN_PLUS || p.cur.Type == TOKEN_MINUS {
		op := p.cur.Type
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMulDiv() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.cur.Type == TOKEN_STAR || p.cur.Type == TOKEN_SLASH || p.cur.Type == TOKEN_PERCENT {
		op := p.cur.Type
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// parseUnary binds looser than power, so -2**2 is -(2**2).
func (p *Parser) parseUnary() (Node, error) {
	if p.cur.Type == TOKEN_MINUS || p.cur.Type == TOKEN_PLUS {
		op := p.cur.Type
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: op, Expr: expr}, nil
	}
	return p.parsePower()
}

func (p *Parser) parsePower() (Node, error) {
	left, err := p.parseApplication()
	if err != nil {
		return nil, err
	}

	// Power is right-associative
	if p.cur.Type == TOKEN_POWER {
		op := p.cur.Type
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &BinaryOp{Op: op, Left: left, Right: right}, nil
	}
	return left, nil
}

// parseApplication handles "sqrt(16)" as well as the keypad form "√16".
func (p *Parser) parseApplication() (Node, error) {
	if p.cur.Type != TOKEN_IDENT || !p.env.IsFunc(p.cur.Value) {
		return p.parsePrimary()
	}

	name, pos := p.cur.Value, p.cur.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.Type == TOKEN_EOF {
		return nil, p.errorf("missing argument for %s at position %d", name, pos)
	}

	var arg Node
	var err error
	if p.cur.Type == TOKEN_MINUS || p.cur.Type == TOKEN_PLUS {
		op := p.cur.Type
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseApplication()
		if err != nil {
			return nil, err
		}
		arg = &UnaryOp{Op: op, Expr: inner}
	} else {
		arg, err = p.parseApplication()
		if err != nil {
			return nil, err
		}
	}
	return &CallExpr{Func: name, Arg: arg}, nil
}

func (p *Parser) parsePrimary() (Node, error) {
	switch p.cur.Type {
	case TOKEN_NUMBER:
		val, err := strconv.ParseFloat(p.cur.Value, 64)
		if err != nil {
			return nil, p.errorf("invalid number %s at position %d", p.cur.Value, p.cur.Pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &NumberLit{Value: val}, nil

	case TOKEN_IDENT:
		name, pos := p.cur.Value, p.cur.Pos
		if !p.env.IsConst(name) {
			return nil, p.errorf("unknown name %q at position %d", name, pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Ident{Name: name, Pos: pos}, nil

	case TOKEN_LPAREN:
		open := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur.Type != TOKEN_RPAREN {
			return nil, p.errorf("missing ')' for '(' at position %d", open)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return expr, nil

	case TOKEN_EOF:
		return nil, p.errorf("unexpected end of expression")

	default:
		return nil, p.errorf("unexpected '%s' at position %d", p.cur.Text(), p.cur.Pos)
	}
}
