/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Hesab Authors
*/

package expr

import (
	"fmt"
	"strings"
	"unicode"
)

// Lexer tokenizes an expression string.
//
// Calculator glyphs are folded into their canonical tokens while reading, and
// a TOKEN_STAR is synthesized between adjacent operands ("2(3)", "(1)(2)",
// "2sqrt(4)", "2π"), so the parser only ever sees explicit operators.
type Lexer struct {
	input []rune
	pos   int
	ch    rune
	env   *Env

	prev    TokenType
	prevVal string
	pending *Token
}

// NewLexer creates a new lexer for the given input. The environment is used
// to tell function names from constants when inserting implicit
// multiplication; a nil env means DefaultEnv.
func NewLexer(input string, env *Env) *Lexer {
	if env == nil {
		env = DefaultEnv()
	}
	l := &Lexer{input: []rune(input), env: env, prev: TOKEN_EOF}
	if len(l.input) > 0 {
		l.ch = l.input[0]
	}
	return l
}

func (l *Lexer) advance() {
	l.pos++
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.pos]
	}
}

// atEnd reports whether the whole input has been consumed. A NUL inside the
// input is an ordinary (invalid) character.
func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) peek() rune {
	return l.peekAt(1)
}

func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && unicode.IsSpace(l.ch) {
		l.advance()
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() (Token, error) {
	if l.pending != nil {
		tok := *l.pending
		l.pending = nil
		l.remember(tok)
		return tok, nil
	}

	tok, err := l.scan()
	if err != nil {
		return Token{}, err
	}

	if l.endsOperand() && l.startsOperand(tok) {
		l.pending = &tok
		star := Token{Type: TOKEN_STAR, Value: "*", Pos: tok.Pos, Implicit: true}
		l.remember(star)
		return star, nil
	}

	l.remember(tok)
	return tok, nil
}

// Tokens drains the lexer and returns every token up to and including EOF.
func (l *Lexer) Tokens() ([]Token, error) {
	var out []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Type == TOKEN_EOF {
			return out, nil
		}
	}
}

func (l *Lexer) remember(tok Token) {
	l.prev = tok.Type
	l.prevVal = tok.Value
}

// endsOperand reports whether the previously emitted token closes a value.
func (l *Lexer) endsOperand() bool {
	switch l.prev {
	case TOKEN_NUMBER, TOKEN_RPAREN:
		return true
	case TOKEN_IDENT:
		return !l.env.IsFunc(l.prevVal)
	}
	return false
}

// startsOperand reports whether tok may begin a value that directly follows
// the previous one. A number right after a number is left alone so that
// "2 3" stays a syntax error.
func (l *Lexer) startsOperand(tok Token) bool {
	switch tok.Type {
	case TOKEN_LPAREN, TOKEN_IDENT:
		return true
	case TOKEN_NUMBER:
		return l.prev != TOKEN_NUMBER
	}
	return false
}

func (l *Lexer) scan() (Token, error) {
	l.skipWhitespace()

	if l.atEnd() {
		return Token{Type: TOKEN_EOF, Pos: l.pos}, nil
	}

	startPos := l.pos

	// Numbers
	if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peek())) {
		return l.readNumber(startPos)
	}

	// Identifiers
	if isLetter(l.ch) {
		return l.readIdent(startPos)
	}

	switch l.ch {
	case '+':
		l.advance()
		return Token{Type: TOKEN_PLUS, Value: "+", Pos: startPos}, nil
	case '-', '–', '−':
		l.advance()
		return Token{Type: TOKEN_MINUS, Value: "-", Pos: startPos}, nil
	case '*':
		l.advance()
		if l.ch == '*' {
			l.advance()
			return Token{Type: TOKEN_POWER, Value: "**", Pos: startPos}, nil
		}
		return Token{Type: TOKEN_STAR, Value: "*", Pos: startPos}, nil
	case '×':
		l.advance()
		return Token{Type: TOKEN_STAR, Value: "*", Pos: startPos}, nil
	case '/', '÷':
		l.advance()
		return Token{Type: TOKEN_SLASH, Value: "/", Pos: startPos}, nil
	case '%':
		l.advance()
		return Token{Type: TOKEN_PERCENT, Value: "%", Pos: startPos}, nil
	case '^':
		l.advance()
		return Token{Type: TOKEN_POWER, Value: "**", Pos: startPos}, nil
	case '(':
		l.advance()
		return Token{Type: TOKEN_LPAREN, Value: "(", Pos: startPos}, nil
	case ')':
		l.advance()
		return Token{Type: TOKEN_RPAREN, Value: ")", Pos: startPos}, nil
	case '√':
		l.advance()
		return Token{Type: TOKEN_IDENT, Value: "sqrt", Pos: startPos}, nil
	case 'π':
		l.advance()
		return Token{Type: TOKEN_IDENT, Value: "pi", Pos: startPos}, nil
	}

	return Token{}, fmt.Errorf("%w: unexpected character %q at position %d", ErrInvalidExpression, l.ch, startPos)
}

func (l *Lexer) readNumber(startPos int) (Token, error) {
	var sb strings.Builder
	hasDecimal := false

	for isDigit(l.ch) || l.ch == '.' {
		if l.ch == '.' {
			if hasDecimal {
				return Token{}, fmt.Errorf("%w: malformed number at position %d", ErrInvalidExpression, startPos)
			}
			hasDecimal = true
		}
		sb.WriteRune(l.ch)
		l.advance()
	}

	// exponent suffix, only when digits follow: "2e" and "2e+" keep e as
	// the constant
	if l.ch == 'e' || l.ch == 'E' {
		n := 1
		if sign := l.peekAt(1); sign == '+' || sign == '-' {
			n = 2
		}
		if isDigit(l.peekAt(n)) {
			for i := 0; i < n; i++ {
				sb.WriteRune(l.ch)
				l.advance()
			}
			for isDigit(l.ch) {
				sb.WriteRune(l.ch)
				l.advance()
			}
		}
	}

	return Token{Type: TOKEN_NUMBER, Value: sb.String(), Pos: startPos}, nil
}

func (l *Lexer) readIdent(startPos int) (Token, error) {
	var sb strings.Builder

	for isLetter(l.ch) {
		sb.WriteRune(l.ch)
		l.advance()
	}

	return Token{Type: TOKEN_IDENT, Value: sb.String(), Pos: startPos}, nil
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// isLetter accepts ASCII letters only; π and √ are glyphs, not identifiers.
func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}
