/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Hesab Authors
*/

package expr

// TokenType represents the type of a token
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_NUMBER
	TOKEN_IDENT
	TOKEN_PLUS
	TOKEN_MINUS
	TOKEN_STAR
	TOKEN_SLASH
	TOKEN_PERCENT
	TOKEN_POWER // ** or ^
	TOKEN_LPAREN
	TOKEN_RPAREN
)

// String returns the canonical spelling of the token type
func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "end of expression"
	case TOKEN_NUMBER:
		return "number"
	case TOKEN_IDENT:
		return "identifier"
	case TOKEN_PLUS:
		return "+"
	case TOKEN_MINUS:
		return "-"
	case TOKEN_STAR:
		return "*"
	case TOKEN_SLASH:
		return "/"
	case TOKEN_PERCENT:
		return "%"
	case TOKEN_POWER:
		return "**"
	case TOKEN_LPAREN:
		return "("
	case TOKEN_RPAREN:
		return ")"
	}
	return "unknown"
}

// Token represents a lexical token.
// Value holds the canonical text: glyphs are already replaced, so a "×"
// in the input becomes a TOKEN_STAR with Value "*".
type Token struct {
	Type     TokenType
	Value    string
	Pos      int
	Implicit bool // inserted by the lexer for implicit multiplication
}

// Text returns the canonical text of the token
func (t Token) Text() string {
	switch t.Type {
	case TOKEN_NUMBER, TOKEN_IDENT:
		return t.Value
	case TOKEN_EOF:
		return ""
	}
	return t.Type.String()
}
