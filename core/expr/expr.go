/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Hesab Authors

Package expr provides the calculator's expression interpreter.
It supports:
  - Number literals: 123, 3.14, .5
  - Arithmetic operators: +, -, *, /, % (remainder), ** and ^ (power)
  - Calculator glyphs: × ÷ − – √ π
  - Implicit multiplication: 2(3), (1)(2), 2sqrt(4), 2π
  - Functions: sqrt(), sin(), cos(), tan(), log() (natural logarithm)
  - Constants: pi, e
*/
package expr

import (
	"fmt"
	"strings"
)

// Expression represents a compiled expression ready for evaluation
type Expression struct {
	source string
	ast    Node
	env    *Env
}

// Compile parses an expression string against env. A nil env means
// DefaultEnv.
func Compile(source string, env *Env) (*Expression, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}
	if env == nil {
		env = DefaultEnv()
	}

	parser := NewParser(source, env)
	ast, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	return &Expression{
		source: source,
		ast:    ast,
		env:    env,
	}, nil
}

// Source returns the original expression source
func (e *Expression) Source() string {
	return e.source
}

// AST returns the parsed tree
func (e *Expression) AST() Node {
	return e.ast
}

// Eval evaluates the expression
func (e *Expression) Eval() (float64, error) {
	return NewEvaluator(e.ast, e.env).Eval()
}

// Evaluate compiles and evaluates source in the default environment.
func Evaluate(source string) (float64, error) {
	compiled, err := Compile(source, nil)
	if err != nil {
		return 0, err
	}
	return compiled.Eval()
}

// EvaluateString evaluates source and returns the formatted result
func EvaluateString(source string) (string, error) {
	v, err := Evaluate(source)
	if err != nil {
		return "", err
	}
	return Format(v), nil
}

// Normalize returns the canonical form of source: glyphs replaced by their
// ASCII spelling, implicit multiplications made explicit and whitespace
// removed. The result re-normalizes to itself.
func Normalize(source string) (string, error) {
	if _, err := Compile(source, nil); err != nil {
		return "", err
	}
	tokens, err := NewLexer(source, nil).Tokens()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	prev := TOKEN_EOF
	for _, tok := range tokens {
		// "sqrt pi" must not collapse into the single name "sqrtpi"
		if prev == TOKEN_IDENT && tok.Type == TOKEN_IDENT {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Text())
		prev = tok.Type
	}
	return sb.String(), nil
}

var glyphs = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"–", "-",
	"−", "-",
	"√", "sqrt",
	"^", "**",
	"π", "pi",
)

// SubstituteGlyphs replaces calculator glyphs with their ASCII spelling and
// leaves everything else, including whitespace, untouched.
func SubstituteGlyphs(source string) string {
	return glyphs.Replace(source)
}

// SmartFix rewrites the glyphs in source when the result is plain
// arithmetic that evaluates cleanly. Function names and constants are not in
// scope here. On failure the error is returned and source should be kept.
func SmartFix(source string) (string, error) {
	fixed := SubstituteGlyphs(source)
	compiled, err := Compile(fixed, ArithmeticEnv())
	if err != nil {
		return source, err
	}
	if _, err := compiled.Eval(); err != nil {
		return source, err
	}
	return fixed, nil
}
