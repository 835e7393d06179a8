/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Hesab Authors
*/

package expr

import (
	"fmt"
	"math"
	"sort"
)

// Func is a unary function exposed to expressions
type Func func(float64) float64

// Env is the scope an expression is resolved and evaluated against
type Env struct {
	funcs  map[string]Func
	consts map[string]float64
}

// NewEnv creates an empty environment
func NewEnv() *Env {
	return &Env{
		funcs:  make(map[string]Func),
		consts: make(map[string]float64),
	}
}

// DefaultEnv returns the calculator scope: sqrt, sin, cos, tan, log (natural)
// and the constants pi and e.
func DefaultEnv() *Env {
	return NewEnv().
		WithFunc("sqrt", math.Sqrt).
		WithFunc("sin", math.Sin).
		WithFunc("cos", math.Cos).
		WithFunc("tan", math.Tan).
		WithFunc("log", math.Log).
		WithConst("pi", math.Pi).
		WithConst("e", math.E)
}

// ArithmeticEnv returns a scope with no names at all
func ArithmeticEnv() *Env {
	return NewEnv()
}

// WithFunc registers a function and returns the env for chaining
func (e *Env) WithFunc(name string, fn Func) *Env {
	e.funcs[name] = fn
	return e
}

// WithConst registers a constant and returns the env for chaining
func (e *Env) WithConst(name string, v float64) *Env {
	e.consts[name] = v
	return e
}

// IsFunc reports whether name is a function in this scope
func (e *Env) IsFunc(name string) bool {
	_, ok := e.funcs[name]
	return ok
}

// IsConst reports whether name is a constant in this scope
func (e *Env) IsConst(name string) bool {
	_, ok := e.consts[name]
	return ok
}

// FuncNames returns the function names in sorted order
func (e *Env) FuncNames() []string {
	names := make([]string, 0, len(e.funcs))
	for name := range e.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluator evaluates an expression AST
type Evaluator struct {
	ast Node
	env *Env
}

// NewEvaluator creates an evaluator bound to env
func NewEvaluator(ast Node, env *Env) *Evaluator {
	return &Evaluator{ast: ast, env: env}
}

// Eval evaluates the expression. A NaN or infinite result is reported as
// ErrInvalidResult; intermediate infinities are allowed to cancel out, so
// 1/(1/0) is 0.
func (e *Evaluator) Eval() (float64, error) {
	v, err := e.eval(e.ast)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidResult, v)
	}
	return v, nil
}

func (e *Evaluator) eval(node Node) (float64, error) {
	switch n := node.(type) {
	case *NumberLit:
		return n.Value, nil

	case *Ident:
		v, ok := e.env.consts[n.Name]
		if !ok {
			return 0, fmt.Errorf("%w: unknown name %q at position %d", ErrInvalidExpression, n.Name, n.Pos)
		}
		return v, nil

	case *UnaryOp:
		v, err := e.eval(n.Expr)
		if err != nil {
			return 0, err
		}
		if n.Op == TOKEN_MINUS {
			return -v, nil
		}
		return v, nil

	case *BinaryOp:
		left, err := e.eval(n.Left)
		if err != nil {
			return 0, err
		}
		right, err := e.eval(n.Right)
		if err != nil {
			return 0, err
		}
		return e.evalBinaryOp(n.Op, left, right)

	case *CallExpr:
		fn, ok := e.env.funcs[n.Func]
		if !ok {
			return 0, fmt.Errorf("%w: unknown function %q", ErrInvalidExpression, n.Func)
		}
		arg, err := e.eval(n.Arg)
		if err != nil {
			return 0, err
		}
		return fn(arg), nil
	}

	return 0, fmt.Errorf("%w: unknown node type %T", ErrInvalidExpression, node)
}

func (e *Evaluator) evalBinaryOp(op TokenType, left, right float64) (float64, error) {
	switch op {
	case TOKEN_PLUS:
		return left + right, nil
	case TOKEN_MINUS:
		return left - right, nil
	case TOKEN_STAR:
		return left * right, nil
	case TOKEN_SLASH:
		return left / right, nil
	case TOKEN_PERCENT:
		return math.Mod(left, right), nil
	case TOKEN_POWER:
		return math.Pow(left, right), nil
	}
	return 0, fmt.Errorf("%w: unsupported operator %s", ErrInvalidExpression, op)
}
