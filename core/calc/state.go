/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Hesab Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package calc holds the calculator's interaction state. A State is a plain
// value: every transition returns a new State and leaves the receiver alone,
// so the web and terminal surfaces can share it without synchronization.
package calc

import (
	"strings"
	"unicode/utf8"

	"github.com/google/hesab/core/expr"
)

// Control tokens understood by Press
const (
	TokenEquals = "="
	TokenClear  = "C"
	TokenDelete = "DEL"
	TokenPi     = "pi"
	TokenE      = "e"
)

// KeyboardKeys are the printable keys passed through from a physical keyboard
const KeyboardKeys = "0123456789+-*/().^"

// State is the calculator display: the expression being edited and the
// result of evaluating it. Err is set when the expression does not
// currently evaluate; Result is empty in that case.
type State struct {
	Expr   string
	Result string
	Err    error
}

// New returns the cleared state
func New() State {
	return State{Result: "0"}
}

// FromExpr returns the state for an expression with its result rendered
func FromExpr(e string) State {
	return State{Expr: e}.render()
}

// render re-evaluates Expr. A blank expression shows 0.
func (s State) render() State {
	if strings.TrimSpace(s.Expr) == "" {
		return State{Expr: s.Expr, Result: "0"}
	}
	out, err := expr.EvaluateString(s.Expr)
	if err != nil {
		return State{Expr: s.Expr, Err: err}
	}
	return State{Expr: s.Expr, Result: out}
}

// Press applies a keypad token and returns the resulting state.
func (s State) Press(token string) State {
	switch token {
	case TokenEquals:
		return s.equals()
	case TokenClear:
		return New()
	case TokenDelete:
		if s.Expr == "" {
			return s.render()
		}
		_, size := utf8.DecodeLastRuneInString(s.Expr)
		return FromExpr(s.Expr[:len(s.Expr)-size])
	case TokenPi:
		return FromExpr(s.Expr + "π")
	case TokenE:
		return FromExpr(s.Expr + "e")
	}
	// digits, operators and function openers such as "sin(" append as-is
	return FromExpr(s.Expr + token)
}

// equals replaces the expression by its formatted value. On failure the
// expression is kept so it can be corrected.
func (s State) equals() State {
	out, err := expr.EvaluateString(s.Expr)
	if err != nil {
		return State{Expr: s.Expr, Err: err}
	}
	return State{Expr: out, Result: out}
}

// Keyboard maps a physical key name to a keypad press. ok is false when the
// key is not passed through and the state is unchanged.
func (s State) Keyboard(key string) (next State, ok bool) {
	switch key {
	case "Enter":
		return s.Press(TokenEquals), true
	case "Backspace":
		return s.Press(TokenDelete), true
	}
	if utf8.RuneCountInString(key) == 1 && strings.Contains(KeyboardKeys, key) {
		return s.Press(key), true
	}
	return s, false
}

// SmartFix rewrites calculator glyphs in the expression into plain
// arithmetic when the rewritten text evaluates. Otherwise the state is
// returned unchanged.
func (s State) SmartFix() State {
	fixed, err := expr.SmartFix(s.Expr)
	if err != nil {
		return s
	}
	return FromExpr(fixed)
}

// Failed reports whether the current expression does not evaluate
func (s State) Failed() bool {
	return s.Err != nil
}

// Display returns the text for the result area, substituting errorWord
// when the expression does not evaluate.
func (s State) Display(errorWord string) string {
	if s.Err != nil {
		return errorWord
	}
	return s.Result
}
