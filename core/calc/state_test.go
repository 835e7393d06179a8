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

package calc

import (
	"testing"

	"github.com/google/hesab/core/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(s State, tokens ...string) State {
	for _, tok := range tokens {
		s = s.Press(tok)
	}
	return s
}

func TestNewRendersZero(t *testing.T) {
	s := New()
	assert.Equal(t, "", s.Expr)
	assert.Equal(t, "0", s.Result)
	assert.NoError(t, s.Err)

	blank := FromExpr("   ")
	assert.Equal(t, "0", blank.Result)
	assert.False(t, blank.Failed())
}

func TestPress(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		expr     string
		result   string
		hasError bool
	}{
		{"digits", []string{"1", "2"}, "12", "12", false},
		{"live result", []string{"2", "+", "3", "×", "4"}, "2+3×4", "14", false},
		{"incomplete", []string{"2", "+"}, "2+", "", true},
		{"equals", []string{"2", "+", "3", "="}, "5", "5", false},
		{"equals on error keeps expression", []string{"1", "÷", "0", "="}, "1÷0", "", true},
		{"clear", []string{"7", "C"}, "", "0", false},
		{"delete", []string{"1", "2", "DEL"}, "1", "1", false},
		{"delete glyph", []string{"2", "pi", "DEL"}, "2", "2", false},
		{"delete on empty", []string{"DEL"}, "", "0", false},
		{"pi", []string{"2", "pi"}, "2π", "6.28318530718", false},
		{"e", []string{"e"}, "e", "2.71828182846", false},
		{"function", []string{"sqrt(", "1", "6", ")"}, "sqrt(16)", "4", false},
		{"keypad root", []string{"√", "9"}, "√9", "3", false},
		{"percent", []string{"7", "%", "4"}, "7%4", "3", false},
		{"equals then continue", []string{"6", "÷", "4", "=", "×", "2"}, "1.5×2", "3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := press(New(), tt.tokens...)
			assert.Equal(t, tt.expr, s.Expr)
			assert.Equal(t, tt.result, s.Result)
			assert.Equal(t, tt.hasError, s.Failed())
		})
	}
}

func TestPressDoesNotMutateReceiver(t *testing.T) {
	s := FromExpr("1+1")
	_ = s.Press("=")
	_ = s.Press("C")
	assert.Equal(t, "1+1", s.Expr)
	assert.Equal(t, "2", s.Result)
}

func TestEqualsOnBlankFails(t *testing.T) {
	s := New().Press(TokenEquals)
	require.Error(t, s.Err)
	assert.ErrorIs(t, s.Err, expr.ErrInvalidExpression)
	assert.Equal(t, "", s.Expr)
}

func TestEditingAfterExponentResult(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		expr   string
		result string
	}{
		{
			name:   "small result",
			tokens: []string{"1", "/", "3", "0", "0", "0", "0", "0", "0", "=", "+", "1"},
			expr:   "3.33333333333e-7+1",
			result: "1.00000033333",
		},
		{
			name:   "large result",
			tokens: []string{"1", "0", "^", "2", "1", "=", "*", "2"},
			expr:   "1e+21*2",
			result: "2e+21",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := press(New(), tt.tokens...)
			require.NoError(t, s.Err)
			assert.Equal(t, tt.expr, s.Expr)
			assert.Equal(t, tt.result, s.Result)
		})
	}

	s := FromExpr("1e+21").Press("*").Press("2")
	require.NoError(t, s.Err)
	assert.Equal(t, "2e+21", s.Result)
}

func TestKeyboard(t *testing.T) {
	s := New()
	for _, key := range []string{"(", "1", "+", "2", ")", "^", "2"} {
		var ok bool
		s, ok = s.Keyboard(key)
		require.True(t, ok, key)
	}
	assert.Equal(t, "(1+2)^2", s.Expr)
	assert.Equal(t, "9", s.Result)

	s, ok := s.Keyboard("Backspace")
	require.True(t, ok)
	assert.Equal(t, "(1+2)^", s.Expr)

	s, ok = s.Keyboard("3")
	require.True(t, ok)
	s, ok = s.Keyboard("Enter")
	require.True(t, ok)
	assert.Equal(t, "27", s.Expr)

	for _, key := range []string{"a", "Shift", "=", "%", "ArrowLeft", ""} {
		next, ok := s.Keyboard(key)
		assert.False(t, ok, key)
		assert.Equal(t, s, next)
	}
}

func TestSmartFix(t *testing.T) {
	s := FromExpr("3×4^2").SmartFix()
	assert.Equal(t, "3*4**2", s.Expr)
	assert.Equal(t, "48", s.Result)

	unchanged := FromExpr("√(4)")
	assert.Equal(t, unchanged, unchanged.SmartFix())

	blank := New()
	assert.Equal(t, blank, blank.SmartFix())
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "14", FromExpr("2+3*4").Display("Error"))
	assert.Equal(t, "خطا", FromExpr("1/0").Display("خطا"))
	assert.Equal(t, "0", New().Display("Error"))
}
