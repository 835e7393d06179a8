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

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/hesab/core/keypad"
	"github.com/google/hesab/core/locale"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	bundle, err := locale.Load("fa")
	require.NoError(t, err)
	return NewModel(Config{
		Labels: bundle.Get("en"),
		Layout: keypad.MustDefault(),
	})
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeText(m Model, text string) Model {
	return send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, ModeCalculator, m.Mode())
	assert.Equal(t, "", m.State().Expr)
	assert.Equal(t, "0", m.State().Result)
	assert.Nil(t, m.Init())
}

func TestTypingEvaluates(t *testing.T) {
	m := typeText(newTestModel(t), "2+3*4")
	assert.Equal(t, "2+3*4", m.State().Expr)
	assert.Equal(t, "14", m.State().Result)

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "14", m.State().Expr)
	assert.Equal(t, "14", m.State().Result)
}

func TestTypingFunctionNames(t *testing.T) {
	m := typeText(newTestModel(t), "sqrt(16)")
	assert.Equal(t, "sqrt(16)", m.State().Expr)
	assert.Equal(t, "4", m.State().Result)
}

func TestTypingGlyphs(t *testing.T) {
	m := typeText(newTestModel(t), "6÷2×3")
	assert.Equal(t, "9", m.State().Result)
}

func TestUpperCaseIsIgnored(t *testing.T) {
	m := typeText(newTestModel(t), "12")
	m = typeText(m, "C")
	assert.Equal(t, "12", m.State().Expr)
}

func TestBackspaceAndClear(t *testing.T) {
	m := typeText(newTestModel(t), "123")

	m = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "12", m.State().Expr)

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, "", m.State().Expr)
	assert.Equal(t, "0", m.State().Result)
}

func TestSmartFix(t *testing.T) {
	m := typeText(newTestModel(t), "2×3")
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.Equal(t, "2*3", m.State().Expr)
	assert.Equal(t, "6", m.State().Result)
}

func TestFailedExpressionShowsErrorWord(t *testing.T) {
	m := typeText(newTestModel(t), "1/0")
	assert.True(t, m.State().Failed())
	assert.Contains(t, m.View(), "Error")

	// a failed = keeps the expression for correction
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "1/0", m.State().Expr)
	assert.True(t, m.State().Failed())
}

func TestQuit(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := newTestModel(t)
		next, cmd := m.Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Equal(t, "", next.View())
	}
}

func TestHelpToggle(t *testing.T) {
	m := typeText(newTestModel(t), "?")
	assert.True(t, m.showHelp)
	assert.Equal(t, "", m.State().Expr)
	assert.Contains(t, m.View(), "Smart fix rewrites")

	// esc closes the panel instead of quitting
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	m = next.(Model)
	assert.False(t, m.showHelp)

	m = typeText(m, "?")
	assert.True(t, m.showHelp)
	m = typeText(m, "?")
	assert.False(t, m.showHelp)
	assert.Equal(t, "", m.State().Expr)
}

func TestKeypadIsRendered(t *testing.T) {
	view := newTestModel(t).View()
	assert.Contains(t, view, "Calculator")
	for _, key := range keypad.MustDefault().Keys() {
		assert.Contains(t, view, key.Label)
	}
}

func TestWindowSize(t *testing.T) {
	m := send(newTestModel(t), tea.WindowSizeMsg{Width: 30, Height: 20})
	assert.Equal(t, 30, m.width)
	assert.NotEmpty(t, m.View())
}

func TestConverterMode(t *testing.T) {
	m := send(newTestModel(t), tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, ModeConverter, m.Mode())
	assert.Equal(t, fieldDigits, m.focus)
	assert.True(t, m.inputs[fieldDigits].Focused())

	m = typeText(m, "ff")
	assert.Equal(t, "ff", m.inputs[fieldDigits].Value())
	// keys typed in the converter never reach the calculator
	assert.Equal(t, "", m.State().Expr)

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.convFailed)
	assert.Equal(t, "Invalid digit for base", m.status)
	assert.Equal(t, "", m.output)

	m.inputs[fieldFrom].SetValue("16")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.convFailed)
	assert.Equal(t, "11111111", m.output)
	assert.Equal(t, "Success", m.status)
	assert.Contains(t, m.View(), "11111111")

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ModeCalculator, m.Mode())
}

func TestConverterErrors(t *testing.T) {
	tests := []struct {
		name   string
		digits string
		from   string
		to     string
		want   string
	}{
		{name: "empty", digits: "", from: "10", to: "2", want: "Input is empty"},
		{name: "radix too large", digits: "1", from: "10", to: "17", want: "Base must be between 2 and 16"},
		{name: "radix not a number", digits: "1", from: "x", to: "2", want: "Base must be between 2 and 16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := send(newTestModel(t), tea.KeyMsg{Type: tea.KeyTab})
			m.inputs[fieldDigits].SetValue(tt.digits)
			m.inputs[fieldFrom].SetValue(tt.from)
			m.inputs[fieldTo].SetValue(tt.to)

			m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
			assert.True(t, m.convFailed)
			assert.Equal(t, tt.want, m.status)
		})
	}
}

func TestConverterFocus(t *testing.T) {
	m := send(newTestModel(t), tea.KeyMsg{Type: tea.KeyTab})

	m = send(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, fieldFrom, m.focus)
	assert.True(t, m.inputs[fieldFrom].Focused())
	assert.False(t, m.inputs[fieldDigits].Focused())

	m = send(m, tea.KeyMsg{Type: tea.KeyUp})
	m = send(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, fieldTo, m.focus)
}

func TestFooterFollowsMode(t *testing.T) {
	m := newTestModel(t)
	assert.True(t, strings.Contains(m.View(), "tab Base converter"))

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "enter Convert")
}
