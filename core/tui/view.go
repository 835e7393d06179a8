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

	"github.com/charmbracelet/lipgloss"

	"github.com/google/hesab/core/keypad"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	displayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	exprStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	resultStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	keyStyle = lipgloss.NewStyle().
			Width(6).
			Align(lipgloss.Center).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238"))

	keyClassColors = map[string]lipgloss.Color{
		keypad.ClassDigit:    lipgloss.Color("255"),
		keypad.ClassOperator: lipgloss.Color("214"),
		keypad.ClassFunction: lipgloss.Color("117"),
		keypad.ClassControl:  lipgloss.Color("203"),
		keypad.ClassEquals:   lipgloss.Color("42"),
	}

	helpStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 2)
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.config.Labels.Title))
	b.WriteString("\n\n")
	if m.mode == ModeConverter {
		b.WriteString(m.renderConverter())
	} else {
		b.WriteString(m.renderDisplay())
		b.WriteString("\n")
		b.WriteString(m.renderKeypad())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderDisplay() string {
	style := resultStyle
	if m.state.Failed() {
		style = errorStyle
	}
	result := style.Render(m.state.Display(m.config.Labels.Error))

	width := 40
	if m.width > 4 && m.width-4 < width {
		width = m.width - 4
	}
	content := lipgloss.JoinVertical(lipgloss.Right,
		exprStyle.Render(m.state.Expr),
		result,
	)
	return displayStyle.Width(width).Align(lipgloss.Right).Render(content)
}

func (m Model) renderKeypad() string {
	if m.config.Layout == nil {
		return ""
	}
	rows := make([]string, 0, len(m.config.Layout.Rows))
	for _, row := range m.config.Layout.Rows {
		cells := make([]string, 0, len(row))
		for _, key := range row {
			style := keyStyle
			if c, ok := keyClassColors[key.Class]; ok {
				style = style.Foreground(c)
			}
			cells = append(cells, style.Render(key.Label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderConverter() string {
	l := m.config.Labels

	var b strings.Builder
	b.WriteString(resultStyle.Render(l.Converter))
	b.WriteString("\n\n")
	fields := []string{l.Input, l.From, l.To}
	for i, name := range fields {
		b.WriteString(dimStyle.Render(name))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(l.Output))
	b.WriteString("\n")
	b.WriteString(resultStyle.Render(m.output))
	b.WriteString("\n")
	if m.status != "" {
		if m.convFailed {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(okStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHelp() string {
	l := m.config.Labels
	lines := append([]string{titleStyle.Render(l.Help), ""}, l.HelpLines...)
	lines = append(lines, "", dimStyle.Render("? "+l.Close))
	return helpStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter() string {
	l := m.config.Labels
	hints := []string{
		"enter =",
		"ctrl+f " + l.SmartFix,
		"tab " + l.Converter,
		"? " + l.Help,
		"esc",
	}
	if m.mode == ModeConverter {
		hints[0] = "enter " + l.Convert
	}
	return dimStyle.Render(strings.Join(hints, " · "))
}
