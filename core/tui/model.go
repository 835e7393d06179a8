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

// Package tui is the terminal calculator.
//
// The model runs inside the bubbletea event loop and is not safe for use
// from other goroutines.
package tui

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/google/hesab/core/calc"
	"github.com/google/hesab/core/keypad"
	"github.com/google/hesab/core/locale"
	"github.com/google/hesab/core/radix"
)

// Mode selects the active panel.
type Mode int

const (
	// ModeCalculator edits and evaluates expressions.
	ModeCalculator Mode = iota

	// ModeConverter converts digits between radices.
	ModeConverter
)

// converter fields
const (
	fieldDigits = iota
	fieldFrom
	fieldTo
	fieldCount
)

// glyphs typed directly besides the keyboard keys and letters
const extraRunes = "%×÷−√π "

// Config configures the terminal calculator.
type Config struct {
	Labels    *locale.Labels
	Layout    *keypad.Layout
	Converter *radix.Converter
}

// Model is the bubbletea model for the terminal calculator.
type Model struct {
	config Config

	state calc.State
	mode  Mode

	// Converter panel
	inputs     []textinput.Model
	focus      int
	output     string
	status     string
	convFailed bool

	width    int
	showHelp bool
	quitting bool
}

// NewModel creates a model showing a cleared calculator.
func NewModel(cfg Config) Model {
	if cfg.Converter == nil {
		cfg.Converter = radix.NewConverter(radix.DefaultFractionDigits)
	}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 64
		inputs[i] = ti
	}
	inputs[fieldDigits].Placeholder = "ff.8"
	inputs[fieldFrom].CharLimit = 2
	inputs[fieldFrom].SetValue("10")
	inputs[fieldTo].CharLimit = 2
	inputs[fieldTo].SetValue(strconv.Itoa(radix.MinRadix))

	return Model{
		config: cfg,
		state:  calc.New(),
		mode:   ModeCalculator,
		inputs: inputs,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			switch msg.String() {
			case "?", "q", "esc":
				m.showHelp = false
			case "ctrl+c":
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "tab":
			return m.toggleMode()
		}

		if m.mode == ModeConverter {
			return m.updateConverter(msg)
		}
		return m.updateCalculator(msg), nil
	}
	return m, nil
}

func (m Model) updateCalculator(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter":
		m.state = m.state.Press(calc.TokenEquals)
	case "backspace":
		m.state = m.state.Press(calc.TokenDelete)
	case "ctrl+l":
		m.state = m.state.Press(calc.TokenClear)
	case "ctrl+f":
		m.state = m.state.SmartFix()
	default:
		if msg.Type != tea.KeyRunes {
			return m
		}
		for _, r := range msg.Runes {
			if accepted(r) {
				m.state = m.state.Press(string(r))
			}
		}
	}
	return m
}

// accepted reports whether r may be typed into the expression. Upper case
// letters are refused so "C" cannot clear the display.
func accepted(r rune) bool {
	return strings.ContainsRune(calc.KeyboardKeys, r) ||
		strings.ContainsRune(extraRunes, r) ||
		(r < unicode.MaxASCII && unicode.IsLower(r))
}

func (m Model) updateConverter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.convert()
		return m, nil
	case "up", "shift+tab":
		return m.focusField((m.focus + fieldCount - 1) % fieldCount)
	case "down":
		return m.focusField((m.focus + 1) % fieldCount)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) toggleMode() (tea.Model, tea.Cmd) {
	if m.mode == ModeCalculator {
		m.mode = ModeConverter
		return m.focusField(m.focus)
	}
	m.mode = ModeCalculator
	m.inputs[m.focus].Blur()
	return m, nil
}

func (m Model) focusField(i int) (tea.Model, tea.Cmd) {
	// the slice is shared with the previous model value
	inputs := make([]textinput.Model, len(m.inputs))
	copy(inputs, m.inputs)
	for j := range inputs {
		inputs[j].Blur()
	}
	m.inputs = inputs
	m.focus = i
	return m, m.inputs[i].Focus()
}

// convert runs the conversion of the current fields. A radix that is not a
// number is reported as an invalid radix.
func (m *Model) convert() {
	from, _ := strconv.Atoi(strings.TrimSpace(m.inputs[fieldFrom].Value()))
	to, _ := strconv.Atoi(strings.TrimSpace(m.inputs[fieldTo].Value()))

	out, err := m.config.Converter.Convert(m.inputs[fieldDigits].Value(), from, to)
	if err != nil {
		m.output = ""
		m.status = m.config.Labels.Message(err)
		m.convFailed = true
		return
	}
	m.output = out
	m.status = m.config.Labels.Success
	m.convFailed = false
}

// State returns the calculator state.
func (m Model) State() calc.State {
	return m.state
}

// Mode returns the active panel.
func (m Model) Mode() Mode {
	return m.mode
}

// Run starts the terminal calculator and blocks until the user quits.
func Run(cfg Config, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(NewModel(cfg), opts...).Run()
	return err
}
