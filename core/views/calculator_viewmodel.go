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

// Package views turns calculator state into the data the page template
// renders.
package views

import (
	"github.com/google/safehtml"

	"github.com/google/hesab/core/calc"
	"github.com/google/hesab/core/keypad"
	"github.com/google/hesab/core/locale"
	"github.com/google/hesab/core/query"
	"github.com/google/hesab/core/radix"
)

// CalculatorViewModel contains everything the calculator page shows
type CalculatorViewModel struct {
	Title  string
	Lang   string
	Dir    string // "rtl" or "ltr"
	Labels *locale.Labels

	// Display
	Expression string // Expression being edited
	Display    string // Result, or the localized error word
	Failed     bool   // Display shows the error word

	Keys        [][]KeyView  // Keypad rows
	SmartFixURL safehtml.URL // URL applying smart fix

	Converter ConverterView
	Help      HelpView
	Languages []LanguageLink

	// Hidden fields carried by the converter form
	Path        string
	HelpVisible bool
}

// KeyView is one keypad button
type KeyView struct {
	Label string
	Token string
	Class string
	URL   safehtml.URL // URL pressing this key
}

// ConverterView is the radix conversion form
type ConverterView struct {
	Input        string
	From         int
	To           int
	Radices      []RadixOption
	Attempted    bool   // A conversion was requested
	Output       string // Blank on failure
	Status       string // Success text or the error message
	StatusFailed bool
	Err          error
}

// RadixOption is an entry of the radix selectors
type RadixOption struct {
	Value        int
	FromSelected bool
	ToSelected   bool
}

// HelpView is the help overlay
type HelpView struct {
	Visible   bool
	Lines     []string
	ToggleURL safehtml.URL
}

// LanguageLink switches the page language
type LanguageLink struct {
	Lang    string
	Current bool
	URL     safehtml.URL
}

// BuildCalculatorViewModel builds the page for the state in q. The
// expression result is always derived from q.Expr.
func BuildCalculatorViewModel(q *query.Query, labels *locale.Labels, layout *keypad.Layout, conv *radix.Converter, languages []string) CalculatorViewModel {
	state := calc.FromExpr(q.Expr)
	failed := state.Failed() || q.Failed

	vm := CalculatorViewModel{
		Title:       labels.Title,
		Lang:        labels.Lang,
		Dir:         labels.Dir(),
		Labels:      labels,
		Expression:  state.Expr,
		Display:     state.Result,
		Failed:      failed,
		SmartFixURL: q.WithSmartFix(),
		Converter:   BuildConverterView(q, labels, conv),
		Path:        q.Path,
		HelpVisible: q.Help,
		Help: HelpView{
			Visible:   q.Help,
			Lines:     labels.HelpLines,
			ToggleURL: q.WithHelpToggled(),
		},
	}
	if failed {
		vm.Display = labels.Error
	}

	for _, row := range layout.Rows {
		keys := make([]KeyView, 0, len(row))
		for _, key := range row {
			keys = append(keys, KeyView{
				Label: key.Label,
				Token: key.Token,
				Class: key.Class,
				URL:   q.WithKey(key.Token),
			})
		}
		vm.Keys = append(vm.Keys, keys)
	}

	for _, lang := range languages {
		vm.Languages = append(vm.Languages, LanguageLink{
			Lang:    lang,
			Current: lang == labels.Lang,
			URL:     q.WithLang(lang),
		})
	}
	return vm
}

// BuildConverterView runs the conversion requested in q, if any. Failures
// leave the output blank and put the localized message in the status line.
func BuildConverterView(q *query.Query, labels *locale.Labels, conv *radix.Converter) ConverterView {
	cv := ConverterView{
		Input:     q.Input,
		From:      q.From,
		To:        q.To,
		Attempted: q.Convert,
	}
	for base := radix.MinRadix; base <= radix.MaxRadix; base++ {
		cv.Radices = append(cv.Radices, RadixOption{
			Value:        base,
			FromSelected: base == q.From,
			ToSelected:   base == q.To,
		})
	}
	if !q.Convert {
		return cv
	}

	out, err := conv.Convert(q.Input, q.From, q.To)
	if err != nil {
		cv.Status = labels.Message(err)
		cv.StatusFailed = true
		cv.Err = err
		return cv
	}
	cv.Output = out
	cv.Status = labels.Success
	return cv
}
