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

// Package query keeps the calculator page state in the URL. Every link on
// the page is a state transition rendered with one of the With* methods.
package query

import (
	"net/url"
	"strconv"

	"github.com/google/safehtml"
)

// URL parameter names
const (
	ParamExpr    = "expr"
	ParamKey     = "key"
	ParamFix     = "fix"
	ParamFailed  = "err"
	ParamInput   = "in"
	ParamFrom    = "from"
	ParamTo      = "to"
	ParamConvert = "convert"
	ParamHelp    = "help"
	ParamLang    = "lang"
)

// Default converter radices
const (
	DefaultFrom = 10
	DefaultTo   = 2
)

// Query represents the parsed state of a calculator page URL
type Query struct {
	// Base path (e.g., "/")
	Path string

	// Calculator
	Expr   string // Expression being edited
	Key    string // Keypad token to apply, if any
	Fix    bool   // Apply smart fix
	Failed bool   // The last "=" did not evaluate

	// Converter
	Input   string // Digits to convert
	From    int    // Source radix
	To      int    // Target radix
	Convert bool   // Show the conversion of Input

	// Page
	Help bool   // Help overlay visible
	Lang string // Explicit language choice
}

// NewQuery creates a Query from a URL
func NewQuery(u *url.URL) *Query {
	q := u.Query()

	state := &Query{
		Path:    u.Path,
		Expr:    q.Get(ParamExpr),
		Key:     q.Get(ParamKey),
		Fix:     q.Get(ParamFix) != "",
		Failed:  q.Get(ParamFailed) != "",
		Input:   q.Get(ParamInput),
		From:    parseRadix(q.Get(ParamFrom), DefaultFrom),
		To:      parseRadix(q.Get(ParamTo), DefaultTo),
		Convert: q.Get(ParamConvert) != "",
		Help:    q.Get(ParamHelp) != "",
		Lang:    q.Get(ParamLang),
	}
	if state.Path == "" {
		state.Path = "/"
	}
	return state
}

// parseRadix returns def for a missing value and 0 for garbage, which the
// converter then reports as an invalid radix.
func parseRadix(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Clone creates a deep copy of the Query
func (s *Query) Clone() *Query {
	c := *s
	return &c
}

// HasAction reports whether the URL asks for a state transition
func (s *Query) HasAction() bool {
	return s.Key != "" || s.Fix
}

// ToURL converts the Query to a URL string. Actions are included only when
// set, and defaults are omitted.
func (s *Query) ToURL() string {
	u := &url.URL{Path: s.Path}
	q := url.Values{}

	if s.Expr != "" {
		q.Set(ParamExpr, s.Expr)
	}
	if s.Key != "" {
		q.Set(ParamKey, s.Key)
	}
	if s.Fix {
		q.Set(ParamFix, "1")
	}
	if s.Failed {
		q.Set(ParamFailed, "1")
	}
	if s.Input != "" {
		q.Set(ParamInput, s.Input)
	}
	if s.From != DefaultFrom {
		q.Set(ParamFrom, strconv.Itoa(s.From))
	}
	if s.To != DefaultTo {
		q.Set(ParamTo, strconv.Itoa(s.To))
	}
	if s.Convert {
		q.Set(ParamConvert, "1")
	}
	if s.Help {
		q.Set(ParamHelp, "1")
	}
	if s.Lang != "" {
		q.Set(ParamLang, s.Lang)
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}

// withoutAction is the page state with any pending action dropped
func (s *Query) withoutAction() *Query {
	newState := s.Clone()
	newState.Key = ""
	newState.Fix = false
	newState.Failed = false
	return newState
}

// WithKey returns the URL that presses a keypad key
func (s *Query) WithKey(token string) safehtml.URL {
	newState := s.withoutAction()
	newState.Key = token
	return newState.ToSafeURL()
}

// WithSmartFix returns the URL that applies smart fix
func (s *Query) WithSmartFix() safehtml.URL {
	newState := s.withoutAction()
	newState.Fix = true
	return newState.ToSafeURL()
}

// WithExpr returns the settled URL showing expr, used as the redirect target
// after an action. failed marks a rejected "=".
func (s *Query) WithExpr(expr string, failed bool) safehtml.URL {
	newState := s.withoutAction()
	newState.Expr = expr
	newState.Failed = failed
	return newState.ToSafeURL()
}

// WithHelpToggled returns a URL with the help overlay shown or hidden
func (s *Query) WithHelpToggled() safehtml.URL {
	newState := s.withoutAction()
	newState.Help = !s.Help
	return newState.ToSafeURL()
}

// WithLang returns a URL rendering the page in lang
func (s *Query) WithLang(lang string) safehtml.URL {
	newState := s.withoutAction()
	newState.Lang = lang
	return newState.ToSafeURL()
}

// WithConversion returns a URL showing the conversion of input
func (s *Query) WithConversion(input string, from, to int) safehtml.URL {
	newState := s.withoutAction()
	newState.Input = input
	newState.From = from
	newState.To = to
	newState.Convert = true
	return newState.ToSafeURL()
}
