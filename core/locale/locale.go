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

// Package locale provides the user-facing texts in each supported language.
package locale

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/language"

	"github.com/google/hesab/core/expr"
	"github.com/google/hesab/core/radix"
)

//go:embed labels.yaml
var defaultLabels []byte

// Messages holds the text for each failure kind
type Messages struct {
	EmptyInput        string `yaml:"empty_input"`
	InvalidDigit      string `yaml:"invalid_digit"`
	InvalidRadix      string `yaml:"invalid_radix"`
	NotFinite         string `yaml:"not_finite"`
	InvalidExpression string `yaml:"invalid_expression"`
	InvalidResult     string `yaml:"invalid_result"`
	ConversionFailed  string `yaml:"conversion_failed"`
}

// Labels is one language's set of texts
type Labels struct {
	Lang      string   `yaml:"-"`
	Title     string   `yaml:"title"`
	RTL       bool     `yaml:"rtl"`
	Error     string   `yaml:"error"`
	Success   string   `yaml:"success"`
	SmartFix  string   `yaml:"smart_fix"`
	Help      string   `yaml:"help"`
	Close     string   `yaml:"close"`
	Converter string   `yaml:"converter"`
	Convert   string   `yaml:"convert"`
	Input     string   `yaml:"input"`
	From      string   `yaml:"from"`
	To        string   `yaml:"to"`
	Output    string   `yaml:"output"`
	Messages  Messages `yaml:"messages"`
	HelpLines []string `yaml:"help_lines"`
}

// Dir returns the HTML text direction
func (l *Labels) Dir() string {
	if l.RTL {
		return "rtl"
	}
	return "ltr"
}

// Message returns the text describing err. Errors without a dedicated
// message fall back to the generic conversion failure.
func (l *Labels) Message(err error) string {
	switch {
	case errors.Is(err, radix.ErrEmptyInput):
		return l.Messages.EmptyInput
	case errors.Is(err, radix.ErrInvalidDigit):
		return l.Messages.InvalidDigit
	case errors.Is(err, radix.ErrInvalidRadix):
		return l.Messages.InvalidRadix
	case errors.Is(err, radix.ErrNotFinite):
		return l.Messages.NotFinite
	case errors.Is(err, expr.ErrInvalidExpression):
		return l.Messages.InvalidExpression
	case errors.Is(err, expr.ErrInvalidResult):
		return l.Messages.InvalidResult
	}
	return l.Messages.ConversionFailed
}

// Bundle holds every language and picks one per request
type Bundle struct {
	labels   map[string]*Labels
	tags     []language.Tag
	matcher  language.Matcher
	fallback string
}

// Parse reads a YAML document keyed by language tag. fallback must be one
// of its languages and is used when nothing matches.
func Parse(data []byte, fallback string) (*Bundle, error) {
	var raw map[string]*Labels
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing labels: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("labels: no languages defined")
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	// the fallback goes first so the matcher prefers it on a tie
	fb, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("labels: fallback language %q: %w", fallback, err)
	}
	if _, ok := raw[fb.String()]; !ok {
		return nil, fmt.Errorf("labels: fallback language %q not defined", fallback)
	}

	b := &Bundle{labels: make(map[string]*Labels, len(raw)), fallback: fb.String()}
	b.tags = append(b.tags, fb)
	for _, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("labels: language %q: %w", name, err)
		}
		l := raw[name]
		l.Lang = tag.String()
		b.labels[tag.String()] = l
		if tag != fb {
			b.tags = append(b.tags, tag)
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Load returns the built-in labels with the given fallback language
func Load(fallback string) (*Bundle, error) {
	return Parse(defaultLabels, fallback)
}

// Languages returns the supported language tags, fallback first
func (b *Bundle) Languages() []string {
	out := make([]string, len(b.tags))
	for i, t := range b.tags {
		out[i] = t.String()
	}
	return out
}

// Get returns the labels for an exact language, or the fallback
func (b *Bundle) Get(lang string) *Labels {
	if l, ok := b.labels[lang]; ok {
		return l
	}
	return b.labels[b.fallback]
}

// Match picks the labels for a request. An explicit choice (for example a
// "lang" query parameter) wins over the Accept-Language header.
func (b *Bundle) Match(acceptLanguage, explicit string) *Labels {
	var prefs []language.Tag
	if explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			prefs = append(prefs, tag)
		}
	}
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
			prefs = append(prefs, tags...)
		}
	}
	if len(prefs) == 0 {
		return b.labels[b.fallback]
	}
	_, index, conf := b.matcher.Match(prefs...)
	if conf == language.No {
		return b.labels[b.fallback]
	}
	return b.labels[b.tags[index].String()]
}
