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

// Package keypad describes the calculator's on-screen keys.
package keypad

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

//go:embed layout.yaml
var defaultLayout []byte

// Key classes used for styling
const (
	ClassDigit    = "digit"
	ClassOperator = "op"
	ClassFunction = "fn"
	ClassControl  = "ctl"
	ClassEquals   = "eq"
)

var (
	// ErrEmptyToken is returned for a key that sends nothing
	ErrEmptyToken = errors.New("key has no token")

	// ErrDuplicateToken is returned when two keys send the same token
	ErrDuplicateToken = errors.New("duplicate key token")
)

// Key is one keypad button
type Key struct {
	Label string `yaml:"label" json:"label"`
	Token string `yaml:"token" json:"token"`
	Class string `yaml:"class" json:"class"`
}

// Layout is the keypad grid, row by row
type Layout struct {
	Rows [][]Key `yaml:"rows" json:"rows"`
}

// Parse reads a YAML layout and validates it
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing keypad layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Default returns the built-in layout
func Default() (*Layout, error) {
	return Parse(defaultLayout)
}

// MustDefault is like Default but panics if the embedded layout is broken
func MustDefault() *Layout {
	l, err := Default()
	if err != nil {
		panic(err)
	}
	return l
}

// Validate checks that every key sends a distinct, non-empty token
func (l *Layout) Validate() error {
	seen := make(map[string]bool)
	for r, row := range l.Rows {
		for c, key := range row {
			if key.Token == "" {
				return fmt.Errorf("%w: row %d column %d", ErrEmptyToken, r, c)
			}
			if seen[key.Token] {
				return fmt.Errorf("%w: %q", ErrDuplicateToken, key.Token)
			}
			seen[key.Token] = true
		}
	}
	return nil
}

// Find returns the key sending token
func (l *Layout) Find(token string) (Key, bool) {
	for _, row := range l.Rows {
		for _, key := range row {
			if key.Token == token {
				return key, true
			}
		}
	}
	return Key{}, false
}

// Keys returns all keys in reading order
func (l *Layout) Keys() []Key {
	var keys []Key
	for _, row := range l.Rows {
		keys = append(keys, row...)
	}
	return keys
}

// Width returns the length of the longest row
func (l *Layout) Width() int {
	w := 0
	for _, row := range l.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}
