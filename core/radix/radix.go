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

// Package radix converts digit strings between positional number systems
// with radices 2 through 16, including fractional parts.
package radix

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	// MinRadix and MaxRadix bound the supported radices
	MinRadix = 2
	MaxRadix = 16

	// DefaultFractionDigits caps the fractional digits produced by Format
	DefaultFractionDigits = 12

	// ErrorMarker is what Format renders for NaN and infinities
	ErrorMarker = "error"

	digits = "0123456789abcdef"

	// fractional remainders at or below this are treated as exhausted
	fractionEpsilon = 1e-15
)

var (
	// ErrEmptyInput is returned when the input is blank after trimming
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidDigit is returned when a character is not a digit of the source radix
	ErrInvalidDigit = errors.New("invalid digit for radix")

	// ErrInvalidRadix is returned for a radix outside [MinRadix, MaxRadix]
	ErrInvalidRadix = errors.New("invalid radix")

	// ErrNotFinite is returned when a value cannot be rendered as digits
	ErrNotFinite = errors.New("value is not finite")
)

// ValidRadix reports whether base is a supported radix
func ValidRadix(base int) bool {
	return base >= MinRadix && base <= MaxRadix
}

func checkRadix(base int) error {
	if !ValidRadix(base) {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidRadix, base, MinRadix, MaxRadix)
	}
	return nil
}

// digitValue returns the value of ch in base, or -1
func digitValue(ch rune, base int) int {
	if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}
	return strings.IndexRune(digits[:base], ch)
}

// Parse reads s as a number written in base. s may contain one '.'
// separating the integer and fractional digits; letters are
// case-insensitive. Signs are not accepted.
func Parse(s string, base int) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyInput
	}
	if err := checkRadix(base); err != nil {
		return 0, err
	}

	// positions count runes of the trimmed input, the '.' included
	seenDot := false
	for i, ch := range []rune(s) {
		if ch == '.' && !seenDot {
			seenDot = true
			continue
		}
		if digitValue(ch, base) < 0 {
			return 0, fmt.Errorf("%w %d: %q at position %d", ErrInvalidDigit, base, ch, i)
		}
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var val float64
	for _, ch := range intPart {
		val = val*float64(base) + float64(digitValue(ch, base))
	}

	pow := float64(base)
	var frac float64
	for _, ch := range fracPart {
		frac += float64(digitValue(ch, base)) / pow
		pow *= float64(base)
	}
	return val + frac, nil
}

// Format writes v in base with at most maxFracDigits fractional digits.
// Digits above 9 are lowercase. The '.' appears only when at least one
// fractional digit is produced. NaN and infinities render as ErrorMarker.
func Format(v float64, base, maxFracDigits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || !ValidRadix(base) {
		return ErrorMarker
	}

	neg := v < 0
	v = math.Abs(v)
	n := math.Floor(v)
	frac := v - n
	b := float64(base)

	var intDigits []byte
	if n == 0 {
		intDigits = []byte{'0'}
	}
	for n > 0 {
		d := int(math.Mod(n, b))
		intDigits = append(intDigits, digits[d])
		n = math.Floor(n / b)
	}
	for i, j := 0, len(intDigits)-1; i < j; i, j = i+1, j-1 {
		intDigits[i], intDigits[j] = intDigits[j], intDigits[i]
	}

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	sb.Write(intDigits)

	for count := 0; frac > fractionEpsilon && count < maxFracDigits; count++ {
		if count == 0 {
			sb.WriteByte('.')
		}
		frac *= b
		d := math.Floor(frac)
		sb.WriteByte(digits[int(d)])
		frac -= d
	}
	return sb.String()
}

// Converter converts digit strings between radices
type Converter struct {
	FractionDigits int
}

// NewConverter creates a converter producing at most fractionDigits
// fractional digits. Non-positive values mean DefaultFractionDigits.
func NewConverter(fractionDigits int) *Converter {
	if fractionDigits <= 0 {
		fractionDigits = DefaultFractionDigits
	}
	return &Converter{FractionDigits: fractionDigits}
}

// Convert parses input in radix from and renders it in radix to
func (c *Converter) Convert(input string, from, to int) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyInput
	}
	if err := checkRadix(from); err != nil {
		return "", err
	}
	if err := checkRadix(to); err != nil {
		return "", err
	}
	v, err := Parse(input, from)
	if err != nil {
		return "", err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "", fmt.Errorf("%w: input overflows", ErrNotFinite)
	}
	return Format(v, to, c.FractionDigits), nil
}

var defaultConverter = NewConverter(DefaultFractionDigits)

// Convert converts with DefaultFractionDigits
func Convert(input string, from, to int) (string, error) {
	return defaultConverter.Convert(input, from, to)
}

// Kind names the failure category of err for API clients, or "" when err
// is not a radix error.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrEmptyInput):
		return "EmptyInput"
	case errors.Is(err, ErrInvalidDigit):
		return "InvalidDigit"
	case errors.Is(err, ErrInvalidRadix):
		return "InvalidRadix"
	case errors.Is(err, ErrNotFinite):
		return "NotFinite"
	}
	return ""
}
