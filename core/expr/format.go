/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Hesab Authors
*/

package expr

import (
	"math"
	"strconv"
	"strings"
)

// Precision is the number of significant digits kept when formatting.
const Precision = 12

// Format renders v rounded to Precision significant digits, with trailing
// zeros dropped. Magnitudes in [1e-6, 1e21) print as plain decimals, others
// in exponent form ("1e+21", "1.5e-7").
func Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', Precision, 64), 64)
	if err != nil {
		rounded = v
	}
	if rounded == 0 {
		return "0"
	}

	abs := math.Abs(rounded)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(rounded, 'f', -1, 64)
	}
	return trimExponent(strconv.FormatFloat(rounded, 'e', -1, 64))
}

// trimExponent turns Go's "1.5e-07" into "1.5e-7".
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	mantissa, sign, digits := s[:i], s[i+1], strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + string(sign) + digits
}
