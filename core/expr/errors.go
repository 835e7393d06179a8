/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Hesab Authors
*/

package expr

import "errors"

// Sentinel errors for expression evaluation.
var (
	// ErrInvalidExpression is returned when the input contains characters,
	// identifiers or a structure the parser does not accept.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrInvalidResult is returned when evaluation yields NaN or an infinity,
	// e.g. on division by zero or the square root of a negative number.
	ErrInvalidResult = errors.New("invalid result")
)

// Kind names the failure category of err for API clients, or "" when err
// did not come from this package.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidExpression):
		return "InvalidExpression"
	case errors.Is(err, ErrInvalidResult):
		return "InvalidResult"
	}
	return ""
}
