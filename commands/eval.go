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

package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/google/hesab/core/expr"
)

func evalCmd(opts *rootOptions) *cobra.Command {
	var normalize, smartFix bool

	cmd := &cobra.Command{
		Use:   "eval [--] EXPR...",
		Short: "Evaluate an expression",
		Long: `Evaluate an expression and print the result. Expressions starting with
'-' must follow "--" so they are not read as flags.`,
		Example: `  hesab eval '2(3+4)'
  hesab eval -- -2+3
  hesab eval --normalize '2π'
  hesab eval --smart-fix '6÷2×3'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := strings.Join(args, " ")

			var out string
			var err error
			switch {
			case normalize:
				out, err = expr.Normalize(source)
			case smartFix:
				out, err = expr.SmartFix(source)
			default:
				out, err = expr.EvaluateString(source)
			}
			if err != nil {
				return localize(opts, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&normalize, "normalize", false, "print the canonical form instead of the value")
	cmd.Flags().BoolVar(&smartFix, "smart-fix", false, "print the expression with calculator glyphs rewritten")
	cmd.MarkFlagsMutuallyExclusive("normalize", "smart-fix")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w (use \"hesab eval -- EXPR\" for an expression starting with '-')", err)
	})
	return cmd
}

// localize prefixes err with its message in the selected language
func localize(opts *rootOptions, err error) error {
	labels, lerr := opts.labels()
	if lerr != nil {
		return errors.Join(err, lerr)
	}
	return fmt.Errorf("%s: %w", labels.Message(err), err)
}
