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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/google/hesab/core/radix"
)

func convertCmd(opts *rootOptions) *cobra.Command {
	var from, to, fractionDigits int

	cmd := &cobra.Command{
		Use:   "convert DIGITS",
		Short: "Convert a number between bases 2 to 16",
		Example: `  hesab convert ff --from 16 --to 2
  hesab convert 0.1 --to 2 --fraction-digits 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("fraction-digits") {
				fractionDigits = opts.config().Calc.FractionDigits
			}
			out, err := radix.NewConverter(fractionDigits).Convert(args[0], from, to)
			if err != nil {
				return localize(opts, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&from, "from", 10, "radix of the input")
	cmd.Flags().IntVar(&to, "to", 2, "radix of the output")
	cmd.Flags().IntVar(&fractionDigits, "fraction-digits", radix.DefaultFractionDigits, "maximum fractional digits in the output")
	return cmd
}
