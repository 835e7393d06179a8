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
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/google/hesab/core/keypad"
	"github.com/google/hesab/core/radix"
	"github.com/google/hesab/core/tui"
)

func tuiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	labels, err := opts.labels()
	if err != nil {
		return err
	}
	layout, err := keypad.Default()
	if err != nil {
		return err
	}
	return tui.Run(tui.Config{
		Labels:    labels,
		Layout:    layout,
		Converter: radix.NewConverter(opts.config().Calc.FractionDigits),
	},
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
}
