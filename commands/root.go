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

// Package commands is the hesab command line.
package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/google/hesab/core/calc"
	"github.com/google/hesab/core/config"
	"github.com/google/hesab/core/locale"
)

// rootOptions are the flags shared by every command
type rootOptions struct {
	locale string
}

// config loads the environment configuration with the --locale override
// applied. Invalid environment settings fall back to the defaults.
func (o *rootOptions) config() *config.Config {
	cfg := config.LoadOrDefault()
	if o.locale != "" {
		cfg.Calc.Locale = o.locale
	}
	return cfg
}

func (o *rootOptions) labels() (*locale.Labels, error) {
	cfg := o.config()
	bundle, err := locale.Load(config.Default().Calc.Locale)
	if err != nil {
		return nil, err
	}
	return bundle.Get(cfg.Calc.Locale), nil
}

// NewRootCommand builds the hesab command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "hesab",
		Short: "Calculator and number base converter",
		Long: `hesab evaluates calculator expressions and converts numbers between
bases 2 to 16. Without a subcommand it opens the terminal calculator, or
evaluates standard input line by line when it is not a terminal.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if isTerminal(cmd.InOrStdin()) {
				return runTUI(cmd, opts)
			}
			labels, err := opts.labels()
			if err != nil {
				return err
			}
			return evalLines(cmd.InOrStdin(), cmd.OutOrStdout(), labels)
		},
	}

	root.PersistentFlags().StringVar(&opts.locale, "locale", "", "label language, en or fa (default from HESAB_LOCALE)")

	root.AddCommand(
		serveCmd(opts),
		evalCmd(opts),
		convertCmd(opts),
		tuiCmd(opts),
	)
	return root
}

// Execute runs the command line.
func Execute() error {
	return NewRootCommand().Execute()
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// evalLines prints one result per input line. A blank line evaluates to 0
// and a failing line prints the error word.
func evalLines(r io.Reader, w io.Writer, labels *locale.Labels) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		state := calc.FromExpr(scanner.Text())
		if _, err := fmt.Fprintln(w, state.Display(labels.Error)); err != nil {
			return err
		}
	}
	return scanner.Err()
}
