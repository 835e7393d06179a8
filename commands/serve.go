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
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/google/hesab/core/config"
	"github.com/google/hesab/core/logging"
	"github.com/google/hesab/core/server"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var host, port, logLevel string
	var dev, printEnv bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web calculator",
		Long: `Run the web calculator and its JSON API. Settings come from HESAB_*
environment variables; flags override them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printEnv {
				return config.Usage()
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("host") {
				cfg.Server.Host = host
			}
			if flags.Changed("port") {
				cfg.Server.Port = port
			}
			if flags.Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if flags.Changed("dev") {
				cfg.Logging.Development = dev
			}
			if opts.locale != "" {
				cfg.Calc.Locale = opts.locale
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.New(logging.Config{
				Level:       cfg.Logging.Level,
				Development: cfg.Logging.Development,
			})
			if err != nil {
				return err
			}
			defer logger.Sync()

			srv, err := server.NewServer(cfg, logger, nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("Configuration loaded", zap.String("addr", cfg.Addr()), zap.String("locale", cfg.Calc.Locale))
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (default from HESAB_HOST)")
	cmd.Flags().StringVar(&port, "port", "", "listen port (default from HESAB_PORT)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default from HESAB_LOG_LEVEL)")
	cmd.Flags().BoolVar(&dev, "dev", false, "development logging")
	cmd.Flags().BoolVar(&printEnv, "print-env", false, "print the recognized environment variables and exit")
	return cmd
}
