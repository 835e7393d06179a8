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

// Package server serves the calculator page and its JSON API.
package server

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/google/hesab/core/calc"
	"github.com/google/hesab/core/config"
	"github.com/google/hesab/core/keypad"
	"github.com/google/hesab/core/locale"
	"github.com/google/hesab/core/logging"
	"github.com/google/hesab/core/monitoring"
	"github.com/google/hesab/core/query"
	"github.com/google/hesab/core/radix"
	"github.com/google/hesab/core/rendering"
	"github.com/google/hesab/core/views"
)

// Server represents the application server with all its dependencies
type Server struct {
	config    *config.Config
	logger    *logging.Logger
	metrics   *monitoring.Metrics
	renderer  *rendering.Renderer
	layout    *keypad.Layout
	labels    *locale.Bundle
	converter *radix.Converter
}

// NewServer creates a server. A nil registry gets a private one with the
// Go runtime collectors.
func NewServer(cfg *config.Config, logger *logging.Logger, reg *prometheus.Registry) (*Server, error) {
	renderer, err := rendering.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	layout, err := keypad.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load keypad: %w", err)
	}
	labels, err := locale.Load(cfg.Calc.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Server{
		config:    cfg,
		logger:    logger.Named("server"),
		metrics:   monitoring.NewMetrics(reg),
		renderer:  renderer,
		layout:    layout,
		labels:    labels,
		converter: radix.NewConverter(cfg.Calc.FractionDigits),
	}, nil
}

// Metrics returns the server's collectors
func (s *Server) Metrics() *monitoring.Metrics {
	return s.metrics
}

// CalculatorHandlerResult represents the result of handling a page request
type CalculatorHandlerResult struct {
	Error      error
	StatusCode int
	Redirect   string // Set with StatusSeeOther after an action
}

// HandleCalculatorRequest serves the calculator page. A URL carrying an
// action (a key press or smart fix) is applied and answered with a redirect
// to the resulting state, so reloading the page never repeats the action.
func (s *Server) HandleCalculatorRequest(w io.Writer, requestURL *url.URL, acceptLanguage string, setHeader func(key, value string)) *CalculatorHandlerResult {
	q := query.NewQuery(requestURL)

	if q.HasAction() {
		state := calc.FromExpr(q.Expr)
		if q.Key != "" {
			state = state.Press(q.Key)
			if q.Key == calc.TokenEquals {
				s.metrics.RecordEvaluation(state.Err)
			}
		}
		if q.Fix {
			state = state.SmartFix()
		}
		failed := q.Key == calc.TokenEquals && state.Failed()
		return &CalculatorHandlerResult{
			StatusCode: http.StatusSeeOther,
			Redirect:   q.WithExpr(state.Expr, failed).String(),
		}
	}

	labels := s.labels.Match(acceptLanguage, q.Lang)
	vm := views.BuildCalculatorViewModel(q, labels, s.layout, s.converter, s.labels.Languages())
	if vm.Converter.Attempted {
		s.metrics.RecordConversion(vm.Converter.Err)
	}

	setHeader("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, vm); err != nil {
		s.logger.Error("template rendering failed", zap.Error(err))
		return &CalculatorHandlerResult{Error: err, StatusCode: http.StatusInternalServerError}
	}
	return &CalculatorHandlerResult{StatusCode: http.StatusOK}
}
