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

package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/google/hesab/core/calc"
	"github.com/google/hesab/core/expr"
	"github.com/google/hesab/core/keypad"
	"github.com/google/hesab/core/locale"
	"github.com/google/hesab/core/radix"
)

// ExpressionRequest is the body of /api/evaluate and /api/normalize
type ExpressionRequest struct {
	Expr string `json:"expr"`
}

// EvaluateResponse is returned by /api/evaluate
type EvaluateResponse struct {
	Expr   string `json:"expr"`
	Result string `json:"result"`
}

// NormalizeResponse is returned by /api/normalize
type NormalizeResponse struct {
	Expr       string `json:"expr"`
	Normalized string `json:"normalized"`
	SmartFixed string `json:"smart_fixed"`
}

// ConvertRequest is the body of /api/convert
type ConvertRequest struct {
	Input string `json:"input"`
	From  int    `json:"from"`
	To    int    `json:"to"`
}

// ConvertResponse is returned by /api/convert
type ConvertResponse struct {
	Input  string `json:"input"`
	From   int    `json:"from"`
	To     int    `json:"to"`
	Output string `json:"output"`
}

// ErrorResponse carries a failure and its kind
type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	Message string `json:"message,omitempty"`
}

// errBadRequest marks a body that could not be decoded
var errBadRequest = errors.New("malformed request body")

func kindOf(err error) string {
	if k := expr.Kind(err); k != "" {
		return k
	}
	if k := radix.Kind(err); k != "" {
		return k
	}
	if errors.Is(err, errBadRequest) {
		return "BadRequest"
	}
	return "Internal"
}

func (s *Server) requestLabels(c *gin.Context) *locale.Labels {
	return s.labels.Match(c.GetHeader("Accept-Language"), c.Query("lang"))
}

// fail writes err as JSON. Domain failures are 422, undecodable bodies 400.
func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	if errors.Is(err, errBadRequest) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: kindOf(err)})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   err.Error(),
		Kind:    kindOf(err),
		Message: s.requestLabels(c).Message(err),
	})
}

// handleEvaluate evaluates an expression. A blank expression is 0.
func (s *Server) handleEvaluate(c *gin.Context) {
	var req ExpressionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, errors.Join(errBadRequest, err))
		return
	}

	state := calc.FromExpr(req.Expr)
	s.metrics.RecordEvaluation(state.Err)
	if state.Failed() {
		s.fail(c, state.Err)
		return
	}
	c.JSON(http.StatusOK, EvaluateResponse{Expr: req.Expr, Result: state.Result})
}

// handleNormalize returns the canonical spelling of an expression and its
// smart-fixed text.
func (s *Server) handleNormalize(c *gin.Context) {
	var req ExpressionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, errors.Join(errBadRequest, err))
		return
	}

	normalized, err := expr.Normalize(req.Expr)
	if err != nil {
		s.fail(c, err)
		return
	}
	fixed := calc.FromExpr(req.Expr).SmartFix().Expr
	c.JSON(http.StatusOK, NormalizeResponse{Expr: req.Expr, Normalized: normalized, SmartFixed: fixed})
}

func (s *Server) handleConvert(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, errors.Join(errBadRequest, err))
		return
	}

	out, err := s.converter.Convert(req.Input, req.From, req.To)
	s.metrics.RecordConversion(err)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ConvertResponse{Input: req.Input, From: req.From, To: req.To, Output: out})
}

// KeypadResponse is returned by /api/keypad
type KeypadResponse struct {
	Rows [][]keypad.Key `json:"rows"`
}

func (s *Server) handleKeypad(c *gin.Context) {
	c.JSON(http.StatusOK, KeypadResponse{Rows: s.layout.Rows})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
