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
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/hesab/core/config"
	"github.com/google/hesab/core/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	cfg := config.Default()
	cfg.RateLimit.Enabled = false
	s, err := NewServer(cfg, logging.NewNop(), prometheus.NewRegistry())
	require.NoError(t, err)
	return s, s.Router()
}

func get(router *gin.Engine, path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postJSON(router *gin.Engine, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if s, ok := body.(string); ok {
		reqBody = bytes.NewBufferString(s)
	} else {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	}
	req := httptest.NewRequest(http.MethodPost, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func location(t *testing.T, w *httptest.ResponseRecorder) url.Values {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, w.Code)
	u, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/", u.Path)
	return u.Query()
}

func TestCalculatorPage(t *testing.T) {
	_, router := newTestServer(t)

	w := get(router, "/?expr=2%2B3*4", "Accept-Language", "en-US")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `class="result">14<`)
	assert.Contains(t, w.Body.String(), `dir="ltr"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = get(router, "/")
	assert.Contains(t, w.Body.String(), `dir="rtl"`)
	assert.Contains(t, w.Body.String(), `class="result">0<`)
}

func TestKeyPressRedirects(t *testing.T) {
	s, router := newTestServer(t)

	t.Run("append", func(t *testing.T) {
		q := location(t, get(router, "/?expr=1%2B&key=2&lang=en"))
		assert.Equal(t, "1+2", q.Get("expr"))
		assert.Equal(t, "en", q.Get("lang"))
		assert.Empty(t, q.Get("key"))
	})

	t.Run("equals", func(t *testing.T) {
		q := location(t, get(router, "/?expr=2%2B3&key=%3D"))
		assert.Equal(t, "5", q.Get("expr"))
		assert.Empty(t, q.Get("err"))
	})

	t.Run("equals on error", func(t *testing.T) {
		q := location(t, get(router, "/?expr=1%2F0&key=%3D"))
		assert.Equal(t, "1/0", q.Get("expr"))
		assert.Equal(t, "1", q.Get("err"))

		w := get(router, "/?expr=1%2F0&err=1&lang=fa")
		assert.Contains(t, w.Body.String(), `class="result error">خطا<`)
	})

	t.Run("clear", func(t *testing.T) {
		q := location(t, get(router, "/?expr=123&key=C"))
		assert.Empty(t, q.Get("expr"))
	})

	t.Run("smart fix", func(t *testing.T) {
		q := location(t, get(router, "/?expr=2%5E3&fix=1"))
		assert.Equal(t, "2**3", q.Get("expr"))
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics().Evaluations.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics().Evaluations.WithLabelValues("error")))
}

func TestConverterOnPage(t *testing.T) {
	s, router := newTestServer(t)

	w := get(router, "/?in=1010&from=2&to=16&convert=1&lang=en")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="base-output" value="a"`)

	w = get(router, "/?in=&from=2&to=16&convert=1&lang=fa")
	assert.Contains(t, w.Body.String(), "ورودی خالی است")

	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics().Conversions.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics().Conversions.WithLabelValues("error")))
}

func TestEvaluateAPI(t *testing.T) {
	_, router := newTestServer(t)

	tests := []struct {
		name   string
		expr   string
		result string
	}{
		{"precedence", "2+3*4", "14"},
		{"implicit", "2(3)", "6"},
		{"function", "sqrt(16)", "4"},
		{"power", "2^10", "1024"},
		{"blank", "", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/api/evaluate", ExpressionRequest{Expr: tt.expr})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var resp EvaluateResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.result, resp.Result)
		})
	}
}

func TestEvaluateAPIErrors(t *testing.T) {
	_, router := newTestServer(t)

	tests := []struct {
		name    string
		body    any
		status  int
		kind    string
		message string
	}{
		{"division by zero", ExpressionRequest{Expr: "1/0"}, http.StatusUnprocessableEntity, "InvalidResult", "Invalid calculation"},
		{"unbalanced", ExpressionRequest{Expr: "(1+2"}, http.StatusUnprocessableEntity, "InvalidExpression", "Invalid expression"},
		{"malformed body", "{", http.StatusBadRequest, "BadRequest", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/api/evaluate", tt.body, "Accept-Language", "en")
			require.Equal(t, tt.status, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.kind, resp.Kind)
			assert.Equal(t, tt.message, resp.Message)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestNormalizeAPI(t *testing.T) {
	_, router := newTestServer(t)

	w := postJSON(router, "/api/normalize", ExpressionRequest{Expr: "3×(2)^2"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp NormalizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "3*(2)**2", resp.Normalized)
	assert.Equal(t, "3*(2)**2", resp.SmartFixed)

	w = postJSON(router, "/api/normalize", ExpressionRequest{Expr: "2 3"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestConvertAPI(t *testing.T) {
	_, router := newTestServer(t)

	w := postJSON(router, "/api/convert", ConvertRequest{Input: "ff", From: 16, To: 2})
	require.Equal(t, http.StatusOK, w.Code)
	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "11111111", resp.Output)

	tests := []struct {
		name    string
		req     ConvertRequest
		kind    string
		message string
	}{
		{"empty", ConvertRequest{Input: " ", From: 10, To: 2}, "EmptyInput", "ورودی خالی است"},
		{"digit", ConvertRequest{Input: "2", From: 2, To: 10}, "InvalidDigit", "رقم نامعتبر برای مبنا"},
		{"radix", ConvertRequest{Input: "1", From: 10, To: 40}, "InvalidRadix", "مبنا باید بین ۲ و ۱۶ باشد"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/api/convert?lang=fa", tt.req)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.kind, resp.Kind)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestKeypadAPI(t *testing.T) {
	_, router := newTestServer(t)

	w := get(router, "/api/keypad")
	require.Equal(t, http.StatusOK, w.Code)
	var resp KeypadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 6)
	assert.Equal(t, "C", resp.Rows[0][0].Token)
}

func TestCORSOnAPI(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/evaluate", nil)
	req.Header.Set("Origin", "http://other.test")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthAndMetrics(t *testing.T) {
	_, router := newTestServer(t)

	w := get(router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	postJSON(router, "/api/evaluate", ExpressionRequest{Expr: "1+1"})
	w = get(router, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `hesab_evaluations_total{outcome="success"} 1`))
	assert.True(t, strings.Contains(body, `hesab_http_requests_total{method="GET",path="/health",status="200"} 1`))
}

func TestRateLimitEnabled(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit.RequestsPerSecond = 1
	cfg.RateLimit.Burst = 1
	s, err := NewServer(cfg, logging.NewNop(), prometheus.NewRegistry())
	require.NoError(t, err)
	router := s.Router()

	assert.Equal(t, http.StatusOK, get(router, "/health").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(router, "/health").Code)
}
