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
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/google/hesab/core/middleware"
	"github.com/google/hesab/core/monitoring"
)

// Router builds the gin engine with all middleware and routes
func (s *Server) Router() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(s.logger))
	router.Use(middleware.AccessLog(s.logger))
	router.Use(monitoring.Middleware(s.metrics))
	if s.config.RateLimit.Enabled {
		s.logger.Info("Rate limiting enabled",
			zap.Int("rps", s.config.RateLimit.RequestsPerSecond),
			zap.Int("burst", s.config.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = s.config.RateLimit.RequestsPerSecond
		rl.Burst = s.config.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	router.GET("/", s.handleCalculator)
	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := router.Group("/api", middleware.CORS(middleware.DefaultCORSConfig()))
	api.POST("/evaluate", s.handleEvaluate)
	api.POST("/normalize", s.handleNormalize)
	api.POST("/convert", s.handleConvert)
	api.GET("/keypad", s.handleKeypad)
	// preflight requests are answered by the CORS middleware
	api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	return router
}

func (s *Server) handleCalculator(c *gin.Context) {
	var buf bytes.Buffer
	result := s.HandleCalculatorRequest(&buf, c.Request.URL, c.GetHeader("Accept-Language"), c.Header)
	switch {
	case result.Redirect != "":
		c.Redirect(result.StatusCode, result.Redirect)
	case result.Error != nil:
		_ = c.Error(result.Error)
		c.String(result.StatusCode, "internal error")
	default:
		c.Data(result.StatusCode, "text/html; charset=utf-8", buf.Bytes())
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if !s.config.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
