// Package server hosts the REST API, the MCP stream and the operational
// endpoints on one HTTP listener.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/honeycarbs/talentry/internal/api"
	"github.com/honeycarbs/talentry/internal/mcp"
	"github.com/honeycarbs/talentry/internal/metrics"
	"github.com/honeycarbs/talentry/pkg/logging"
)

// Config is the listen address
type Config struct {
	Host string
	Port string
}

// Server wraps an HTTP server serving every surface of the application
type Server struct {
	logger *logging.Logger

	srv     *http.Server
	started atomic.Bool
}

// New builds the mux and the underlying http.Server
func New(cfg Config, logger *logging.Logger, handler *api.Handler, mcpHandler http.Handler, collectors *metrics.Collectors) *Server {
	mux := http.NewServeMux()
	handler.Register(mux)
	mux.Handle(mcp.StreamPath, mcpHandler)
	mux.Handle("GET /metrics", collectors.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpSrv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           instrument(mux, collectors),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		logger: logger,
		srv:    httpSrv,
	}
}

// Handler exposes the instrumented mux
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Addr is the configured listen address
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("HTTP server listening", "addr", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("HTTP server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// instrument counts requests by matched route pattern
func instrument(next *http.ServeMux, collectors *metrics.Collectors) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			_, route = next.Handler(r)
		}
		if route == "" {
			route = "unmatched"
		}
		collectors.HTTPRequest(route, rec.status)
	})
}
