// ============================================================================
// teacup - grammar-driven language engine
// ============================================================================
//
// Package:     server
// Description: HTTP server hosting the evaluation endpoint
// Author:      msto63
// Created:     2025-06-24
// License:     MIT
// ============================================================================

package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	mdwlog "github.com/msto63/teacup/foundation/core/log"
	"github.com/msto63/teacup/foundation/engine/interp"
	"github.com/msto63/teacup/internal/history"
	"github.com/msto63/teacup/pkg/core/health"
)

// Server hosts the WebSocket endpoint, health and history routes
type Server struct {
	httpServer *http.Server
	ws         *WebSocketHandler
	store      history.Store
	factory    EngineFactory
	health     *health.Registry
	logger     *mdwlog.Logger
	config     Config
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxMessageSize int64
	Version        string
	ListLimit      int
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:           "127.0.0.1",
		Port:           8420,
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxMessageSize: 64 * 1024,
		Version:        "0.1.0",
		ListLimit:      20,
	}
}

// New creates a new server. store may be nil to disable history.
func New(cfg Config, factory EngineFactory, store history.Store, logger *mdwlog.Logger) (*Server, error) {
	if factory == nil {
		return nil, mdwerror.New("engine factory is required").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("server.New")
	}
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	logger = logger.WithName("server")

	s := &Server{
		ws:      NewWebSocketHandler(factory, store, cfg, logger),
		store:   store,
		factory: factory,
		logger:  logger,
		config:  cfg,
	}

	s.health = health.NewRegistry("teacup", cfg.Version)
	s.health.Register(health.Probe("engine", true, s.probeEngine))
	if store != nil {
		s.health.Register(health.Probe("history", false, store.Ping))
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", s.ws)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/history", s.handleHistory)

	// WebSocket connections manage their own deadlines
	s.httpServer = &http.Server{
		Addr:              s.Address(),
		Handler:           loggingMiddleware(logger, mux),
		ReadHeaderTimeout: cfg.ReadTimeout,
	}

	return s, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// probeEngine evaluates a fixed expression on a fresh engine
func (s *Server) probeEngine(ctx context.Context) error {
	e, err := s.factory(io.Discard)
	if err != nil {
		return err
	}
	res, err := e.Run("1 + 1")
	if err != nil {
		return err
	}
	if got := interp.Format(res.Value); got != "2" {
		return fmt.Errorf("probe evaluated to %s", got)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	status := http.StatusOK
	if report.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "history is disabled"})
		return
	}

	limit := s.config.ListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}

	evs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.logger.Error("history list failed", mdwlog.Err(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if evs == nil {
		evs = []*history.Evaluation{}
	}
	writeJSON(w, http.StatusOK, evs)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *mdwlog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		logger.Debug("HTTP request", mdwlog.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   wrapper.statusCode,
			"duration": time.Since(start).String(),
		})
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrader take over the connection
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return h.Hijack()
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Starting teacup server", mdwlog.Fields{
		"host": s.config.Host,
		"port": s.config.Port,
	})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return mdwerror.Wrap(err, "server failed").
			WithCode(mdwerror.CodeNetworkError).
			WithOperation("server.Start")
	}
	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping teacup server")
	return s.httpServer.Shutdown(ctx)
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}
