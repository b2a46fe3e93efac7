// Package health serves the liveness and Prometheus metrics endpoints.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const checkTimeout = 2 * time.Second

// Checker reports whether a dependency is reachable.
type Checker interface {
	Ping(ctx context.Context) error
}

// Status of the service.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// Report is the body of /health.
type Report struct {
	Status Status            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Server provides HTTP endpoints for health monitoring.
type Server struct {
	checks map[string]Checker
	server *http.Server
	logger *zap.Logger
}

// NewServer creates a new health server listening on addr.
func NewServer(addr string, checks map[string]Checker, logger *zap.Logger) *Server {
	mux := http.NewServeMux()
	s := &Server{
		checks: checks,
		logger: logger,
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server. It returns nil after Stop.
func (s *Server) Start() error {
	s.logger.Info("health server started", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Check runs every registered check.
func (s *Server) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	report := Report{Status: StatusHealthy, Checks: make(map[string]string, len(s.checks))}
	for name, c := range s.checks {
		if err := c.Ping(ctx); err != nil {
			report.Status = StatusUnhealthy
			report.Checks[name] = err.Error()
			continue
		}
		report.Checks[name] = "ok"
	}
	return report
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.Check(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if report.Status == StatusHealthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	if err := json.NewEncoder(w).Encode(report); err != nil {
		s.logger.Warn("write health report", zap.Error(err))
	}
}
