package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/quay/ci-metrics-dashboard/internal/artifacts"
	"github.com/quay/ci-metrics-dashboard/internal/model"
)

// MetricsSource is the read side of the metrics API used by the handlers.
type MetricsSource interface {
	ListRuns(ctx context.Context) ([]model.TestRun, error)
	ListTests(ctx context.Context) ([]model.Test, error)
	ListRunsByBuild(ctx context.Context, name string) ([]model.TestRun, error)
	ListResultsByRun(ctx context.Context, runID string) (map[string]model.TestResult, error)
}

// Options configures a Server.
type Options struct {
	Addr       string
	Builds     []string // build names on the builds page, in display order
	MetricsURL string   // reported by the health endpoint
}

type Server struct {
	source    MetricsSource
	artifacts *artifacts.Signer
	builds    []string
	upstream  string
	http      *http.Server
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a Server. signer may be nil, in which case artifact
// references are rendered verbatim.
func New(source MetricsSource, signer *artifacts.Signer, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		source:    source,
		artifacts: signer,
		builds:    append([]string(nil), opts.Builds...),
		upstream:  opts.MetricsURL,
		logger:    logger,
		now:       time.Now,
	}
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	var handler http.Handler = mux
	handler = loggingMiddleware(logger, handler)
	handler = recoveryMiddleware(logger, handler)

	s.http = &http.Server{
		Addr:         opts.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	s.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
