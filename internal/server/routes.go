package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes(mux *http.ServeMux) {
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, instrument(pattern, h))
	}

	// Pages
	handle("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/builds", http.StatusFound)
	})
	handle("GET /builds", s.handleBuildsPage)
	handle("GET /builds/{name}", s.handleBuildDetailPage)
	handle("GET /runs", s.handleRunsPage)
	handle("GET /runs/{id}", s.handleRunDetailPage)
	handle("GET /tests", s.handleTestsPage)

	// Health
	handle("GET /api/v1/health", s.handleHealth)

	// Read-only JSON API
	handle("GET /api/v1/builds", s.handleListBuilds)
	handle("GET /api/v1/builds/{name}", s.handleGetBuild)
	handle("GET /api/v1/runs", s.handleListRuns)
	handle("GET /api/v1/runs/{id}", s.handleGetRun)
	handle("GET /api/v1/tests", s.handleListTests)

	mux.Handle("GET /metrics", promhttp.Handler())
}
