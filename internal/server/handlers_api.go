package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/quay/ci-metrics-dashboard/internal/metricsapi"
	"github.com/quay/ci-metrics-dashboard/internal/view"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"metrics_url": s.upstream,
	})
}

// --- Builds ---

func (s *Server) handleListBuilds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, view.BuildsSummary(r.Context(), s.source, s.builds))
}

type buildResponse struct {
	view.BuildDetail
	Chart chartArrays `json:"chart"`
}

type chartArrays struct {
	Labels string `json:"labels"`
	Passes string `json:"passes"`
	Fails  string `json:"fails"`
	Skips  string `json:"skips"`
}

func (s *Server) handleGetBuild(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	runs, err := s.source.ListRunsByBuild(r.Context(), name)
	if err != nil {
		s.logger.Error("build detail", "build", name, "error", err)
		writeError(w, statusFor(err), err)
		return
	}
	detail := view.NewBuildDetail(name, runs)
	writeJSON(w, http.StatusOK, buildResponse{
		BuildDetail: detail,
		Chart: chartArrays{
			Labels: detail.Labels(),
			Passes: detail.Passes(),
			Fails:  detail.Fails(),
			Skips:  detail.Skips(),
		},
	})
}

// --- Runs ---

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.source.ListRuns(r.Context())
	if err != nil {
		s.logger.Error("list runs", "error", err)
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, s.runRows(r.Context(), view.NewRunIndex(runs, s.now())))
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	results, err := s.source.ListResultsByRun(r.Context(), id)
	if err != nil {
		s.logger.Error("run detail", "run", id, "error", err)
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewRunDetail(id, results))
}

// --- Tests ---

func (s *Server) handleListTests(w http.ResponseWriter, r *http.Request) {
	tests, err := s.source.ListTests(r.Context())
	if err != nil {
		s.logger.Error("list tests", "error", err)
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewTestIndex(tests))
}

// runRows resolves the artifact link of every row.
func (s *Server) runRows(ctx context.Context, rows []view.RunRow) []view.RunRow {
	for i := range rows {
		if rows[i].Artifacts != "" {
			rows[i].Artifact = s.artifacts.Link(ctx, rows[i].Artifacts)
		}
	}
	return rows
}

// statusFor maps a metrics API failure onto the status returned to the browser.
func statusFor(err error) int {
	var fe *metricsapi.FetchError
	switch {
	case errors.As(err, &fe) && fe.Kind == metricsapi.BadResponse && fe.StatusCode == http.StatusNotFound:
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case metricsapi.IsUnreachable(err), metricsapi.IsBadResponse(err), metricsapi.IsDecode(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
