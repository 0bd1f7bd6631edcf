package server

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/quay/ci-metrics-dashboard/internal/artifacts"
	"github.com/quay/ci-metrics-dashboard/internal/model"
	"github.com/quay/ci-metrics-dashboard/internal/view"
	"github.com/quay/ci-metrics-dashboard/web"
)

var templates map[string]*template.Template

func init() {
	funcMap := template.FuncMap{
		"isLink": artifacts.IsLink,
		"humanDuration": func(d time.Duration) string {
			return model.HumanDuration(d.Seconds())
		},
	}

	layout := template.Must(template.New("layout").Funcs(funcMap).ParseFS(web.TemplateFS, "templates/layout.html"))

	pages := []string{
		"templates/builds.html",
		"templates/build_detail.html",
		"templates/runs.html",
		"templates/run_detail.html",
		"templates/tests.html",
		"templates/error.html",
	}

	templates = make(map[string]*template.Template)
	for _, p := range pages {
		t := template.Must(template.Must(layout.Clone()).ParseFS(web.TemplateFS, p))
		templates[p] = t
	}
}

type pageData struct {
	Title     string
	Builds    []string
	Summaries []view.BuildSummary
	Build     *view.BuildDetail
	Runs      []view.RunRow
	Run       *view.RunDetail
	Tests     []view.TestRow
	Error     string
	Status    int
}

func (s *Server) basePageData(title string) pageData {
	return pageData{Title: title, Builds: s.builds}
}

func (s *Server) handleBuildsPage(w http.ResponseWriter, r *http.Request) {
	data := s.basePageData("Builds")
	data.Summaries = view.BuildsSummary(r.Context(), s.source, s.builds)
	for _, b := range data.Summaries {
		if b.Err != nil {
			s.logger.Error("builds summary", "build", b.BuildName, "error", b.Err)
		}
	}
	renderPage(w, http.StatusOK, "templates/builds.html", data)
}

func (s *Server) handleBuildDetailPage(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	runs, err := s.source.ListRunsByBuild(r.Context(), name)
	if err != nil {
		s.logger.Error("build detail", "build", name, "error", err)
		s.renderError(w, err)
		return
	}

	detail := view.NewBuildDetail(name, runs)
	data := s.basePageData(name)
	data.Build = &detail
	data.Runs = s.runRows(r.Context(), view.NewRunIndex(detail.TestRuns, s.now()))
	renderPage(w, http.StatusOK, "templates/build_detail.html", data)
}

func (s *Server) handleRunsPage(w http.ResponseWriter, r *http.Request) {
	runs, err := s.source.ListRuns(r.Context())
	if err != nil {
		s.logger.Error("runs", "error", err)
		s.renderError(w, err)
		return
	}

	data := s.basePageData("Test runs")
	data.Runs = s.runRows(r.Context(), view.NewRunIndex(runs, s.now()))
	renderPage(w, http.StatusOK, "templates/runs.html", data)
}

func (s *Server) handleRunDetailPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	results, err := s.source.ListResultsByRun(r.Context(), id)
	if err != nil {
		s.logger.Error("run detail", "run", id, "error", err)
		s.renderError(w, err)
		return
	}

	detail := view.NewRunDetail(id, results)
	data := s.basePageData("Run " + id)
	data.Run = &detail
	renderPage(w, http.StatusOK, "templates/run_detail.html", data)
}

func (s *Server) handleTestsPage(w http.ResponseWriter, r *http.Request) {
	tests, err := s.source.ListTests(r.Context())
	if err != nil {
		s.logger.Error("tests", "error", err)
		s.renderError(w, err)
		return
	}

	data := s.basePageData("Tests")
	data.Tests = view.NewTestIndex(tests)
	renderPage(w, http.StatusOK, "templates/tests.html", data)
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	data := s.basePageData(http.StatusText(status))
	data.Status = status
	data.Error = err.Error()
	renderPage(w, status, "templates/error.html", data)
}

func renderPage(w http.ResponseWriter, status int, page string, data interface{}) {
	t, ok := templates[page]
	if !ok {
		slog.Error("template not found", "page", page)
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("template error", "page", page, "error", err)
	}
}
