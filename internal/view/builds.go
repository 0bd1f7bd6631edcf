// Package view turns metrics API records into the shapes the dashboard
// pages and JSON endpoints render.
package view

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/quay/ci-metrics-dashboard/internal/model"
)

// LabelLayout is the format of run timestamps on chart axes.
const LabelLayout = "2006-01-02 15:04:05"

// RunSource is the subset of the metrics client needed to assemble build views.
type RunSource interface {
	ListRunsByBuild(ctx context.Context, name string) ([]model.TestRun, error)
}

// SortRunsDesc returns a copy of runs ordered newest first. Runs with equal
// timestamps keep their relative order.
func SortRunsDesc(runs []model.TestRun) []model.TestRun {
	sorted := make([]model.TestRun, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RunAt.After(sorted[j].RunAt.Time)
	})
	return sorted
}

// ChartEntry is one slice of a pass/fail/skip chart.
type ChartEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Color string `json:"color"`
}

// BuildSummary pairs a build name with its most recent run.
type BuildSummary struct {
	BuildName   string         `json:"build_name"`
	LastTestRun *model.TestRun `json:"last_test_run"`
	Err         error          `json:"-"`
	Error       string         `json:"error,omitempty"`
}

// ChartData returns the pass, fail and skip entries of the latest run, or nil
// when the build has no runs.
func (b BuildSummary) ChartData() []ChartEntry {
	if b.LastTestRun == nil {
		return nil
	}
	r := b.LastTestRun
	return []ChartEntry{
		{Label: "pass", Value: strconv.Itoa(r.Passes), Color: "green"},
		{Label: "fail", Value: strconv.Itoa(r.Fails), Color: "red"},
		{Label: "skip", Value: strconv.Itoa(r.Skips), Color: "yellow"},
	}
}

// NewBuildSummary picks the latest of runs for the named build.
func NewBuildSummary(name string, runs []model.TestRun) BuildSummary {
	s := BuildSummary{BuildName: name}
	if sorted := SortRunsDesc(runs); len(sorted) > 0 {
		s.LastTestRun = &sorted[0]
	}
	return s
}

// BuildsSummary fetches the runs of every named build concurrently and
// returns one summary per build in the order given. A build whose runs
// cannot be fetched carries the error in Err; it does not fail the others.
func BuildsSummary(ctx context.Context, src RunSource, builds []string) []BuildSummary {
	summaries := make([]BuildSummary, len(builds))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range builds {
		g.Go(func() error {
			runs, err := src.ListRunsByBuild(ctx, name)
			if err != nil {
				summaries[i] = BuildSummary{BuildName: name, Err: err, Error: err.Error()}
				return nil
			}
			summaries[i] = NewBuildSummary(name, runs)
			return nil
		})
	}
	_ = g.Wait()
	return summaries
}

// BuildDetail is the run history of one build, newest first.
type BuildDetail struct {
	Name     string          `json:"name"`
	TestRuns []model.TestRun `json:"test_runs"`
}

func NewBuildDetail(name string, runs []model.TestRun) BuildDetail {
	return BuildDetail{Name: name, TestRuns: SortRunsDesc(runs)}
}

// Labels returns the run timestamps joined by commas, aligned with Passes,
// Fails and Skips.
func (b BuildDetail) Labels() string {
	return b.join(func(r model.TestRun) string { return r.RunAt.UTC().Format(LabelLayout) })
}

func (b BuildDetail) Passes() string {
	return b.join(func(r model.TestRun) string { return strconv.Itoa(r.Passes) })
}

func (b BuildDetail) Fails() string {
	return b.join(func(r model.TestRun) string { return strconv.Itoa(r.Fails) })
}

func (b BuildDetail) Skips() string {
	return b.join(func(r model.TestRun) string { return strconv.Itoa(r.Skips) })
}

func (b BuildDetail) join(field func(model.TestRun) string) string {
	parts := make([]string, len(b.TestRuns))
	for i, r := range b.TestRuns {
		parts[i] = field(r)
	}
	return strings.Join(parts, ",")
}
