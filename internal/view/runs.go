package view

import (
	"sort"
	"time"

	"github.com/quay/ci-metrics-dashboard/internal/model"
)

// ResultRow is one line of the per-test table of a run.
type ResultRow struct {
	Name     string         `json:"name"`
	Start    string         `json:"start_time"`
	Stop     string         `json:"stop_time"`
	Status   string         `json:"status"`
	Severity model.Severity `json:"severity"`
	Duration time.Duration  `json:"duration_ns"`
}

// RunDetail is the flattened result table of one run. Rows are ordered by
// test name; the API mapping carries no meaningful order.
type RunDetail struct {
	RunID  string         `json:"run_id"`
	Rows   []ResultRow    `json:"rows"`
	Counts map[string]int `json:"counts"`
}

func NewRunDetail(runID string, results map[string]model.TestResult) RunDetail {
	d := RunDetail{
		RunID:  runID,
		Rows:   make([]ResultRow, 0, len(results)),
		Counts: map[string]int{},
	}
	for name, res := range results {
		status := res.ParsedStatus()
		d.Rows = append(d.Rows, ResultRow{
			Name:     name,
			Start:    res.StartTime,
			Stop:     res.StopTime,
			Status:   res.Status,
			Severity: status.Severity(),
			Duration: res.Duration(),
		})
		d.Counts[status.String()]++
	}
	sort.Slice(d.Rows, func(i, j int) bool { return d.Rows[i].Name < d.Rows[j].Name })
	return d
}

// RunRow is a run with its derived display fields.
type RunRow struct {
	model.TestRun
	Age      string `json:"age"`
	Duration string `json:"duration"`
	Artifact string `json:"artifact_link,omitempty"`
}

// NewRunIndex orders runs newest first and derives their age relative to now.
func NewRunIndex(runs []model.TestRun, now time.Time) []RunRow {
	sorted := SortRunsDesc(runs)
	rows := make([]RunRow, len(sorted))
	for i, r := range sorted {
		rows[i] = RunRow{
			TestRun:  r,
			Age:      r.HumanRunAt(now),
			Duration: r.HumanRunTime(),
		}
	}
	return rows
}

// TestRow is a test with its derived display fields.
type TestRow struct {
	model.Test
	Rate     string `json:"success_rate"`
	Duration string `json:"mean_duration"`
}

// NewTestIndex orders tests by test id.
func NewTestIndex(tests []model.Test) []TestRow {
	rows := make([]TestRow, len(tests))
	for i, t := range tests {
		rows[i] = TestRow{Test: t, Rate: t.SuccessRate(), Duration: t.HumanRunTime()}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TestID < rows[j].TestID })
	return rows
}
