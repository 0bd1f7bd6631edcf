package view

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/quay/ci-metrics-dashboard/internal/model"
)

func TestNewRunDetail(t *testing.T) {
	results := map[string]model.TestResult{
		"testB": {TestName: "testB", Status: "success"},
		"testA": {TestName: "testA", Status: "fail"},
		"testC": {TestName: "testC", Status: "xfail"},
	}
	d := NewRunDetail("42", results)

	var names []string
	var severities []model.Severity
	for _, r := range d.Rows {
		names = append(names, r.Name)
		severities = append(severities, r.Severity)
	}
	if diff := cmp.Diff([]string{"testA", "testB", "testC"}, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	want := []model.Severity{model.SeverityDanger, model.SeveritySuccess, model.SeverityInfo}
	if diff := cmp.Diff(want, severities); diff != "" {
		t.Errorf("severities (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]int{"fail": 1, "success": 1, "unknown": 1}, d.Counts); diff != "" {
		t.Errorf("counts (-want +got):\n%s", diff)
	}
}

func TestNewRunDetailEmpty(t *testing.T) {
	d := NewRunDetail("1", nil)
	if d.Rows == nil || len(d.Rows) != 0 {
		t.Errorf("rows: got %#v, want empty", d.Rows)
	}
}

func TestNewRunIndex(t *testing.T) {
	now := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	rows := NewRunIndex([]model.TestRun{
		{ID: "old", RunAt: day(1), RunTime: 90},
		{ID: "new", RunAt: day(2), RunTime: 5},
	}, now)
	if len(rows) != 2 || rows[0].ID != "new" {
		t.Fatalf("rows: %+v", rows)
	}
	if rows[0].Age != "1 day ago" {
		t.Errorf("age: got %q", rows[0].Age)
	}
	if rows[1].Duration != "1 minute, 30 seconds" {
		t.Errorf("duration: got %q", rows[1].Duration)
	}
}

func TestNewTestIndex(t *testing.T) {
	rows := NewTestIndex([]model.Test{
		{TestID: "z.test", Success: 1, RunCount: 2},
		{TestID: "a.test", RunCount: 0},
	})
	if rows[0].TestID != "a.test" || rows[0].Rate != "N/A" {
		t.Errorf("first row: %+v", rows[0])
	}
	if rows[1].Rate != "50.0%" {
		t.Errorf("second row rate: got %q", rows[1].Rate)
	}
}
