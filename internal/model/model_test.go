package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		success, runCount int
		want              string
	}{
		{0, 0, "N/A"},
		{5, 0, "N/A"},
		{0, 4, "0.0%"},
		{3, 4, "75.0%"},
		{4, 4, "100.0%"},
		{1, 3, "33.3%"},
	}
	for _, tt := range tests {
		got := Test{Success: tt.success, RunCount: tt.runCount}.SuccessRate()
		if got != tt.want {
			t.Errorf("SuccessRate(%d/%d) = %q, want %q", tt.success, tt.runCount, got, tt.want)
		}
	}
}

func TestJobSuccessRate(t *testing.T) {
	if got := (Job{}).SuccessRate(); got != "N/A" {
		t.Errorf("empty job: got %q, want N/A", got)
	}
	if got := (Job{Pass: 9, Fail: 1}).SuccessRate(); got != "90.0%" {
		t.Errorf("9/10: got %q, want 90.0%%", got)
	}
}

func TestHumanDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0 seconds"},
		{-3, "0 seconds"},
		{0.25, "250 milliseconds"},
		{1, "1 second"},
		{45, "45 seconds"},
		{90, "1 minute, 30 seconds"},
		{3600, "1 hour"},
		{3601, "1 hour, 1 second"},
		{3725, "1 hour, 2 minutes"},
		{90061, "1 day, 1 hour"},
	}
	for _, tt := range tests {
		if got := HumanDuration(tt.seconds); got != tt.want {
			t.Errorf("HumanDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestHumanRunAt(t *testing.T) {
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	r := TestRun{RunAt: Timestamp{now.Add(-3 * time.Hour)}}
	if got := r.HumanRunAt(now); got != "3 hours ago" {
		t.Errorf("HumanRunAt: got %q, want %q", got, "3 hours ago")
	}
	if got := (TestRun{}).HumanRunAt(now); got != "never" {
		t.Errorf("zero RunAt: got %q, want never", got)
	}
}

func TestTestRunDecode(t *testing.T) {
	body := `{"runs":[
		{"artifacts":"http://logs/1","fails":1,"id":"abc","passes":5,"run_at":"2024-01-02T10:30:00","run_time":12.5,"skips":0},
		{"artifacts":"","fails":0,"id":"def","passes":3,"run_at":"2024-01-01","run_time":1,"skips":2}
	]}`
	var list TestRunList
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Runs) != 2 {
		t.Fatalf("runs: got %d, want 2", len(list.Runs))
	}
	want := time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC)
	if !list.Runs[0].RunAt.Equal(want) {
		t.Errorf("run_at: got %v, want %v", list.Runs[0].RunAt, want)
	}
	if list.Runs[1].RunAt.Day() != 1 {
		t.Errorf("date-only run_at: got %v", list.Runs[1].RunAt)
	}
	if list.Runs[0].Total() != 6 {
		t.Errorf("total: got %d, want 6", list.Runs[0].Total())
	}
}

func TestTimestampDecodeRejectsGarbage(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Error("expected error for unparsable timestamp")
	}
	if err := json.Unmarshal([]byte(`null`), &ts); err != nil || !ts.IsZero() {
		t.Errorf("null: got %v, %v", ts, err)
	}
}

func TestResultDuration(t *testing.T) {
	r := TestResult{
		StartTime:            "2016-01-05 12:00:01",
		StopTime:             "2016-01-05 12:00:03",
		StartTimeMicrosecond: 500000,
		StopTimeMicrosecond:  0,
	}
	if got := r.Duration(); got != 1500*time.Millisecond {
		t.Errorf("duration: got %v, want 1.5s", got)
	}
	if got := (TestResult{StartTime: "bad"}).Duration(); got != 0 {
		t.Errorf("bad input: got %v, want 0", got)
	}
}
