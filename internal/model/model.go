package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// TestRun is one CI run of a build as reported by the metrics API.
type TestRun struct {
	ID        string    `json:"id"`
	Artifacts string    `json:"artifacts"`
	Passes    int       `json:"passes"`
	Fails     int       `json:"fails"`
	Skips     int       `json:"skips"`
	RunAt     Timestamp `json:"run_at"`
	RunTime   float64   `json:"run_time"` // seconds
}

// HumanRunAt returns the age of the run relative to now, e.g. "3 hours ago".
func (r TestRun) HumanRunAt(now time.Time) string {
	if r.RunAt.IsZero() {
		return "never"
	}
	return humanize.RelTime(r.RunAt.Time, now, "ago", "from now")
}

// HumanRunTime returns the run duration, e.g. "1 minute, 30 seconds".
func (r TestRun) HumanRunTime() string {
	return HumanDuration(r.RunTime)
}

// Total is the number of tests accounted for by the run.
func (r TestRun) Total() int {
	return r.Passes + r.Fails + r.Skips
}

type TestRunList struct {
	Runs []TestRun `json:"runs"`
}

// Test is the aggregate of one test across all runs.
type Test struct {
	ID       string  `json:"id"`
	TestID   string  `json:"test_id"`
	Success  int     `json:"success"`
	Failure  int     `json:"failure"`
	RunCount int     `json:"run_count"`
	RunTime  float64 `json:"run_time"` // mean, seconds
}

// SuccessRate formats success/run_count as a percentage, or "N/A" for a
// test that never ran.
func (t Test) SuccessRate() string {
	return rate(t.Success, t.RunCount)
}

func (t Test) HumanRunTime() string {
	return HumanDuration(t.RunTime)
}

type TestList struct {
	Tests []Test `json:"tests"`
}

// TestResult is the outcome of a single test within a run.
type TestResult struct {
	TestName             string `json:"test_name"`
	StartTime            string `json:"start_time"`
	StopTime             string `json:"stop_time"`
	StartTimeMicrosecond int64  `json:"start_time_microsecond"`
	StopTimeMicrosecond  int64  `json:"stop_time_microsecond"`
	Status               string `json:"status"`
	RunID                int64  `json:"run_id"`
}

// ParsedStatus maps the raw status onto the closed Status set.
func (r TestResult) ParsedStatus() Status {
	return ParseStatus(r.Status)
}

// Duration derives the elapsed time from the start and stop timestamps.
// The microsecond fields carry the sub-second part the string forms drop.
// It returns zero when either timestamp is missing or unparsable.
func (r TestResult) Duration() time.Duration {
	start, err1 := parseTime(r.StartTime)
	stop, err2 := parseTime(r.StopTime)
	if err1 != nil || err2 != nil {
		return 0
	}
	start = start.Truncate(time.Second).Add(time.Duration(r.StartTimeMicrosecond) * time.Microsecond)
	stop = stop.Truncate(time.Second).Add(time.Duration(r.StopTimeMicrosecond) * time.Microsecond)
	if stop.Before(start) {
		return 0
	}
	return stop.Sub(start)
}

// Job is the aggregate pass/fail record of a CI job.
type Job struct {
	JobName     string  `json:"job_name"`
	Pass        int     `json:"pass"`
	Fail        int     `json:"fail"`
	MeanRunTime float64 `json:"mean_run_time"` // seconds
}

func (j Job) HumanMeanRunTime() string {
	return HumanDuration(j.MeanRunTime)
}

func (j Job) SuccessRate() string {
	return rate(j.Pass, j.Pass+j.Fail)
}

func rate(n, total int) string {
	if total <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}

var durationUnits = []struct {
	name string
	size time.Duration
}{
	{"day", 24 * time.Hour},
	{"hour", time.Hour},
	{"minute", time.Minute},
	{"second", time.Second},
}

// HumanDuration renders a number of seconds using the two largest non-zero
// units, e.g. 90 -> "1 minute, 30 seconds". Sub-second values render as
// milliseconds.
func HumanDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	if d < time.Millisecond {
		return "0 seconds"
	}
	if d < time.Second {
		return plural(d.Milliseconds(), "millisecond")
	}

	var parts []string
	for _, u := range durationUnits {
		if len(parts) == 2 {
			break
		}
		n := int64(d / u.size)
		if n == 0 {
			continue
		}
		parts = append(parts, plural(n, u.name))
		d -= time.Duration(n) * u.size
	}
	return strings.Join(parts, ", ")
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
