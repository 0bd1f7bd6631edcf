package model

// Status is the outcome of a single test result.
type Status int

const (
	StatusUnknown Status = iota
	StatusFail
	StatusSuccess
	StatusSkip
)

// ParseStatus maps the API status vocabulary onto Status. Anything outside
// "fail", "success" and "skip" is StatusUnknown.
func ParseStatus(s string) Status {
	switch s {
	case "fail":
		return StatusFail
	case "success":
		return StatusSuccess
	case "skip":
		return StatusSkip
	default:
		return StatusUnknown
	}
}

func (s Status) String() string {
	switch s {
	case StatusFail:
		return "fail"
	case StatusSuccess:
		return "success"
	case StatusSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Severity is the display category of a result row.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

func (s Status) Severity() Severity {
	switch s {
	case StatusFail:
		return SeverityDanger
	case StatusSuccess:
		return SeveritySuccess
	case StatusSkip:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}
