package domain

import "time"

// Counters are the line-level tallies of one run
type Counters struct {
	TotalLines   int64 `json:"totalLines"`
	FailedLogins int64 `json:"failedLogins"`
	WarnCount    int64 `json:"warnCount"`
	ErrorCount   int64 `json:"errorCount"`
}

// DetectionConfig is the read-only detector configuration of one run
type DetectionConfig struct {
	WindowSeconds int64 `json:"windowSeconds"`
	Threshold     int   `json:"threshold"`
}

// Report is the complete result of analyzing one set of inputs
type Report struct {
	Type          string `json:"type"`          // Always "report"
	SchemaVersion int    `json:"schemaVersion"` // Schema version for compatibility

	RunID       string    `json:"runId"`
	GeneratedAt time.Time `json:"generatedAt"`
	Sources     []string  `json:"sources"`

	Config   DetectionConfig `json:"config"`
	Counters Counters        `json:"counters"`

	// Ranked full lists; truncation is up to the presenter
	TopAddresses []KeyTotal `json:"topAddresses"`
	Offenders    []Offender `json:"offenders"`
}

// NewReport creates an empty report for the given configuration
func NewReport(cfg DetectionConfig) *Report {
	return &Report{
		Type:         "report",
		Config:       cfg,
		TopAddresses: []KeyTotal{},
		Offenders:    []Offender{},
	}
}

// HasOffenders reports whether any burst was detected
func (r *Report) HasOffenders() bool {
	return r != nil && len(r.Offenders) > 0
}

// Top returns at most n entries of the ranked address totals
func (r *Report) Top(n int) []KeyTotal {
	if n < 0 || n >= len(r.TopAddresses) {
		return r.TopAddresses
	}
	return r.TopAddresses[:n]
}

// ErrorOutput represents a structured error for NDJSON output
type ErrorOutput struct {
	Type          string `json:"type"`          // Always "error"
	SchemaVersion int    `json:"schemaVersion"` // Schema version for compatibility
	Code          string `json:"code"`          // Machine-readable error code
	Message       string `json:"message"`       // Human-readable message
	Hint          string `json:"hint,omitempty"`
}

// NewErrorOutput creates a new error output
// Note: SchemaVersion should be set by the caller (output package)
func NewErrorOutput(code, message string) *ErrorOutput {
	return &ErrorOutput{
		Type:    "error",
		Code:    code,
		Message: message,
	}
}
