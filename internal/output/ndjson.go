package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/vburojevic/authscan/internal/domain"
)

// NDJSONWriter writes report records as NDJSON
type NDJSONWriter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &NDJSONWriter{
		w:       w,
		encoder: enc,
	}
}

// OffenderOutput is one ranked burst with rendered local times
type OffenderOutput struct {
	Address     string `json:"address"`
	FirstSeen   string `json:"firstSeen"`
	LastSeen    string `json:"lastSeen"`
	WindowStart int64  `json:"windowStart"`
	WindowEnd   int64  `json:"windowEnd"`
	Count       int    `json:"count"`
}

// ReportOutput is the NDJSON form of a domain.Report
type ReportOutput struct {
	Type          string                 `json:"type"` // Always "report"
	SchemaVersion int                    `json:"schemaVersion"`
	RunID         string                 `json:"runId"`
	GeneratedAt   string                 `json:"generatedAt"`
	Sources       []string               `json:"sources"`
	Config        domain.DetectionConfig `json:"config"`
	Counters      domain.Counters        `json:"counters"`
	TopAddresses  []domain.KeyTotal      `json:"topAddresses"`
	Offenders     []OffenderOutput       `json:"offenders"`
	HasOffenders  bool                   `json:"hasOffenders"`
}

// ExportOutput announces an artifact written alongside the report
type ExportOutput struct {
	Type          string `json:"type"` // Always "export"
	SchemaVersion int    `json:"schemaVersion"`
	Kind          string `json:"kind"` // "csv" or "metrics"
	Path          string `json:"path"`
	Records       int    `json:"records"`
}

// WarningOutput represents a warning message
type WarningOutput struct {
	Type          string `json:"type"` // Always "warning"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
}

// NewReportOutput converts a report to its NDJSON form
func NewReportOutput(r *domain.Report) *ReportOutput {
	offenders := make([]OffenderOutput, len(r.Offenders))
	for i, o := range r.Offenders {
		offenders[i] = OffenderOutput{
			Address:     o.Key,
			FirstSeen:   domain.FormatTimestamp(o.WindowStart),
			LastSeen:    domain.FormatTimestamp(o.WindowEnd),
			WindowStart: o.WindowStart,
			WindowEnd:   o.WindowEnd,
			Count:       o.Count,
		}
	}

	top := r.TopAddresses
	if top == nil {
		top = []domain.KeyTotal{}
	}
	sources := r.Sources
	if sources == nil {
		sources = []string{}
	}

	return &ReportOutput{
		Type:          "report",
		SchemaVersion: SchemaVersion,
		RunID:         r.RunID,
		GeneratedAt:   r.GeneratedAt.Format(time.RFC3339),
		Sources:       sources,
		Config:        r.Config,
		Counters:      r.Counters,
		TopAddresses:  top,
		Offenders:     offenders,
		HasOffenders:  len(offenders) > 0,
	}
}

// WriteReport outputs the full report as one record
func (w *NDJSONWriter) WriteReport(r *domain.Report) error {
	return w.encoder.Encode(NewReportOutput(r))
}

// WriteExport outputs an export notice
func (w *NDJSONWriter) WriteExport(kind, path string, records int) error {
	return w.encoder.Encode(&ExportOutput{
		Type:          "export",
		SchemaVersion: SchemaVersion,
		Kind:          kind,
		Path:          path,
		Records:       records,
	})
}

// WriteError outputs an error
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	err := domain.NewErrorOutput(code, message)
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	err.SchemaVersion = SchemaVersion
	return w.encoder.Encode(err)
}

// WriteWarning outputs a warning message
func (w *NDJSONWriter) WriteWarning(message string) error {
	return w.encoder.Encode(&WarningOutput{
		Type:          "warning",
		SchemaVersion: SchemaVersion,
		Message:       message,
	})
}
