package output

import (
	"io"

	"github.com/vburojevic/authscan/internal/domain"
)

// Emitter wraps NDJSONWriter with helpers that reuse one encoder.
type Emitter struct {
	w *NDJSONWriter
}

func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: NewNDJSONWriter(w)}
}

func (e *Emitter) Report(r *domain.Report) error {
	return e.w.WriteReport(r)
}

func (e *Emitter) Export(kind, path string, n int) error {
	return e.w.WriteExport(kind, path, n)
}

func (e *Emitter) WriteWarning(msg string) error {
	return e.w.WriteWarning(msg)
}
