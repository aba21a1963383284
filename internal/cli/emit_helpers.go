package cli

import (
	"fmt"

	"github.com/vburojevic/authscan/internal/output"
)

// emitWarning respects format/quiet.
func emitWarning(globals *Globals, emitter *output.Emitter, msg string) {
	if globals.Quiet {
		return
	}
	if globals.Format == "ndjson" && emitter != nil {
		if err := emitter.WriteWarning(msg); err != nil {
			globals.Debug("failed to write warning: %v", err)
		}
		return
	}
	fmt.Fprintf(globals.Stderr, "Warning: %s\n", msg)
}

// emitExport announces a written artifact; text notices are dropped when quiet.
func emitExport(globals *Globals, emitter *output.Emitter, kind, path string, records int) error {
	if globals.Format == "ndjson" {
		return emitter.Export(kind, path, records)
	}
	if globals.Quiet {
		return nil
	}
	return output.NewTextWriter(globals.Stdout, globals.Plain).WriteExport(kind, path)
}
