package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vburojevic/authscan/internal/output"
	"github.com/vburojevic/authscan/internal/tui"
)

// UICmd analyzes the inputs and opens an interactive offender browser
type UICmd struct {
	DetectionFlags
}

// Run executes the UI command
func (c *UICmd) Run(globals *Globals) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	report, cerr := c.DetectionFlags.run(ctx, globals)
	if cerr != nil {
		return outputErrorCommon(globals, cerr)
	}

	if globals.Plain || globals.Format == "ndjson" {
		var emitter *output.Emitter
		if globals.Format == "ndjson" {
			emitter = output.NewEmitter(globals.Stdout)
		}
		emitWarning(globals, emitter, "ui needs an interactive terminal; printing the report instead")
		if emitter != nil {
			return emitter.Report(report)
		}
		return output.NewTextWriter(globals.Stdout, true).WriteReport(report, globals.Config.Report.Top)
	}

	p := tea.NewProgram(tui.New(report), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}
