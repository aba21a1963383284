package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vburojevic/authscan/internal/analysis"
	"github.com/vburojevic/authscan/internal/config"
	"github.com/vburojevic/authscan/internal/domain"
	"github.com/vburojevic/authscan/internal/output"
	"github.com/vburojevic/authscan/internal/source"
)

// DetectionFlags are shared by commands that run an analysis
type DetectionFlags struct {
	Files     []string `arg:"" optional:"" name:"file" help:"Log files or glob patterns (.gz and .zst are decompressed)"`
	Window    int64    `short:"w" default:"${config_window}" help:"Burst window in seconds"`
	Threshold int      `short:"t" default:"${config_threshold}" help:"Failed logins within the window that count as a burst"`
	Workers   int      `default:"${config_workers}" help:"Parallel detection workers (0 = one per CPU)"`
}

// AnalyzeCmd scans log files for failed-login bursts
type AnalyzeCmd struct {
	DetectionFlags

	Top        int    `default:"${config_top}" help:"Number of top addresses in the text report"`
	Out        string `short:"o" default:"${config_csv}" help:"Write burst offenders as CSV to this path"`
	MetricsOut string `default:"${config_metrics_file}" help:"Write run metrics in Prometheus text format to this path"`
}

// Run executes the analyze command
func (c *AnalyzeCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.Top <= 0 {
		return outputErrorCommon(globals, usageError("INVALID_CONFIG",
			fmt.Sprintf("%s: %d", config.ErrInvalidTop, c.Top), "pass --top with a positive value", config.ErrInvalidTop))
	}

	report, cerr := c.DetectionFlags.run(ctx, globals)
	if cerr != nil {
		return outputErrorCommon(globals, cerr)
	}

	var emitter *output.Emitter
	if globals.Format == "ndjson" {
		emitter = output.NewEmitter(globals.Stdout)
		if err := emitter.Report(report); err != nil {
			return err
		}
	} else {
		if err := output.NewTextWriter(globals.Stdout, globals.Plain).WriteReport(report, c.Top); err != nil {
			return err
		}
	}

	if c.Out != "" {
		if err := output.WriteCSVFile(c.Out, report); err != nil {
			return outputErrorCommon(globals, outputError("WRITE_ERROR",
				fmt.Sprintf("cannot write CSV output: %s", err), err))
		}
		if err := emitExport(globals, emitter, "csv", c.Out, len(report.Offenders)); err != nil {
			return err
		}
	}

	if c.MetricsOut != "" {
		if err := output.WriteMetricsFile(c.MetricsOut, report); err != nil {
			return outputErrorCommon(globals, outputError("WRITE_ERROR",
				fmt.Sprintf("cannot write metrics output: %s", err), err))
		}
		if err := emitExport(globals, emitter, "metrics", c.MetricsOut, len(report.Offenders)); err != nil {
			return err
		}
	}

	return nil
}

// run validates the flags, reads every input in order and builds the report
func (f *DetectionFlags) run(ctx context.Context, globals *Globals) (*domain.Report, *CLIError) {
	cfg := domain.DetectionConfig{WindowSeconds: f.Window, Threshold: f.Threshold}
	if err := validateDetection(cfg, f.Workers); err != nil {
		return nil, usageError("INVALID_CONFIG", err.Error(), "window and threshold must be positive integers", err)
	}

	paths, err := source.Expand(f.Files)
	if err != nil {
		if len(f.Files) == 0 {
			return nil, usageError("MISSING_INPUT", "no log file given", "usage: authscan <logfile> [--window=SECONDS] [--threshold=N] [--out=alerts.csv]", err)
		}
		if errors.Is(err, source.ErrNoInput) {
			return nil, inputError("NO_INPUT", err.Error(), err)
		}
		return nil, inputError("READ_ERROR", err.Error(), err)
	}

	a := analysis.NewAnalyzer(cfg,
		analysis.WithLogger(globals.logger()),
		analysis.WithWorkers(f.Workers))

	for _, path := range paths {
		globals.Debug("reading %s", path)
		if err := a.ConsumeFile(path); err != nil {
			code, msg := "READ_ERROR", fmt.Sprintf("cannot read input file: %s", err)
			if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
				code, msg = "FILE_NOT_FOUND", fmt.Sprintf("cannot open input file: %s", path)
			}
			return nil, inputError(code, msg, err)
		}
	}

	if n := a.Skipped(); n > 0 {
		globals.Debug("skipped %d failed-login lines without timestamp or address", n)
	}

	report, err := a.Report(ctx)
	if err != nil {
		return nil, &CLIError{Code: "INTERRUPTED", Message: err.Error(), ExitCode: ExitUsage, Err: err}
	}
	return report, nil
}

func validateDetection(cfg domain.DetectionConfig, workers int) error {
	c := config.Default()
	c.Detection.WindowSeconds = cfg.WindowSeconds
	c.Detection.Threshold = cfg.Threshold
	c.Detection.Workers = workers
	return c.Validate()
}
