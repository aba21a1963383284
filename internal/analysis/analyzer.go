// Package analysis runs the full pipeline: line scan, event extraction,
// per-key burst detection and ranking.
package analysis

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vburojevic/authscan/internal/burst"
	"github.com/vburojevic/authscan/internal/domain"
	"github.com/vburojevic/authscan/internal/logline"
	"github.com/vburojevic/authscan/internal/source"
)

const maxLineBytes = 4 * 1024 * 1024

// Analyzer accumulates counters and failure events across inputs and builds
// the final report. It is not safe for concurrent use; inputs are consumed
// in order on the caller's goroutine.
type Analyzer struct {
	cfg     domain.DetectionConfig
	workers int
	logger  *zap.Logger
	clock   clock.Clock

	counters domain.Counters
	events   *burst.EventLog
	sources  []string
	skipped  int64
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithLogger sets the logger used for skipped-line diagnostics
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClock overrides the clock stamped on reports
func WithClock(c clock.Clock) Option {
	return func(a *Analyzer) {
		if c != nil {
			a.clock = c
		}
	}
}

// WithWorkers bounds per-key detection parallelism (<= 0 means GOMAXPROCS)
func WithWorkers(n int) Option {
	return func(a *Analyzer) { a.workers = n }
}

// NewAnalyzer creates an analyzer for one run
func NewAnalyzer(cfg domain.DetectionConfig, opts ...Option) *Analyzer {
	a := &Analyzer{
		cfg:    cfg,
		logger: zap.NewNop(),
		clock:  clock.New(),
		events: burst.NewEventLog(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Feed processes one line. lineNum is only used for diagnostics.
func (a *Analyzer) Feed(line string, lineNum int) {
	a.counters.TotalLines++

	sig, ev, err := logline.Parse(line)
	if sig.Warn {
		a.counters.WarnCount++
	}
	if sig.Error {
		a.counters.ErrorCount++
	}
	if err != nil {
		if !errors.Is(err, logline.ErrNotFailedLogin) {
			a.skipped++
			a.logger.Debug("skipping failed login line",
				zap.Int("line", lineNum),
				zap.Error(err))
		}
		return
	}

	a.counters.FailedLogins++
	a.events.Add(ev)
}

// Consume reads every line of r. name identifies the input in the report.
func (a *Analyzer) Consume(name string, r io.Reader) error {
	a.sources = append(a.sources, name)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		a.Feed(scanner.Text(), lineNum)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	a.logger.Debug("input consumed", zap.String("source", name), zap.Int("lines", lineNum))
	return nil
}

// ConsumeFile opens path (decompressing if needed) and consumes it
func (a *Analyzer) ConsumeFile(path string) error {
	rc, err := source.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := rc.Close(); err != nil {
			a.logger.Debug("failed to close input", zap.String("source", path), zap.Error(err))
		}
	}()
	return a.Consume(path, rc)
}

// Counters returns the tallies collected so far
func (a *Analyzer) Counters() domain.Counters {
	return a.counters
}

// Skipped returns how many failed-login lines lacked a timestamp or address
func (a *Analyzer) Skipped() int64 {
	return a.skipped
}

// Report sorts the collected events, detects bursts and ranks the results
func (a *Analyzer) Report(ctx context.Context) (*domain.Report, error) {
	start := a.clock.Now()

	detector := burst.NewDetector(a.cfg, a.workers)
	offenders, err := detector.DetectAll(ctx, a.events)
	if err != nil {
		return nil, err
	}
	burst.RankOffenders(offenders)

	report := domain.NewReport(a.cfg)
	report.RunID = uuid.NewString()
	report.GeneratedAt = start
	report.Sources = append([]string{}, a.sources...)
	report.Counters = a.counters
	report.TopAddresses = burst.TopByTotal(a.events)
	report.Offenders = offenders

	a.logger.Debug("analysis complete",
		zap.Int("addresses", a.events.Len()),
		zap.Int("offenders", len(offenders)),
		zap.Int64("skipped", a.skipped),
		zap.Duration("elapsed", a.clock.Since(start)))

	return report, nil
}
