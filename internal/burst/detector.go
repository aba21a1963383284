package burst

import (
	"context"
	"runtime"

	"github.com/vburojevic/authscan/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Window is one qualifying burst within a single key's sequence
type Window struct {
	Start int64
	End   int64
	Count int
}

// Detect scans a sorted timestamp sequence and reports every window of at
// most windowSeconds holding threshold or more events.
//
// After each emission the left edge advances by one, so a run longer than
// threshold is reported as overlapping sub-windows rather than once.
func Detect(ts []int64, windowSeconds int64, threshold int) []Window {
	if len(ts) == 0 || windowSeconds < 0 {
		return nil
	}

	var out []Window
	l := 0
	for r := range ts {
		for ts[r]-ts[l] > windowSeconds {
			l++
		}
		n := r - l + 1
		if n >= threshold {
			out = append(out, Window{Start: ts[l], End: ts[r], Count: n})
			l++
		}
	}
	return out
}

// Detector runs Detect over every key of a sorted EventLog
type Detector struct {
	cfg     domain.DetectionConfig
	workers int
}

// NewDetector creates a detector. workers <= 0 means GOMAXPROCS.
func NewDetector(cfg domain.DetectionConfig, workers int) *Detector {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Detector{cfg: cfg, workers: workers}
}

// DetectAll returns the offenders of every key, unranked.
//
// Keys are independent, so each one is scanned by its own task; results land
// in per-key slots and are flattened only after all tasks finish.
func (d *Detector) DetectAll(ctx context.Context, log *EventLog) ([]domain.Offender, error) {
	log.Sort()
	keys := log.Keys()
	slots := make([][]domain.Offender, len(keys))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for i, key := range keys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			windows := Detect(log.Timestamps(key), d.cfg.WindowSeconds, d.cfg.Threshold)
			if len(windows) == 0 {
				return nil
			}
			found := make([]domain.Offender, len(windows))
			for j, w := range windows {
				found[j] = domain.Offender{Key: key, WindowStart: w.Start, WindowEnd: w.End, Count: w.Count}
			}
			slots[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var n int
	for _, s := range slots {
		n += len(s)
	}
	offenders := make([]domain.Offender, 0, n)
	for _, s := range slots {
		offenders = append(offenders, s...)
	}
	return offenders, nil
}
