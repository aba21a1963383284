package burst

import (
	"cmp"
	"slices"

	"github.com/vburojevic/authscan/internal/domain"
)

// TopByTotal pairs every key with its event count, highest first, ties by key
func TopByTotal(log *EventLog) []domain.KeyTotal {
	totals := make([]domain.KeyTotal, 0, log.Len())
	for key, ts := range log.events {
		if len(ts) == 0 {
			continue
		}
		totals = append(totals, domain.KeyTotal{Key: key, Count: len(ts)})
	}

	slices.SortFunc(totals, func(a, b domain.KeyTotal) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return totals
}

// RankOffenders sorts in place by count, then most recent window end.
// Remaining ties fall back to key and window start so output is stable.
func RankOffenders(offenders []domain.Offender) {
	slices.SortFunc(offenders, compareOffenders)
}

func compareOffenders(a, b domain.Offender) int {
	if c := cmp.Compare(b.Count, a.Count); c != 0 {
		return c
	}
	if c := cmp.Compare(b.WindowEnd, a.WindowEnd); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Key, b.Key); c != 0 {
		return c
	}
	return cmp.Compare(a.WindowStart, b.WindowStart)
}
