// Package burst finds failed-login bursts per source address.
//
// Events are collected per key in line order, sorted once, and then scanned
// with a two-pointer sliding window (see Detect). Ranking helpers order the
// per-key totals and the detected offenders deterministically.
package burst

import (
	"slices"

	"github.com/vburojevic/authscan/internal/domain"
)

// EventLog maps each key to its failure timestamps.
//
// Add is only valid before Sort. After Sort every sequence is non-decreasing
// and the log is read-only.
type EventLog struct {
	events map[string][]int64
	total  int
	sorted bool
}

// NewEventLog creates an empty event log
func NewEventLog() *EventLog {
	return &EventLog{events: make(map[string][]int64)}
}

// Add appends one event in arrival order
func (l *EventLog) Add(ev domain.FailureEvent) {
	l.events[ev.Key] = append(l.events[ev.Key], ev.Timestamp)
	l.total++
	l.sorted = false
}

// Sort orders every key's timestamps ascending. Sorting twice is a no-op.
func (l *EventLog) Sort() {
	if l.sorted {
		return
	}
	for _, ts := range l.events {
		slices.Sort(ts)
	}
	l.sorted = true
}

// Sorted reports whether Sort has run since the last Add
func (l *EventLog) Sorted() bool {
	return l.sorted
}

// Keys returns all keys in ascending order
func (l *EventLog) Keys() []string {
	keys := make([]string, 0, len(l.events))
	for k := range l.events {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Timestamps returns the sequence stored for key. Callers must not modify it.
func (l *EventLog) Timestamps(key string) []int64 {
	return l.events[key]
}

// Len returns the number of distinct keys
func (l *EventLog) Len() int {
	return len(l.events)
}

// Total returns the number of events across all keys
func (l *EventLog) Total() int {
	return l.total
}
