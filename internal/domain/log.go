package domain

import "time"

// TimestampLayout is how event times are rendered in reports and exports
const TimestampLayout = "2006-01-02 15:04:05"

// FailureEvent is one failed-login line reduced to its source address and time
type FailureEvent struct {
	Key       string `json:"address"`
	Timestamp int64  `json:"timestamp"` // seconds since the Unix epoch
}

// Offender is one detected burst for an address
type Offender struct {
	Key         string `json:"address"`
	WindowStart int64  `json:"windowStart"`
	WindowEnd   int64  `json:"windowEnd"`
	Count       int    `json:"count"`
}

// FirstSeen returns the start of the burst window in local time
func (o Offender) FirstSeen() time.Time {
	return time.Unix(o.WindowStart, 0)
}

// LastSeen returns the end of the burst window in local time
func (o Offender) LastSeen() time.Time {
	return time.Unix(o.WindowEnd, 0)
}

// Span returns the width of the burst window
func (o Offender) Span() time.Duration {
	return time.Duration(o.WindowEnd-o.WindowStart) * time.Second
}

// KeyTotal pairs an address with its total number of failure events
type KeyTotal struct {
	Key   string `json:"address"`
	Count int    `json:"count"`
}

// FormatTimestamp renders unix seconds as a local "YYYY-MM-DD HH:MM:SS" string
func FormatTimestamp(sec int64) string {
	return time.Unix(sec, 0).Format(TimestampLayout)
}
