package logline

import (
	"errors"
	"regexp"
	"time"

	"github.com/vburojevic/authscan/internal/domain"
)

var (
	// ErrNotFailedLogin is returned by Parse for lines without a failed-login marker
	ErrNotFailedLogin = errors.New("not a failed login line")
	// ErrNoTimestamp means the line lacks a valid "[YYYY-MM-DD HH:MM:SS" prefix
	ErrNoTimestamp = errors.New("missing or malformed timestamp prefix")
	// ErrNoAddress means no "from <dotted-quad>" was found
	ErrNoAddress = errors.New("missing source address")
)

// fromAddrRegex captures the first dotted quad following "from" and whitespace.
var fromAddrRegex = regexp.MustCompile(`(?i)from\s+(\d{1,3}(?:\.\d{1,3}){3})`)

// timestampPrefixLen is "[" plus "YYYY-MM-DD HH:MM:SS" plus the closing byte.
const timestampPrefixLen = 21

// Parse classifies a line and, for failed-login lines, extracts the failure
// event. err is nil exactly when the event is valid.
func Parse(line string) (Signal, domain.FailureEvent, error) {
	sig := Classify(line)
	if !sig.FailedLogin {
		return sig, domain.FailureEvent{}, ErrNotFailedLogin
	}
	ev, err := extract(line, time.Local)
	return sig, ev, err
}

// Extract returns the failure event carried by a line, if any
func Extract(line string) (domain.FailureEvent, bool) {
	_, ev, err := Parse(line)
	return ev, err == nil
}

func extract(line string, loc *time.Location) (domain.FailureEvent, error) {
	key, ok := ExtractKey(line)
	if !ok {
		return domain.FailureEvent{}, ErrNoAddress
	}
	ts, err := ParseTimestampIn(line, loc)
	if err != nil {
		return domain.FailureEvent{}, err
	}
	return domain.FailureEvent{Key: key, Timestamp: ts}, nil
}

// ExtractKey returns the first "from <a.b.c.d>" address in the line
func ExtractKey(line string) (string, bool) {
	m := fromAddrRegex.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseTimestamp reads the leading "[YYYY-MM-DD HH:MM:SS" prefix as local time
// and returns seconds since the Unix epoch.
func ParseTimestamp(line string) (int64, error) {
	return ParseTimestampIn(line, time.Local)
}

// ParseTimestampIn is ParseTimestamp with an explicit location.
//
// Fields are fixed-width decimal digits at fixed offsets. Out-of-range
// calendar values are rejected instead of normalized.
func ParseTimestampIn(line string, loc *time.Location) (int64, error) {
	if len(line) < timestampPrefixLen || line[0] != '[' {
		return 0, ErrNoTimestamp
	}
	s := line[1:20]
	if s[4] != '-' || s[7] != '-' || s[10] != ' ' || s[13] != ':' || s[16] != ':' {
		return 0, ErrNoTimestamp
	}

	var fields [6]int
	offsets := [6][2]int{{0, 4}, {5, 7}, {8, 10}, {11, 13}, {14, 16}, {17, 19}}
	for i, o := range offsets {
		n, ok := atoiFixed(s[o[0]:o[1]])
		if !ok {
			return 0, ErrNoTimestamp
		}
		fields[i] = n
	}

	year, month, day := fields[0], fields[1], fields[2]
	hour, minute, sec := fields[3], fields[4], fields[5]
	if month < 1 || month > 12 || day < 1 || day > daysIn(year, time.Month(month)) {
		return 0, ErrNoTimestamp
	}
	if hour > 23 || minute > 59 || sec > 59 {
		return 0, ErrNoTimestamp
	}

	return time.Date(year, time.Month(month), day, hour, minute, sec, 0, loc).Unix(), nil
}

func atoiFixed(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
