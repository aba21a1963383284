// Package logline turns raw log lines into counter signals and failure events.
package logline

import "strings"

// Signal is what a single line contributes to the run counters
type Signal struct {
	Warn        bool
	Error       bool
	FailedLogin bool
}

// Classify inspects one line case-insensitively. It never fails: a line that
// matches nothing yields the zero Signal.
//
// A level matches either as a space-delimited token anywhere (" warn ") or as
// the level field of a bracketed prefix ("[...] warn "). The two checks are
// independent and both are evaluated.
func Classify(line string) Signal {
	lower := asciiLower(line)
	bracketed := strings.HasPrefix(lower, "[")

	return Signal{
		Warn:        hasLevel(lower, bracketed, "warn"),
		Error:       hasLevel(lower, bracketed, "error"),
		FailedLogin: strings.Contains(lower, "failed login"),
	}
}

func hasLevel(lower string, bracketed bool, level string) bool {
	if strings.Contains(lower, " "+level+" ") {
		return true
	}
	return bracketed && strings.Contains(lower, "] "+level+" ")
}

// asciiLower folds A-Z only, so byte offsets stay aligned with the input.
func asciiLower(s string) string {
	i := 0
	for ; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			break
		}
	}
	if i == len(s) {
		return s
	}

	b := []byte(s)
	for ; i < len(b); i++ {
		if c := b[i]; c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
