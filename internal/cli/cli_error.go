package cli

import "errors"

// Process exit statuses
const (
	ExitUsage  = 1
	ExitInput  = 2
	ExitOutput = 3
)

// CLIError is a structured error used for consistent NDJSON/text emission.
type CLIError struct {
	Code     string
	Message  string
	Hint     string
	ExitCode int
	Err      error
}

func (e *CLIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExitCodeFor maps a command error to the process status
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var cerr *CLIError
	if errors.As(err, &cerr) && cerr.ExitCode != 0 {
		return cerr.ExitCode
	}
	return ExitUsage
}
