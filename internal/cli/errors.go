package cli

import (
	"fmt"

	"github.com/vburojevic/authscan/internal/output"
)

// outputErrorCommon normalizes error emission across commands, respecting
// ndjson vs text formats so scripts always get machine-readable failures.
func outputErrorCommon(globals *Globals, cerr *CLIError) error {
	if globals != nil && globals.Format == "ndjson" {
		if err := output.NewNDJSONWriter(globals.Stdout).WriteError(cerr.Code, cerr.Message, cerr.Hint); err != nil {
			globals.Debug("failed to write error record: %v", err)
		}
	} else if globals != nil {
		if err := output.NewTextWriter(globals.Stderr, globals.Plain).WriteError(cerr.Code, cerr.Message, cerr.Hint); err != nil {
			globals.Debug("failed to write error: %v", err)
		}
	}
	return cerr
}

// ConfigError reports a configuration that failed to load or validate.
// It is fatal before any input is read.
func ConfigError(globals *Globals, err error) error {
	return outputErrorCommon(globals, usageError("INVALID_CONFIG",
		fmt.Sprintf("invalid configuration: %v", err),
		"fix the value in the config file or unset the AUTHSCAN_* variable", err))
}

func usageError(code, message, hint string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Hint: hint, ExitCode: ExitUsage, Err: err}
}

func inputError(code, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, ExitCode: ExitInput, Err: err}
}

func outputError(code, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, ExitCode: ExitOutput, Err: err}
}
