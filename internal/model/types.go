// Package model defines the domain types for the cmpenv CLI.
//
// The types here are deliberately small: the CLI wraps a handful of
// delegated commands, so the domain reduces to exit codes, an error type
// that carries them, and the results of environment health checks.
package model

import (
	"fmt"
	"strings"
)

// ExitCode defines the CLI process exit codes.
//
// The install-style commands (setup, install-blpapi) always fail with
// ExitGeneralError regardless of what the delegated installer returned.
// The run-style commands (fetch, tunnel) propagate the delegated script's
// own exit status verbatim, expressed as ExitCode(n).
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError is the fixed failure code: missing virtual
	// environment, missing manifest or script, or a failed install.
	ExitGeneralError ExitCode = 1
)

// CheckStatus represents the outcome of a single doctor check.
type CheckStatus string

const (
	// CheckPass indicates the probed component is present and usable.
	CheckPass CheckStatus = "pass"

	// CheckWarn indicates a non-fatal finding: the environment works,
	// but some workflow (e.g. the tunnel) needs operator attention first.
	CheckWarn CheckStatus = "warn"

	// CheckFail indicates a finding that blocks one of the core workflows.
	CheckFail CheckStatus = "fail"
)

// String returns the string representation of CheckStatus.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands.
func (s CheckStatus) String() string {
	return string(s)
}

// IsValid checks whether the CheckStatus value is one of the
// predefined valid states.
func (s CheckStatus) IsValid() bool {
	switch s {
	case CheckPass, CheckWarn, CheckFail:
		return true
	default:
		return false
	}
}

// ParseCheckStatus converts a string to a CheckStatus.
// Returns an error if the string does not match any valid status.
func ParseCheckStatus(s string) (CheckStatus, error) {
	status := CheckStatus(strings.ToLower(s))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid check status: %q (valid: pass, warn, fail)", s)
	}
	return status, nil
}

// CheckResult holds the outcome of one doctor probe.
type CheckResult struct {
	// Name identifies the probed component (e.g. "python", "venv",
	// "requirements", "tunnel-config", "blpapi").
	Name string `json:"name"`

	// Status is the probe outcome.
	Status CheckStatus `json:"status"`

	// Detail is a human-readable explanation, including the remedy
	// for warn/fail results.
	Detail string `json:"detail,omitempty"`
}

// String returns a single-line representation of the check result,
// suitable for the doctor command's text output.
func (c CheckResult) String() string {
	if c.Detail == "" {
		return fmt.Sprintf("[%s] %s", strings.ToUpper(c.Status.String()), c.Name)
	}
	return fmt.Sprintf("[%s] %s: %s", strings.ToUpper(c.Status.String()), c.Name, c.Detail)
}

// AnyFailed reports whether at least one check in the slice failed.
// Warnings do not count as failures: the doctor command exits 0 when
// the worst finding is a warning.
func AnyFailed(results []CheckResult) bool {
	for _, r := range results {
		if r.Status == CheckFail {
			return true
		}
	}
	return false
}

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
