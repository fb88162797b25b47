package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Exit codes for the cdflint CLI.
const (
	// ExitSuccess indicates the command completed successfully and no
	// reportable findings remain.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 2

	// ExitFindings indicates validation completed but diagnostics at or
	// above the configured minimum severity were found.
	ExitFindings = 3
)

// Sentinel errors for common failure conditions.
var (
	// ErrParse indicates the feed file was not well-formed XML.
	ErrParse = errors.New("feed could not be parsed")

	// ErrUnknownRule indicates a filter names a rule absent from the registry.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrUnknownRuleSet indicates an unrecognized rule set name.
	ErrUnknownRuleSet = errors.New("unknown rule set")

	// ErrInvalidSeverity indicates an unrecognized severity name.
	ErrInvalidSeverity = errors.New("invalid severity")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Re-exported helpers so call sites need a single errors import.
var (
	New    = errors.New
	Newf   = errors.Newf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// ExitError wraps an error with an exit code and optional suggestion for the
// CLI. It implements the error interface and supports unwrapping via
// errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewFindingsError creates an ExitError signalling that diagnostics at or
// above the configured severity threshold remain.
func NewFindingsError(count int) *ExitError {
	return &ExitError{
		Err:  errors.Newf("validation found %d reportable issue(s)", count),
		Code: ExitFindings,
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
