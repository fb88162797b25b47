// Package errors provides error handling conventions for the cdflint CLI.
//
// This package defines sentinel errors for common failure conditions,
// an ExitError type for CLI exit code handling, and exit code constants.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [errors.Is]:
//
//	if errors.Is(err, cdferrors.ErrUnknownRule) {
//	    // handle unknown rule filter
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): validation passed, nothing at or above the threshold
//   - ExitUser (1): user-related error (bad flags, unknown rules, bad config)
//   - ExitSystem (2): system-related error (I/O, permissions)
//   - ExitFindings (3): validation ran and reportable diagnostics remain
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports error unwrapping via [errors.Unwrap] and
// [errors.As]:
//
//	var exitErr *cdferrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
