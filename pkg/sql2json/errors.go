package sql2json

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := s.ScanDirectories(paths)
//	if errors.Is(err, sql2json.ErrInvalidArgument) {
//	    // nothing to scan
//	}
var (
	// ErrServiceRequired indicates a scanner was constructed without a line source.
	ErrServiceRequired = errors.New("service for file handling is required")

	// ErrInvalidArgument indicates a structurally invalid argument, such as an empty path list.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidTableName indicates an empty or blank table name.
	ErrInvalidTableName = errors.New("table name may not be empty")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrScanFailed indicates a scan produced no data at all.
	ErrScanFailed = errors.New("scan failed")

	// ErrScanIncomplete indicates a scan finished with PARTIAL status in strict mode.
	ErrScanIncomplete = errors.New("scan incomplete")
)

// usageErrorPatterns are the cobra/pflag messages for command line misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"invalid argument",
	"flag needs an argument",
	"missing required argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrScanFailed):
		return ExitScanFailed
	case errors.Is(err, ErrScanIncomplete):
		return ExitScanIncomplete
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrServiceRequired):
		return ExitUsageError
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
