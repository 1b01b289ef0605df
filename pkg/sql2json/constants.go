package sql2json

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // Scan completed successfully
	ExitGeneralError   = 1  // Unknown or unclassified error
	ExitUsageError     = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitConfigError    = 10 // Invalid configuration
	ExitScanFailed     = 13 // No input produced any data
	ExitScanIncomplete = 15 // Partial result in strict mode
)

const (
	// MaxErrorPreviewLength is the maximum number of characters of a
	// statement quoted in a malformed-statement error.
	MaxErrorPreviewLength = 200

	// MaxLineSize is the largest physical line a line source will read.
	// Extended inserts put entire tables on a single line.
	MaxLineSize = 64 * 1024 * 1024

	// ConfigFileName is the project configuration file looked up by the CLI.
	ConfigFileName = "sql2json.yaml"
)

// DefaultExtensions are the file name suffixes picked up when a directory is scanned.
var DefaultExtensions = []string{".sql", ".sql.gz", ".sql.zst"}
