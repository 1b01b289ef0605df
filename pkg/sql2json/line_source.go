package sql2json

import "iter"

// LineSource gives the scanner access to dump files.
// Implementations must release any file handle once iteration of Lines
// ends, whether it ran to completion, stopped early or hit an error.
type LineSource interface {
	// Resolve expands a path into the files it denotes: the path itself for
	// a regular file, the contained dump files for a directory.
	Resolve(path string) ([]string, error)

	// Lines returns a lazy sequence of the file's lines without trailing
	// newlines. I/O errors are reported at iteration time; iteration stops
	// after the first error.
	Lines(path string) iter.Seq2[string, error]
}

// DumpScanner scans SQL dump files into insert data grouped by table.
type DumpScanner interface {
	// ScanDirectories scans every path in order. It returns an error only
	// for a nil or empty path list; all other failures are recorded in the
	// result.
	ScanDirectories(paths []string) (ScanResult, error)
}
