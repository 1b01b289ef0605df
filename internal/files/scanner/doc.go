// Package scanner turns SQL dump files into insert data grouped by table.
//
// A Scanner resolves each input path through a sql2json.LineSource, streams
// the lines of every resolved file through the statement reassembler and
// parser, and merges the resulting INSERT statements in an aggregator.
// Problems with individual inputs, statements or rows are recorded in the
// returned sql2json.ScanResult; only an unusable path list is returned as
// an error.
//
// The scanner is filesystem-agnostic: the OS, any fs.FS (such as a zip
// archive) or the in-memory filesystem used in tests can serve as source.
package scanner
