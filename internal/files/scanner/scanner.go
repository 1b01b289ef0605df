package scanner

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jbdb/sql2json/internal/aggregate"
	"github.com/jbdb/sql2json/internal/checksum"
	"github.com/jbdb/sql2json/internal/logging"
	"github.com/jbdb/sql2json/internal/statement"
	"github.com/jbdb/sql2json/pkg/sql2json"
)

// nullEntryCause is recorded for input entries without a usable name.
const nullEntryCause = "filename may not be null"

// Scanner scans dump files read through a sql2json.LineSource.
// A Scanner holds no per-scan state; each ScanDirectories call uses its own
// aggregator, so a Scanner may be reused as long as its source allows it.
type Scanner struct {
	source        sql2json.LineSource
	logger        sql2json.Logger
	previewLength int
	parser        *statement.Parser
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger receiving per-file and per-error diagnostics.
func WithLogger(logger sql2json.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithErrorPreviewLength sets how many characters of a malformed statement
// are quoted in its error.
func WithErrorPreviewLength(n int) Option {
	return func(s *Scanner) {
		s.previewLength = n
	}
}

// NewScanner creates a scanner reading from source.
// Returns sql2json.ErrServiceRequired if source is nil.
func NewScanner(source sql2json.LineSource, opts ...Option) (*Scanner, error) {
	if source == nil {
		return nil, sql2json.ErrServiceRequired
	}

	s := &Scanner{
		source:        source,
		logger:        logging.NewNullLogger(),
		previewLength: sql2json.MaxErrorPreviewLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.parser = statement.NewParser(s.previewLength)
	return s, nil
}

// ScanDirectories scans every path in order and returns the merged result.
//
// Returns an error wrapping sql2json.ErrInvalidArgument if paths is nil or
// empty. Blank entries, unresolvable paths, read failures, malformed
// statements and rejected rows are recorded in the result instead.
func (s *Scanner) ScanDirectories(paths []string) (sql2json.ScanResult, error) {
	if len(paths) == 0 {
		return sql2json.ScanResult{}, fmt.Errorf("at least one path is required: %w", sql2json.ErrInvalidArgument)
	}

	id := uuid.New()
	agg := aggregate.New()
	s.logger.Verbose("Scan %s: %d input path(s)", id, len(paths))

	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			s.record(agg, sql2json.ScanError{Cause: nullEntryCause})
			continue
		}

		files, err := s.source.Resolve(p)
		if err != nil {
			s.record(agg, sql2json.ScanError{Path: p, Cause: err.Error()})
			continue
		}
		if len(files) == 0 {
			s.logger.Verbose("No dump files in %s", p)
		}

		for _, f := range files {
			summary := s.scanFile(agg, f)
			agg.AddSource(summary)
			s.logger.Verbose("Scanned %s: %d lines, %d statements, %d skipped, %d rows",
				summary.Path, summary.Lines, summary.Statements, summary.Skipped, summary.Rows)
		}
	}

	result := agg.Result(id)
	s.logger.Verbose("Scan %s finished: %s, %d table(s), %d error(s)",
		id, result.Status, len(result.Tables), len(result.Errors))
	return result, nil
}

// scanFile streams one resolved file into agg.
func (s *Scanner) scanFile(agg *aggregate.Aggregator, path string) sql2json.SourceSummary {
	summary := sql2json.SourceSummary{Path: path, Complete: true}
	hasher := checksum.New()

	for chunk, err := range statement.Reassemble(checksum.Tee(s.source.Lines(path), hasher)) {
		if err != nil {
			s.record(agg, readError(path, err))
			summary.Complete = false
			break
		}

		switch out := s.parser.Parse(chunk).(type) {
		case statement.Skip:
			summary.Skipped++

		case statement.Malformed:
			summary.Statements++
			s.record(agg, sql2json.ScanError{Path: path, Line: out.Line, Cause: out.Message()})

		case statement.Parsed:
			summary.Statements++
			for _, re := range out.RowErrors {
				s.record(agg, sql2json.ScanError{
					Path:  path,
					Line:  re.Line,
					Cause: fmt.Sprintf("table %s, tuple %d: %s", out.Statement.Table, re.Index, re.Cause),
				})
			}
			if n := invalidUTF8(&out.Statement); n > 0 {
				s.logger.Info("Warning: %s:%d: %d value(s) of %s are not valid UTF-8 and are exported with U+FFFD; set an input encoding to decode them",
					path, out.Line, n, out.Statement.Table)
			}
			if agg.Merge(path, out.Line, out.Statement) {
				summary.Rows += len(out.Statement.Rows)
			} else {
				s.logger.Verbose("Dropped %d row(s) of %s at %s:%d",
					len(out.Statement.Rows), out.Statement.Table, path, out.Line)
			}
		}
	}

	summary.Lines = hasher.Lines()
	summary.Checksum = hasher.Sum()
	return summary
}

// invalidUTF8 counts the values of stmt that are not valid UTF-8.
func invalidUTF8(stmt *sql2json.InsertStatement) int {
	n := 0
	for _, tuple := range stmt.Rows {
		for _, v := range tuple {
			if !utf8.ValidString(v.Text) {
				n++
			}
		}
	}
	return n
}

// readError converts a failure reported while reading path.
func readError(path string, err error) sql2json.ScanError {
	var re *statement.ReadError
	if errors.As(err, &re) {
		return sql2json.ScanError{Path: path, Line: re.Line, Cause: re.Err.Error()}
	}
	return sql2json.ScanError{Path: path, Cause: err.Error()}
}

func (s *Scanner) record(agg *aggregate.Aggregator, e sql2json.ScanError) {
	agg.RecordError(e)
	s.logger.Verbose("Recorded error: %s", e)
}

// Verify Scanner implements the interface at compile time
var _ sql2json.DumpScanner = (*Scanner)(nil)
