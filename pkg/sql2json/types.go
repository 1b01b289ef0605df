package sql2json

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// TableName identifies a table. It is case-sensitive and never empty.
// The zero value is not a valid name; use NewTableName.
type TableName struct {
	name string
}

// NewTableName wraps name. Empty or blank names are rejected.
func NewTableName(name string) (TableName, error) {
	if strings.TrimSpace(name) == "" {
		return TableName{}, ErrInvalidTableName
	}
	return TableName{name: name}, nil
}

// MustTableName is like NewTableName but panics on invalid input.
// Intended for tests and constants.
func MustTableName(name string) TableName {
	t, err := NewTableName(name)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TableName) String() string { return t.name }

// Compare orders table names by their underlying string.
func (t TableName) Compare(other TableName) int {
	return strings.Compare(t.name, other.name)
}

// Value is one element of a VALUES tuple.
// Quoted literals are stored unquoted and unescaped with Quoted set;
// everything else (numbers, NULL, function calls) is kept verbatim.
type Value struct {
	Text   string
	Quoted bool
}

// ValueTuple is one parenthesised row of a VALUES clause.
type ValueTuple []Value

// Strings returns the text of every value in order.
func (v ValueTuple) Strings() []string {
	out := make([]string, len(v))
	for i, val := range v {
		out[i] = val.Text
	}
	return out
}

// InsertStatement is the consolidated insert data of one table.
// Every row has exactly len(Columns) values.
type InsertStatement struct {
	Table   TableName
	Columns []string
	Rows    []ValueTuple
}

// Clone returns a deep copy of the statement.
func (s InsertStatement) Clone() InsertStatement {
	rows := make([]ValueTuple, len(s.Rows))
	for i, row := range s.Rows {
		rows[i] = slices.Clone(row)
	}
	return InsertStatement{
		Table:   s.Table,
		Columns: slices.Clone(s.Columns),
		Rows:    rows,
	}
}

// SameColumns reports whether both statements declare identical column lists.
func (s InsertStatement) SameColumns(other InsertStatement) bool {
	return slices.Equal(s.Columns, other.Columns)
}

// ScanError is a recoverable problem recorded during a scan.
type ScanError struct {
	Path  string // input entry or resolved file; empty for entries that had no usable name
	Line  int    // 1-based line, 0 when the error is not tied to a line
	Cause string
}

func (e ScanError) String() string {
	switch {
	case e.Path == "":
		return e.Cause
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Path, e.Cause)
	}
}

// SourceSummary describes one file that was read during a scan.
type SourceSummary struct {
	Path       string
	Lines      int
	Statements int
	Skipped    int
	Rows       int
	Checksum   string // SHA-256 of the lines read, hex encoded
	Complete   bool   // false when reading stopped on an I/O error
}

// ScanResultStatus is the final classification of a scan.
type ScanResultStatus int

const (
	StatusSuccess ScanResultStatus = iota
	StatusPartial
	StatusFailure
)

func (s ScanResultStatus) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusPartial:
		return "PARTIAL"
	case StatusFailure:
		return "FAILURE"
	default:
		return fmt.Sprintf("ScanResultStatus(%d)", int(s))
	}
}

// ClassifyStatus derives the status from the number of tables produced and
// errors recorded.
func ClassifyStatus(tables, errors int) ScanResultStatus {
	switch {
	case errors == 0 && tables > 0:
		return StatusSuccess
	case tables == 0 && errors > 0:
		return StatusFailure
	default:
		return StatusPartial
	}
}

// ScanResult is the outcome of one ScanDirectories call.
type ScanResult struct {
	ID      uuid.UUID
	Tables  map[TableName]*InsertStatement
	Order   []TableName // tables in the order they were first seen
	Errors  []ScanError
	Sources []SourceSummary
	Status  ScanResultStatus
}

// Table returns the consolidated statement for name, if any.
func (r ScanResult) Table(name string) (*InsertStatement, bool) {
	t, err := NewTableName(name)
	if err != nil {
		return nil, false
	}
	stmt, ok := r.Tables[t]
	return stmt, ok
}

// ErrorMessages renders every recorded error in encounter order.
func (r ScanResult) ErrorMessages() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.String()
	}
	return out
}

// RowCount returns the total number of rows across all tables.
func (r ScanResult) RowCount() int {
	n := 0
	for _, stmt := range r.Tables {
		n += len(stmt.Rows)
	}
	return n
}
