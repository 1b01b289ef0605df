// Package aggregate merges parsed insert statements into one record per table.
package aggregate

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jbdb/sql2json/pkg/sql2json"
)

// Aggregator accumulates the tables, errors and sources of one scan.
// Safe for concurrent use by multiple goroutines.
type Aggregator struct {
	mu      sync.Mutex
	tables  map[sql2json.TableName]*sql2json.InsertStatement
	order   []sql2json.TableName
	errors  []sql2json.ScanError
	sources []sql2json.SourceSummary
}

// New creates an empty aggregator.
func New() *Aggregator {
	return &Aggregator{
		tables: make(map[sql2json.TableName]*sql2json.InsertStatement),
	}
}

// Merge adds stmt, read from path at line, to the accumulated data.
//
// The first statement for a table is stored as a copy. Later statements
// append their rows if their column list is identical; otherwise a column
// mismatch is recorded and their rows are dropped. Merge reports whether
// the rows were accepted.
func (a *Aggregator) Merge(path string, line int, stmt sql2json.InsertStatement) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	existing, ok := a.tables[stmt.Table]
	if !ok {
		clone := stmt.Clone()
		a.tables[stmt.Table] = &clone
		a.order = append(a.order, stmt.Table)
		return true
	}

	if !existing.SameColumns(stmt) {
		a.errors = append(a.errors, sql2json.ScanError{
			Path:  path,
			Line:  line,
			Cause: fmt.Sprintf("column mismatch for table %s: expected %v, got %v", stmt.Table, existing.Columns, stmt.Columns),
		})
		return false
	}

	existing.Rows = append(existing.Rows, stmt.Clone().Rows...)
	return true
}

// RecordError appends e to the error list. Identical errors are all kept.
func (a *Aggregator) RecordError(e sql2json.ScanError) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errors = append(a.errors, e)
}

// AddSource records the summary of one processed file.
func (a *Aggregator) AddSource(s sql2json.SourceSummary) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sources = append(a.sources, s)
}

// ErrorCount returns the number of errors recorded so far.
func (a *Aggregator) ErrorCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.errors)
}

// Result returns a snapshot of the accumulated data with its final status.
// The aggregator keeps no reference into the returned value.
func (a *Aggregator) Result(id uuid.UUID) sql2json.ScanResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	tables := make(map[sql2json.TableName]*sql2json.InsertStatement, len(a.tables))
	for name, stmt := range a.tables {
		clone := stmt.Clone()
		tables[name] = &clone
	}

	return sql2json.ScanResult{
		ID:      id,
		Tables:  tables,
		Order:   append([]sql2json.TableName(nil), a.order...),
		Errors:  append([]sql2json.ScanError(nil), a.errors...),
		Sources: append([]sql2json.SourceSummary(nil), a.sources...),
		Status:  sql2json.ClassifyStatus(len(tables), len(a.errors)),
	}
}
