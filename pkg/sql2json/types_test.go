package sql2json_test

import (
	"errors"
	"testing"

	"github.com/jbdb/sql2json/pkg/sql2json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "users", false},
		{"dotted", "shop.orders", false},
		{"mixed case preserved", "TestTable", false},
		{"empty", "", true},
		{"blank", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sql2json.NewTableName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, sql2json.ErrInvalidTableName))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestTableName_EqualityAndOrdering(t *testing.T) {
	a := sql2json.MustTableName("alpha")
	b := sql2json.MustTableName("beta")

	assert.Equal(t, a, sql2json.MustTableName("alpha"))
	assert.NotEqual(t, a, sql2json.MustTableName("Alpha"), "names are case-sensitive")
	assert.Negative(t, a.Compare(b))
	assert.Positive(t, b.Compare(a))
	assert.Zero(t, a.Compare(a))

	m := map[sql2json.TableName]int{a: 1}
	assert.Equal(t, 1, m[sql2json.MustTableName("alpha")])
}

func TestMustTableName_PanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { sql2json.MustTableName("") })
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name   string
		tables int
		errors int
		want   sql2json.ScanResultStatus
	}{
		{"data without errors", 2, 0, sql2json.StatusSuccess},
		{"errors without data", 0, 3, sql2json.StatusFailure},
		{"data and errors", 1, 1, sql2json.StatusPartial},
		{"nothing at all", 0, 0, sql2json.StatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sql2json.ClassifyStatus(tt.tables, tt.errors))
		})
	}
}

func TestScanResultStatus_String(t *testing.T) {
	assert.Equal(t, "SUCCESS", sql2json.StatusSuccess.String())
	assert.Equal(t, "PARTIAL", sql2json.StatusPartial.String())
	assert.Equal(t, "FAILURE", sql2json.StatusFailure.String())
	assert.Equal(t, "ScanResultStatus(9)", sql2json.ScanResultStatus(9).String())
}

func TestScanError_String(t *testing.T) {
	assert.Equal(t, "filename may not be null",
		sql2json.ScanError{Cause: "filename may not be null"}.String())
	assert.Equal(t, "/dumps: no such file",
		sql2json.ScanError{Path: "/dumps", Cause: "no such file"}.String())
	assert.Equal(t, "/dumps/a.sql:12: malformed statement",
		sql2json.ScanError{Path: "/dumps/a.sql", Line: 12, Cause: "malformed statement"}.String())
}

func TestInsertStatement_Clone(t *testing.T) {
	orig := sql2json.InsertStatement{
		Table:   sql2json.MustTableName("t"),
		Columns: []string{"a"},
		Rows:    []sql2json.ValueTuple{{{Text: "1"}}},
	}

	clone := orig.Clone()
	clone.Columns[0] = "changed"
	clone.Rows[0][0].Text = "changed"
	clone.Rows = append(clone.Rows, sql2json.ValueTuple{{Text: "2"}})

	assert.Equal(t, []string{"a"}, orig.Columns)
	assert.Equal(t, "1", orig.Rows[0][0].Text)
	assert.Len(t, orig.Rows, 1)
	assert.True(t, orig.SameColumns(sql2json.InsertStatement{Columns: []string{"a"}}))
	assert.False(t, orig.SameColumns(sql2json.InsertStatement{Columns: []string{"a", "b"}}))
}

func TestValueTuple_Strings(t *testing.T) {
	tuple := sql2json.ValueTuple{{Text: "1"}, {Text: "x,y", Quoted: true}}
	assert.Equal(t, []string{"1", "x,y"}, tuple.Strings())
}

func TestScanResult_Accessors(t *testing.T) {
	name := sql2json.MustTableName("users")
	result := sql2json.ScanResult{
		Tables: map[sql2json.TableName]*sql2json.InsertStatement{
			name: {Table: name, Columns: []string{"id"}, Rows: []sql2json.ValueTuple{{{Text: "1"}}, {{Text: "2"}}}},
		},
		Errors: []sql2json.ScanError{{Path: "a.sql", Line: 3, Cause: "boom"}},
	}

	stmt, ok := result.Table("users")
	require.True(t, ok)
	assert.Equal(t, []string{"id"}, stmt.Columns)

	_, ok = result.Table("")
	assert.False(t, ok)

	assert.Equal(t, 2, result.RowCount())
	assert.Equal(t, []string{"a.sql:3: boom"}, result.ErrorMessages())
}
