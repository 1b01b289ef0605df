package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jbdb/sql2json/pkg/sql2json"
	"github.com/stretchr/testify/assert"
)

func summaryResult() sql2json.ScanResult {
	users := sql2json.MustTableName("users")
	return sql2json.ScanResult{
		ID: uuid.MustParse("123e4567-e89b-12d3-a456-426614174000"),
		Tables: map[sql2json.TableName]*sql2json.InsertStatement{
			users: {
				Table:   users,
				Columns: []string{"id", "name"},
				Rows:    []sql2json.ValueTuple{{{Text: "1"}, {Text: "a", Quoted: true}}},
			},
		},
		Order:   []sql2json.TableName{users},
		Errors:  []sql2json.ScanError{{Path: "a.sql", Line: 2, Cause: "bad row"}},
		Sources: []sql2json.SourceSummary{{Path: "a.sql", Lines: 5}, {Path: "b.sql", Lines: 7}},
		Status:  sql2json.StatusPartial,
	}
}

func TestRenderSummary_Plain(t *testing.T) {
	got := RenderSummary(summaryResult(), ModePlain)

	want := "Scan 123e4567-e89b-12d3-a456-426614174000 PARTIAL\n" +
		"  Files:  2 (12 lines)\n" +
		"  Tables: 1 (1 rows)\n" +
		"    • users: 1 rows, 2 columns\n" +
		"  Errors: 1\n" +
		"    ✗ a.sql:2: bad row\n"
	assert.Equal(t, want, got)
}

func TestRenderSummary_TruncatesErrors(t *testing.T) {
	result := summaryResult()
	result.Errors = nil
	for i := 0; i < MaxSummaryErrors+3; i++ {
		result.Errors = append(result.Errors, sql2json.ScanError{Cause: fmt.Sprintf("error %d", i)})
	}

	got := RenderSummary(result, ModePlain)
	assert.Contains(t, got, "error 9\n")
	assert.NotContains(t, got, "error 10\n")
	assert.Contains(t, got, "... and 3 more")
}

func TestRenderSummary_Styled(t *testing.T) {
	got := RenderSummary(summaryResult(), ModeStyled)

	for _, want := range []string{"123e4567-e89b-12d3-a456-426614174000", "PARTIAL", "users", "a.sql:2: bad row"} {
		assert.True(t, strings.Contains(got, want), "missing %q in %q", want, got)
	}
}
