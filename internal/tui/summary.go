package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jbdb/sql2json/pkg/sql2json"
)

// MaxSummaryErrors is the number of errors listed in a summary.
const MaxSummaryErrors = 10

// RenderSummary describes result for a human reader. Styled output uses
// colors and symbols; plain output is stable text suitable for logs.
func RenderSummary(result sql2json.ScanResult, mode Mode) string {
	styled := mode == ModeStyled
	render := func(style lipgloss.Style, s string) string {
		if !styled {
			return s
		}
		return style.Render(s)
	}

	var b strings.Builder

	status := result.Status.String()
	switch result.Status {
	case sql2json.StatusSuccess:
		status = render(SuccessStyle, status)
	case sql2json.StatusFailure:
		status = render(ErrorStyle, status)
	default:
		status = render(WarningStyle, status)
	}
	fmt.Fprintf(&b, "%s %s\n", render(TitleStyle, "Scan "+result.ID.String()), status)

	lines := 0
	for _, s := range result.Sources {
		lines += s.Lines
	}
	label := func(s string) string {
		if !styled {
			return fmt.Sprintf("%-8s", s)
		}
		return LabelStyle.Render(s)
	}
	fmt.Fprintf(&b, "  %s%d (%d lines)\n", label("Files:"), len(result.Sources), lines)
	fmt.Fprintf(&b, "  %s%d (%d rows)\n", label("Tables:"), len(result.Tables), result.RowCount())

	for _, name := range result.Order {
		stmt, ok := result.Tables[name]
		if !ok {
			continue
		}
		bullet := render(MutedStyle, SymbolBullet)
		fmt.Fprintf(&b, "    %s %s: %d rows, %d columns\n", bullet, name, len(stmt.Rows), len(stmt.Columns))
	}

	fmt.Fprintf(&b, "  %s%d\n", label("Errors:"), len(result.Errors))
	for i, e := range result.Errors {
		if i == MaxSummaryErrors {
			fmt.Fprintf(&b, "    %s\n", render(MutedStyle, fmt.Sprintf("... and %d more", len(result.Errors)-MaxSummaryErrors)))
			break
		}
		fmt.Fprintf(&b, "    %s %s\n", render(ErrorStyle, SymbolCross), e)
	}

	return b.String()
}
