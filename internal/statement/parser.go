package statement

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jbdb/sql2json/pkg/sql2json"
)

// Outcome is the classification of one chunk: Skip, Malformed or Parsed.
type Outcome interface {
	outcome()
}

// Skip is a chunk that is not an INSERT statement.
type Skip struct {
	Line    int
	Keyword string // first keyword, empty for chunks without one
}

// Malformed is an INSERT chunk that does not have the supported shape.
type Malformed struct {
	Line    int
	Reason  string
	Excerpt string // the chunk on one line, truncated
}

func (m Malformed) Message() string {
	return fmt.Sprintf("malformed statement: %s: %s", m.Reason, m.Excerpt)
}

// Parsed is an INSERT statement. Rows that failed validation are left out
// of Statement and reported in RowErrors.
type Parsed struct {
	Line      int
	Statement sql2json.InsertStatement
	RowErrors []RowError
}

// RowError is a rejected VALUES tuple.
type RowError struct {
	Index int // 1-based position of the tuple in the statement
	Line  int
	Cause string
}

func (Skip) outcome()      {}
func (Malformed) outcome() {}
func (Parsed) outcome()    {}

// insertModifiers may appear between INSERT and INTO.
var insertModifiers = map[string]bool{
	"LOW_PRIORITY":  true,
	"DELAYED":       true,
	"HIGH_PRIORITY": true,
	"IGNORE":        true,
}

// Parser extracts insert data from statement chunks.
// Parser has no mutable state and is safe for concurrent use.
type Parser struct {
	previewLength int
}

// NewParser creates a parser quoting at most previewLength characters of a
// chunk in Malformed excerpts. Non-positive values select
// sql2json.MaxErrorPreviewLength.
func NewParser(previewLength int) *Parser {
	if previewLength <= 0 {
		previewLength = sql2json.MaxErrorPreviewLength
	}
	return &Parser{previewLength: previewLength}
}

// Parse classifies chunk.
func (p *Parser) Parse(chunk Chunk) Outcome {
	c := &cursor{s: stripComments(chunk.Text)}
	c.skipSpace()

	keyword := c.word()
	if !strings.EqualFold(keyword, "INSERT") {
		return Skip{Line: chunk.Line, Keyword: strings.ToUpper(keyword)}
	}

	malformed := func(format string, args ...interface{}) Outcome {
		return Malformed{
			Line:    chunk.Line,
			Reason:  fmt.Sprintf(format, args...),
			Excerpt: p.excerpt(chunk.Text),
		}
	}

	for {
		c.skipSpace()
		w := strings.ToUpper(c.word())
		if w == "INTO" {
			break
		}
		if !insertModifiers[w] {
			return malformed("expected INTO after INSERT")
		}
	}

	c.skipSpace()
	name, ok := c.identifier()
	if !ok {
		return malformed("missing table name")
	}
	table, err := sql2json.NewTableName(name)
	if err != nil {
		return malformed("missing table name")
	}

	c.skipSpace()
	if c.peek() != '(' {
		return malformed("missing column list for table %s", name)
	}
	body, ok := c.group()
	if !ok {
		return malformed("unterminated column list")
	}
	columns, reason := parseColumns(body)
	if reason != "" {
		return malformed("%s", reason)
	}

	c.skipSpace()
	if w := strings.ToUpper(c.word()); w != "VALUES" && w != "VALUE" {
		return malformed("expected VALUES after column list")
	}

	parsed := Parsed{
		Line: chunk.Line,
		Statement: sql2json.InsertStatement{
			Table:   table,
			Columns: columns,
			Rows:    []sql2json.ValueTuple{},
		},
	}

	for index := 1; ; index++ {
		c.skipSpace()
		start := c.pos
		if c.peek() != '(' {
			return malformed("expected value tuple %d", index)
		}
		body, ok := c.group()
		if !ok {
			return malformed("unterminated value tuple %d", index)
		}

		line := chunk.Line + strings.Count(c.s[:start], "\n")
		tuple, cause := parseTuple(body, len(columns))
		if cause != "" {
			parsed.RowErrors = append(parsed.RowErrors, RowError{Index: index, Line: line, Cause: cause})
		} else {
			parsed.Statement.Rows = append(parsed.Statement.Rows, tuple)
		}

		c.skipSpace()
		switch c.peek() {
		case ',':
			c.pos++
			continue
		case ';':
			c.pos++
			c.skipSpace()
			if !c.eof() {
				return malformed("unexpected content after statement")
			}
		case 0:
		default:
			return malformed("unexpected content after value tuple %d", index)
		}
		return parsed
	}
}

// parseColumns splits a column list. It returns a non-empty reason when the
// list is invalid.
func parseColumns(body string) ([]string, string) {
	parts, ok := splitTopLevel(body)
	if !ok {
		return nil, "unterminated quoted column name"
	}

	seen := make(map[string]bool, len(parts))
	columns := make([]string, 0, len(parts))
	for i, part := range parts {
		col := unquoteIdentifier(strings.TrimSpace(part))
		if col == "" {
			return nil, fmt.Sprintf("empty column name at position %d", i+1)
		}
		if seen[col] {
			return nil, fmt.Sprintf("duplicate column %q", col)
		}
		seen[col] = true
		columns = append(columns, col)
	}
	return columns, ""
}

// parseTuple splits the body of one VALUES group. It returns a non-empty
// cause when the tuple has to be rejected.
func parseTuple(body string, arity int) (sql2json.ValueTuple, string) {
	parts, ok := splitTopLevel(body)
	if !ok {
		return nil, "unterminated quoted value"
	}
	if len(parts) != arity {
		return nil, fmt.Sprintf("value count %d does not match column count %d", len(parts), arity)
	}

	tuple := make(sql2json.ValueTuple, len(parts))
	for i, part := range parts {
		v, ok := parseValue(part)
		if !ok {
			return nil, fmt.Sprintf("empty value at position %d", i+1)
		}
		tuple[i] = v
	}
	return tuple, ""
}

// parseValue interprets one raw value token. A token that is exactly one
// quoted literal, optionally preceded by a charset introducer such as
// _utf8mb4 or _binary, is unquoted and unescaped. Anything else is kept verbatim.
func parseValue(raw string) (sql2json.Value, bool) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return sql2json.Value{}, false
	}

	literal := token
	if token[0] == '_' {
		i := 1
		for i < len(token) && (isWordByte(token[i]) || (token[i] >= '0' && token[i] <= '9')) {
			i++
		}
		literal = strings.TrimLeft(token[i:], " \t\r\n")
	}

	if literal != "" && (literal[0] == '\'' || literal[0] == '"') {
		if end, ok := closingQuote(literal, 0); ok && end == len(literal)-1 {
			return sql2json.Value{
				Text:   unescapeLiteral(literal[1:end], literal[0]),
				Quoted: true,
			}, true
		}
	}

	return sql2json.Value{Text: token}, true
}

// excerpt renders text on a single line, truncated to the preview length.
func (p *Parser) excerpt(text string) string {
	flat := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(flat) <= p.previewLength {
		return flat
	}
	runes := []rune(flat)
	return string(runes[:p.previewLength]) + "..."
}
