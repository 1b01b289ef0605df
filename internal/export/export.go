package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jbdb/sql2json/pkg/sql2json"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name, case-insensitively. "yml" is
// accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected json or yaml): %w", s, sql2json.ErrInvalidConfig)
	}
}

// Options controls rendering.
type Options struct {
	Format Format
	// Pretty indents JSON output. YAML is always written in block style.
	Pretty bool
}

// Write renders result to w.
func Write(w io.Writer, result sql2json.ScanResult, opts Options) error {
	doc := Document(result)

	switch opts.Format {
	case FormatJSON, "":
		return writeJSON(w, doc, opts.Pretty)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q: %w", opts.Format, sql2json.ErrInvalidConfig)
	}
}

// Document builds the ordered document tree for result.
func Document(result sql2json.ScanResult) *yaml.Node {
	doc := mapping()
	put(doc, "scan_id", str(result.ID.String()))
	put(doc, "status", str(result.Status.String()))

	tables := mapping()
	for _, name := range result.Order {
		stmt, ok := result.Tables[name]
		if !ok {
			continue
		}
		put(tables, name.String(), table(stmt))
	}
	put(doc, "tables", tables)

	errs := sequence()
	for _, e := range result.Errors {
		entry := mapping()
		if e.Path != "" {
			put(entry, "path", str(e.Path))
		}
		if e.Line > 0 {
			put(entry, "line", integer(e.Line))
		}
		put(entry, "cause", str(e.Cause))
		errs.Content = append(errs.Content, entry)
	}
	put(doc, "errors", errs)

	sources := sequence()
	for _, s := range result.Sources {
		entry := mapping()
		put(entry, "path", str(s.Path))
		put(entry, "lines", integer(s.Lines))
		put(entry, "statements", integer(s.Statements))
		put(entry, "skipped", integer(s.Skipped))
		put(entry, "rows", integer(s.Rows))
		put(entry, "checksum", str(s.Checksum))
		put(entry, "complete", boolean(s.Complete))
		sources.Content = append(sources.Content, entry)
	}
	put(doc, "sources", sources)

	return doc
}

func table(stmt *sql2json.InsertStatement) *yaml.Node {
	columns := sequence()
	for _, c := range stmt.Columns {
		columns.Content = append(columns.Content, str(c))
	}

	rows := sequence()
	for _, tuple := range stmt.Rows {
		row := mapping()
		for i, v := range tuple {
			if i < len(stmt.Columns) {
				put(row, stmt.Columns[i], ValueNode(v))
			}
		}
		rows.Content = append(rows.Content, row)
	}

	t := mapping()
	put(t, "columns", columns)
	put(t, "rows", rows)
	return t
}

// ValueNode types a SQL value as a scalar node.
func ValueNode(v sql2json.Value) *yaml.Node {
	if v.Quoted {
		return str(v.Text)
	}
	switch upper := strings.ToUpper(v.Text); {
	case upper == "NULL":
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case upper == "TRUE" || upper == "FALSE":
		return boolean(upper == "TRUE")
	}
	if tag, ok := numberTag(v.Text); ok {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.Text}
	}
	return str(v.Text)
}

// numberTag reports whether s is a number that JSON can carry verbatim
// and whether it is an integer or a float.
func numberTag(s string) (string, bool) {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		i = digits(s, i)
	default:
		return "", false
	}

	tag := "!!int"
	if i < len(s) && s[i] == '.' {
		j := digits(s, i+1)
		if j == i+1 {
			return "", false
		}
		i, tag = j, "!!float"
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		j := digits(s, i)
		if j == i {
			return "", false
		}
		i, tag = j, "!!float"
	}
	if i != len(s) {
		return "", false
	}
	return tag, true
}

func digits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func mapping() *yaml.Node  { return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"} }
func sequence() *yaml.Node { return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"} }

// str builds a string scalar. Invalid UTF-8 is replaced with U+FFFD so
// JSON and YAML carry the same text.
func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: strings.ToValidUTF8(s, "\uFFFD")}
}

func integer(n int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(n)}
}

func boolean(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}

func put(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, str(key), value)
}
