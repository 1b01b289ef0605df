package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// writeJSON renders a document tree as JSON, keeping mapping order.
func writeJSON(w io.Writer, doc *yaml.Node, pretty bool) error {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, doc, pretty, 0); err != nil {
		return err
	}
	buf.WriteByte('\n')
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

func encodeJSON(buf *bytes.Buffer, n *yaml.Node, pretty bool, depth int) error {
	switch n.Kind {
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, pretty, depth+1)
			writeString(buf, n.Content[i].Value)
			buf.WriteByte(':')
			if pretty {
				buf.WriteByte(' ')
			}
			if err := encodeJSON(buf, n.Content[i+1], pretty, depth+1); err != nil {
				return err
			}
		}
		newline(buf, pretty, depth)
		buf.WriteByte('}')

	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, pretty, depth+1)
			if err := encodeJSON(buf, item, pretty, depth+1); err != nil {
				return err
			}
		}
		newline(buf, pretty, depth)
		buf.WriteByte(']')

	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			buf.WriteString("null")
		case "!!bool", "!!int", "!!float":
			buf.WriteString(n.Value)
		default:
			writeString(buf, n.Value)
		}

	default:
		return fmt.Errorf("unexpected node kind %d in document", n.Kind)
	}
	return nil
}

func newline(buf *bytes.Buffer, pretty bool, depth int) {
	if !pretty {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat("  ", depth))
}

// writeString appends s as a JSON string without HTML escaping.
func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
}
