package statement

import (
	"strings"
)

// stripComments blanks out comments outside quoted literals. Newlines are
// kept so offsets can still be mapped to physical lines.
func stripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var quote byte
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\' && quote != '`':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}

		switch {
		case c == '\'' || c == '"' || c == '`':
			quote = c
			b.WriteByte(c)

		case (c == '-' && isLineComment(s, i)) || c == '#':
			for i < len(s) && s[i] != '\n' {
				b.WriteByte(' ')
				i++
			}
			if i < len(s) {
				b.WriteByte('\n')
			}

		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			b.WriteString("  ")
			i += 2
			for i < len(s) && !(s[i] == '*' && i+1 < len(s) && s[i+1] == '/') {
				if s[i] == '\n' {
					b.WriteByte('\n')
				} else {
					b.WriteByte(' ')
				}
				i++
			}
			if i < len(s) {
				b.WriteString("  ")
				i++
			}

		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// cursor walks a comment-free statement.
type cursor struct {
	s   string
	pos int
}

func (c *cursor) eof() bool { return c.pos >= len(c.s) }

func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.s[c.pos]
}

func (c *cursor) skipSpace() {
	for !c.eof() && isSpace(c.s[c.pos]) {
		c.pos++
	}
}

// word reads a keyword made of letters and underscores.
func (c *cursor) word() string {
	start := c.pos
	for !c.eof() && isWordByte(c.s[c.pos]) {
		c.pos++
	}
	return c.s[start:c.pos]
}

// identifier reads a possibly quoted, possibly dotted name such as
// `shop`.`orders` and returns it without quotes.
func (c *cursor) identifier() (string, bool) {
	var parts []string
	for {
		var part string
		switch q := c.peek(); q {
		case '`', '"':
			end, ok := closingQuote(c.s, c.pos)
			if !ok {
				return "", false
			}
			part = unquoteIdentifier(c.s[c.pos : end+1])
			c.pos = end + 1
		default:
			start := c.pos
			for !c.eof() {
				ch := c.s[c.pos]
				if isSpace(ch) || ch == '(' || ch == '.' || ch == ';' || ch == ',' || ch == ')' {
					break
				}
				c.pos++
			}
			part = c.s[start:c.pos]
		}
		if part == "" {
			return "", false
		}
		parts = append(parts, part)
		if c.peek() != '.' {
			return strings.Join(parts, "."), true
		}
		c.pos++
	}
}

// group reads a parenthesised group starting at the cursor and returns its
// inner text. Parentheses inside quoted literals are ignored.
func (c *cursor) group() (string, bool) {
	if c.peek() != '(' {
		return "", false
	}
	start := c.pos + 1
	depth := 0
	for i := c.pos; i < len(c.s); i++ {
		switch ch := c.s[i]; ch {
		case '\'', '"', '`':
			end, ok := closingQuote(c.s, i)
			if !ok {
				return "", false
			}
			i = end
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				c.pos = i + 1
				return c.s[start:i], true
			}
		}
	}
	return "", false
}

// closingQuote returns the index of the quote closing the literal opened at
// s[open]. A doubled quote character is part of the literal; backslash
// escapes apply to single and double quotes.
func closingQuote(s string, open int) (int, bool) {
	q := s[open]
	for i := open + 1; i < len(s); i++ {
		switch {
		case s[i] == '\\' && q != '`':
			i++
		case s[i] == q:
			if i+1 < len(s) && s[i+1] == q {
				i++
				continue
			}
			return i, true
		}
	}
	return 0, false
}

// splitTopLevel splits s on commas outside quoted literals and nested parentheses.
func splitTopLevel(s string) ([]string, bool) {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'', '"', '`':
			end, ok := closingQuote(s, i)
			if !ok {
				return nil, false
			}
			i = end
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:]), true
}

// unquoteIdentifier strips backticks or double quotes around an identifier.
func unquoteIdentifier(s string) string {
	if len(s) >= 2 && (s[0] == '`' || s[0] == '"') && s[len(s)-1] == s[0] {
		q := string(s[0])
		return strings.ReplaceAll(s[1:len(s)-1], q+q, q)
	}
	return s
}

// unescapeLiteral decodes the body of a quoted MySQL string literal.
func unescapeLiteral(body string, quote byte) string {
	if !strings.ContainsAny(body, `\`+string(quote)) {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == quote && i+1 < len(body) && body[i+1] == quote:
			b.WriteByte(quote)
			i++
		case c == '\\' && i+1 < len(body):
			i++
			switch e := body[i]; e {
			case '0':
				b.WriteByte(0)
			case 'b':
				b.WriteByte('\b')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'Z':
				b.WriteByte(0x1a)
			case '%', '_':
				b.WriteByte('\\')
				b.WriteByte(e)
			default:
				b.WriteByte(e)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
