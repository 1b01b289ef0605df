package statement

import (
	"fmt"
	"iter"
	"strings"
)

// Chunk is the text of one logical statement.
type Chunk struct {
	Text string
	Line int // 1-based physical line the statement starts on
}

// ReadError reports a failure of the underlying line sequence.
type ReadError struct {
	Line int // line that could not be read
	Err  error
}

func (e *ReadError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *ReadError) Unwrap() error { return e.Err }

// Reassemble groups lines into statement chunks.
//
// A chunk ends at a semicolon outside quoted literals and comments once
// parentheses are balanced. Several statements on one line yield several
// chunks. Lines holding only whitespace or comments are dropped unless a
// statement is in progress. At end of input a pending chunk is emitted
// as-is, balanced or not. A read error is yielded as *ReadError and ends
// the sequence; the pending chunk is discarded.
func Reassemble(lines iter.Seq2[string, error]) iter.Seq2[Chunk, error] {
	return func(yield func(Chunk, error) bool) {
		var r reassembler
		n := 0
		for line, err := range lines {
			if err != nil {
				yield(Chunk{}, &ReadError{Line: n + 1, Err: err})
				return
			}
			n++
			for _, chunk := range r.feed(line, n) {
				if !yield(chunk, nil) {
					return
				}
			}
		}
		if chunk, ok := r.flush(); ok {
			yield(chunk, nil)
		}
	}
}

type reassembler struct {
	buf       strings.Builder
	startLine int
	depth     int
	quote     byte // open quote character, 0 outside literals
	escaped   bool
	inBlock   bool // inside /* ... */
	content   bool // the pending chunk holds something other than whitespace and comments
}

// feed consumes one physical line and returns the chunks it completes.
func (r *reassembler) feed(line string, n int) []Chunk {
	var done []Chunk
	segStart := 0

scan:
	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case r.inBlock:
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				r.inBlock = false
				i++
			}

		case r.quote != 0:
			switch {
			case r.escaped:
				r.escaped = false
			case c == '\\' && r.quote != '`':
				r.escaped = true
			case c == r.quote:
				r.quote = 0
			}

		case c == '\'' || c == '"' || c == '`':
			r.quote = c
			r.mark(n)

		case c == '-' && isLineComment(line, i):
			break scan

		case c == '#':
			break scan

		case c == '/' && i+1 < len(line) && line[i+1] == '*':
			r.inBlock = true
			i++

		case c == '(':
			r.depth++
			r.mark(n)

		case c == ')':
			r.depth--
			r.mark(n)

		case c == ';':
			if r.depth > 0 {
				r.mark(n)
				continue
			}
			r.append(line[segStart : i+1])
			if r.content {
				done = append(done, Chunk{Text: strings.TrimSpace(r.buf.String()), Line: r.startLine})
			}
			r.reset()
			segStart = i + 1

		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':

		default:
			r.mark(n)
		}
	}

	r.append(line[segStart:])
	r.escaped = false
	if !r.content && !r.inBlock && r.quote == 0 {
		r.reset()
	}
	return done
}

// isLineComment reports whether a "--" comment starts at i. As in MySQL the
// dashes must be followed by whitespace or the end of the line. A newline
// counts as the end of the line when s spans several physical lines.
func isLineComment(s string, i int) bool {
	if i+1 >= len(s) || s[i+1] != '-' {
		return false
	}
	if i+2 == len(s) {
		return true
	}
	next := s[i+2]
	return next == ' ' || next == '\t' || next == '\r' || next == '\n'
}

// mark records significant content on line n.
func (r *reassembler) mark(n int) {
	if !r.content {
		r.content = true
		r.startLine = n
	}
}

// append adds a line segment to the pending chunk, separating physical lines with newlines.
func (r *reassembler) append(segment string) {
	if r.buf.Len() > 0 {
		r.buf.WriteByte('\n')
	}
	r.buf.WriteString(segment)
}

func (r *reassembler) reset() {
	r.buf.Reset()
	r.startLine = 0
	r.depth = 0
	r.quote = 0
	r.escaped = false
	r.inBlock = false
	r.content = false
}

// flush returns the pending chunk at end of input.
func (r *reassembler) flush() (Chunk, bool) {
	defer r.reset()
	text := strings.TrimSpace(r.buf.String())
	if !r.content || text == "" {
		return Chunk{}, false
	}
	return Chunk{Text: text, Line: r.startLine}, true
}
