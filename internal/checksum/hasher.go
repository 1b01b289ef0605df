package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"iter"
)

// LineHasher computes a SHA-256 checksum over a sequence of lines.
type LineHasher struct {
	h     hash.Hash
	lines int
}

// New creates an empty line hasher.
func New() *LineHasher {
	return &LineHasher{h: sha256.New()}
}

// Add hashes one line. line must not contain its line terminator.
func (l *LineHasher) Add(line string) {
	_, _ = io.WriteString(l.h, line)
	_, _ = l.h.Write([]byte{'\n'})
	l.lines++
}

// Lines returns the number of lines hashed so far.
func (l *LineHasher) Lines() int {
	return l.lines
}

// Sum returns the hex-encoded checksum of the lines hashed so far.
// More lines may be added afterwards.
func (l *LineHasher) Sum() string {
	return hex.EncodeToString(l.h.Sum(nil))
}

// Tee returns a sequence yielding the same elements as lines while adding
// every successfully read line to h. Errors are passed through unchanged.
func Tee(lines iter.Seq2[string, error], h *LineHasher) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for line, err := range lines {
			if err == nil {
				h.Add(line)
			}
			if !yield(line, err) {
				return
			}
		}
	}
}

// Lines hashes content split into lines, as a dump file would be read.
// It is a convenience for computing the expected checksum of known content.
func Lines(content ...string) string {
	h := New()
	for _, line := range content {
		h.Add(line)
	}
	return h.Sum()
}
