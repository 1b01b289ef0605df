package filesystem

import (
	"fmt"
	"strings"

	"github.com/jbdb/sql2json/pkg/sql2json"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Options controls how directories are expanded and how file content is decoded.
type Options struct {
	// Recursive descends into subdirectories when a directory is resolved.
	// The default lists only the directory's direct children.
	Recursive bool

	// Extensions are the file name suffixes picked up from directory
	// listings, compared case-insensitively. Blank entries are ignored and
	// an empty list means sql2json.DefaultExtensions. Explicit file paths
	// are never filtered.
	Extensions []string

	// Encoding is a WHATWG encoding label such as "latin1" or
	// "windows-1251". Empty means UTF-8.
	Encoding string
}

func (o Options) extensions() []string {
	var exts []string
	for _, ext := range o.Extensions {
		if ext = strings.TrimSpace(ext); ext != "" {
			exts = append(exts, ext)
		}
	}
	if len(exts) == 0 {
		return sql2json.DefaultExtensions
	}
	return exts
}

// matches reports whether a file name found in a directory listing should be scanned.
func (o Options) matches(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range o.extensions() {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// decoder resolves the configured encoding. A nil encoding means the
// content is read as UTF-8 without transformation.
func (o Options) decoder() (encoding.Encoding, error) {
	label := strings.ToLower(strings.TrimSpace(o.Encoding))
	if label == "" || label == "utf-8" || label == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", o.Encoding, sql2json.ErrInvalidConfig)
	}
	return enc, nil
}

var (
	_ sql2json.LineSource = (*OSLineSource)(nil)
	_ sql2json.LineSource = (*FSLineSource)(nil)
	_ sql2json.LineSource = (*MemoryFileSystem)(nil)
)
