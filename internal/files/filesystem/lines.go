package filesystem

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/jbdb/sql2json/pkg/sql2json"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding"
)

const utf8BOM = "\ufeff"

// scanLines streams the lines of the file opened by open. The file is
// opened on first iteration and closed when iteration ends.
func scanLines(name string, open func() (io.ReadCloser, error), enc encoding.Encoding) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		file, err := open()
		if err != nil {
			yield("", fmt.Errorf("failed to open %s: %w", name, err))
			return
		}
		defer file.Close()

		r, release, err := decompress(name, file)
		if err != nil {
			yield("", fmt.Errorf("failed to decompress %s: %w", name, err))
			return
		}
		defer release()

		if enc != nil {
			r = enc.NewDecoder().Reader(r)
		}

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), sql2json.MaxLineSize)

		first := true
		for scanner.Scan() {
			line := scanner.Text()
			if first {
				line = strings.TrimPrefix(line, utf8BOM)
				first = false
			}
			if !yield(line, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield("", fmt.Errorf("failed to read %s: %w", name, err))
		}
	}
}

// decompress wraps r in a decompressor chosen by the file extension.
func decompress(name string, r io.Reader) (io.Reader, func(), error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, func() { zr.Close() }, nil
	case strings.HasSuffix(lower, ".zst"):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	default:
		return r, func() {}, nil
	}
}
