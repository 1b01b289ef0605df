package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding"
)

// OSLineSource reads dump files from the OS filesystem.
type OSLineSource struct {
	opts Options
	enc  encoding.Encoding
}

// NewOSLineSource creates a line source for the OS filesystem.
// Returns an error if opts names an unknown encoding.
func NewOSLineSource(opts Options) (*OSLineSource, error) {
	enc, err := opts.decoder()
	if err != nil {
		return nil, err
	}
	return &OSLineSource{opts: opts, enc: enc}, nil
}

// Resolve returns path itself for a regular file and the matching files
// below it for a directory, in lexical order.
func (s *OSLineSource) Resolve(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	if !s.opts.Recursive {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory: %w", err)
		}
		var files []string
		for _, entry := range entries {
			if entry.IsDir() || !s.opts.matches(entry.Name()) {
				continue
			}
			files = append(files, filepath.Join(path, entry.Name()))
		}
		return files, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !s.opts.matches(d.Name()) {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	return files, nil
}

// Lines streams the lines of the file at path.
func (s *OSLineSource) Lines(path string) iter.Seq2[string, error] {
	return scanLines(path, func() (io.ReadCloser, error) {
		return os.Open(path)
	}, s.enc)
}
