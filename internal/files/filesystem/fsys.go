package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"iter"
	"path"
	"strings"

	"golang.org/x/text/encoding"
)

// FSLineSource reads dump files from an fs.FS such as a zip archive,
// an embed.FS or a testing/fstest.MapFS.
// Paths are slash-separated; a leading "/" or "./" is ignored.
type FSLineSource struct {
	fsys fs.FS
	opts Options
	enc  encoding.Encoding
}

// NewFSLineSource creates a line source over fsys.
func NewFSLineSource(fsys fs.FS, opts Options) (*FSLineSource, error) {
	if fsys == nil {
		return nil, fmt.Errorf("filesystem cannot be nil")
	}
	enc, err := opts.decoder()
	if err != nil {
		return nil, err
	}
	return &FSLineSource{fsys: fsys, opts: opts, enc: enc}, nil
}

// fsPath converts a user supplied path into the unrooted form fs.FS expects.
func fsPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		return "."
	}
	return p
}

func (s *FSLineSource) Resolve(p string) ([]string, error) {
	name := fsPath(p)
	info, err := fs.Stat(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return []string{name}, nil
	}

	var files []string
	err = fs.WalkDir(s.fsys, name, func(filePath string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if filePath != name && !s.opts.Recursive {
				return fs.SkipDir
			}
			return nil
		}
		if s.opts.matches(d.Name()) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	return files, nil
}

func (s *FSLineSource) Lines(p string) iter.Seq2[string, error] {
	name := fsPath(p)
	return scanLines(name, func() (io.ReadCloser, error) {
		return s.fsys.Open(name)
	}, s.enc)
}
