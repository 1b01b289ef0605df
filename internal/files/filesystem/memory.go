package filesystem

import (
	"fmt"
	"io"
	"iter"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// memoryFile is one file held by MemoryFileSystem.
type memoryFile struct {
	content  string
	readErr  error // returned after failAfter complete lines have been read
	failLine int
}

// MemoryFileSystem implements sql2json.LineSource for in-memory testing.
// Failures can be injected per path for Resolve and for reading.
type MemoryFileSystem struct {
	mu          sync.Mutex
	root        string
	opts        Options
	files       map[string]*memoryFile // absolute path -> file
	resolveErrs map[string]error
	opened      int
	closed      int
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string, opts Options) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))
	return &MemoryFileSystem{
		root:        root,
		opts:        opts,
		files:       make(map[string]*memoryFile),
		resolveErrs: make(map[string]error),
	}
}

// abs maps p onto the virtual filesystem, relative paths being joined to the root.
func (mfs *MemoryFileSystem) abs(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.files[mfs.abs(filePath)] = &memoryFile{content: content}
}

// AddLines adds a file whose content is lines joined by newlines.
func (mfs *MemoryFileSystem) AddLines(filePath string, lines ...string) {
	mfs.AddFile(filePath, strings.Join(lines, "\n"))
}

// FailResolve makes Resolve return err for filePath.
func (mfs *MemoryFileSystem) FailResolve(filePath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.resolveErrs[mfs.abs(filePath)] = err
}

// FailReadAfter makes reading filePath fail with err once n lines have been read.
// The file must have been added first.
func (mfs *MemoryFileSystem) FailReadAfter(filePath string, n int, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	if f, ok := mfs.files[mfs.abs(filePath)]; ok {
		f.readErr = err
		f.failLine = n
	}
}

// OpenHandles returns the number of files opened by Lines and not yet closed.
func (mfs *MemoryFileSystem) OpenHandles() int {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	return mfs.opened - mfs.closed
}

// Resolve implements sql2json.LineSource.Resolve
func (mfs *MemoryFileSystem) Resolve(p string) ([]string, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.abs(p)
	if err, ok := mfs.resolveErrs[absPath]; ok {
		return nil, err
	}
	if _, ok := mfs.files[absPath]; ok {
		return []string{absPath}, nil
	}

	prefix := absPath + "/"
	if absPath == "/" {
		prefix = "/"
	}

	found := false
	var files []string
	for filePath := range mfs.files {
		if !strings.HasPrefix(filePath, prefix) {
			continue
		}
		found = true
		rest := strings.TrimPrefix(filePath, prefix)
		if strings.Contains(rest, "/") && !mfs.opts.Recursive {
			continue
		}
		if mfs.opts.matches(path.Base(filePath)) {
			files = append(files, filePath)
		}
	}
	if !found {
		return nil, fmt.Errorf("path not found: %s", p)
	}

	// Sort by path for deterministic order
	sort.Strings(files)
	return files, nil
}

// Lines implements sql2json.LineSource.Lines
func (mfs *MemoryFileSystem) Lines(p string) iter.Seq2[string, error] {
	absPath := mfs.abs(p)
	return scanLines(absPath, func() (io.ReadCloser, error) {
		mfs.mu.Lock()
		defer mfs.mu.Unlock()

		f, ok := mfs.files[absPath]
		if !ok {
			return nil, fmt.Errorf("file not found: %s", p)
		}
		mfs.opened++

		r := io.Reader(strings.NewReader(f.content))
		if f.readErr != nil {
			r = truncatedReader(f.content, f.failLine, f.readErr)
		}
		return &memoryHandle{Reader: r, fs: mfs}, nil
	}, nil)
}

// truncatedReader yields the first n lines of content and then fails with err.
func truncatedReader(content string, n int, err error) io.Reader {
	lines := strings.SplitAfter(content, "\n")
	if n > len(lines) {
		n = len(lines)
	}
	prefix := strings.Join(lines[:n], "")
	if prefix != "" && !strings.HasSuffix(prefix, "\n") {
		prefix += "\n"
	}
	return io.MultiReader(strings.NewReader(prefix), &errReader{err: err})
}

type errReader struct{ err error }

func (r *errReader) Read([]byte) (int, error) { return 0, r.err }

// memoryHandle counts closes so tests can verify that handles are released.
type memoryHandle struct {
	io.Reader
	fs   *MemoryFileSystem
	once sync.Once
}

func (h *memoryHandle) Close() error {
	h.once.Do(func() {
		h.fs.mu.Lock()
		h.fs.closed++
		h.fs.mu.Unlock()
	})
	return nil
}
