package filesystem

import (
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, seq iter.Seq2[string, error]) ([]string, error) {
	t.Helper()
	var lines []string
	for line, err := range seq {
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func TestMemoryFileSystem_ResolveFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/dumps", Options{})
	mfs.AddFile("shop.sql", "SELECT 1;")

	files, err := mfs.Resolve("shop.sql")
	require.NoError(t, err)
	require.Equal(t, []string{"/dumps/shop.sql"}, files)

	files, err = mfs.Resolve("/dumps/shop.sql")
	require.NoError(t, err)
	require.Equal(t, []string{"/dumps/shop.sql"}, files)
}

func TestMemoryFileSystem_ResolveDirectory(t *testing.T) {
	mfs := NewMemoryFileSystem("/dumps", Options{})
	mfs.AddFile("b.sql", "")
	mfs.AddFile("a.sql", "")
	mfs.AddFile("notes.txt", "")
	mfs.AddFile("nested/c.sql", "")

	files, err := mfs.Resolve("/dumps")
	require.NoError(t, err)
	assert.Equal(t, []string{"/dumps/a.sql", "/dumps/b.sql"}, files)

	recursive := NewMemoryFileSystem("/dumps", Options{Recursive: true})
	recursive.AddFile("a.sql", "")
	recursive.AddFile("nested/c.sql", "")

	files, err = recursive.Resolve(".")
	require.NoError(t, err)
	assert.Equal(t, []string{"/dumps/a.sql", "/dumps/nested/c.sql"}, files)
}

func TestMemoryFileSystem_ResolveNotFound(t *testing.T) {
	mfs := NewMemoryFileSystem("/dumps", Options{})

	_, err := mfs.Resolve("/elsewhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path not found")
}

func TestMemoryFileSystem_FailResolve(t *testing.T) {
	mfs := NewMemoryFileSystem("/dumps", Options{})
	mfs.AddFile("a.sql", "")
	boom := errors.New("permission denied")
	mfs.FailResolve("a.sql", boom)

	_, err := mfs.Resolve("/dumps/a.sql")
	require.ErrorIs(t, err, boom)
}

func TestMemoryFileSystem_Lines(t *testing.T) {
	mfs := NewMemoryFileSystem("/dumps", Options{})
	mfs.AddLines("a.sql", "INSERT INTO t (a) VALUES ", "(1);")

	lines, err := collect(t, mfs.Lines("a.sql"))
	require.NoError(t, err)
	assert.Equal(t, []string{"INSERT INTO t (a) VALUES ", "(1);"}, lines)
	assert.Zero(t, mfs.OpenHandles())
}

func TestMemoryFileSystem_LinesMissingFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/dumps", Options{})

	_, err := collect(t, mfs.Lines("missing.sql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestMemoryFileSystem_FailReadAfter(t *testing.T) {
	mfs := NewMemoryFileSystem("/dumps", Options{})
	mfs.AddLines("a.sql", "one", "two", "three")
	boom := errors.New("disk went away")
	mfs.FailReadAfter("a.sql", 2, boom)

	lines, err := collect(t, mfs.Lines("a.sql"))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"one", "two"}, lines)
	assert.Zero(t, mfs.OpenHandles(), "handle must be closed after a read error")
}

func TestMemoryFileSystem_EarlyBreakClosesHandle(t *testing.T) {
	mfs := NewMemoryFileSystem("/dumps", Options{})
	mfs.AddLines("a.sql", "one", "two", "three")

	for line, err := range mfs.Lines("a.sql") {
		require.NoError(t, err)
		if line == "one" {
			break
		}
	}
	assert.Zero(t, mfs.OpenHandles())
}
