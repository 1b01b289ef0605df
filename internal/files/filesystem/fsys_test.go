package filesystem

import (
	"archive/zip"
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFSLineSource_NilFS(t *testing.T) {
	_, err := NewFSLineSource(nil, Options{})
	require.Error(t, err)
}

func TestFSLineSource_Resolve(t *testing.T) {
	fsys := fstest.MapFS{
		"dumps/a.sql":        {Data: []byte("")},
		"dumps/b.txt":        {Data: []byte("")},
		"dumps/nested/c.sql": {Data: []byte("")},
	}

	flat, err := NewFSLineSource(fsys, Options{})
	require.NoError(t, err)

	files, err := flat.Resolve("/dumps")
	require.NoError(t, err)
	assert.Equal(t, []string{"dumps/a.sql"}, files)

	deep, err := NewFSLineSource(fsys, Options{Recursive: true})
	require.NoError(t, err)

	files, err = deep.Resolve(".")
	require.NoError(t, err)
	assert.Equal(t, []string{"dumps/a.sql", "dumps/nested/c.sql"}, files)

	files, err = deep.Resolve("./dumps/b.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"dumps/b.txt"}, files)

	_, err = deep.Resolve("missing")
	require.Error(t, err)
}

func TestFSLineSource_ZipArchive(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("export/users.sql")
	require.NoError(t, err)
	_, err = w.Write([]byte("INSERT INTO users (id) VALUES\n(1),\n(2);\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	src, err := NewFSLineSource(zr, Options{})
	require.NoError(t, err)

	files, err := src.Resolve("export")
	require.NoError(t, err)
	require.Equal(t, []string{"export/users.sql"}, files)

	lines, err := collect(t, src.Lines(files[0]))
	require.NoError(t, err)
	assert.Equal(t, []string{"INSERT INTO users (id) VALUES", "(1),", "(2);"}, lines)
}
