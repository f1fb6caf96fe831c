package testutil

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// ZipBytes builds an in-memory zip archive from slash-separated paths.
// Entries are written in sorted order with their parent directories.
func ZipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	seenDirs := map[string]bool{}
	for _, name := range names {
		for dir := parentDir(name); dir != ""; dir = parentDir(dir) {
			if seenDirs[dir] {
				break
			}
			seenDirs[dir] = true
			_, err := w.Create(dir + "/")
			require.NoError(t, err)
		}
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// WriteZip writes a zip archive built by ZipBytes to path
func WriteZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, ZipBytes(t, files), 0644))
}

func parentDir(name string) string {
	dir := filepath.ToSlash(filepath.Dir(filepath.FromSlash(name)))
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}
