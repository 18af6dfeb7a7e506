package testutil

import (
	"archive/zip"
	"bytes"
	"path"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// BuildZip returns a zip archive holding files. Entries are written in
// sorted order, each preceded by explicit entries for its parent
// directories.
func BuildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	seen := make(map[string]bool)
	for _, name := range names {
		var dirs []string
		for dir := path.Dir(name); dir != "."; dir = path.Dir(dir) {
			dirs = append([]string{dir}, dirs...)
		}
		for _, dir := range dirs {
			if seen[dir] {
				continue
			}
			seen[dir] = true
			_, err := w.Create(strings.TrimSuffix(dir, "/") + "/")
			require.NoError(t, err)
		}

		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}
