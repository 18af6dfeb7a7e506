package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// ModTree is an in-memory mod directory.
type ModTree struct {
	FS  afero.Fs
	Dir string
}

// NewModTree creates an empty mod directory at /game/Mods on a fresh
// MemMapFs.
func NewModTree(t *testing.T) *ModTree {
	t.Helper()

	fs := afero.NewMemMapFs()
	dir := filepath.Join("/game", "Mods")
	require.NoError(t, fs.MkdirAll(dir, 0755))
	return &ModTree{FS: fs, Dir: dir}
}

// AddFile writes content to rel, relative to the mod directory, creating
// parent directories as needed. It returns the full path.
func (mt *ModTree) AddFile(t *testing.T, rel, content string) string {
	t.Helper()

	path := filepath.Join(mt.Dir, filepath.FromSlash(rel))
	require.NoError(t, mt.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(mt.FS, path, []byte(content), 0644))
	return path
}

// AddMod creates a mod directory holding files, keyed by path relative to
// the mod root.
func (mt *ModTree) AddMod(t *testing.T, name string, files map[string]string) string {
	t.Helper()

	dir := filepath.Join(mt.Dir, name)
	require.NoError(t, mt.FS.MkdirAll(dir, 0755))
	for rel, content := range files {
		mt.AddFile(t, filepath.Join(name, rel), content)
	}
	return dir
}

// AddArchive writes a zip mod built from files.
func (mt *ModTree) AddArchive(t *testing.T, name string, files map[string]string) string {
	t.Helper()
	return mt.AddFile(t, name, string(BuildZip(t, files)))
}

// ReadFile returns the content at rel, relative to the mod directory.
func (mt *ModTree) ReadFile(t *testing.T, rel string) string {
	t.Helper()

	data, err := afero.ReadFile(mt.FS, filepath.Join(mt.Dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

// Exists reports whether rel exists under the mod directory.
func (mt *ModTree) Exists(rel string) bool {
	ok, _ := afero.Exists(mt.FS, filepath.Join(mt.Dir, filepath.FromSlash(rel)))
	return ok
}
