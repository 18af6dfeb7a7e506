package mods

import (
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const (
	// LovelyDir is both the per-mod manifest directory and, at the top of
	// the mod directory, the home of logs, dumps and the blacklist.
	LovelyDir     = "lovely"
	ManifestFile  = "lovely.toml"
	IgnoreFile    = ".lovelyignore"
	BlacklistFile = "blacklist.txt"
)

// Mod is one installed mod.
type Mod struct {
	// Name is the directory or archive file name.
	Name string
	// Path is the location of the mod directory or archive on disk.
	Path string
	// Index is the mod's position in discovery order.
	Index int
	// Archive is true for zip mods.
	Archive bool
	// Manifests lists manifest files relative to the mod root, in load
	// order.
	Manifests []string

	fs     afero.Fs
	closer io.Closer
}

// ReadSource reads a file relative to the mod root. Paths cannot escape the
// root.
func (m *Mod) ReadSource(rel string) ([]byte, error) {
	return afero.ReadFile(m.fs, filepath.FromSlash(rel))
}

// Close releases the archive backing a zip mod.
func (m *Mod) Close() error {
	if m.closer == nil {
		return nil
	}
	return m.closer.Close()
}

// manifestPaths picks the manifest files out of every file path in a mod
// root: lovely.toml first, then any .toml below lovely/, ordered by
// lower-cased file name.
func manifestPaths(files []string) []string {
	var top bool
	var nested []string
	prefix := LovelyDir + "/"
	for _, f := range files {
		f = filepath.ToSlash(f)
		switch {
		case f == ManifestFile:
			top = true
		case strings.HasPrefix(f, prefix) && strings.HasSuffix(f, ".toml"):
			nested = append(nested, f)
		}
	}

	sort.SliceStable(nested, func(i, j int) bool {
		a := strings.ToLower(filepath.Base(nested[i]))
		b := strings.ToLower(filepath.Base(nested[j]))
		if a != b {
			return a < b
		}
		return nested[i] < nested[j]
	})

	var out []string
	if top {
		out = append(out, ManifestFile)
	}
	return append(out, nested...)
}
