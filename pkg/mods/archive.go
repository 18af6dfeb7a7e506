package mods

import (
	"archive/zip"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/lovely/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/afero/zipfs"
)

// loadArchive builds a Mod backed by a zip file. The archive stays open for
// the life of the Mod so copy and module sources can be read lazily.
func loadArchive(fs afero.Fs, archivePath string) (*Mod, error) {
	f, err := fs.Open(archivePath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestRead, "cannot open mod archive").
			WithDetail("path", archivePath)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, errors.ErrManifestRead, "cannot stat mod archive").
			WithDetail("path", archivePath)
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, errors.ErrManifestRead, "not a valid zip archive").
			WithDetail("path", archivePath)
	}

	names := make([]string, 0, len(zr.File))
	for _, zf := range zr.File {
		names = append(names, zf.Name)
	}
	root, ok := archiveRoot(names)
	if !ok {
		f.Close()
		return nil, errors.New(errors.ErrManifestRead, "no mod root found in archive").
			WithDetail("path", archivePath)
	}

	var files []string
	for _, name := range names {
		if strings.HasSuffix(name, "/") || !strings.HasPrefix(name, root) {
			continue
		}
		files = append(files, strings.TrimPrefix(name, root))
	}

	var modFs afero.Fs = zipfs.New(zr)
	if root != "" {
		modFs = afero.NewBasePathFs(modFs, "/"+strings.TrimSuffix(root, "/"))
	}

	return &Mod{
		Name:      filepath.Base(archivePath),
		Path:      archivePath,
		Archive:   true,
		Manifests: manifestPaths(files),
		fs:        modFs,
		closer:    f,
	}, nil
}

// archiveRoot finds the first directory in the archive, in entry order, that
// holds lovely.toml or a lovely/ directory. The result is "" for the archive
// top level and otherwise ends in '/'.
func archiveRoot(names []string) (string, bool) {
	for _, name := range names {
		dir := path.Dir(strings.TrimSuffix(name, "/"))
		parent := ""
		if dir != "." {
			parent = dir + "/"
		}
		manifest := parent + ManifestFile
		lovelyDir := parent + LovelyDir + "/"
		for _, n := range names {
			if n == manifest || strings.HasPrefix(n, lovelyDir) {
				return parent, true
			}
		}
	}
	return "", false
}
