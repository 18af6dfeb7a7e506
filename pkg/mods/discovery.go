package mods

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/lovely/pkg/errors"
	"github.com/arthur-debert/lovely/pkg/logging"
	"github.com/spf13/afero"
)

// Discover returns every usable mod under modDir: directories sorted by
// lower-cased name, followed by zip archives sorted the same way. A mod that
// cannot be opened is logged and skipped; only an unreadable modDir is an
// error.
func Discover(fs afero.Fs, modDir string) ([]*Mod, error) {
	logger := logging.GetLogger("mods.discovery")
	logger.Trace().Str("root", modDir).Msg("Discovering mods")

	info, err := fs.Stat(modDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrModDir, "mod directory does not exist").
				WithDetail("path", modDir)
		}
		return nil, errors.Wrap(err, errors.ErrModDir, "cannot access mod directory").
			WithDetail("path", modDir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrModDir, "mod directory is not a directory").
			WithDetail("path", modDir)
	}

	entries, err := afero.ReadDir(fs, modDir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrModDir, "cannot read mod directory").
			WithDetail("path", modDir)
	}

	ignore := NewIgnoreChecker(fs, modDir)
	var dirs, archives []string
	for _, entry := range entries {
		name := entry.Name()

		if strings.HasPrefix(name, ".") {
			logger.Trace().Str("name", name).Msg("Skipping hidden entry")
			continue
		}
		if entry.IsDir() && name == LovelyDir {
			continue
		}
		if ignore.Blacklisted(name) {
			continue
		}

		switch {
		case entry.IsDir():
			dirs = append(dirs, name)
		case strings.EqualFold(filepath.Ext(name), ".zip"):
			archives = append(archives, name)
		}
	}
	sortByLowerName(dirs)
	sortByLowerName(archives)

	var mods []*Mod
	for _, name := range dirs {
		path := filepath.Join(modDir, name)
		if ignore.HasIgnoreFile(path) {
			continue
		}
		mod, err := loadDir(fs, path)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Failed to load mod, skipping")
			continue
		}
		mods = append(mods, mod)
	}
	for _, name := range archives {
		path := filepath.Join(modDir, name)
		mod, err := loadArchive(fs, path)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Failed to load mod archive, skipping")
			continue
		}
		mods = append(mods, mod)
	}

	for i, mod := range mods {
		mod.Index = i
		logger.Trace().
			Str("name", mod.Name).
			Int("manifests", len(mod.Manifests)).
			Bool("archive", mod.Archive).
			Msg("Found mod")
	}

	logger.Debug().Int("count", len(mods)).Msg("Discovered mods")
	return mods, nil
}

// loadDir builds a Mod rooted at a directory.
func loadDir(fs afero.Fs, path string) (*Mod, error) {
	root := afero.NewBasePathFs(fs, path)

	var files []string
	if info, err := root.Stat(ManifestFile); err == nil && !info.IsDir() {
		files = append(files, ManifestFile)
	}
	if info, err := root.Stat(LovelyDir); err == nil && info.IsDir() {
		err := afero.Walk(root, LovelyDir, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestRead, "cannot list manifest directory").
				WithDetail("mod", filepath.Base(path))
		}
	}

	return &Mod{
		Name:      filepath.Base(path),
		Path:      path,
		Manifests: manifestPaths(files),
		fs:        root,
	}, nil
}

func sortByLowerName(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		a, b := strings.ToLower(names[i]), strings.ToLower(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
}
