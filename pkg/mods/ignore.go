package mods

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/lovely/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// IgnoreChecker decides which entries of the mod directory are skipped.
type IgnoreChecker struct {
	logger    zerolog.Logger
	fs        afero.Fs
	blacklist map[string]struct{}
}

// NewIgnoreChecker loads <modDir>/lovely/blacklist.txt if it exists. The
// blacklist holds one mod name per line; blank lines and lines starting with
// '#' are skipped.
func NewIgnoreChecker(fs afero.Fs, modDir string) *IgnoreChecker {
	ic := &IgnoreChecker{
		logger:    logging.GetLogger("mods.ignore"),
		fs:        fs,
		blacklist: make(map[string]struct{}),
	}

	path := filepath.Join(modDir, LovelyDir, BlacklistFile)
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if !os.IsNotExist(err) {
			ic.logger.Warn().Err(err).Str("path", path).Msg("Could not read blacklist")
		} else {
			ic.logger.Debug().Msg("No blacklist.txt in mod directory")
		}
		return ic
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ic.blacklist[line] = struct{}{}
	}
	return ic
}

// Blacklisted reports whether name appears in the blacklist.
func (ic *IgnoreChecker) Blacklisted(name string) bool {
	_, ok := ic.blacklist[name]
	if ok {
		ic.logger.Info().Str("mod", name).Msg("Mod found in blacklist, skipping it")
	}
	return ok
}

// HasIgnoreFile reports whether dir contains a .lovelyignore file.
func (ic *IgnoreChecker) HasIgnoreFile(dir string) bool {
	info, err := ic.fs.Stat(filepath.Join(dir, IgnoreFile))
	if err != nil || info.IsDir() {
		return false
	}
	ic.logger.Info().
		Str("mod", filepath.Base(dir)).
		Msg("Found .lovelyignore, skipping mod")
	return true
}
