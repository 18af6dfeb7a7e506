// Package dump writes patched buffers to disk so mod authors can see what
// the host actually compiled.
package dump

import (
	"encoding/json"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/lovely/pkg/errors"
	"github.com/arthur-debert/lovely/pkg/logging"
	"github.com/spf13/afero"
)

// MaxNameLength is the longest pretty name, in runes, that gets dumped.
const MaxNameLength = 100

// Entry describes one rule that fired on a dumped buffer.
type Entry struct {
	Kind     string   `json:"kind"`
	Manifest string   `json:"manifest"`
	Rule     string   `json:"rule"`
	Matches  int      `json:"matches"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Report is the JSON sidecar written next to each dumped buffer.
type Report struct {
	BufferName string  `json:"buffer_name"`
	Entries    []Entry `json:"entries"`
}

// Sink receives patched buffers.
type Sink interface {
	Write(name string, buf []byte, report Report) error
}

// Dir is a Sink writing one file per buffer under a dump directory. Existing
// files are never overwritten.
type Dir struct {
	fs   afero.Fs
	root string
	base afero.Fs
}

// NewDir returns a Sink rooted at root on fs.
func NewDir(fs afero.Fs, root string) *Dir {
	return &Dir{fs: fs, root: root, base: afero.NewBasePathFs(fs, root)}
}

// Root returns the dump directory.
func (d *Dir) Root() string {
	return d.root
}

// Clear removes everything from a previous run.
func (d *Dir) Clear() error {
	if err := d.fs.RemoveAll(d.root); err != nil {
		return errors.Wrap(err, errors.ErrSinkWrite, "failed to clear dump directory").
			WithDetail("path", d.root)
	}
	return nil
}

// Write stores buf under the pretty form of name, plus a .json sidecar.
// Names longer than MaxNameLength runes are skipped silently.
func (d *Dir) Write(name string, buf []byte, report Report) error {
	logger := logging.GetLogger("dump")

	pretty := PrettyName(name)
	if pretty == "" || utf8.RuneCountInString(pretty) > MaxNameLength {
		logger.Debug().Str("name", name).Msg("Buffer name unsuitable for dumping, skipping")
		return nil
	}
	rel := filepath.FromSlash(pretty)

	if exists, _ := afero.Exists(d.base, rel); exists {
		return nil
	}
	if err := d.base.MkdirAll(filepath.Dir(rel), 0755); err != nil {
		return errors.Wrap(err, errors.ErrSinkWrite, "failed to create dump directory").
			WithDetail("name", pretty)
	}
	if err := afero.WriteFile(d.base, rel, buf, 0644); err != nil {
		return errors.Wrap(err, errors.ErrSinkWrite, "failed to write dump").
			WithDetail("name", pretty)
	}

	sidecar := rel + ".json"
	if exists, _ := afero.Exists(d.base, sidecar); exists {
		return nil
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrSinkWrite, "failed to encode dump report").
			WithDetail("name", pretty)
	}
	if err := afero.WriteFile(d.base, sidecar, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrSinkWrite, "failed to write dump report").
			WithDetail("name", pretty)
	}

	logger.Trace().Str("name", pretty).Int("size", len(buf)).Msg("Buffer dumped")
	return nil
}

var chunkNameRe = regexp.MustCompile(`^=\[(\w+)(?: (\w+))? "([^"]+)"\]$`)

// PrettyName turns a chunk name into a relative dump path:
// `=[SMODS mod "file.lua"]` becomes SMODS/mod/file.lua and other names lose
// their '@' markers.
func PrettyName(name string) string {
	var p string
	if m := chunkNameRe.FindStringSubmatch(name); m != nil {
		p = path.Join(m[1], m[2], m[3])
	} else {
		p = strings.ReplaceAll(name, "@", "")
	}

	p = path.Clean("/" + filepath.ToSlash(p))
	p = strings.TrimPrefix(p, "/")
	if p == "." {
		return ""
	}
	return p
}
