package engine

import (
	"fmt"

	"github.com/arthur-debert/lovely/pkg/dump"
	"github.com/arthur-debert/lovely/pkg/errors"
	"github.com/arthur-debert/lovely/pkg/manifest"
	"github.com/arthur-debert/lovely/pkg/patch"
)

// Report describes one Apply call.
type Report struct {
	Target string
	// Fired lists the rules that changed something, in application order.
	Fired    []string
	Warnings []string
	// Errors lists rules that failed and were skipped.
	Errors  []string
	Cached  bool
	Patched bool
	// Entries is the per rule detail written to dump sidecars.
	Entries []dump.Entry
	// dumpLua is true when some manifest with a fired rule allows dumps.
	dumpLua bool
}

func (r *Report) record(entry manifest.Entry, res patch.Result, err error) {
	desc := entry.Describe()
	de := dump.Entry{
		Kind:     string(entry.Rule.Kind()),
		Manifest: entry.Manifest.ID(),
		Rule:     entry.Rule.Describe(),
		Matches:  res.Matches,
		Warnings: res.Warnings,
	}

	for _, w := range res.Warnings {
		r.Warnings = append(r.Warnings, desc+": "+w)
	}
	if err != nil {
		de.Error = err.Error()
		r.Errors = append(r.Errors, fmt.Sprintf("%s: %v", desc, err))
	} else if res.Matches > 0 {
		r.Fired = append(r.Fired, desc)
		if entry.Manifest.DumpLua {
			r.dumpLua = true
		}
	}
	r.Entries = append(r.Entries, de)
}

func errNoSource(entry manifest.Entry) error {
	return errors.New(errors.ErrCopySource, "manifest has no mod to read sources from").
		WithDetail("manifest", entry.Manifest.ID())
}
