package engine

import (
	"github.com/arthur-debert/lovely/pkg/dump"
	"github.com/arthur-debert/lovely/pkg/internal/hashutil"
	"github.com/arthur-debert/lovely/pkg/manifest"
	"github.com/arthur-debert/lovely/pkg/patch"
	"github.com/arthur-debert/lovely/pkg/registry"
)

// Host is the scripting runtime the engine injects modules into.
type Host interface {
	// PreloadModule makes src require-able as name. With loadNow the source
	// is evaluated immediately and its result is what require returns.
	PreloadModule(name, chunkName string, src []byte, loadNow bool) error
}

// Options tune side effects of Apply. The zero value patches without
// dumping.
type Options struct {
	// Sink receives patched buffers; nil disables dumping.
	Sink dump.Sink
	// DumpAll dumps every buffer, patched or not.
	DumpAll bool
	// Integrity prefixes patched buffers with a LOVELY_INTEGRITY line.
	Integrity bool
}

// Engine folds registry rules over buffers. It is safe for concurrent use.
type Engine struct {
	reg   *manifest.Registry
	opts  Options
	cache registry.Registry[*cached]
}

type cached struct {
	out    []byte
	report Report
}

// New returns an Engine over a frozen registry.
func New(reg *manifest.Registry, opts Options) *Engine {
	return &Engine{
		reg:   reg,
		opts:  opts,
		cache: registry.New[*cached](),
	}
}

// Registry returns the rules the engine applies.
func (e *Engine) Registry() *manifest.Registry {
	return e.reg
}

// CacheSize is the number of distinct buffers patched so far.
func (e *Engine) CacheSize() int {
	return e.cache.Count()
}

// fold applies rules in order. A failing rule is recorded and skipped; the
// buffer it was given flows on to the next rule.
func (e *Engine) fold(entries []manifest.Entry, buf string, report *Report) string {
	for _, entry := range entries {
		var (
			res patch.Result
			err error
			out = buf
		)
		switch r := entry.Rule.(type) {
		case *patch.PatternRule:
			out, res = r.Apply(buf)
		case *patch.RegexRule:
			out, res, err = r.Apply(buf)
		case *patch.CopyRule:
			if entry.Manifest.Source == nil {
				err = errNoSource(entry)
				break
			}
			out, res, err = r.Apply(buf, entry.Manifest.Source)
		default:
			continue
		}

		report.record(entry, res, err)
		if err != nil {
			continue
		}
		buf = out
	}
	return buf
}

func integrityHeader(buf string) string {
	return "LOVELY_INTEGRITY = '" + hashutil.Sum([]byte(buf)) + "'\n\n" + buf
}
