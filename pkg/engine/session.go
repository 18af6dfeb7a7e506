package engine

import (
	"bytes"
	"strings"
	"sync"

	"github.com/arthur-debert/lovely/pkg/dump"
	"github.com/arthur-debert/lovely/pkg/errors"
	"github.com/arthur-debert/lovely/pkg/internal/hashutil"
	"github.com/arthur-debert/lovely/pkg/logging"
	"github.com/arthur-debert/lovely/pkg/manifest"
	"github.com/arthur-debert/lovely/pkg/patch"
	"github.com/arthur-debert/lovely/pkg/registry"
)

// Session applies patches on behalf of one host runtime. Module rules are
// registered with the host at most once per session.
type Session struct {
	engine  *Engine
	host    Host
	modules registry.Registry[bool]
	eager   sync.Once
}

// NewSession binds the engine to host. host may be nil when no module rules
// need registering, as in offline patching.
func (e *Engine) NewSession(host Host) *Session {
	return &Session{
		engine:  e,
		host:    host,
		modules: registry.New[bool](),
	}
}

// Apply returns the buffer the host should compile in place of raw. target
// is the host's chunk name; a leading '@' is ignored. Buffers no rule
// targets come back untouched.
func (s *Session) Apply(target string, raw []byte) ([]byte, *Report) {
	s.eager.Do(func() {
		for _, entry := range s.engine.reg.EagerModules() {
			s.registerModule(entry, nil)
		}
	})
	return s.apply(target, raw)
}

func (s *Session) apply(target string, raw []byte) ([]byte, *Report) {
	name := strings.TrimPrefix(target, "@")
	report := &Report{Target: name}
	logger := logging.GetLogger("engine").With().Str("target", name).Logger()

	// Modules must be loadable before their target compiles.
	for _, entry := range s.engine.reg.ModulesBefore(name) {
		s.registerModule(entry, report)
	}

	entries := s.engine.reg.Patches(name)
	opts := s.engine.opts
	if len(entries) == 0 && !opts.DumpAll {
		logger.Trace().
			Int("size", len(raw)).
			Strs("rules", report.Fired).
			Bool("cached", false).
			Bool("patched", false).
			Msg("Buffer passed through")
		return raw, report
	}

	fp := hashutil.Fingerprint(name, raw)
	if hit, err := s.engine.cache.Get(fp); err == nil {
		report.Cached = true
		report.Patched = hit.report.Patched
		report.Fired = append(report.Fired, hit.report.Fired...)
		report.Warnings = append(report.Warnings, hit.report.Warnings...)
		logger.Debug().
			Strs("rules", report.Fired).
			Bool("cached", true).
			Bool("patched", report.Patched).
			Msg("Patched buffer served from cache")
		return bytes.Clone(hit.out), report
	}

	input := string(raw)
	output := s.engine.fold(entries, input, report)
	report.Patched = output != input
	if report.Patched && opts.Integrity {
		output = integrityHeader(output)
	}

	// The record owns its bytes so callers may reuse both the buffer they
	// passed in and the one they get back. A concurrent Apply may have got
	// there first; its result is the one every caller sees.
	actual, _ := s.engine.cache.LoadOrRegister(fp, &cached{out: []byte(output), report: *report})
	out := bytes.Clone(actual.out)

	if opts.Sink != nil && (opts.DumpAll || (report.Patched && report.dumpLua)) {
		dumpReport := dump.Report{BufferName: target, Entries: report.Entries}
		if err := opts.Sink.Write(target, out, dumpReport); err != nil {
			logger.Error().Err(err).Msg("Failed to dump patched buffer")
		}
	}

	for _, msg := range report.Errors {
		logger.Error().Str("rule", msg).Msg("Patch failed, skipping it")
	}
	logger.Info().
		Strs("rules", report.Fired).
		Strs("warnings", report.Warnings).
		Bool("cached", false).
		Bool("patched", report.Patched).
		Int("size", len(out)).
		Msg("Applied patches")
	return out, report
}

// registerModule hands a module rule's source to the host, patching it
// first under its chunk name so other mods can target it.
func (s *Session) registerModule(entry manifest.Entry, report *Report) {
	rule := entry.Rule.(*patch.ModuleRule)
	if _, loaded := s.modules.LoadOrRegister(rule.Name, true); loaded {
		return
	}

	logger := logging.GetLogger("engine").With().
		Str("module", rule.Name).
		Str("manifest", entry.Manifest.ID()).
		Logger()

	err := s.loadModule(entry, rule)
	if report != nil {
		report.record(entry, patch.Result{Matches: 1}, err)
	}
	if err != nil {
		logger.Error().Err(err).Msg("Failed to register module")
		return
	}
	logger.Debug().Bool("loadNow", rule.LoadNow).Msg("Module registered")
}

func (s *Session) loadModule(entry manifest.Entry, rule *patch.ModuleRule) error {
	if s.host == nil {
		return errors.New(errors.ErrModuleRegister, "no host to register modules with").
			WithDetail("module", rule.Name)
	}
	if entry.Manifest.Source == nil {
		return errors.New(errors.ErrModuleSource, "manifest has no mod to read sources from").
			WithDetail("module", rule.Name)
	}

	src, err := entry.Manifest.Source.ReadSource(rule.Source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrModuleSource, "failed to read module source %s", rule.Source).
			WithDetail("module", rule.Name)
	}

	chunk := rule.ChunkName()
	patched, _ := s.apply(chunk, src)
	if err := s.host.PreloadModule(rule.Name, chunk, patched, rule.LoadNow); err != nil {
		return errors.Wrap(err, errors.ErrModuleRegister, "host rejected module").
			WithDetail("module", rule.Name)
	}
	return nil
}
