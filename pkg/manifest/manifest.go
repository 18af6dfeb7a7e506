package manifest

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/lovely/pkg/errors"
	"github.com/arthur-debert/lovely/pkg/logging"
	"github.com/arthur-debert/lovely/pkg/patch"
	"github.com/arthur-debert/lovely/pkg/vars"
	toml "github.com/pelletier/go-toml/v2"
)

// Manifest is one parsed manifest file. It is immutable once built.
type Manifest struct {
	// Mod is the name of the owning mod; File is the manifest path relative
	// to the mod root.
	Mod  string
	File string
	// Index is the manifest's position in global discovery order and breaks
	// priority ties.
	Index    int
	Priority int
	Version  string
	// DumpLua is false when the author opted out of dumps for the targets
	// this manifest patches.
	DumpLua bool
	Vars    vars.Table
	Rules   []patch.Rule
	// Warnings collects non-fatal problems found while parsing, such as
	// unknown keys and dropped rules.
	Warnings []string
	// Source reads copy and module sources from the owning mod.
	Source patch.SourceReader
}

// ID names the manifest in logs and dumps.
func (m *Manifest) ID() string {
	return m.Mod + "/" + m.File
}

// Parse decodes one manifest file. Any syntax or structural error rejects
// the whole file. Rules whose variables do not resolve, or whose regex does
// not compile, are dropped and reported in Warnings.
func Parse(data []byte, file string) (*Manifest, error) {
	logger := logging.GetLogger("manifest").With().Str("file", file).Logger()

	raw, unknown, err := decode(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestParse, "failed to parse manifest").
			WithDetail("file", file)
	}

	m := &Manifest{
		File:     file,
		Priority: raw.Manifest.Priority,
		Version:  raw.Manifest.Version,
		DumpLua:  raw.Manifest.DumpLua == nil || *raw.Manifest.DumpLua,
		Vars:     vars.Table(raw.Vars),
	}
	if m.Vars == nil {
		m.Vars = vars.Table{}
	}
	for _, key := range unknown {
		msg := fmt.Sprintf("unknown key '%s'", key)
		m.Warnings = append(m.Warnings, msg)
		logger.Warn().Str("key", key).Msg("Unknown key in manifest")
	}

	for i, p := range raw.Patches {
		rule, err := p.rule()
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "invalid patch #%d", i+1).
				WithDetail("file", file).
				WithDetail("patch", i+1)
		}

		if err := prepare(rule, m.Vars); err != nil {
			m.Warnings = append(m.Warnings, fmt.Sprintf("patch #%d dropped: %v", i+1, err))
			logger.Error().
				Err(err).
				Int("patch", i+1).
				Str("code", string(errors.GetErrorCode(err))).
				Msg("Dropping patch")
			continue
		}
		m.Rules = append(m.Rules, rule)
	}

	logger.Debug().
		Int("priority", m.Priority).
		Int("rules", len(m.Rules)).
		Int("vars", len(m.Vars)).
		Msg("Manifest parsed")
	return m, nil
}

// prepare interpolates manifest variables into a rule's payload and
// compiles regex rules.
func prepare(rule patch.Rule, table vars.Table) error {
	var err error
	switch r := rule.(type) {
	case *patch.PatternRule:
		r.Payload, err = table.Interpolate(r.Payload)
		return err
	case *patch.RegexRule:
		if r.Payload, err = table.Interpolate(r.Payload); err != nil {
			return err
		}
		if r.LinePrepend, err = table.Interpolate(r.LinePrepend); err != nil {
			return err
		}
		return r.Compile()
	case *patch.CopyRule, *patch.ModuleRule:
		return nil
	}
	return errors.Newf(errors.ErrInternal, "unhandled rule type %T", rule)
}

// decode first decodes strictly to learn about unknown keys, then falls back
// to a lenient decode so those keys are only warnings.
func decode(data []byte) (*rawFile, []string, error) {
	var raw rawFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(&raw)
	if err == nil {
		return &raw, nil, nil
	}

	var strict *toml.StrictMissingError
	if !stderrors.As(err, &strict) {
		return nil, nil, err
	}

	var unknown []string
	for _, e := range strict.Errors {
		unknown = append(unknown, strings.Join(e.Key(), "."))
	}

	raw = rawFile{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}
	return &raw, unknown, nil
}
