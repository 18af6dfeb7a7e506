package manifest

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/lovely/pkg/errors"
	"github.com/arthur-debert/lovely/pkg/patch"
)

// rawFile mirrors the TOML layout. Optional scalars are pointers so a
// missing key can be told apart from a zero value.
type rawFile struct {
	Manifest rawHeader         `toml:"manifest"`
	Vars     map[string]string `toml:"vars"`
	Patches  []rawPatch        `toml:"patches"`
}

type rawHeader struct {
	Version  string `toml:"version"`
	DumpLua  *bool  `toml:"dump_lua"`
	Priority int    `toml:"priority"`
}

type rawPatch struct {
	Pattern *rawPattern `toml:"pattern"`
	Regex   *rawRegex   `toml:"regex"`
	Copy    *rawCopy    `toml:"copy"`
	Module  *rawModule  `toml:"module"`
}

type rawPattern struct {
	Target      interface{} `toml:"target"`
	Pattern     *string     `toml:"pattern"`
	Position    string      `toml:"position"`
	Payload     *string     `toml:"payload"`
	MatchIndent bool        `toml:"match_indent"`
	Times       *int        `toml:"times"`
	Overwrite   *bool       `toml:"overwrite"`
}

type rawRegex struct {
	Target      interface{} `toml:"target"`
	Pattern     *string     `toml:"pattern"`
	Position    string      `toml:"position"`
	RootCapture string      `toml:"root_capture"`
	Payload     *string     `toml:"payload"`
	LinePrepend string      `toml:"line_prepend"`
	Times       *int        `toml:"times"`
}

type rawCopy struct {
	Target   interface{} `toml:"target"`
	Position string      `toml:"position"`
	Sources  []string    `toml:"sources"`
}

type rawModule struct {
	Source  string `toml:"source"`
	Before  string `toml:"before"`
	Name    string `toml:"name"`
	LoadNow bool   `toml:"load_now"`
}

// rule converts one [[patches]] entry. Variables are not interpolated here.
func (p rawPatch) rule() (patch.Rule, error) {
	set := 0
	for _, ok := range []bool{p.Pattern != nil, p.Regex != nil, p.Copy != nil, p.Module != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, errors.Newf(errors.ErrManifestInvalid,
			"patch must define exactly one of pattern, regex, copy or module, found %d", set)
	}

	switch {
	case p.Pattern != nil:
		return p.Pattern.rule()
	case p.Regex != nil:
		return p.Regex.rule()
	case p.Copy != nil:
		return p.Copy.rule()
	default:
		return p.Module.rule()
	}
}

func (p *rawPattern) rule() (patch.Rule, error) {
	targets, err := parseTargets(p.Target)
	if err != nil {
		return nil, err
	}
	if p.Pattern == nil {
		return nil, missing(patch.KindPattern, "pattern")
	}
	if p.Payload == nil {
		return nil, missing(patch.KindPattern, "payload")
	}
	pos, err := patch.ParsePosition(p.Position)
	if err != nil {
		return nil, err
	}
	times, err := parseTimes(p.Times)
	if err != nil {
		return nil, err
	}
	return &patch.PatternRule{
		Target:      targets,
		Pattern:     *p.Pattern,
		Position:    pos,
		Payload:     *p.Payload,
		MatchIndent: p.MatchIndent,
		Times:       times,
		Overwrite:   p.Overwrite,
	}, nil
}

func (p *rawRegex) rule() (patch.Rule, error) {
	targets, err := parseTargets(p.Target)
	if err != nil {
		return nil, err
	}
	if p.Pattern == nil {
		return nil, missing(patch.KindRegex, "pattern")
	}
	if p.Payload == nil {
		return nil, missing(patch.KindRegex, "payload")
	}
	pos, err := patch.ParsePosition(p.Position)
	if err != nil {
		return nil, err
	}
	times, err := parseTimes(p.Times)
	if err != nil {
		return nil, err
	}
	return &patch.RegexRule{
		Target:      targets,
		Pattern:     *p.Pattern,
		Position:    pos,
		RootCapture: p.RootCapture,
		Payload:     *p.Payload,
		LinePrepend: p.LinePrepend,
		Times:       times,
	}, nil
}

func (p *rawCopy) rule() (patch.Rule, error) {
	targets, err := parseTargets(p.Target)
	if err != nil {
		return nil, err
	}
	pos, err := patch.ParseCopyPosition(p.Position)
	if err != nil {
		return nil, err
	}
	if len(p.Sources) == 0 {
		return nil, missing(patch.KindCopy, "sources")
	}
	return &patch.CopyRule{
		Target:   targets,
		Position: pos,
		Sources:  p.Sources,
	}, nil
}

func (p *rawModule) rule() (patch.Rule, error) {
	if p.Source == "" {
		return nil, missing(patch.KindModule, "source")
	}
	if p.Name == "" {
		return nil, missing(patch.KindModule, "name")
	}
	if p.LoadNow && p.Before == "" {
		return nil, errors.Newf(errors.ErrManifestInvalid,
			"module %q sets load_now but has no before", p.Name)
	}
	return &patch.ModuleRule{
		Source:  p.Source,
		Before:  strings.TrimPrefix(p.Before, "@"),
		Name:    p.Name,
		LoadNow: p.LoadNow,
	}, nil
}

// parseTargets accepts a single string or an array of strings. Targets are
// stored without the host's leading '@'.
func parseTargets(v interface{}) ([]string, error) {
	var raw []string
	switch t := v.(type) {
	case nil:
		return nil, errors.New(errors.ErrManifestInvalid, "patch is missing required field 'target'")
	case string:
		raw = []string{t}
	case []interface{}:
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, errors.Newf(errors.ErrManifestInvalid, "target entries must be strings, got %T", item)
			}
			raw = append(raw, s)
		}
	default:
		return nil, errors.Newf(errors.ErrManifestInvalid, "target must be a string or an array of strings, got %T", v)
	}

	targets := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimPrefix(s, "@")
		if s == "" {
			return nil, errors.New(errors.ErrManifestInvalid, "target must not be empty")
		}
		targets = append(targets, s)
	}
	if len(targets) == 0 {
		return nil, errors.New(errors.ErrManifestInvalid, "target list must not be empty")
	}
	return targets, nil
}

// parseTimes maps an absent times to 0, meaning unlimited. An explicit value
// must be positive.
func parseTimes(v *int) (int, error) {
	if v == nil {
		return 0, nil
	}
	if *v <= 0 {
		return 0, errors.Newf(errors.ErrManifestInvalid, "times must be positive, got %d", *v)
	}
	return *v, nil
}

func missing(kind patch.Kind, field string) error {
	return errors.New(errors.ErrManifestInvalid, fmt.Sprintf("%s patch is missing required field '%s'", kind, field))
}
