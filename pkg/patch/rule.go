package patch

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/lovely/pkg/errors"
)

// Kind names a rule variant. The string form is the manifest table name.
type Kind string

const (
	KindPattern Kind = "pattern"
	KindRegex   Kind = "regex"
	KindCopy    Kind = "copy"
	KindModule  Kind = "module"
)

// Position says where a payload goes relative to a match.
type Position string

const (
	PositionBefore Position = "before"
	PositionAfter  Position = "after"
	PositionAt     Position = "at"
)

// ParsePosition validates a manifest position value.
func ParsePosition(s string) (Position, error) {
	switch p := Position(s); p {
	case PositionBefore, PositionAfter, PositionAt:
		return p, nil
	}
	return "", errors.Newf(errors.ErrManifestInvalid, "invalid position %q, want before, after or at", s)
}

// CopyPosition says which end of the buffer a copy rule writes to.
type CopyPosition string

const (
	CopyAppend  CopyPosition = "append"
	CopyPrepend CopyPosition = "prepend"
)

// ParseCopyPosition validates a manifest copy position value.
func ParseCopyPosition(s string) (CopyPosition, error) {
	switch p := CopyPosition(s); p {
	case CopyAppend, CopyPrepend:
		return p, nil
	}
	return "", errors.Newf(errors.ErrManifestInvalid, "invalid copy position %q, want append or prepend", s)
}

// Rule is one patch declared by a manifest.
type Rule interface {
	Kind() Kind
	// Targets lists the logical file names that trigger the rule.
	Targets() []string
	// Describe is a short human readable identity used in logs and dumps.
	Describe() string

	sealed()
}

// Result describes what a single rule application did.
type Result struct {
	Matches  int
	Warnings []string
}

// SourceReader reads files relative to a mod's root directory.
type SourceReader interface {
	ReadSource(rel string) ([]byte, error)
}

func (*PatternRule) sealed() {}
func (*RegexRule) sealed()   {}
func (*CopyRule) sealed()    {}
func (*ModuleRule) sealed()  {}

func (r *PatternRule) Kind() Kind { return KindPattern }
func (r *RegexRule) Kind() Kind   { return KindRegex }
func (r *CopyRule) Kind() Kind    { return KindCopy }
func (r *ModuleRule) Kind() Kind  { return KindModule }

func (r *PatternRule) Targets() []string { return r.Target }
func (r *RegexRule) Targets() []string   { return r.Target }
func (r *CopyRule) Targets() []string    { return r.Target }

// Targets for a module is the file it must precede, if any.
func (r *ModuleRule) Targets() []string {
	if r.Before == "" {
		return nil
	}
	return []string{r.Before}
}

func (r *PatternRule) Describe() string { return fmt.Sprintf("pattern %q", r.Pattern) }
func (r *RegexRule) Describe() string   { return fmt.Sprintf("regex %q", r.Pattern) }
func (r *CopyRule) Describe() string {
	return fmt.Sprintf("copy %s [%s]", r.Position, strings.Join(r.Sources, ", "))
}
func (r *ModuleRule) Describe() string { return fmt.Sprintf("module %q", r.Name) }

// timesWarnings reports a mismatch between the wanted and the found match
// count. want == 0 means unlimited and never warns.
func timesWarnings(kind Kind, pattern string, found, want int) []string {
	if want == 0 || found == want {
		return nil
	}
	msg := fmt.Sprintf("%s %q resulted in %d matches, wanted %d", kind, pattern, found, want)
	if found > want {
		return []string{msg, "ignoring excess matches"}
	}
	return []string{msg}
}
