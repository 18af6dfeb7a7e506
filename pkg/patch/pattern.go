package patch

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/lovely/pkg/glob"
)

// PatternRule inserts or replaces lines around every line matching a glob.
// Lines are matched with surrounding whitespace trimmed, so patterns never
// have to account for indentation.
type PatternRule struct {
	Target   []string
	Pattern  string
	Position Position
	// Payload has already had manifest variables interpolated.
	Payload     string
	MatchIndent bool
	// Times caps the number of matches patched; 0 patches all of them.
	Times int
	// Overwrite only matters for PositionAt. Unset or true replaces the
	// matched line, false keeps it and inserts the payload after it.
	Overwrite *bool
}

func (r *PatternRule) replaces() bool {
	return r.Overwrite == nil || *r.Overwrite
}

// Apply runs the rule over buf and returns the rewritten buffer.
func (r *PatternRule) Apply(buf string) (string, Result) {
	pattern := glob.Compile(r.Pattern)
	lines, trailing := splitLines(buf)

	var matched []int
	found := 0
	for i, line := range lines {
		if !pattern.Match(strings.TrimSpace(line)) {
			continue
		}
		found++
		if r.Times == 0 || len(matched) < r.Times {
			matched = append(matched, i)
		}
	}

	res := Result{Matches: len(matched)}
	if found == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("pattern %q resulted in no matches", r.Pattern))
		return buf, res
	}
	res.Warnings = append(res.Warnings, timesWarnings(KindPattern, r.Pattern, found, r.Times)...)

	payload := payloadLines(r.Payload)
	out := make([]string, 0, len(lines)+len(matched)*len(payload))
	next := 0
	for i, line := range lines {
		if next >= len(matched) || matched[next] != i {
			out = append(out, line)
			continue
		}
		next++

		inserted := indentLines(payload, line, r.MatchIndent)
		switch r.Position {
		case PositionBefore:
			out = append(out, inserted...)
			out = append(out, line)
		case PositionAfter:
			out = append(out, line)
			out = append(out, inserted...)
		case PositionAt:
			if !r.replaces() {
				out = append(out, line)
			}
			out = append(out, inserted...)
		}
	}

	// Replacing the only line of a one-line buffer with nothing must not
	// leave a dangling terminator behind.
	if len(out) == 0 {
		return "", res
	}
	return joinLines(out, trailing), res
}

func indentLines(payload []string, matchedLine string, matchIndent bool) []string {
	if !matchIndent {
		return payload
	}
	indent := leadingIndent(matchedLine)
	if indent == "" {
		return payload
	}
	out := make([]string, len(payload))
	for i, l := range payload {
		if l == "" {
			out[i] = l
			continue
		}
		out[i] = indent + l
	}
	return out
}
