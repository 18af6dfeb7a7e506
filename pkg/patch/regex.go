package patch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/lovely/pkg/errors"
)

// RegexRule inserts text relative to regular expression matches. Matching
// is line oriented: a pattern spanning N lines is run over windows of N
// consecutive lines, so the cost stays linear in the buffer size.
type RegexRule struct {
	Target   []string
	Pattern  string
	Position Position
	// RootCapture names the group the position is relative to: a group
	// name, an index, or "" for the whole match.
	RootCapture string
	// Payload and LinePrepend have already had manifest variables
	// interpolated; capture references are expanded per match.
	Payload     string
	LinePrepend string
	Times       int

	re   *regexp.Regexp
	span int
}

// Compile validates the pattern and root capture. It is called once at
// manifest load; Apply compiles lazily for rules built by hand.
func (r *RegexRule) Compile() error {
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidPattern, "invalid regex %q", r.Pattern)
	}
	if _, err := rootIndex(re, r.RootCapture); err != nil {
		return err
	}
	r.re = re
	r.span = lineSpan(r.Pattern)
	return nil
}

// lineSpan counts how many lines a pattern can cover: one plus each literal
// newline and each \n escape it contains.
func lineSpan(pattern string) int {
	return 1 + strings.Count(pattern, "\n") + strings.Count(pattern, `\n`)
}

func rootIndex(re *regexp.Regexp, root string) (int, error) {
	root = strings.TrimPrefix(root, "$")
	if root == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(root); err == nil {
		if n < 0 || n > re.NumSubexp() {
			return 0, errors.Newf(errors.ErrUnresolvedCapture, "root capture %d is out of range", n).
				WithDetail("group", root)
		}
		return n, nil
	}
	if idx := re.SubexpIndex(root); idx > 0 {
		return idx, nil
	}
	return 0, errors.Newf(errors.ErrUnresolvedCapture, "root capture '%s' is not defined by the pattern", root).
		WithDetail("group", root)
}

type regexMatch struct {
	start, end int
	caps       captures
}

// Apply runs the rule over buf. Any error leaves the buffer untouched.
func (r *RegexRule) Apply(buf string) (string, Result, error) {
	if r.re == nil {
		if err := r.Compile(); err != nil {
			return buf, Result{}, err
		}
	}
	root, err := rootIndex(r.re, r.RootCapture)
	if err != nil {
		return buf, Result{}, err
	}

	matches, found := r.scan(buf, root)
	res := Result{Matches: len(matches)}
	if found == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("regex %q did not result in any matches", r.Pattern))
		return buf, res, nil
	}
	res.Warnings = append(res.Warnings, timesWarnings(KindRegex, r.Pattern, found, r.Times)...)

	payloads := make([]string, len(matches))
	for i, m := range matches {
		payloads[i], err = r.render(m.caps)
		if err != nil {
			return buf, Result{}, err
		}
	}

	var b strings.Builder
	b.Grow(len(buf))
	last := 0
	for i, m := range matches {
		switch r.Position {
		case PositionBefore:
			b.WriteString(buf[last:m.start])
			b.WriteString(payloads[i])
			last = m.start
		case PositionAfter:
			b.WriteString(buf[last:m.end])
			b.WriteString(payloads[i])
			last = m.end
		case PositionAt:
			b.WriteString(buf[last:m.start])
			b.WriteString(payloads[i])
			last = m.end
		}
	}
	b.WriteString(buf[last:])
	return b.String(), res, nil
}

// scan collects up to Times non-overlapping matches in buffer order and
// returns how many there were in total. Windows advance one line at a time,
// so accepted matches are already sorted by offset.
func (r *RegexRule) scan(buf string, root int) ([]regexMatch, int) {
	starts := lineStarts(buf)
	names := r.re.SubexpNames()
	span := r.span
	if span < 1 {
		span = 1
	}

	var matches []regexMatch
	found := 0
	lastEnd := -1
	for i, start := range starts {
		last := i + span - 1
		if last >= len(starts) {
			last = len(starts) - 1
		}
		end := lineContentEnd(buf, starts, last)
		firstEnd := lineContentEnd(buf, starts, i)
		window := buf[start:end]

		for _, loc := range r.re.FindAllStringSubmatchIndex(window, -1) {
			absStart := start + loc[0]
			// Matches that begin past the first line belong to a later window.
			if span > 1 && absStart > firstEnd {
				continue
			}
			if absStart < lastEnd || (loc[0] == loc[1] && absStart == lastEnd) {
				continue
			}
			if loc[2*root] < 0 {
				continue
			}
			lastEnd = start + loc[1]
			found++
			if r.Times > 0 && len(matches) >= r.Times {
				continue
			}

			caps := captures{text: make([]string, len(names)), names: names}
			for g := range names {
				if loc[2*g] >= 0 {
					caps.text[g] = window[loc[2*g]:loc[2*g+1]]
				}
			}
			matches = append(matches, regexMatch{
				start: start + loc[2*root],
				end:   start + loc[2*root+1],
				caps:  caps,
			})
		}
	}

	return matches, found
}

// render expands every payload line and prefixes the non-empty ones with
// the expanded line prefix. Captured text is inserted verbatim, so a '$'
// in it is never read as another capture reference. A single trailing
// newline on the payload is dropped.
func (r *RegexRule) render(c captures) (string, error) {
	prepend, err := expandCaptures(r.LinePrepend, c)
	if err != nil {
		return "", err
	}

	lines := strings.Split(strings.TrimSuffix(r.Payload, "\n"), "\n")
	for i, l := range lines {
		expanded, err := expandCaptures(l, c)
		if err != nil {
			return "", err
		}
		if l != "" {
			expanded = prepend + expanded
		}
		lines[i] = expanded
	}
	return strings.Join(lines, "\n"), nil
}

// lineStarts returns the byte offset of every line in buf.
func lineStarts(buf string) []int {
	if buf == "" {
		return []int{0}
	}
	starts := []int{0}
	for i := 0; i < len(buf); i++ {
		if buf[i] == '\n' && i+1 < len(buf) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineContentEnd is the offset just past line n's text, excluding its
// "\n" or "\r\n" terminator.
func lineContentEnd(buf string, starts []int, n int) int {
	end := len(buf)
	if n+1 < len(starts) {
		end = starts[n+1] - 1
	} else if strings.HasSuffix(buf, "\n") {
		end = len(buf) - 1
	}
	if end > starts[n] && buf[end-1] == '\r' {
		end--
	}
	return end
}
