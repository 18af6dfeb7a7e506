package patch

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/lovely/pkg/errors"
)

// captures holds the text of each group of one regex match. Groups that did
// not take part in the match expand to "".
type captures struct {
	text  []string
	names []string
}

func (c captures) lookup(ref string) (string, bool) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 0 || n >= len(c.text) {
			return "", false
		}
		return c.text[n], true
	}
	for i, name := range c.names {
		if name == ref && i > 0 {
			return c.text[i], true
		}
	}
	return "", false
}

// expandCaptures substitutes $name, ${name}, $1 and ${1} references with
// the matched group text; "$$" is a literal dollar. Unlike regexp.Expand, a
// reference to a group the pattern does not define is an error.
func expandCaptures(template string, c captures) (string, error) {
	if !strings.Contains(template, "$") {
		return template, nil
	}

	var b strings.Builder
	for i := 0; i < len(template); {
		ch := template[i]
		if ch != '$' || i+1 == len(template) {
			b.WriteByte(ch)
			i++
			continue
		}

		rest := template[i+1:]
		var ref string
		var width int
		switch {
		case rest[0] == '$':
			b.WriteByte('$')
			i += 2
			continue
		case rest[0] == '{':
			end := strings.IndexByte(rest, '}')
			if end < 0 {
				b.WriteByte(ch)
				i++
				continue
			}
			ref = rest[1:end]
			width = end + 1
		default:
			n := 0
			for n < len(rest) && isRefByte(rest[n]) {
				n++
			}
			ref = rest[:n]
			width = n
		}

		if ref == "" {
			b.WriteByte(ch)
			i++
			continue
		}

		val, ok := c.lookup(ref)
		if !ok {
			return "", errors.Newf(errors.ErrUnresolvedCapture, "capture group '%s' is not defined by the pattern", ref).
				WithDetail("group", ref)
		}
		b.WriteString(val)
		i += 1 + width
	}
	return b.String(), nil
}

func isRefByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
