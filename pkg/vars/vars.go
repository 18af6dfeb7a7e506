// Package vars implements manifest variable tables.
//
// A manifest's [vars] section binds names to strings. Payload text refers to
// them as {{lovely:NAME}}; every reference must resolve against the owning
// manifest's table.
package vars

import (
	"regexp"

	"github.com/arthur-debert/lovely/pkg/errors"
)

var tokenRe = regexp.MustCompile(`\{\{lovely:(\w+)\}\}`)

// Table maps variable names to replacement values. It is never mutated
// after the manifest that owns it has been parsed.
type Table map[string]string

// Interpolate replaces every {{lovely:NAME}} token in text. A token naming
// a variable missing from the table is an ErrUnresolvedVar error and no
// partial result is returned.
func (t Table) Interpolate(text string) (string, error) {
	var missing []string
	out := tokenRe.ReplaceAllStringFunc(text, func(token string) string {
		name := tokenRe.FindStringSubmatch(token)[1]
		val, ok := t[name]
		if !ok {
			missing = append(missing, name)
			return token
		}
		return val
	})
	if len(missing) > 0 {
		return "", errors.Newf(errors.ErrUnresolvedVar, "unregistered variable '%s'", missing[0]).
			WithDetail("variables", missing)
	}
	return out, nil
}
