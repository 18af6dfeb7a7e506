package patch

import (
	"strings"

	"github.com/arthur-debert/lovely/pkg/errors"
)

// CopyRule splices whole files onto one end of the buffer.
type CopyRule struct {
	Target   []string
	Position CopyPosition
	// Sources are relative to the owning mod's root, applied in order.
	Sources []string
}

// Apply reads every source through src and splices their concatenation
// onto buf. If any source cannot be read nothing is spliced.
func (r *CopyRule) Apply(buf string, src SourceReader) (string, Result, error) {
	var b strings.Builder
	for _, rel := range r.Sources {
		data, err := src.ReadSource(rel)
		if err != nil {
			return buf, Result{}, errors.Wrapf(err, errors.ErrCopySource, "failed to read copy source %s", rel).
				WithDetail("source", rel)
		}
		appendChunk(&b, string(data))
	}
	payload := b.String()
	res := Result{Matches: len(r.Sources)}
	if payload == "" {
		return buf, res, nil
	}

	switch r.Position {
	case CopyPrepend:
		return payload + buf, res, nil
	default:
		if buf != "" && !strings.HasSuffix(buf, "\n") {
			buf += "\n"
		}
		return buf + payload, res, nil
	}
}

// appendChunk writes chunk so that it always starts on a fresh line and
// leaves the builder ending in a newline.
func appendChunk(b *strings.Builder, chunk string) {
	if chunk == "" {
		return
	}
	b.WriteString(chunk)
	if !strings.HasSuffix(chunk, "\n") {
		b.WriteByte('\n')
	}
}
