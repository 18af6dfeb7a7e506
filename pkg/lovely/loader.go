package lovely

import (
	"bytes"

	"github.com/arthur-debert/lovely/pkg/engine"
	"github.com/arthur-debert/lovely/pkg/logging"
)

// luaSignature starts every precompiled Lua chunk.
var luaSignature = []byte("\x1bLua")

// Loader is the per host state interception point.
type Loader struct {
	rt      *Runtime
	session *engine.Session
}

// NewLoader binds the runtime to one host state. host registers module
// rules and may be nil if the host cannot take them.
func (r *Runtime) NewLoader(host engine.Host) *Loader {
	return &Loader{rt: r, session: r.engine.NewSession(host)}
}

// LoadBuffer mirrors the host's "load buffer with size, name and mode"
// primitive: it returns the buffer to compile in place of buf, and its
// size. mode follows the host's convention ("t", "b", "bt"); an empty mode
// is permissive. Binary chunks are never patched.
func (l *Loader) LoadBuffer(name string, buf []byte, mode string) ([]byte, int) {
	if bytes.HasPrefix(buf, luaSignature) {
		logger := logging.GetLogger("lovely")
		logger.Trace().
			Str("target", name).
			Str("mode", mode).
			Msg("Binary chunk passed through")
		return buf, len(buf)
	}
	out, _ := l.session.Apply(name, buf)
	return out, len(out)
}

// Apply is LoadBuffer with the full report, for tools that show it.
func (l *Loader) Apply(name string, buf []byte) ([]byte, *engine.Report) {
	return l.session.Apply(name, buf)
}
