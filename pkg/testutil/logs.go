package testutil

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

// LogCapture collects JSON log records written through the global logger.
type LogCapture struct {
	buf bytes.Buffer
}

// CaptureLogs points the global logger at a buffer at trace level until the
// test ends.
func CaptureLogs(t *testing.T) *LogCapture {
	t.Helper()

	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	lc := &LogCapture{}
	log.Logger = zerolog.New(&lc.buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
	return lc
}

// Records decodes every captured record.
func (lc *LogCapture) Records(t *testing.T) []map[string]interface{} {
	t.Helper()

	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(lc.buf.String()), "\n") {
		if line == "" {
			continue
		}
		rec := make(map[string]interface{})
		require.NoError(t, json.Unmarshal([]byte(line), &rec), line)
		out = append(out, rec)
	}
	return out
}

// Find returns the records whose message equals msg.
func (lc *LogCapture) Find(t *testing.T, msg string) []map[string]interface{} {
	t.Helper()

	var out []map[string]interface{}
	for _, rec := range lc.Records(t) {
		if rec[zerolog.MessageFieldName] == msg {
			out = append(out, rec)
		}
	}
	return out
}

// String returns the raw captured output.
func (lc *LogCapture) String() string {
	return lc.buf.String()
}
