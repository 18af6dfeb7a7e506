package dump_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/arthur-debert/lovely/pkg/dump"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"@main.lua", "main.lua"},
		{"@functions/misc.lua", "functions/misc.lua"},
		{`=[SMODS mod "core.lua"]`, "SMODS/mod/core.lua"},
		{`=[lovely json "libs/json.lua"]`, "lovely/json/libs/json.lua"},
		{`=[SMODS "core.lua"]`, "SMODS/core.lua"},
		{"../../escape.lua", "escape.lua"},
		{"@", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dump.PrettyName(tt.in), tt.in)
	}
}

func TestDirWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := dump.NewDir(fs, "/mods/lovely/dump")

	report := dump.Report{
		BufferName: "@main.lua",
		Entries:    []dump.Entry{{Kind: "pattern", Manifest: "m/lovely.toml", Rule: `pattern "x"`, Matches: 1}},
	}
	require.NoError(t, sink.Write("@main.lua", []byte("patched"), report))

	data, err := afero.ReadFile(fs, "/mods/lovely/dump/main.lua")
	require.NoError(t, err)
	assert.Equal(t, "patched", string(data))

	raw, err := afero.ReadFile(fs, "/mods/lovely/dump/main.lua.json")
	require.NoError(t, err)
	var decoded dump.Report
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, report, decoded)
}

func TestDirWriteNeverOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := dump.NewDir(fs, "/dump")

	require.NoError(t, sink.Write("@a.lua", []byte("first"), dump.Report{}))
	require.NoError(t, sink.Write("@a.lua", []byte("second"), dump.Report{}))

	data, err := afero.ReadFile(fs, "/dump/a.lua")
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}

func TestDirWriteSkipsLongNames(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := dump.NewDir(fs, "/dump")

	name := strings.Repeat("x", dump.MaxNameLength+1)
	require.NoError(t, sink.Write(name, []byte("data"), dump.Report{}))

	exists, err := afero.Exists(fs, "/dump/"+name)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDirWriteFailure(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	sink := dump.NewDir(fs, "/dump")

	assert.Error(t, sink.Write("@a.lua", []byte("data"), dump.Report{}))
}

func TestDirClear(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := dump.NewDir(fs, "/dump")
	require.NoError(t, sink.Write("@a.lua", []byte("data"), dump.Report{}))

	require.NoError(t, sink.Clear())
	exists, _ := afero.Exists(fs, "/dump/a.lua")
	assert.False(t, exists)

	require.NoError(t, sink.Write("@a.lua", []byte("again"), dump.Report{}))
	data, err := afero.ReadFile(fs, "/dump/a.lua")
	require.NoError(t, err)
	assert.Equal(t, "again", string(data))
}
