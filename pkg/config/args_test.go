package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want map[string]interface{}
	}{
		{
			name: "nothing set",
			args: nil,
			want: map[string]interface{}{},
		},
		{
			name: "mod dir",
			args: []string{"--mod-dir", "/tmp/mods"},
			want: map[string]interface{}{"mod_dir": "/tmp/mods"},
		},
		{
			name: "mod dir with equals",
			args: []string{"--mod-dir=/tmp/mods", "--dump-all"},
			want: map[string]interface{}{"mod_dir": "/tmp/mods", "dump_all": true},
		},
		{
			name: "vanilla short",
			args: []string{"-v"},
			want: map[string]interface{}{"vanilla": true},
		},
		{
			name: "disable mods",
			args: []string{"--disable-mods"},
			want: map[string]interface{}{"vanilla": true},
		},
		{
			name: "console",
			args: []string{"--disable-console"},
			want: map[string]interface{}{"disable_console": true},
		},
		{
			name: "host flags ignored",
			args: []string{"--fullscreen", "--dump-all", "game.love"},
			want: map[string]interface{}{"dump_all": true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgsFeedsLoad(t *testing.T) {
	isolate(t)

	overrides, err := ParseArgs([]string{"--mod-dir", "/tmp/mods", "-d"})
	require.NoError(t, err)

	cfg, err := Load(overrides)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/mods", cfg.ModDir)
	assert.True(t, cfg.Vanilla)
}
