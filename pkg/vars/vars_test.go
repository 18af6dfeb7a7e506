package vars_test

import (
	"testing"

	"github.com/arthur-debert/lovely/pkg/errors"
	"github.com/arthur-debert/lovely/pkg/vars"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolate(t *testing.T) {
	table := vars.Table{"speed": "2", "name": "Jimbo"}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no tokens", "local x = 1", "local x = 1"},
		{"single token", "G.SPEED = {{lovely:speed}}", "G.SPEED = 2"},
		{"repeated tokens", "{{lovely:name}} and {{lovely:name}}", "Jimbo and Jimbo"},
		{"multi line", "a = {{lovely:speed}}\nb = '{{lovely:name}}'", "a = 2\nb = 'Jimbo'"},
		{"other braces untouched", "{{other:speed}} {{ lovely:speed }}", "{{other:speed}} {{ lovely:speed }}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Interpolate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterpolateUnresolved(t *testing.T) {
	table := vars.Table{"known": "1"}

	got, err := table.Interpolate("x = {{lovely:known}} + {{lovely:missing}}")
	require.Error(t, err)
	assert.Empty(t, got)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnresolvedVar))
	assert.Contains(t, err.Error(), "missing")
}

func TestInterpolateNilTable(t *testing.T) {
	var table vars.Table
	got, err := table.Interpolate("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", got)

	_, err = table.Interpolate("{{lovely:x}}")
	assert.Error(t, err)
}
