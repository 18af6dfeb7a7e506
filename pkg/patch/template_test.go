package patch

import (
	"testing"

	"github.com/arthur-debert/lovely/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandCaptures(t *testing.T) {
	c := captures{
		text:  []string{"foo=1", "foo", "1"},
		names: []string{"", "key", ""},
	}

	tests := []struct {
		template string
		want     string
	}{
		{"plain", "plain"},
		{"$key", "foo"},
		{"${key}bar", "foobar"},
		{"$0 / $2", "foo=1 / 1"},
		{"${1}x", "foox"},
		{"cost: $$5", "cost: $5"},
		{"trailing $", "trailing $"},
		{"$ alone", "$ alone"},
		{"${unterminated", "${unterminated"},
	}
	for _, tt := range tests {
		got, err := expandCaptures(tt.template, c)
		require.NoError(t, err, tt.template)
		assert.Equal(t, tt.want, got, tt.template)
	}
}

func TestExpandCapturesUnresolved(t *testing.T) {
	c := captures{text: []string{"x"}, names: []string{""}}

	for _, tmpl := range []string{"$name", "${name}", "$3"} {
		_, err := expandCaptures(tmpl, c)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnresolvedCapture), tmpl)
	}
}

func TestLineSpan(t *testing.T) {
	assert.Equal(t, 1, lineSpan(`a.*b`))
	assert.Equal(t, 2, lineSpan(`end\nfunction`))
	assert.Equal(t, 3, lineSpan("a\nb\\nc"))
}

func TestLineStarts(t *testing.T) {
	assert.Equal(t, []int{0}, lineStarts(""))
	assert.Equal(t, []int{0, 2}, lineStarts("a\nb\n"))
	assert.Equal(t, []int{0, 2}, lineStarts("a\nb"))
}
