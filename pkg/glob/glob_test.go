package glob_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/lovely/pkg/glob"
	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
		want    bool
	}{
		{"local x = *", "local x = 5", true},
		{"local x = *", "local x = foo()", true},
		{"local x = *", "local x = ", true},
		{"local x = *", "local y = 5", false},
		{"a?c", "abc", true},
		{"a?c", "ac", false},
		{"a?c", "abbc", false},
		{"*", "", true},
		{"*", "anything at all", true},
		{"", "", true},
		{"", "x", false},
		{"abc", "abc", true},
		{"abc", "abcd", false},
		{"*end", "the end", true},
		{"*end", "the end?", false},
		{"start*", "start of it", true},
		{"a*b*c", "a--b--c", true},
		{"a*b*c", "a--c--b", false},
		{"a*a*a", "aaaa", true},
		{"**", "x", true},
		{"?*?", "ab", true},
		{"?*?", "a", false},
		{"function Game:start_run(args)", "function Game:start_run(args)", true},
		{"if *then", "if self.x > 1 then", true},
		{"é?", "éà", true},
		{"???", "日本語", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"|"+tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, glob.Match(tt.pattern, tt.text))
		})
	}
}

func TestLiteralWildcardsAreNotEscapable(t *testing.T) {
	// A star in the pattern is always a wildcard.
	assert.True(t, glob.Match(`a\*`, `a\anything`))
	assert.False(t, glob.Match(`a\*`, `a*`[:1]))
}

func TestCompiledPatternReuse(t *testing.T) {
	p := glob.Compile("G.FUNCS.*")
	assert.Equal(t, "G.FUNCS.*", p.String())
	assert.True(t, p.Match("G.FUNCS.play"))
	assert.True(t, p.Match("G.FUNCS."))
	assert.False(t, p.Match("G.FUNC.play"))
}

func TestPathologicalPatternTerminates(t *testing.T) {
	text := strings.Repeat("a", 4000)
	pattern := strings.Repeat("*a", 50) + "b"
	assert.False(t, glob.Match(pattern, text))
}

func BenchmarkMatch(b *testing.B) {
	p := glob.Compile("local * = function(*)")
	line := "local handler_for_the_event_system = function(self, event, payload)"
	for i := 0; i < b.N; i++ {
		p.Match(line)
	}
}
