// Package glob matches text against wildcard patterns.
//
// The language is deliberately tiny: '*' matches any run of characters
// (including none), '?' matches exactly one character, and everything else
// matches itself. There is no escaping, so a literal '*' or '?' cannot be
// expressed.
package glob

// Pattern is a compiled glob pattern. The zero value matches only "".
type Pattern struct {
	src   string
	runes []rune
}

// Compile prepares pattern for repeated matching.
func Compile(pattern string) Pattern {
	return Pattern{src: pattern, runes: []rune(pattern)}
}

// String returns the source pattern.
func (p Pattern) String() string {
	return p.src
}

// Match reports whether the whole of text matches the pattern.
func (p Pattern) Match(text string) bool {
	return match(p.runes, []rune(text))
}

// Match reports whether text matches pattern.
func Match(pattern, text string) bool {
	return Compile(pattern).Match(text)
}

// match is the classic greedy matcher with single-star backtracking. Only the
// most recent '*' needs to be remembered, which keeps the worst case at
// O(len(p) * len(s)).
func match(p, s []rune) bool {
	pi, si := 0, 0
	star, mark := -1, 0

	for si < len(s) {
		switch {
		case pi < len(p) && (p[pi] == '?' || (p[pi] != '*' && p[pi] == s[si])):
			pi++
			si++
		case pi < len(p) && p[pi] == '*':
			star = pi
			mark = si
			pi++
		case star >= 0:
			// Let the last star swallow one more character and retry.
			pi = star + 1
			mark++
			si = mark
		default:
			return false
		}
	}

	for pi < len(p) && p[pi] == '*' {
		pi++
	}
	return pi == len(p)
}
