package patch

import "strings"

// splitLines breaks buf into lines without their '\n' terminators. The
// second result records whether buf ended with a terminator so joinLines
// can restore it exactly.
func splitLines(buf string) ([]string, bool) {
	if buf == "" {
		return nil, false
	}
	lines := strings.Split(buf, "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1], true
	}
	return lines, false
}

func joinLines(lines []string, trailingNewline bool) string {
	out := strings.Join(lines, "\n")
	if trailingNewline && len(lines) > 0 {
		out += "\n"
	}
	return out
}

// payloadLines splits a payload into the lines it contributes. One trailing
// newline is dropped so "a\nb\n" and "a\nb" insert the same two lines; an
// empty payload contributes nothing.
func payloadLines(payload string) []string {
	payload = strings.TrimSuffix(payload, "\n")
	if payload == "" {
		return nil
	}
	return strings.Split(payload, "\n")
}

// leadingIndent returns the run of spaces and tabs starting line.
func leadingIndent(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
