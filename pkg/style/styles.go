package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Italic(true)
)

// kindStyles colors a rule descriptor by its leading kind word.
var kindStyles = map[string]lipgloss.Style{
	"pattern": lipgloss.NewStyle().Foreground(PatternColor).Bold(true),
	"regex":   lipgloss.NewStyle().Foreground(RegexColor).Bold(true),
	"copy":    lipgloss.NewStyle().Foreground(CopyColor).Bold(true),
	"module":  lipgloss.NewStyle().Foreground(ModuleColor).Bold(true),
}

// Indicators
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	PendingIndicator = MutedStyle.Render("○")
)

// Indent pads every line of s by two spaces per level.
func Indent(s string, level int) string {
	pad := strings.Repeat("  ", level)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}

// Bold renders s in bold.
func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}

// Rule colors the kind word of a "<manifest>: <kind> <detail>" descriptor.
func Rule(desc string) string {
	owner, rest, ok := strings.Cut(desc, ": ")
	if !ok {
		return desc
	}
	kind, detail, _ := strings.Cut(rest, " ")
	st, known := kindStyles[kind]
	if !known {
		return desc
	}
	return MutedStyle.Render(owner+":") + " " + st.Render(kind) + " " + detail
}
