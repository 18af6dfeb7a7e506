package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/lovely/pkg/engine"
	"github.com/arthur-debert/lovely/pkg/lovely"
)

// RenderInventory renders the mods and targets of a runtime.
func RenderInventory(inv lovely.Inventory) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Mods") + " " + PathStyle.Render(inv.ModDir) + "\n")
	if inv.Vanilla {
		b.WriteString(WarningIndicator + " vanilla mode, mods are disabled\n")
	}
	if len(inv.Mods) == 0 {
		b.WriteString(MutedStyle.Render("No mods found") + "\n")
	}

	for _, mod := range inv.Mods {
		indicator := SuccessIndicator
		name := Bold(mod.Name)
		switch {
		case mod.Rejected:
			indicator = ErrorIndicator
			name += " " + ErrorStyle.Render("rejected")
		case len(mod.Manifests) == 0:
			indicator = PendingIndicator
			name += " " + MutedStyle.Render("no manifests")
		}
		if mod.Archive {
			name += " " + MutedStyle.Render("(zip)")
		}
		b.WriteString(indicator + " " + name + "\n")

		for _, m := range mod.Manifests {
			line := fmt.Sprintf("%s  priority %d, %d rules", m.File, m.Priority, m.Rules)
			if m.Version != "" {
				line += ", version " + m.Version
			}
			b.WriteString(Indent(MutedStyle.Render(line), 1) + "\n")
			for _, w := range m.Warnings {
				b.WriteString(Indent(WarningIndicator+" "+w, 2) + "\n")
			}
		}
	}

	if len(inv.Targets) > 0 {
		b.WriteString("\n" + TitleStyle.Render("Targets") + "\n")
		for _, t := range inv.Targets {
			b.WriteString(PathStyle.Render(t.Name) + "\n")
			for _, r := range t.Rules {
				b.WriteString(Indent(Rule(r), 1) + "\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderReport renders the outcome of patching one buffer.
func RenderReport(r *engine.Report) string {
	var b strings.Builder
	status := MutedStyle.Render("unchanged")
	if r.Patched {
		status = SuccessStyle.Render("patched")
	}
	b.WriteString(PathStyle.Render(r.Target) + " " + status + "\n")

	for _, f := range r.Fired {
		b.WriteString(Indent(SuccessIndicator+" "+Rule(f), 1) + "\n")
	}
	for _, w := range r.Warnings {
		b.WriteString(Indent(WarningIndicator+" "+w, 1) + "\n")
	}
	for _, e := range r.Errors {
		b.WriteString(Indent(ErrorIndicator+" "+e, 1) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
