package ui

import (
	"fmt"
	"strings"
)

// renderHelp draws the key reference overlay. Any key closes it.
func (m Model) renderHelp() string {
	sections := []struct {
		title string
		keys  []struct{ key, desc string }
	}{
		{"Global", []struct{ key, desc string }{
			{"?", "Help"},
			{"T", "Cycle theme"},
			{"ctrl+c", "Quit"},
		}},
		{"Feed / Profile", []struct{ key, desc string }{
			{"j/k", "Move selection"},
			{"g/G", "Top / bottom"},
			{"enter", "Open post"},
			{"n", "New post"},
			{"e", "Edit post (profile)"},
			{"d", "Delete post"},
			{"s", "Cycle sort (newest/oldest/title)"},
			{"/", "Filter visible posts"},
			{"S", "Search all posts"},
			{"r", "Refresh"},
			{"p/f", "Profile / feed"},
			{"y", "Request API key (profile)"},
			{"L", "Log out"},
		}},
		{"Compose", []struct{ key, desc string }{
			{"tab", "Next field"},
			{"ctrl+s", "Save"},
			{"esc", "Cancel"},
		}},
	}

	var b strings.Builder
	b.WriteString(m.styles.Logo.Render("quill"))
	b.WriteString(m.styles.MutedText.Render("  key reference"))
	b.WriteString("\n\n")
	for _, section := range sections {
		b.WriteString(m.styles.AccentText.Render(section.title))
		b.WriteString("\n")
		for _, k := range section.keys {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				m.styles.WarningText.Render(fmt.Sprintf("%-7s", k.key)),
				m.styles.Text.Render(k.desc)))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.FaintText.Render("press any key to close"))
	return m.styles.Panel.Render(b.String())
}
