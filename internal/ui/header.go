package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/tmcatcher/internal/api"
)

// renderHeader draws the rounded box printed before a command talks to the
// backend: the upper-cased title, the command line and its parameters.
func renderHeader(title, command string, params []api.Field, width int) string {
	width = clampWidth(width)
	indent := lipgloss.NewStyle().PaddingLeft(2)

	lines := []string{
		indent.Inherit(textStyle).Bold(true).Render(strings.ToUpper(title)),
		indent.Inherit(mutedStyle).Render(command),
	}
	if len(params) > 0 {
		lines = append(lines, divider(max(width-6, 10)))
		for _, p := range params {
			lines = append(lines, indent.Inherit(mutedStyle).Render(p.Label+":")+" "+textStyle.Render(p.Value))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}
