// Package components renders the pieces of the cutter screen.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/video-cutter/tui/layout"
	"github.com/user/video-cutter/tui/styles"
)

// RenderBox draws lines inside a rounded border with the title set into the
// top edge:
//
//	╭─ Title ──────╮
//	│ line         │
//	╰──────────────╯
func RenderBox(title string, lines []string, width int) string {
	if width < 4 {
		return ""
	}
	inner := width - 2
	border := lipgloss.NewStyle().Foreground(styles.Purple)
	header := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true).Render(" " + title + " ")

	fill := inner - 1 - lipgloss.Width(header)
	if fill < 0 {
		fill = 0
	}
	out := make([]string, 0, len(lines)+2)
	out = append(out, layout.PadToWidth(border.Render("╭─")+header+border.Render(strings.Repeat("─", fill)+"╮"), width))
	for _, line := range lines {
		out = append(out, border.Render("│")+layout.PadToWidth(line, inner)+border.Render("│"))
	}
	out = append(out, border.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return strings.Join(out, "\n")
}
