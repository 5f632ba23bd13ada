package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/video-cutter/tui/styles"
)

// Container fits content into an exact Width x Height box. Cut-off content
// ends with a "more" marker on the last line.
type Container struct {
	Width  int
	Height int
}

// Render returns content constrained to Width columns and Height lines.
func (c Container) Render(content string) string {
	if c.Height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	clipped := len(lines) > c.Height
	lines = NormalizeLines(lines, c.Height)
	if clipped {
		lines[c.Height-1] = lipgloss.NewStyle().Foreground(styles.Purple).Render("↓ more")
	}
	for i, line := range lines {
		lines[i] = PadToWidth(line, c.Width)
	}
	return strings.Join(lines, "\n")
}
