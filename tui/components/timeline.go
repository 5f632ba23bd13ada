package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/video-cutter/pkg/timeutil"
	"github.com/user/video-cutter/tui/styles"
)

const (
	// TimelineHeight is the number of lines Timeline renders.
	TimelineHeight = 4
	// TimelineBarRow is the line of the bar inside the timeline box.
	TimelineBarRow = 1

	barOffset   = 2  // left border + space
	timeReserve = 21 // " H:MM:SS / H:MM:SS" plus margins
)

// TimelineState is what the seek slider shows.
type TimelineState struct {
	Percent   float64
	TimePos   float64
	Duration  float64
	ClipStart float64
	ClipEnd   float64
	Enabled   bool
}

// barWidth returns the slider length for a timeline of the given width.
func barWidth(width int) int {
	return width - barOffset - timeReserve
}

// cell maps a percentage onto a bar cell.
func cell(percent float64, bar int) int {
	i := int(math.Round(float64(bar-1) * percent / 100))
	if i < 0 {
		return 0
	}
	if i > bar-1 {
		return bar - 1
	}
	return i
}

// Timeline renders the seek slider: the bar follows Percent, the row below
// marks the clip start "[" and end "]".
func Timeline(state TimelineState, width int) string {
	bar := barWidth(width)
	if bar < 10 {
		return ""
	}

	filled := lipgloss.NewStyle().Foreground(styles.BrightPurple)
	empty := lipgloss.NewStyle().Foreground(styles.Purple)
	knob := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	marker := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	timeStyle := lipgloss.NewStyle().Foreground(styles.LightLavender).Bold(true)
	if !state.Enabled {
		filled, knob, marker = empty, empty, empty
	}

	pos := cell(state.Percent, bar)
	var b strings.Builder
	for i := 0; i < bar; i++ {
		switch {
		case i < pos:
			b.WriteString(filled.Render("━"))
		case i == pos:
			b.WriteString(knob.Render("●"))
		default:
			b.WriteString(empty.Render("─"))
		}
	}
	times := fmt.Sprintf(" %s / %s", timeutil.FormatTime(state.TimePos), timeutil.FormatTime(state.Duration))
	barLine := " " + b.String() + timeStyle.Render(times)

	marks := make([]string, bar)
	for i := range marks {
		marks[i] = " "
	}
	if state.Duration > 0 {
		if s := state.ClipStart / state.Duration * 100; s >= 0 && s <= 100 {
			marks[cell(s, bar)] = marker.Render("[")
		}
		if e := state.ClipEnd / state.Duration * 100; e >= 0 && e <= 100 && state.ClipEnd != state.ClipStart {
			marks[cell(e, bar)] = marker.Render("]")
		}
	}
	markLine := " " + strings.Join(marks, "")

	return RenderBox("Timeline", []string{barLine, markLine}, width)
}

// TimelinePercentAt maps a column of a timeline of the given width to a
// slider percentage. ok is false outside the bar.
func TimelinePercentAt(x, width int) (percent float64, ok bool) {
	bar := barWidth(width)
	if bar < 10 || x < barOffset || x >= barOffset+bar {
		return 0, false
	}
	return float64(x-barOffset) / float64(bar-1) * 100, true
}
