package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/video-cutter/pkg/export"
	"github.com/user/video-cutter/pkg/timeutil"
	"github.com/user/video-cutter/tui/layout"
	"github.com/user/video-cutter/tui/styles"
)

// HeaderState is what the top bar shows.
type HeaderState struct {
	Title    string
	Paused   bool
	Loaded   bool
	Live     bool
	TimePos  float64
	Duration float64
	Step     float64
}

// Header renders the one-line top bar: file title on the left, playback
// state, position and seek step on the right.
func Header(state HeaderState, width int) string {
	left := " " + styles.Title.Render(state.Title)

	var right string
	switch {
	case !state.Live:
		right = styles.Warning.Render("player closed") + " "
	case !state.Loaded:
		right = "no file "
	default:
		icon := "▶"
		if state.Paused {
			icon = "⏸"
		}
		right = fmt.Sprintf("%s %s / %s  step %s ",
			icon,
			timeutil.FormatTime(state.TimePos),
			timeutil.FormatTime(state.Duration),
			formatStep(state.Step),
		)
	}

	return styles.Bar.Bold(true).Render(layout.SpreadEnds(left, right, width))
}

// StatusLine renders the bottom message line. Export outcomes are coloured.
func StatusLine(msg string, width int) string {
	style := lipgloss.NewStyle()
	switch {
	case msg == export.StatusSaved:
		style = styles.Success
	case msg == export.StatusFailed, isRejection(msg):
		style = styles.Warning
	}
	return styles.Bar.Render(layout.PadToWidth(" "+style.Render(msg), width))
}

// isRejection matches the messages of refused actions.
func isRejection(msg string) bool {
	for _, prefix := range []string{"No ", "Invalid", "Export already", "Config error"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

func formatStep(step float64) string {
	return timeutil.FormatSeconds(step) + "s"
}
