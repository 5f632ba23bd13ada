package components

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/user/video-cutter/pkg/export"
	"github.com/user/video-cutter/pkg/timeutil"
	"github.com/user/video-cutter/tui/styles"
)

// ExportJob is one running or finished export shown in the export panel.
type ExportJob struct {
	Format   export.Format
	Output   string
	Start    float64
	Duration float64
	Began    time.Time
	Done     bool
	Failed   bool
}

// ExportPanel lists the exports of this session, running ones first as
// given by the caller. It renders nothing when there are none.
func ExportPanel(jobs []ExportJob, now time.Time, width int) string {
	if len(jobs) == 0 || width < 10 {
		return ""
	}

	running := lipgloss.NewStyle().Foreground(styles.Amber)
	text := lipgloss.NewStyle().Foreground(styles.LightLavender)

	inner := width - 4
	var lines []string
	for _, j := range jobs {
		var state string
		switch {
		case !j.Done:
			state = running.Render(fmt.Sprintf("running %s", now.Sub(j.Began).Truncate(time.Second)))
		case j.Failed:
			state = styles.Warning.Render(export.StatusFailed)
		default:
			state = styles.Success.Render(export.StatusSaved)
		}
		head := fmt.Sprintf(" %-4s %s +%ss ", export.Presets[j.Format].Label,
			timeutil.FormatTime(j.Start), timeutil.FormatSeconds(j.Duration))

		room := inner - lipgloss.Width(head) - lipgloss.Width(state) - 1
		name := filepath.Base(j.Output)
		if room < 4 {
			name = ""
		} else if lipgloss.Width(name) > room {
			name = ansi.Truncate(name, room, "…")
		}
		lines = append(lines, text.Render(head+name)+" "+state)
	}
	return RenderBox("Exports", lines, width)
}
