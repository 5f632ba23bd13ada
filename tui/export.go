package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/video-cutter/pkg/export"
	"github.com/user/video-cutter/tui/components"
)

// exportDoneMsg carries the outcome of an export back to the UI goroutine.
type exportDoneMsg struct {
	result export.Result
}

// exportTickMsg refreshes the elapsed time of running exports.
type exportTickMsg time.Time

const exportTickInterval = time.Second

// runExport runs req off the UI goroutine. The slot for the format was
// claimed by the cutter before the command was created.
func runExport(ctx context.Context, inv *export.Invoker, req export.Request) tea.Cmd {
	return func() tea.Msg {
		return exportDoneMsg{result: inv.Run(ctx, req)}
	}
}

func exportTick() tea.Cmd {
	return tea.Tick(exportTickInterval, func(t time.Time) tea.Msg {
		return exportTickMsg(t)
	})
}

// startJob records a running export for the export panel.
func (m *Model) startJob(req export.Request) {
	m.jobs = append([]components.ExportJob{{
		Format:   req.Preset.Format,
		Output:   req.Output,
		Start:    req.Start,
		Duration: req.Duration,
		Began:    time.Now(),
	}}, m.jobs...)
	if len(m.jobs) > maxJobs {
		m.jobs = m.jobs[:maxJobs]
	}
}

// finishJob marks the export of res as done.
func (m *Model) finishJob(res export.Result) {
	for i := range m.jobs {
		j := &m.jobs[i]
		if !j.Done && j.Format == res.Request.Preset.Format && j.Output == res.Request.Output {
			j.Done = true
			j.Failed = !res.OK()
			return
		}
	}
}

func (m *Model) exportsRunning() bool {
	for _, j := range m.jobs {
		if !j.Done {
			return true
		}
	}
	return false
}
