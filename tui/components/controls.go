package components

import (
	"strings"

	"github.com/user/video-cutter/pkg/export"
	"github.com/user/video-cutter/tui/styles"
)

// ControlsState is what the button rows show.
type ControlsState struct {
	PlayLabel string
	Enabled   bool
	Exporting map[export.Format]bool
}

type button struct {
	label    string
	shortcut string
	enabled  bool
	busy     bool
}

func (b button) render() string {
	style := styles.Button
	switch {
	case b.busy:
		style = styles.ButtonBusy
	case !b.enabled:
		style = styles.ButtonDisabled
	}
	return style.Render(b.label) + " " + styles.Shortcut.Render(b.shortcut)
}

func renderRow(buttons []button) string {
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		parts[i] = b.render()
	}
	return " " + strings.Join(parts, "   ")
}

// Controls renders the transport row and the export row. A disabled control
// is greyed; an export control stays marked while its export runs.
func Controls(state ControlsState, width int) string {
	transport := []button{
		{label: state.PlayLabel, shortcut: "space", enabled: state.Enabled},
		{label: "Stop", shortcut: "x", enabled: state.Enabled},
		{label: "Start", shortcut: "[", enabled: state.Enabled},
		{label: "End", shortcut: "]", enabled: state.Enabled},
	}

	var saves []button
	for _, f := range export.Formats() {
		p := export.Presets[f]
		busy := state.Exporting[f]
		label := p.Label
		if busy {
			label += " …"
		}
		saves = append(saves, button{
			label:    label,
			shortcut: saveShortcut(f),
			enabled:  state.Enabled && !busy,
			busy:     busy,
		})
	}

	return RenderBox("Controls", []string{renderRow(transport), renderRow(saves)}, width)
}

func saveShortcut(f export.Format) string {
	switch f {
	case export.FormatMP4:
		return "ctrl+s"
	case export.FormatWebM:
		return "ctrl+w"
	}
	return ""
}
