package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/video-cutter/pkg/export"
)

func TestRenderBoxWidth(t *testing.T) {
	out := RenderBox("Title", []string{"one", "a much longer line than the box allows"}, 20)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines", len(lines))
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 20 {
			t.Errorf("line %d width = %d, want 20: %q", i, w, l)
		}
	}
}

func TestTimelineGeometry(t *testing.T) {
	const width = 80
	out := Timeline(TimelineState{Percent: 50, TimePos: 50, Duration: 100, ClipStart: 10, ClipEnd: 40, Enabled: true}, width)
	lines := strings.Split(out, "\n")
	if len(lines) != TimelineHeight {
		t.Fatalf("Timeline has %d lines, want %d", len(lines), TimelineHeight)
	}
	if !strings.Contains(lines[TimelineBarRow], "●") {
		t.Errorf("bar row has no knob: %q", lines[TimelineBarRow])
	}
	marks := lines[TimelineBarRow+1]
	if !strings.Contains(marks, "[") || !strings.Contains(marks, "]") {
		t.Errorf("marker row = %q", marks)
	}

	bar := barWidth(width)
	if p, ok := TimelinePercentAt(barOffset, width); !ok || p != 0 {
		t.Errorf("left edge = %v, %v", p, ok)
	}
	if p, ok := TimelinePercentAt(barOffset+bar-1, width); !ok || p != 100 {
		t.Errorf("right edge = %v, %v", p, ok)
	}
	if _, ok := TimelinePercentAt(0, width); ok {
		t.Error("border column should not map to the bar")
	}
	if _, ok := TimelinePercentAt(barOffset+bar, width); ok {
		t.Error("time label should not map to the bar")
	}
}

func TestTimelineTooNarrow(t *testing.T) {
	if out := Timeline(TimelineState{}, 20); out != "" {
		t.Errorf("expected nothing for a narrow terminal, got %q", out)
	}
}

func TestControlsShowsBusyFormat(t *testing.T) {
	out := Controls(ControlsState{
		PlayLabel: "Pause",
		Enabled:   true,
		Exporting: map[export.Format]bool{export.FormatWebM: true},
	}, 80)
	for _, want := range []string{"Pause", "Stop", "Start", "End", "MP4", "WebM …"} {
		if !strings.Contains(out, want) {
			t.Errorf("controls missing %q:\n%s", want, out)
		}
	}
}

func TestExportPanel(t *testing.T) {
	now := time.Now()
	if out := ExportPanel(nil, now, 80); out != "" {
		t.Errorf("empty panel = %q", out)
	}
	out := ExportPanel([]ExportJob{
		{Format: export.FormatMP4, Output: "/clips/a.mp4", Start: 10, Duration: 30, Began: now.Add(-3 * time.Second)},
		{Format: export.FormatWebM, Output: "/clips/b.webm", Done: true, Failed: true},
	}, now, 80)
	for _, want := range []string{"a.mp4", "running 3s", "b.webm", export.StatusFailed} {
		if !strings.Contains(out, want) {
			t.Errorf("panel missing %q:\n%s", want, out)
		}
	}
}

func TestHelpOverlaySkipsDisabledBindings(t *testing.T) {
	shown := key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open file"))
	hidden := key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "secret"))
	hidden.SetEnabled(false)
	out := HelpOverlay([]HelpGroup{{Title: "File", Bindings: []key.Binding{shown, hidden}}}, 60, 20)
	if !strings.Contains(out, "open file") || strings.Contains(out, "secret") {
		t.Errorf("help overlay = %q", out)
	}
}

func TestStatusLine(t *testing.T) {
	out := StatusLine("START: 1 END: 2 LENGTH: 1 POS: 1", 50)
	if lipgloss.Width(out) != 50 || !strings.Contains(out, "LENGTH: 1") {
		t.Errorf("StatusLine = %q", out)
	}
}
