package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/user/video-cutter/bridge"
	"github.com/user/video-cutter/config"
	"github.com/user/video-cutter/cutter"
	"github.com/user/video-cutter/pkg/export"
	"github.com/user/video-cutter/tui/components"
	"github.com/user/video-cutter/tui/forms"
	"github.com/user/video-cutter/tui/layout"
)

// maxJobs is how many exports the export panel remembers.
const maxJobs = 5

// StatusExportCancelled is shown when the user declines to overwrite a file.
const StatusExportCancelled = "Export cancelled"

type mode int

const (
	modePlayer mode = iota
	modeOpen
	modeSave
	modeHelp
)

// wakeupMsg tells the UI goroutine that engine events are waiting.
type wakeupMsg struct{}

// waitForWakeup blocks until the engine signals pending events.
func waitForWakeup(w *bridge.Wakeup) tea.Cmd {
	return func() tea.Msg {
		<-w.C()
		return wakeupMsg{}
	}
}

// Options holds the collaborators of the TUI.
type Options struct {
	Cutter      *cutter.Cutter
	Wakeup      *bridge.Wakeup
	Invoker     *export.Invoker
	Config      config.Config
	ConfigPath  string
	InitialFile string
	Logger      *zap.Logger
}

// Model is the Bubbletea model of the cutter window.
type Model struct {
	cutter  *cutter.Cutter
	wakeup  *bridge.Wakeup
	invoker *export.Invoker
	logger  *zap.Logger
	keys    keyMap

	cfg     config.Config
	cfgPath string
	watcher *fsnotify.Watcher

	// ctx is cancelled on quit and stops running exports
	ctx    context.Context
	cancel context.CancelFunc

	width    int
	height   int
	mode     mode
	quitting bool

	form       *huh.Form
	openResult *forms.OpenResult
	saveResult *forms.SaveResult
	saveFormat export.Format

	jobs    []components.ExportJob
	ticking bool

	initialFile string
}

// NewModel creates the model. A config watcher is started when ConfigPath
// is set; failing to watch only disables live reload.
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	wakeup := opts.Wakeup
	if wakeup == nil {
		wakeup = bridge.NewWakeup()
	}
	inv := opts.Invoker
	if inv == nil {
		inv = export.NewInvoker(opts.Config.FfmpegPath, nil, logger)
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		cutter:      opts.Cutter,
		wakeup:      wakeup,
		invoker:     inv,
		logger:      logger,
		keys:        defaultKeyMap(),
		cfg:         opts.Config,
		cfgPath:     opts.ConfigPath,
		ctx:         ctx,
		cancel:      cancel,
		initialFile: opts.InitialFile,
	}
	if m.cfgPath != "" {
		w, err := newConfigWatcher(m.cfgPath)
		if err != nil {
			logger.Warn("config reload disabled", zap.String("path", m.cfgPath), zap.Error(err))
		} else {
			m.watcher = w
		}
	}
	return m
}

// Init starts listening for engine wakeups and loads the initial file.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		waitForWakeup(m.wakeup),
		tea.SetWindowTitle(m.cutter.Projection().Title),
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForConfigChange(m.watcher, m.cfgPath, m.logger))
	}
	if m.initialFile != "" {
		m.report(m.cutter.Load(m.initialFile))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.form != nil {
			m.form = m.form.WithWidth(m.width - 2)
		}
		return m, nil

	case wakeupMsg:
		return m, m.dispatch()

	case exportDoneMsg:
		m.cutter.FinishExport(msg.result)
		m.finishJob(msg.result)
		return m, nil

	case exportTickMsg:
		if m.exportsRunning() {
			return m, exportTick()
		}
		m.ticking = false
		return m, nil

	case configChangedMsg:
		m.reloadConfig()
		return m, waitForConfigChange(m.watcher, m.cfgPath, m.logger)
	}

	switch m.mode {
	case modeOpen, modeSave:
		return m.updateForm(msg)
	case modeHelp:
		if _, ok := msg.(tea.KeyMsg); ok {
			m.mode = modePlayer
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

// dispatch drains the engine queue and waits for the next wakeup.
func (m *Model) dispatch() tea.Cmd {
	res := m.cutter.Dispatch()
	cmds := []tea.Cmd{waitForWakeup(m.wakeup)}
	if res.TitleChanged {
		cmds = append(cmds, tea.SetWindowTitle(m.cutter.Projection().Title))
	}
	if res.Shutdown {
		m.logger.Info("player shut down")
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	enabled := m.cutter.Projection().ControlsEnabled

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp

	case key.Matches(msg, m.keys.Open):
		return m.openForm()

	case key.Matches(msg, m.keys.Back):
		m.report(m.cutter.SeekRelative(-1))

	case key.Matches(msg, m.keys.Forward):
		m.report(m.cutter.SeekRelative(1))

	case key.Matches(msg, m.keys.FrameBack):
		m.report(m.cutter.FrameBackStep())

	case key.Matches(msg, m.keys.FrameNext):
		m.report(m.cutter.FrameStep())

	case key.Matches(msg, m.keys.PlayPause):
		// space always toggles; p is the play button
		if msg.String() == " " || enabled {
			m.report(m.cutter.TogglePause())
		}
	}

	if !enabled {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Stop):
		m.report(m.cutter.Stop())

	case key.Matches(msg, m.keys.MarkStart):
		m.cutter.MarkStart()

	case key.Matches(msg, m.keys.MarkEnd):
		m.cutter.MarkEnd()

	case key.Matches(msg, m.keys.SaveMP4):
		return m.saveForm(export.FormatMP4)

	case key.Matches(msg, m.keys.SaveWebM):
		return m.saveForm(export.FormatWebM)

	case key.Matches(msg, m.keys.SeekToTens):
		tens := float64(msg.String()[0] - '0')
		m.report(m.cutter.SeekSlider(tens * 10))
	}
	return m, nil
}

// handleMouse seeks when the timeline is clicked or dragged.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Button != tea.MouseButtonLeft {
		return
	}
	if msg.Action != tea.MouseActionPress && msg.Action != tea.MouseActionMotion {
		return
	}
	if !m.cutter.Projection().ControlsEnabled {
		return
	}
	bar := headerHeight + components.TimelineBarRow
	if msg.Y != bar && msg.Y != bar+1 {
		return
	}
	percent, ok := components.TimelinePercentAt(msg.X, m.width)
	if !ok {
		return
	}
	m.report(m.cutter.SeekSlider(percent))
}

// report shows a failed engine command on the status line.
func (m *Model) report(err error) {
	if err != nil {
		m.cutter.SetStatus(err.Error())
	}
}

func (m *Model) openForm() (tea.Model, tea.Cmd) {
	m.openResult = &forms.OpenResult{}
	m.form = forms.NewOpenForm(m.cutter.Source(), m.openResult).WithWidth(m.width - 2)
	m.mode = modeOpen
	return m, m.form.Init()
}

// saveForm asks for the output path after the clip checks pass. Rejections
// are shown without opening the prompt.
func (m *Model) saveForm(f export.Format) (tea.Model, tea.Cmd) {
	if err := m.cutter.CheckExport(f); err != nil {
		return m, nil
	}
	preset, err := m.cutter.Preset(f)
	if err != nil {
		m.report(err)
		return m, nil
	}
	m.saveFormat = f
	m.saveResult = &forms.SaveResult{}
	suggested := m.cutter.DefaultOutput(f, forms.ExpandHome(m.cfg.OutputDir))
	m.form = forms.NewSaveForm(preset.Label, suggested, m.saveResult).WithWidth(m.width - 2)
	m.mode = modeSave
	return m, m.form.Init()
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		return m.closeForm(false)
	case huh.StateAborted:
		return m.closeForm(true)
	}
	return m, cmd
}

func (m *Model) closeForm(aborted bool) (tea.Model, tea.Cmd) {
	current := m.mode
	m.mode = modePlayer
	m.form = nil

	if current == modeOpen {
		if aborted {
			return m, nil
		}
		path, err := forms.ResolveInputPath(m.openResult.Path)
		if err != nil {
			m.report(err)
			return m, nil
		}
		m.report(m.cutter.Load(path))
		return m, nil
	}

	output := ""
	if !aborted {
		output = forms.ExpandHome(strings.TrimSpace(m.saveResult.Path))
		if output != "" && !m.saveResult.Overwrite {
			m.cutter.SetStatus(StatusExportCancelled)
			return m, nil
		}
	}
	return m, m.startExport(m.saveFormat, output)
}

// startExport claims the slot for f and runs the export in the background.
// An empty output is rejected by the cutter.
func (m *Model) startExport(f export.Format, output string) tea.Cmd {
	req, err := m.cutter.RequestExport(f, output)
	if err != nil {
		return nil
	}
	m.startJob(req)
	cmds := []tea.Cmd{runExport(m.ctx, m.invoker, req)}
	if !m.ticking {
		m.ticking = true
		cmds = append(cmds, exportTick())
	}
	return tea.Batch(cmds...)
}

// reloadConfig applies the settings that can change while running.
func (m *Model) reloadConfig() {
	cfg, err := config.LoadConfig(m.cfgPath)
	if err != nil {
		m.logger.Warn("config reload failed", zap.Error(err))
		m.cutter.SetStatus("Config error: " + err.Error())
		return
	}
	m.cfg = cfg
	m.cutter.SetSeekStep(cfg.SeekStep)
	m.cutter.SetPresets(cfg.Presets())
	m.logger.Info("config reloaded", zap.String("path", m.cfgPath))
	m.cutter.SetStatus("Config reloaded")
}

// Close stops running exports and releases the watcher and the engine.
func (m *Model) Close() {
	m.cancel()
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
	m.cutter.Close()
}

const headerHeight = 1

// View renders the header, timeline, controls, the prompt or export panel
// and the status line.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}
	if m.mode == modeHelp {
		return components.HelpOverlay(m.keys.helpGroups(), m.width, m.height)
	}

	p := m.cutter.Projection()
	clip := m.cutter.Clip()

	header := components.Header(components.HeaderState{
		Title:    p.Title,
		Paused:   p.Paused,
		Loaded:   p.ControlsEnabled,
		Live:     m.cutter.Live(),
		TimePos:  p.TimePos,
		Duration: p.Duration,
		Step:     m.cutter.SeekStep(),
	}, m.width)

	timeline := components.Timeline(components.TimelineState{
		Percent:   p.Slider,
		TimePos:   p.TimePos,
		Duration:  p.Duration,
		ClipStart: clip.Start,
		ClipEnd:   clip.End,
		Enabled:   p.ControlsEnabled,
	}, m.width)

	controls := components.Controls(components.ControlsState{
		PlayLabel: p.PlayLabel,
		Enabled:   p.ControlsEnabled,
		Exporting: p.Exporting,
	}, m.width)

	var body string
	if m.form != nil {
		body = m.form.View()
	} else {
		body = components.ExportPanel(m.jobs, time.Now(), m.width)
	}

	status := components.StatusLine(p.Status, m.width)

	used := lipgloss.Height(header) + lipgloss.Height(timeline) + lipgloss.Height(controls) + lipgloss.Height(status)
	content := layout.Container{Width: m.width, Height: m.height - used}.Render(body)

	parts := []string{header, timeline, controls}
	if content != "" {
		parts = append(parts, content)
	}
	parts = append(parts, status)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Run starts the Bubbletea program and blocks until the user quits.
func Run(opts Options) error {
	model := NewModel(opts)
	defer model.Close()
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
