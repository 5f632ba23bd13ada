// Package cutter turns mpv events into UI state and owns the clip selection.
//
// A Cutter is not safe for concurrent use. Everything except the engine's
// wakeup callback runs on the UI goroutine.
package cutter

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/user/video-cutter/pkg/export"
)

// DefaultSeekStep is the relative seek distance for the arrow keys.
const DefaultSeekStep = 5.0

// ExportGuard hands out the per-format export slot. *export.Invoker
// implements it.
type ExportGuard interface {
	Acquire(f export.Format) error
	Release(f export.Format)
}

// Options configures a Cutter.
type Options struct {
	SeekStep float64
	Presets  map[export.Format]export.Preset
	Guard    ExportGuard
	Logger   *zap.Logger
}

// Cutter is the clip range controller and the event dispatcher of one
// engine session.
type Cutter struct {
	handle   *Handle
	view     Projection
	clip     ClipRange
	seekStep float64
	presets  map[export.Format]export.Preset
	guard    ExportGuard
	logger   *zap.Logger
}

// New creates a Cutter owning handle.
func New(handle *Handle, opts Options) *Cutter {
	c := &Cutter{
		handle:   handle,
		view:     newProjection(),
		seekStep: opts.SeekStep,
		guard:    opts.Guard,
		logger:   opts.Logger,
	}
	if c.seekStep <= 0 {
		c.seekStep = DefaultSeekStep
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.SetPresets(opts.Presets)
	return c
}

// Projection returns a copy of the current UI state.
func (c *Cutter) Projection() Projection {
	return c.view.clone()
}

// Clip returns the current clip range.
func (c *Cutter) Clip() ClipRange {
	return c.clip
}

// Live reports whether the engine session is still usable.
func (c *Cutter) Live() bool {
	return c.handle.Live()
}

// SeekStep returns the arrow key seek distance in seconds.
func (c *Cutter) SeekStep() float64 {
	return c.seekStep
}

// SetSeekStep changes the arrow key seek distance. Non-positive values are
// ignored.
func (c *Cutter) SetSeekStep(s float64) {
	if s > 0 {
		c.seekStep = s
	}
}

// SetPresets replaces the export presets. A nil map restores the built-in
// ones.
func (c *Cutter) SetPresets(presets map[export.Format]export.Preset) {
	if presets == nil {
		presets = export.Presets
	}
	c.presets = presets
}

// SetStatus shows a transient message on the status line.
func (c *Cutter) SetStatus(msg string) {
	c.view.Status = msg
}

// MarkStart sets the clip start to the current position.
func (c *Cutter) MarkStart() {
	c.clip.Start = c.view.TimePos
	c.view.Status = c.clip.Summary(c.view.TimePos)
}

// MarkEnd sets the clip end to the current position.
func (c *Cutter) MarkEnd() {
	c.clip.End = c.view.TimePos
	c.view.Status = c.clip.Summary(c.view.TimePos)
}

// Source is the path of the loaded media.
func (c *Cutter) Source() string {
	return c.view.Path
}

// Preset returns the configured preset for f.
func (c *Cutter) Preset(f export.Format) (export.Preset, error) {
	p, ok := c.presets[f]
	if !ok {
		return export.Preset{}, fmt.Errorf("unknown export format %q", f)
	}
	return p, nil
}

// CheckExport runs the session and clip checks of RequestExport without
// claiming anything. The UI calls it before asking for an output path.
func (c *Cutter) CheckExport(f export.Format) error {
	err := c.checkExport()
	if err == nil && c.view.Exporting[f] {
		err = export.ErrBusy
	}
	if err != nil {
		c.view.Status = err.Error()
	}
	return err
}

func (c *Cutter) checkExport() error {
	if !c.handle.Live() {
		return ErrNoSession
	}
	return c.clip.Validate(c.view.Duration)
}

// DefaultOutput suggests an output path for the current clip in dir.
func (c *Cutter) DefaultOutput(f export.Format, dir string) string {
	p, err := c.Preset(f)
	if err != nil || c.Source() == "" {
		return ""
	}
	return export.BuildClipPath(c.Source(), dir, c.clip.Start, c.clip.End, p)
}

// RequestExport validates the clip and claims the export slot for f. The
// first failing check is shown on the status line and returned, and nothing
// is claimed. On success the format's control is disabled until
// FinishExport.
func (c *Cutter) RequestExport(f export.Format, output string) (export.Request, error) {
	req, err := c.requestExport(f, output)
	if err != nil {
		c.view.Status = err.Error()
		c.logger.Info("export rejected", zap.String("format", string(f)), zap.Error(err))
		return export.Request{}, err
	}
	c.view.Exporting[f] = true
	c.logger.Info("export requested",
		zap.String("job", req.JobID),
		zap.String("format", string(f)),
		zap.Float64("start", req.Start),
		zap.Float64("duration", req.Duration),
	)
	return req, nil
}

func (c *Cutter) requestExport(f export.Format, output string) (export.Request, error) {
	if err := c.checkExport(); err != nil {
		return export.Request{}, err
	}
	if output == "" {
		return export.Request{}, ErrNoFilename
	}
	if c.view.Exporting[f] {
		return export.Request{}, export.ErrBusy
	}
	preset, err := c.Preset(f)
	if err != nil {
		return export.Request{}, err
	}
	if c.guard != nil {
		if err := c.guard.Acquire(f); err != nil {
			return export.Request{}, err
		}
	}
	return export.NewRequest(c.Source(), c.clip.Start, c.clip.End, output, preset), nil
}

// FinishExport shows the outcome and re-enables the format's control,
// whatever the outcome.
func (c *Cutter) FinishExport(res export.Result) {
	delete(c.view.Exporting, res.Request.Preset.Format)
	c.view.Status = res.Status()
}

// AbortExport gives back a slot claimed by RequestExport when the export is
// never run.
func (c *Cutter) AbortExport(f export.Format) {
	if !c.view.Exporting[f] {
		return
	}
	delete(c.view.Exporting, f)
	if c.guard != nil {
		c.guard.Release(f)
	}
}

// SeekSlider seeks to percent (0 to 100) of the duration. The slider itself
// only follows percent-pos from the engine.
func (c *Cutter) SeekSlider(percent float64) error {
	if !c.handle.Live() {
		return ErrNoSession
	}
	return c.handle.SetProperty("time-pos", clampPercent(percent)/100*c.view.Duration)
}

// TogglePause flips the pause property.
func (c *Cutter) TogglePause() error {
	return c.command("cycle", "pause")
}

// Stop stops playback and unloads the file.
func (c *Cutter) Stop() error {
	return c.command("stop")
}

// SeekRelative seeks by dir times the seek step; dir is -1 or +1.
func (c *Cutter) SeekRelative(dir int) error {
	offset := float64(dir) * c.seekStep
	return c.command("seek", fmt.Sprintf("%+g", offset), "relative")
}

// FrameStep advances one frame and pauses.
func (c *Cutter) FrameStep() error {
	return c.command("frame-step")
}

// FrameBackStep goes back one frame and pauses.
func (c *Cutter) FrameBackStep() error {
	return c.command("frame-back-step")
}

// Load opens path in the engine.
func (c *Cutter) Load(path string) error {
	if path == "" {
		return ErrNoFilename
	}
	return c.command("loadfile", path)
}

// Close releases the engine session.
func (c *Cutter) Close() {
	c.handle.Release()
}

func (c *Cutter) command(args ...interface{}) error {
	if !c.handle.Live() {
		return ErrNoSession
	}
	if err := c.handle.Command(args...); err != nil {
		c.logger.Warn("engine command failed", zap.Any("command", args), zap.Error(err))
		return fmt.Errorf("%v: %w", args[0], err)
	}
	return nil
}
