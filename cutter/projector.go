package cutter

import (
	"github.com/user/video-cutter/mpv"
	"github.com/user/video-cutter/pkg/export"
)

const (
	// DefaultTitle is the window title when nothing is loaded.
	DefaultTitle = "Video Cutter"

	// LabelPlay is the play button label while paused.
	LabelPlay = "Play"
	// LabelPause is the play button label while playing.
	LabelPause = "Pause"
)

// Properties are the mpv properties the cutter observes.
var Properties = []string{
	"time-pos",
	"percent-pos",
	"track-list",
	"pause",
	"duration",
	"filename",
	"path",
}

// Projection is the UI state derived from the latest engine properties and
// the clip range. It is rebuilt event by event and never persisted.
type Projection struct {
	Status          string
	Slider          float64
	ControlsEnabled bool
	Title           string
	PlayLabel       string
	Exporting       map[export.Format]bool

	Paused     bool
	TimePos    float64
	HasTimePos bool
	Duration   float64
	Tracks     int64
	Filename   string
	Path       string
}

func newProjection() Projection {
	return Projection{
		Title:     DefaultTitle,
		PlayLabel: LabelPlay,
		Exporting: make(map[export.Format]bool),
	}
}

func (p Projection) clone() Projection {
	exporting := make(map[export.Format]bool, len(p.Exporting))
	for f, busy := range p.Exporting {
		exporting[f] = busy
	}
	p.Exporting = exporting
	return p
}

// applyTimePos caches the position and republishes the clip summary. A none
// payload clears the status line.
func (p *Projection) applyTimePos(prop mpv.Property, clip ClipRange) bool {
	pos, ok := prop.Double()
	if !ok {
		p.HasTimePos = false
		p.Status = ""
		return prop.Format == mpv.FormatNone
	}
	p.TimePos = pos
	p.HasTimePos = true
	p.Status = clip.Summary(pos)
	return true
}

// applyPercentPos moves the slider. It never seeks. A none payload puts the
// slider back to the start.
func (p *Projection) applyPercentPos(prop mpv.Property) bool {
	percent, ok := prop.Double()
	if !ok {
		if prop.Format == mpv.FormatNone {
			p.Slider = 0
			return true
		}
		return false
	}
	p.Slider = clampPercent(percent)
	return true
}

func (p *Projection) applyPause(prop mpv.Property) bool {
	paused, ok := prop.Flag()
	if !ok {
		return false
	}
	p.Paused = paused
	if paused {
		p.PlayLabel = LabelPlay
	} else {
		p.PlayLabel = LabelPause
	}
	return true
}

// applyTrackCount is the only switch for the transport and export controls.
// It reports whether the title changed.
func (p *Projection) applyTrackCount(n int64) bool {
	p.Tracks = n
	if n == 0 {
		p.ControlsEnabled = false
		changed := p.Title != DefaultTitle
		p.Title = DefaultTitle
		return changed
	}
	p.ControlsEnabled = true
	return false
}

func (p *Projection) applyDuration(prop mpv.Property) bool {
	d, ok := prop.Double()
	if !ok {
		return false
	}
	p.Duration = d
	return true
}

// applyFilename sets the title. It reports whether a different file than
// the cached one is now loaded.
func (p *Projection) applyFilename(prop mpv.Property) (newFile bool, ok bool) {
	name, ok := prop.Text()
	if !ok {
		return false, false
	}
	newFile = name != p.Filename
	p.Filename = name
	p.Title = name
	return newFile, true
}

func (p *Projection) applyPath(prop mpv.Property) bool {
	path, ok := prop.Text()
	if !ok {
		return false
	}
	p.Path = path
	return true
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
