package cutter

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/user/video-cutter/mpv"
)

// DispatchResult summarizes one drain of the event queue.
type DispatchResult struct {
	Events       int
	TitleChanged bool
	Shutdown     bool
}

// Dispatch drains every pending engine event and applies it. It must run on
// the UI goroutine, once per wakeup; wakeups coalesce, so one call may see
// many events.
func (c *Cutter) Dispatch() DispatchResult {
	var res DispatchResult
	for c.handle.Live() {
		ev := c.handle.PollEvent()
		if ev.ID == mpv.EventNone {
			break
		}
		res.Events++
		c.handleEvent(ev, &res)
	}
	return res
}

func (c *Cutter) handleEvent(ev mpv.Event, res *DispatchResult) {
	switch ev.ID {
	case mpv.EventPropertyChange:
		if c.applyProperty(ev.Property) {
			res.TitleChanged = true
		}
	case mpv.EventVideoReconfig:
		c.handleReconfig()
	case mpv.EventShutdown:
		c.logger.Info("engine shut down")
		c.handle.Release()
		res.Shutdown = true
	default:
		c.logger.Debug("ignoring event", zap.String("event", ev.Name))
	}
}

// applyProperty routes a property change to the projector and reports
// whether the title changed.
func (c *Cutter) applyProperty(prop mpv.Property) bool {
	title := c.view.Title
	var ok bool

	switch prop.Name {
	case "time-pos":
		ok = c.view.applyTimePos(prop, c.clip)
	case "percent-pos":
		ok = c.view.applyPercentPos(prop)
	case "pause":
		ok = c.view.applyPause(prop)
	case "duration":
		ok = c.view.applyDuration(prop)
	case "track-list":
		var n int64
		n, ok = c.trackCount(prop)
		if ok {
			c.view.applyTrackCount(n)
		}
	case "filename":
		var newFile bool
		newFile, ok = c.view.applyFilename(prop)
		if newFile {
			c.clip = ClipRange{}
			c.logger.Info("file loaded", zap.String("filename", c.view.Filename))
		}
	case "path":
		ok = c.view.applyPath(prop)
	default:
		ok = true
	}

	if !ok {
		c.logger.Debug("skipping property",
			zap.String("name", prop.Name),
			zap.Stringer("format", prop.Format),
		)
	}
	return c.view.Title != title
}

// trackCount asks the engine for track-list/count. If the query fails the
// length of the node payload is used instead.
func (c *Cutter) trackCount(prop mpv.Property) (int64, bool) {
	n, err := c.handle.GetInt64("track-list/count")
	if err == nil {
		return n, true
	}
	c.logger.Debug("track-list/count query failed", zap.Error(err))
	if node, ok := prop.Node(); ok {
		if tracks, ok := node.([]interface{}); ok {
			return int64(len(tracks)), true
		}
	}
	return 0, false
}

// handleReconfig reports the display size. The event does not mean the
// size actually changed.
func (c *Cutter) handleReconfig() {
	w, err := c.handle.GetInt64("dwidth")
	if err != nil {
		return
	}
	h, err := c.handle.GetInt64("dheight")
	if err != nil {
		return
	}
	if w > 0 && h > 0 {
		c.view.Status = fmt.Sprintf("Reconfig: %d %d", w, h)
	}
}
