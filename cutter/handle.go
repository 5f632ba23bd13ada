package cutter

import (
	"github.com/user/video-cutter/mpv"
)

// Engine is the part of the mpv session the cutter drives. *mpv.Client
// implements it.
type Engine interface {
	PollEvent() mpv.Event
	CommandAsync(args ...interface{}) error
	SetPropertyAsync(name string, value interface{}) error
	GetInt64(name string) (int64, error)
	Terminate() error
}

// Handle owns the one engine session of a UI. Once released, every method
// is a no-op: commands return mpv.ErrNotConnected and PollEvent returns the
// none event.
type Handle struct {
	engine Engine
}

// NewHandle wraps engine. A nil engine gives a handle that is already
// released.
func NewHandle(engine Engine) *Handle {
	return &Handle{engine: engine}
}

// Live reports whether the session can still be used.
func (h *Handle) Live() bool {
	return h != nil && h.engine != nil
}

// Release terminates the session. Calling it again does nothing.
func (h *Handle) Release() {
	if !h.Live() {
		return
	}
	e := h.engine
	h.engine = nil
	_ = e.Terminate()
}

// PollEvent returns the next pending engine event without blocking.
func (h *Handle) PollEvent() mpv.Event {
	if !h.Live() {
		return mpv.Event{ID: mpv.EventNone}
	}
	return h.engine.PollEvent()
}

// Command issues an asynchronous mpv command.
func (h *Handle) Command(args ...interface{}) error {
	if !h.Live() {
		return mpv.ErrNotConnected
	}
	return h.engine.CommandAsync(args...)
}

// SetProperty sets a property without waiting for mpv.
func (h *Handle) SetProperty(name string, value interface{}) error {
	if !h.Live() {
		return mpv.ErrNotConnected
	}
	return h.engine.SetPropertyAsync(name, value)
}

// GetInt64 queries an integer property synchronously.
func (h *Handle) GetInt64(name string) (int64, error) {
	if !h.Live() {
		return 0, mpv.ErrNotConnected
	}
	return h.engine.GetInt64(name)
}
