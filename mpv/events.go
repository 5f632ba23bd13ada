package mpv

import "math"

// EventID identifies the kind of an mpv event.
type EventID int

const (
	// EventNone means the queue is empty (or the session is gone).
	EventNone EventID = iota
	// EventPropertyChange carries a Property observed with ObserveProperty.
	EventPropertyChange
	// EventVideoReconfig is sent when the video output may have changed size.
	EventVideoReconfig
	// EventShutdown is sent when mpv quits or the IPC connection drops.
	EventShutdown
	// EventOther is any event the client does not model.
	EventOther
)

func (id EventID) String() string {
	switch id {
	case EventNone:
		return "none"
	case EventPropertyChange:
		return "property-change"
	case EventVideoReconfig:
		return "video-reconfig"
	case EventShutdown:
		return "shutdown"
	default:
		return "other"
	}
}

// Event is one notification pulled from the client with PollEvent.
type Event struct {
	ID EventID
	// Name is the raw mpv event name, e.g. "file-loaded" for EventOther.
	Name string
	// Property is only set for EventPropertyChange.
	Property Property
}

// Format is the payload type of a property change, mirroring mpv's
// MPV_FORMAT_* values.
type Format int

const (
	FormatNone Format = iota
	FormatString
	FormatFlag
	FormatInt64
	FormatDouble
	FormatNode
)

func (f Format) String() string {
	switch f {
	case FormatNone:
		return "none"
	case FormatString:
		return "string"
	case FormatFlag:
		return "flag"
	case FormatInt64:
		return "int64"
	case FormatDouble:
		return "double"
	case FormatNode:
		return "node"
	default:
		return "unknown"
	}
}

// Property is a tagged property value. The accessors return ok=false when the
// payload is of another format, so callers never have to type-assert.
type Property struct {
	Name   string
	Format Format
	value  interface{}
}

// NewProperty builds a Property, deriving the format from the decoded JSON
// payload. A nil payload (mpv sends none when a property is unavailable)
// yields FormatNone.
func NewProperty(name string, data interface{}) Property {
	p := Property{Name: name, value: data}
	switch v := data.(type) {
	case nil:
		p.Format = FormatNone
	case string:
		p.Format = FormatString
	case bool:
		p.Format = FormatFlag
	case int64:
		p.Format = FormatInt64
	case int:
		p.Format = FormatInt64
		p.value = int64(v)
	case float64:
		p.Format = FormatDouble
	default:
		p.Format = FormatNode
	}
	return p
}

// Double returns the value of a FormatDouble property.
func (p Property) Double() (float64, bool) {
	if p.Format != FormatDouble {
		return 0, false
	}
	v, ok := p.value.(float64)
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Flag returns the value of a FormatFlag property.
func (p Property) Flag() (bool, bool) {
	if p.Format != FormatFlag {
		return false, false
	}
	v, ok := p.value.(bool)
	return v, ok
}

// Int64 returns the value of a FormatInt64 property.
func (p Property) Int64() (int64, bool) {
	if p.Format != FormatInt64 {
		return 0, false
	}
	v, ok := p.value.(int64)
	return v, ok
}

// Text returns the value of a FormatString property.
func (p Property) Text() (string, bool) {
	if p.Format != FormatString {
		return "", false
	}
	v, ok := p.value.(string)
	return v, ok
}

// Node returns the raw decoded value of a FormatNode property (a slice or map).
func (p Property) Node() (interface{}, bool) {
	if p.Format != FormatNode {
		return nil, false
	}
	return p.value, true
}

// decodeEvent converts a JSON IPC event line into an Event.
func decodeEvent(msg ipcMessage) Event {
	switch msg.Event {
	case "property-change":
		return Event{
			ID:       EventPropertyChange,
			Name:     msg.Event,
			Property: NewProperty(msg.Name, msg.Data),
		}
	case "video-reconfig":
		return Event{ID: EventVideoReconfig, Name: msg.Event}
	case "shutdown":
		return Event{ID: EventShutdown, Name: msg.Event}
	default:
		return Event{ID: EventOther, Name: msg.Event}
	}
}
