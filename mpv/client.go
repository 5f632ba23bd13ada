package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultSocketPath is the default Unix socket path for mpv IPC.
	DefaultSocketPath = "/tmp/video-cutter-mpv.sock"
	// DefaultReplyTimeout bounds how long a synchronous command waits for mpv.
	DefaultReplyTimeout = 2 * time.Second
)

var (
	// ErrNotConnected is returned when attempting operations on a disconnected
	// or terminated client.
	ErrNotConnected = errors.New("mpv: not connected")
	// ErrSocketNotFound is returned when the socket file doesn't exist.
	ErrSocketNotFound = errors.New("mpv: socket not found - is mpv running with --input-ipc-server?")
	// ErrTimeout is returned when mpv does not answer a command in time.
	ErrTimeout = errors.New("mpv: timed out waiting for reply")

	// requestID is a global counter for generating unique request IDs.
	requestID uint64
	// observeID numbers observe_property registrations.
	observeID int64
)

// ipcRequest represents a JSON IPC request to mpv.
type ipcRequest struct {
	Command   []interface{} `json:"command"`
	RequestID uint64        `json:"request_id"`
}

// ipcMessage is one line read from the socket: a reply to a request
// (RequestID set) or an unsolicited event (Event set).
type ipcMessage struct {
	Data      interface{} `json:"data"`
	RequestID uint64      `json:"request_id"`
	Error     string      `json:"error"`
	Event     string      `json:"event"`
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
}

// Client is an mpv IPC session over a Unix socket.
//
// A reader goroutine demultiplexes replies and events. Events are queued and
// announced through the wakeup callback; they are only consumed by PollEvent.
// After Terminate every method is a no-op returning ErrNotConnected, and the
// methods are also safe on a nil *Client.
type Client struct {
	socketPath   string
	replyTimeout time.Duration
	logger       *zap.Logger

	mu         sync.Mutex
	conn       net.Conn
	pending    map[uint64]chan ipcMessage
	terminated bool

	writeMu sync.Mutex

	evMu         sync.Mutex
	events       []Event
	shutdownSent bool
	wakeup       func()
}

// NewClient creates a new mpv IPC client.
// If socketPath is empty, DefaultSocketPath is used.
func NewClient(socketPath string) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	return &Client{
		socketPath:   socketPath,
		replyTimeout: DefaultReplyTimeout,
		logger:       zap.NewNop(),
		pending:      make(map[uint64]chan ipcMessage),
	}
}

// SetLogger replaces the client's logger.
func (c *Client) SetLogger(l *zap.Logger) {
	if l != nil {
		c.logger = l
	}
}

// SetWakeupCallback registers fn to be called, from the reader goroutine,
// every time an event is queued. fn must return quickly and must not call
// back into the client.
func (c *Client) SetWakeupCallback(fn func()) {
	c.evMu.Lock()
	c.wakeup = fn
	c.evMu.Unlock()
}

// Connect establishes a connection to the mpv IPC socket and starts the
// reader goroutine.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.terminated {
		return ErrNotConnected
	}
	if c.conn != nil {
		return nil
	}

	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return ErrSocketNotFound
	}

	c.conn = conn
	go c.readLoop(conn)
	return nil
}

// ConnectWithRetry calls Connect until it succeeds or attempts run out,
// sleeping interval before each try. mpv needs a moment after launch before
// its socket exists.
func (c *Client) ConnectWithRetry(attempts int, interval time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		time.Sleep(interval)
		if err = c.Connect(); err == nil {
			return nil
		}
	}
	return err
}

// Close drops the connection without asking mpv to quit. The client can
// connect again afterwards.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Close()
}

// Terminate asks mpv to quit, closes the connection and invalidates the
// client for good. It is idempotent.
func (c *Client) Terminate() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	if c.terminated {
		c.mu.Unlock()
		return nil
	}
	c.terminated = true
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	c.evMu.Lock()
	c.events = nil
	c.shutdownSent = true
	c.evMu.Unlock()

	if conn == nil {
		return nil
	}
	// Best effort: mpv may already be gone.
	if data, err := json.Marshal(ipcRequest{Command: []interface{}{"quit"}}); err == nil {
		c.writeMu.Lock()
		_, _ = conn.Write(append(data, '\n'))
		c.writeMu.Unlock()
	}
	return conn.Close()
}

// IsConnected returns true if the client is connected to mpv.
func (c *Client) IsConnected() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// SocketPath returns the socket path this client is configured to use.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// PollEvent returns the next queued event without blocking. It returns an
// event with ID EventNone when nothing is pending.
func (c *Client) PollEvent() Event {
	if c == nil {
		return Event{ID: EventNone}
	}
	c.evMu.Lock()
	defer c.evMu.Unlock()
	if len(c.events) == 0 {
		return Event{ID: EventNone}
	}
	ev := c.events[0]
	c.events[0] = Event{}
	c.events = c.events[1:]
	return ev
}

// ObserveProperty asks mpv to send property-change events for name.
func (c *Client) ObserveProperty(name string) error {
	id := atomic.AddInt64(&observeID, 1)
	_, err := c.sendCommand(true, "observe_property", id, name)
	return err
}

// Command runs an mpv command and waits for its reply.
func (c *Client) Command(args ...interface{}) (interface{}, error) {
	return c.sendCommand(true, args...)
}

// CommandAsync sends an mpv command without waiting for the reply.
func (c *Client) CommandAsync(args ...interface{}) error {
	_, err := c.sendCommand(false, args...)
	return err
}

// GetProperty retrieves the value of an mpv property.
// The property name should be the mpv property name (e.g., "time-pos", "duration", "pause").
func (c *Client) GetProperty(name string) (interface{}, error) {
	return c.sendCommand(true, "get_property", name)
}

// SetProperty sets the value of an mpv property and waits for mpv to accept it.
func (c *Client) SetProperty(name string, value interface{}) error {
	_, err := c.sendCommand(true, "set_property", name, value)
	return err
}

// SetPropertyAsync sets the value of an mpv property without waiting.
func (c *Client) SetPropertyAsync(name string, value interface{}) error {
	_, err := c.sendCommand(false, "set_property", name, value)
	return err
}

// GetInt64 retrieves an integer property such as "dwidth" or "track-list/count".
func (c *Client) GetInt64(name string) (int64, error) {
	result, err := c.GetProperty(name)
	if err != nil {
		return 0, err
	}
	f, err := toFloat64(result)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

// GetTimePos returns the current playback position in seconds.
func (c *Client) GetTimePos() (float64, error) {
	result, err := c.GetProperty("time-pos")
	if err != nil {
		return 0, err
	}
	return toFloat64(result)
}

// GetDuration returns the total duration of the video in seconds.
func (c *Client) GetDuration() (float64, error) {
	result, err := c.GetProperty("duration")
	if err != nil {
		return 0, err
	}
	return toFloat64(result)
}

// GetPaused returns true if playback is paused.
func (c *Client) GetPaused() (bool, error) {
	result, err := c.GetProperty("pause")
	if err != nil {
		return false, err
	}
	paused, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("mpv: unexpected pause value type: %T", result)
	}
	return paused, nil
}

// toFloat64 converts an interface{} to float64.
// JSON numbers from mpv are typically decoded as float64.
func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("mpv: unexpected numeric value type: %T", v)
	}
}

// sendCommand writes {"command": [args...], "request_id": <id>} as a
// newline-terminated line. With wait set it blocks until the reader
// goroutine hands over the matching reply.
func (c *Client) sendCommand(wait bool, args ...interface{}) (interface{}, error) {
	if c == nil {
		return nil, ErrNotConnected
	}

	reqID := atomic.AddUint64(&requestID, 1)
	data, err := json.Marshal(ipcRequest{Command: args, RequestID: reqID})
	if err != nil {
		return nil, fmt.Errorf("mpv: failed to marshal command: %w", err)
	}
	data = append(data, '\n')

	c.mu.Lock()
	conn := c.conn
	if conn == nil {
		c.mu.Unlock()
		return nil, ErrNotConnected
	}
	var reply chan ipcMessage
	if wait {
		reply = make(chan ipcMessage, 1)
		c.pending[reqID] = reply
	}
	c.mu.Unlock()

	c.writeMu.Lock()
	_, err = conn.Write(data)
	c.writeMu.Unlock()
	if err != nil {
		c.dropPending(reqID)
		return nil, fmt.Errorf("mpv: failed to send command: %w", err)
	}
	if !wait {
		return nil, nil
	}

	timer := time.NewTimer(c.replyTimeout)
	defer timer.Stop()
	select {
	case msg, ok := <-reply:
		if !ok {
			return nil, ErrNotConnected
		}
		if msg.Error != "" && msg.Error != "success" {
			return nil, fmt.Errorf("mpv: %s", msg.Error)
		}
		return msg.Data, nil
	case <-timer.C:
		c.dropPending(reqID)
		return nil, ErrTimeout
	}
}

func (c *Client) dropPending(reqID uint64) {
	c.mu.Lock()
	delete(c.pending, reqID)
	c.mu.Unlock()
}

// readLoop runs on its own goroutine for the lifetime of conn.
func (c *Client) readLoop(conn net.Conn) {
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			c.handleLine(line)
		}
		if err != nil {
			c.connectionLost(conn)
			return
		}
	}
}

func (c *Client) handleLine(line []byte) {
	var msg ipcMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		c.logger.Debug("skipping malformed line", zap.ByteString("line", line), zap.Error(err))
		return
	}

	if msg.Event != "" {
		c.pushEvent(decodeEvent(msg))
		return
	}

	c.mu.Lock()
	reply, ok := c.pending[msg.RequestID]
	delete(c.pending, msg.RequestID)
	c.mu.Unlock()
	if ok {
		reply <- msg
	}
}

// connectionLost fails every waiting request and, unless the client was
// closed on purpose, queues a shutdown event so the UI lets go of the session.
func (c *Client) connectionLost(conn net.Conn) {
	c.mu.Lock()
	current := c.conn == conn
	if current {
		c.conn = nil
	}
	for id, reply := range c.pending {
		close(reply)
		delete(c.pending, id)
	}
	terminated := c.terminated
	c.mu.Unlock()

	if current && !terminated {
		c.logger.Info("mpv connection lost", zap.String("socket", c.socketPath))
		c.pushEvent(Event{ID: EventShutdown, Name: "shutdown"})
	}
}

func (c *Client) pushEvent(ev Event) {
	c.evMu.Lock()
	if ev.ID == EventShutdown {
		if c.shutdownSent {
			c.evMu.Unlock()
			return
		}
		c.shutdownSent = true
	}
	c.events = append(c.events, ev)
	wake := c.wakeup
	c.evMu.Unlock()

	if wake != nil {
		wake()
	}
}
