package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// fakeMpv is a minimal JSON IPC server. Every request is answered by reply;
// events are written with send.
type fakeMpv struct {
	ln       net.Listener
	mu       sync.Mutex
	conn     net.Conn
	requests chan []interface{}
	reply    func(cmd []interface{}) (interface{}, string)
}

func newFakeMpv(t *testing.T, reply func(cmd []interface{}) (interface{}, string)) (*fakeMpv, string) {
	t.Helper()
	sock := filepath.Join(t.TempDir(), "mpv.sock")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	if reply == nil {
		reply = func(cmd []interface{}) (interface{}, string) {
			return nil, "success"
		}
	}
	f := &fakeMpv{
		ln:       ln,
		requests: make(chan []interface{}, 32),
		reply:    reply,
	}
	go f.serve()
	t.Cleanup(func() { ln.Close() })
	return f, sock
}

func (f *fakeMpv) serve() {
	conn, err := f.ln.Accept()
	if err != nil {
		return
	}
	f.mu.Lock()
	f.conn = conn
	f.mu.Unlock()

	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadBytes('\n')
		if err != nil {
			return
		}
		var req struct {
			Command   []interface{} `json:"command"`
			RequestID uint64        `json:"request_id"`
		}
		if err := json.Unmarshal(line, &req); err != nil {
			continue
		}
		f.requests <- req.Command
		data, status := f.reply(req.Command)
		out, _ := json.Marshal(map[string]interface{}{
			"data":       data,
			"request_id": req.RequestID,
			"error":      status,
		})
		f.write(out)
	}
}

func (f *fakeMpv) write(line []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn != nil {
		f.conn.Write(append(line, '\n'))
	}
}

func (f *fakeMpv) send(ev map[string]interface{}) {
	out, _ := json.Marshal(ev)
	f.write(out)
}

func (f *fakeMpv) hangUp() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn != nil {
		f.conn.Close()
	}
}

func connectClient(t *testing.T, sock string) (*Client, chan struct{}) {
	t.Helper()
	c := NewClient(sock)
	wake := make(chan struct{}, 64)
	c.SetWakeupCallback(func() { wake <- struct{}{} })
	if err := c.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, wake
}

func waitWake(t *testing.T, wake chan struct{}) {
	t.Helper()
	select {
	case <-wake:
	case <-time.After(2 * time.Second):
		t.Fatal("no wakeup")
	}
}

func TestGetPropertyRoundTrip(t *testing.T) {
	_, sock := newFakeMpv(t, func(cmd []interface{}) (interface{}, string) {
		if len(cmd) == 2 && cmd[0] == "get_property" && cmd[1] == "dwidth" {
			return 1920, "success"
		}
		return nil, "property unavailable"
	})
	c, _ := connectClient(t, sock)

	w, err := c.GetInt64("dwidth")
	if err != nil {
		t.Fatalf("GetInt64: %v", err)
	}
	if w != 1920 {
		t.Errorf("dwidth = %d, want 1920", w)
	}

	if _, err := c.GetInt64("dheight"); err == nil {
		t.Error("expected error for unavailable property")
	}
}

func TestEventsArePolledInOrder(t *testing.T) {
	f, sock := newFakeMpv(t, nil)
	c, wake := connectClient(t, sock)

	// Make sure the server has accepted before pushing events.
	if _, err := c.GetProperty("pause"); err != nil {
		t.Fatalf("GetProperty: %v", err)
	}

	f.send(map[string]interface{}{"event": "property-change", "id": 1, "name": "time-pos", "data": 1.5})
	f.send(map[string]interface{}{"event": "property-change", "id": 1, "name": "time-pos", "data": 2.5})
	f.send(map[string]interface{}{"event": "video-reconfig"})
	f.send(map[string]interface{}{"event": "file-loaded"})
	for i := 0; i < 4; i++ {
		waitWake(t, wake)
	}

	first := c.PollEvent()
	if first.ID != EventPropertyChange {
		t.Fatalf("first event = %v, want property-change", first.ID)
	}
	if v, ok := first.Property.Double(); !ok || v != 1.5 {
		t.Errorf("first time-pos = %v (%v), want 1.5", v, ok)
	}
	second := c.PollEvent()
	if v, _ := second.Property.Double(); v != 2.5 {
		t.Errorf("second time-pos = %v, want 2.5", v)
	}
	if ev := c.PollEvent(); ev.ID != EventVideoReconfig {
		t.Errorf("third event = %v, want video-reconfig", ev.ID)
	}
	if ev := c.PollEvent(); ev.ID != EventOther || ev.Name != "file-loaded" {
		t.Errorf("fourth event = %v %q, want other file-loaded", ev.ID, ev.Name)
	}
	if ev := c.PollEvent(); ev.ID != EventNone {
		t.Errorf("drained queue returned %v", ev.ID)
	}
}

func TestPropertyWithoutDataIsFormatNone(t *testing.T) {
	f, sock := newFakeMpv(t, nil)
	c, wake := connectClient(t, sock)
	if _, err := c.GetProperty("pause"); err != nil {
		t.Fatalf("GetProperty: %v", err)
	}

	f.send(map[string]interface{}{"event": "property-change", "id": 3, "name": "duration"})
	waitWake(t, wake)

	ev := c.PollEvent()
	if ev.Property.Format != FormatNone {
		t.Errorf("format = %v, want none", ev.Property.Format)
	}
	if _, ok := ev.Property.Double(); ok {
		t.Error("Double() should fail on a none payload")
	}
}

func TestConnectionLossQueuesShutdownOnce(t *testing.T) {
	f, sock := newFakeMpv(t, nil)
	c, wake := connectClient(t, sock)
	if _, err := c.GetProperty("pause"); err != nil {
		t.Fatalf("GetProperty: %v", err)
	}

	f.send(map[string]interface{}{"event": "shutdown"})
	waitWake(t, wake)
	f.hangUp()

	deadline := time.Now().Add(2 * time.Second)
	for c.IsConnected() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if c.IsConnected() {
		t.Fatal("client still connected after hang-up")
	}

	if ev := c.PollEvent(); ev.ID != EventShutdown {
		t.Fatalf("expected shutdown, got %v", ev.ID)
	}
	if ev := c.PollEvent(); ev.ID != EventNone {
		t.Errorf("expected a single shutdown event, got %v", ev.ID)
	}
	if err := c.CommandAsync("cycle", "pause"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("command after loss: got %v, want ErrNotConnected", err)
	}
}

func TestTerminatedClientIsInert(t *testing.T) {
	f, sock := newFakeMpv(t, nil)
	c, _ := connectClient(t, sock)
	if _, err := c.GetProperty("pause"); err != nil {
		t.Fatalf("GetProperty: %v", err)
	}

	if err := c.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}
	if err := c.Terminate(); err != nil {
		t.Errorf("second Terminate: %v", err)
	}

	// The quit command reaches mpv.
	waitForCommand(t, f, "quit")

	if err := c.Connect(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Connect after Terminate: got %v", err)
	}
	if _, err := c.GetProperty("pause"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("GetProperty after Terminate: got %v", err)
	}
	if ev := c.PollEvent(); ev.ID != EventNone {
		t.Errorf("PollEvent after Terminate: got %v", ev.ID)
	}
}

func waitForCommand(t *testing.T, f *fakeMpv, name string) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case cmd := <-f.requests:
			if len(cmd) > 0 && cmd[0] == name {
				return
			}
		case <-timeout:
			t.Fatalf("%s was not sent", name)
		}
	}
}

func TestNilClientIsSafe(t *testing.T) {
	var c *Client
	if c.IsConnected() {
		t.Error("nil client reports connected")
	}
	if ev := c.PollEvent(); ev.ID != EventNone {
		t.Errorf("nil PollEvent = %v", ev.ID)
	}
	if err := c.CommandAsync("stop"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("nil CommandAsync = %v", err)
	}
	if err := c.Terminate(); err != nil {
		t.Errorf("nil Terminate = %v", err)
	}
}

func TestNewPropertyFormats(t *testing.T) {
	tests := []struct {
		data interface{}
		want Format
	}{
		{nil, FormatNone},
		{"clip.mkv", FormatString},
		{true, FormatFlag},
		{int64(3), FormatInt64},
		{42.0, FormatDouble},
		{[]interface{}{map[string]interface{}{"id": 1.0}}, FormatNode},
	}
	for _, tt := range tests {
		p := NewProperty("x", tt.data)
		if p.Format != tt.want {
			t.Errorf("NewProperty(%v).Format = %v, want %v", tt.data, p.Format, tt.want)
		}
	}

	p := NewProperty("pause", true)
	if _, ok := p.Double(); ok {
		t.Error("Double() on a flag should fail")
	}
	if _, ok := p.Text(); ok {
		t.Error("Text() on a flag should fail")
	}
	if v, ok := p.Flag(); !ok || !v {
		t.Error("Flag() on a flag should succeed")
	}
}

func TestLaunchArgs(t *testing.T) {
	args := LaunchOptions{SocketPath: "/tmp/x.sock", WID: 77}.Args()
	for _, want := range []string{"--idle=yes", "--input-ipc-server=/tmp/x.sock", "--wid=77"} {
		found := false
		for _, a := range args {
			if a == want {
				found = true
			}
		}
		if !found {
			t.Errorf("missing argument %s in %v", want, args)
		}
	}
}
