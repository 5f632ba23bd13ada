package mpv

import (
	"os"
	"os/exec"
	"strconv"

	"github.com/user/video-cutter/deps"
)

// LaunchOptions describes how to start the mpv process.
type LaunchOptions struct {
	// Binary is the mpv executable; empty means "mpv" from PATH.
	Binary string
	// SocketPath is passed to --input-ipc-server; empty means DefaultSocketPath.
	SocketPath string
	// WID embeds the video output into an existing native window when non-zero.
	WID int64
}

// Args returns the command line arguments for mpv.
// mpv starts idle with its own window so a file can be loaded later.
func (o LaunchOptions) Args() []string {
	socket := o.SocketPath
	if socket == "" {
		socket = DefaultSocketPath
	}
	args := []string{
		"--idle=yes",
		"--force-window=yes",
		"--keep-open=yes",
		"--input-ipc-server=" + socket,
	}
	if o.WID != 0 {
		args = append(args, "--wid="+strconv.FormatInt(o.WID, 10))
	}
	return args
}

// LaunchMpv starts mpv with the IPC socket enabled.
// It checks that mpv is installed first and returns an error with install link if not.
// Returns the *exec.Cmd for the running process which can be used for cleanup.
func LaunchMpv(opts LaunchOptions) (*exec.Cmd, error) {
	binary := opts.Binary
	if binary == "" {
		binary = "mpv"
	}
	if err := deps.Check(deps.Mpv, binary); err != nil {
		return nil, err
	}

	socket := opts.SocketPath
	if socket == "" {
		socket = DefaultSocketPath
	}
	// Remove a stale socket so Connect only succeeds once this mpv listens.
	_ = os.Remove(socket)

	cmd := exec.Command(binary, opts.Args()...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}
