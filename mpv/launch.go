package mpv

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/user/rangecut/deps"
)

// LaunchOptions configures the mpv process started for a session.
type LaunchOptions struct {
	// Binary is the mpv executable; empty means "mpv" on PATH.
	Binary string
	// SocketPath is the IPC socket; empty means DefaultSocketPath.
	SocketPath string
}

// Args returns the mpv command line. mpv starts idle and paused with a window so
// files are loaded later through IPC, and keeps the last frame open at end of file.
func (o LaunchOptions) Args() []string {
	socket := o.SocketPath
	if socket == "" {
		socket = DefaultSocketPath
	}
	return []string{
		"--input-ipc-server=" + socket,
		"--idle=yes",
		"--force-window=yes",
		"--keep-open=yes",
		"--pause",
	}
}

// LaunchMpv starts mpv with the IPC socket enabled.
// It checks that mpv is installed first and returns a DependencyError if not.
// Returns the *exec.Cmd for the running process which can be used for cleanup.
func LaunchMpv(opts LaunchOptions) (*exec.Cmd, error) {
	binary, err := deps.Check(deps.Mpv, opts.Binary)
	if err != nil {
		return nil, err
	}

	// A stale socket from a crashed session would make Connect hit a dead endpoint.
	socket := opts.SocketPath
	if socket == "" {
		socket = DefaultSocketPath
	}
	_ = os.Remove(socket)

	cmd := exec.Command(binary, opts.Args()...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start mpv: %w", err)
	}

	return cmd, nil
}

// ConnectWithRetry polls Connect until it succeeds or attempts run out, sleeping interval between tries.
func ConnectWithRetry(client *Client, attempts int, interval time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		time.Sleep(interval)
		if err = client.Connect(); err == nil {
			return nil
		}
	}
	return err
}
