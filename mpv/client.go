package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/user/rangecut/logging"
)

const (
	// DefaultSocketPath is the IPC socket used when the config does not name one.
	DefaultSocketPath = "/tmp/rangecut-mpv.sock"

	// DefaultTimeout bounds one request/reply round trip. The poller asks every
	// 100ms, so a wedged mpv must not hold the UI for long.
	DefaultTimeout = 500 * time.Millisecond
)

var (
	// ErrNotConnected is returned when attempting operations on a disconnected client.
	ErrNotConnected = errors.New("mpv: not connected")
	// ErrSocketNotFound is returned when the socket cannot be dialed.
	ErrSocketNotFound = errors.New("mpv: socket not found - is mpv running with --input-ipc-server?")
	// ErrPropertyUnavailable is returned when mpv has no value for a property yet (e.g. duration before load).
	ErrPropertyUnavailable = errors.New("mpv: property unavailable")
)

type ipcRequest struct {
	Command   []interface{} `json:"command"`
	RequestID uint64        `json:"request_id"`
}

// ipcResponse is either a reply (request_id set) or an event (event set).
type ipcResponse struct {
	Data      interface{} `json:"data"`
	RequestID uint64      `json:"request_id"`
	Error     string      `json:"error"`
	Event     string      `json:"event"`
}

// Client talks to one mpv process over its JSON IPC socket.
// Requests are serialized; replies are matched by request_id and events are skipped.
type Client struct {
	socketPath string
	timeout    time.Duration
	logger     zerolog.Logger

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
	nextID uint64
}

// NewClient creates a client for socketPath, or DefaultSocketPath when empty.
func NewClient(socketPath string) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	return &Client{
		socketPath: socketPath,
		timeout:    DefaultTimeout,
		logger:     logging.WithComponent("mpv"),
	}
}

// Connect dials the socket. It is a no-op when already connected.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("%w (%s): %v", ErrSocketNotFound, c.socketPath, err)
	}

	c.conn = conn
	c.reader = bufio.NewReader(conn)
	c.logger.Debug().Str("socket", c.socketPath).Msg("connected")
	return nil
}

// Close closes the connection. Closing a closed client is fine.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drop()
}

// drop closes and forgets the connection. Callers hold mu.
func (c *Client) drop() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// IsConnected reports whether a connection is open.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// SocketPath returns the socket path this client dials.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// GetProperty retrieves the value of an mpv property ("time-pos", "duration", "pause", ...).
func (c *Client) GetProperty(name string) (interface{}, error) {
	return c.Command("get_property", name)
}

// SetProperty sets the value of an mpv property.
func (c *Client) SetProperty(name string, value interface{}) error {
	_, err := c.Command("set_property", name, value)
	return err
}

// GetTimePos returns the playback position in seconds.
func (c *Client) GetTimePos() (float64, error) {
	return c.floatProperty("time-pos")
}

// GetDuration returns the media duration in seconds.
func (c *Client) GetDuration() (float64, error) {
	return c.floatProperty("duration")
}

// SetPaused pauses or resumes playback.
func (c *Client) SetPaused(paused bool) error {
	return c.SetProperty("pause", paused)
}

// LoadFile replaces the current playlist entry with path.
func (c *Client) LoadFile(path string) error {
	_, err := c.Command("loadfile", path, "replace")
	return err
}

// SeekAbsolute seeks to seconds from the start of the file.
func (c *Client) SeekAbsolute(seconds float64) error {
	_, err := c.Command("seek", seconds, "absolute")
	return err
}

func (c *Client) floatProperty(name string) (float64, error) {
	result, err := c.GetProperty(name)
	if err != nil {
		return 0, err
	}
	// encoding/json decodes every number into float64.
	n, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("mpv: %s: unexpected value type %T", name, result)
	}
	return n, nil
}

// Command sends {"command": [command, args...], "request_id": n} and waits for the
// matching reply. A write or read failure drops the connection, so the next call
// reports ErrNotConnected instead of reading a stale reply.
func (c *Client) Command(command string, args ...interface{}) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	c.nextID++
	req := ipcRequest{
		Command:   append([]interface{}{command}, args...),
		RequestID: c.nextID,
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("mpv: failed to marshal %s: %w", command, err)
	}

	if c.timeout > 0 {
		_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
	}

	if _, err := c.conn.Write(append(data, '\n')); err != nil {
		c.drop()
		return nil, fmt.Errorf("mpv: failed to send %s: %w", command, err)
	}

	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			c.drop()
			return nil, fmt.Errorf("mpv: failed to read reply to %s: %w", command, err)
		}

		var resp ipcResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			c.logger.Debug().Bytes("line", line).Msg("skipping undecodable line")
			continue
		}
		if resp.Event != "" || resp.RequestID != req.RequestID {
			continue
		}

		switch resp.Error {
		case "", "success":
			return resp.Data, nil
		case "property unavailable":
			return nil, ErrPropertyUnavailable
		default:
			return nil, fmt.Errorf("mpv: %s: %s", command, resp.Error)
		}
	}
}
