// pattern: Imperative Shell

package capture

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"dbgpanel/internal/logging"
)

// pollTimeoutMs bounds how long the reader waits for new subordinate output
// before re-checking for shutdown. Output therefore surfaces within this
// bound even without an explicit flush.
const pollTimeoutMs = 200

// Error reports a capture channel failure. Channel errors disable capture
// for the current subordinate run; they never take down the session.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return "capture channel: " + e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Channel is the out-of-band capture path for a subordinate's stdout: a named
// FIFO under the session data dir, drained by a background reader into a
// Buffer. The reader is the only component of the engine that runs off the
// command path; it never touches anything but the buffer.
//
// If the hosting process dies without Close running, the FIFO file is leaked.
// That is accepted and reported on the next startup; guaranteed cleanup on
// host crash is out of this component's control.
type Channel struct {
	path   string
	buf    *Buffer
	logger *logging.ScopedLogger

	mu      sync.Mutex
	fd      int
	partial []byte
	closed  bool
	started bool

	stop chan struct{}
	done chan struct{}
}

// NewChannel creates the FIFO and opens its read side non-blocking. The
// subordinate must be launched with stdout redirected to Path.
func NewChannel(dir string, buf *Buffer, logger *logging.ScopedLogger) (*Channel, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, &Error{Op: "create dir", Err: err}
	}

	path := filepath.Join(dir, fmt.Sprintf("capture-%d-%d.fifo", os.Getpid(), time.Now().UnixNano()))
	if err := unix.Mkfifo(path, 0600); err != nil {
		return nil, &Error{Op: "mkfifo", Err: err}
	}

	// Opening read-only non-blocking succeeds before any writer exists, so
	// the subordinate can open the write side without deadlock.
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		_ = os.Remove(path)
		return nil, &Error{Op: "open", Err: err}
	}

	return &Channel{
		path:   path,
		buf:    buf,
		logger: logger,
		fd:     fd,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

// Path returns the FIFO's filesystem path.
func (c *Channel) Path() string { return c.path }

// OpenWriter opens the write side of the FIFO, to be handed to the
// subordinate as its stdout.
func (c *Channel) OpenWriter() (*os.File, error) {
	f, err := os.OpenFile(c.path, os.O_WRONLY, 0)
	if err != nil {
		return nil, &Error{Op: "open writer", Err: err}
	}
	return f, nil
}

// Start launches the background reader. It polls with a bounded timeout, so
// it neither spins nor blocks shutdown, and stops cleanly on Close.
func (c *Channel) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started || c.closed {
		return
	}
	c.started = true
	go c.readLoop()
}

func (c *Channel) readLoop() {
	defer close(c.done)
	for {
		select {
		case <-c.stop:
			return
		default:
		}

		c.mu.Lock()
		fd := c.fd
		c.mu.Unlock()
		if fd < 0 {
			return
		}

		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, pollTimeoutMs)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			c.logger.Warn("capture poll failed", "error", err)
			return
		}
		if n == 0 {
			continue
		}
		if fds[0].Revents&unix.POLLIN != 0 {
			c.mu.Lock()
			c.drainLocked(false)
			c.mu.Unlock()
			continue
		}
		if fds[0].Revents&unix.POLLHUP != 0 {
			// Writer side closed. The host signals subordinate exit and
			// closes us; until then, back off instead of spinning on HUP.
			select {
			case <-c.stop:
				return
			case <-time.After(pollTimeoutMs * time.Millisecond):
			}
		}
	}
}

// Flush drains whatever bytes are available right now without blocking and
// applies them to the buffer, including a trailing unterminated line (the
// subordinate may have paused mid-write). Safe to call after Close.
func (c *Channel) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fd < 0 {
		return
	}
	c.drainLocked(true)
}

// drainLocked reads until the descriptor would block, appending completed
// lines to the buffer. With flushPartial set, a pending unterminated line is
// stored as well. Caller holds c.mu.
func (c *Channel) drainLocked(flushPartial bool) {
	var chunk [4096]byte
	for {
		n, err := unix.Read(c.fd, chunk[:])
		if n > 0 {
			c.partial = append(c.partial, chunk[:n]...)
			for {
				i := bytes.IndexByte(c.partial, '\n')
				if i < 0 {
					break
				}
				c.buf.Append(string(c.partial[:i]))
				c.partial = c.partial[i+1:]
			}
		}
		if err != nil || n <= 0 {
			break
		}
	}
	if flushPartial && len(c.partial) > 0 {
		c.buf.Append(string(c.partial))
		c.partial = nil
	}
}

// Close stops the reader, drains any remaining bytes, closes the descriptor
// and unlinks the FIFO. Safe to call more than once.
func (c *Channel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	started := c.started
	c.mu.Unlock()

	close(c.stop)
	if started {
		<-c.done
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.drainLocked(true)
	if c.fd >= 0 {
		_ = unix.Close(c.fd)
		c.fd = -1
	}
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return &Error{Op: "remove", Err: err}
	}
	return nil
}

// StaleChannels lists leaked FIFO files under dir, left behind when a
// previous host died without teardown. They are reported, not removed;
// external tooling owns cleanup.
func StaleChannels(dir string) []string {
	matches, err := filepath.Glob(filepath.Join(dir, "capture-*.fifo"))
	if err != nil {
		return nil
	}
	return matches
}
