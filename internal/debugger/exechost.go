// pattern: Imperative Shell

package debugger

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"

	"dbgpanel/internal/logging"
)

// ExecHost is the standalone Host used when no real debugger embeds the
// engine. It can launch and capture a subordinate process but has no
// introspection: frames, breakpoints and evaluation fail with
// ErrNotSupported, which panes render as their usual empty/error lines.
type ExecHost struct {
	// UsePty runs the subordinate on a pseudo-terminal and copies its output
	// into the capture file. libc line-buffers when stdout is a terminal, so
	// pty mode surfaces output promptly without explicit flush calls.
	UsePty bool

	logger *logging.ScopedLogger

	mu  sync.Mutex
	cmd *exec.Cmd
}

func NewExecHost(usePty bool, logger *logging.ScopedLogger) *ExecHost {
	return &ExecHost{UsePty: usePty, logger: logger}
}

func (h *ExecHost) Frames() ([]Frame, error)           { return nil, ErrNotSupported }
func (h *ExecHost) Breakpoints() ([]Breakpoint, error) { return nil, ErrNotSupported }
func (h *ExecHost) Evaluate(string) (string, error)    { return "", ErrNotSupported }
func (h *ExecHost) SelectedContext() string            { return "" }
func (h *ExecHost) CurrentSource() (string, int, bool) { return "", 0, false }

// Execute runs the command through the shell, mirroring a debugger's raw
// command escape hatch.
func (h *ExecHost) Execute(command string) error {
	cmd := exec.Command("/bin/sh", "-c", command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Run launches the subordinate with stdout redirected into the given file;
// stderr stays on the host's terminal. In pty mode the subordinate runs on a
// pseudo-terminal whose output is copied into the file instead — a pty
// carries stdout and stderr merged, as any terminal would.
func (h *ExecHost) Run(args []string, stdout *os.File, onExit func(error)) error {
	if len(args) == 0 {
		return fmt.Errorf("run: no command given")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cmd != nil && h.cmd.ProcessState == nil {
		return fmt.Errorf("run: subordinate already running")
	}

	cmd := exec.Command(args[0], args[1:]...)

	if h.UsePty && stdout != nil {
		ptmx, err := pty.Start(cmd)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		go func() {
			// EIO on Linux when the child side closes; treat as EOF.
			_, _ = io.Copy(stdout, ptmx)
		}()
		go func() {
			err := cmd.Wait()
			_ = ptmx.Close()
			_ = stdout.Close()
			h.logger.Info("subordinate exited", "args", args, "error", err)
			if onExit != nil {
				onExit(err)
			}
		}()
		h.cmd = cmd
		return nil
	}

	if stdout != nil {
		cmd.Stdout = stdout
	} else {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if stdout != nil {
		// The subordinate holds its own descriptor now; closing the parent's
		// copy lets the capture reader observe EOF on exit.
		_ = stdout.Close()
	}
	go func() {
		err := cmd.Wait()
		h.logger.Info("subordinate exited", "args", args, "error", err)
		if onExit != nil {
			onExit(err)
		}
	}()
	h.cmd = cmd
	return nil
}

// Terminate kills the subordinate if it is still running.
func (h *ExecHost) Terminate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cmd != nil && h.cmd.Process != nil && h.cmd.ProcessState == nil {
		_ = h.cmd.Process.Kill()
	}
}
