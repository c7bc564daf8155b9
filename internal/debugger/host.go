// pattern: Functional Core

package debugger

import (
	"errors"
	"os"
)

// FrameKind classifies a stack frame.
type FrameKind int

const (
	NormalFrame FrameKind = iota
	DummyCallFrame
	SignalHandlerFrame
)

// Frame is one entry of the current call stack.
type Frame struct {
	Level    int
	File     string
	Line     int
	Function string
	Kind     FrameKind
}

// Breakpoint describes a breakpoint or watchpoint known to the host.
type Breakpoint struct {
	Number     int
	File       string
	Line       int
	Function   string
	Condition  string
	Enabled    bool
	Hit        bool
	HitCount   int
	Watchpoint bool
	Expression string
}

// ErrNotSupported is returned by hosts that cannot serve an introspection
// request, for example the standalone exec host which has no debugger behind
// it. Panes treat it like any other per-request failure.
var ErrNotSupported = errors.New("debugger host: operation not supported")

// Host is the capability surface consumed from the debugger. The engine never
// reimplements introspection; everything below is provided by the embedding
// debugger (or a stand-in for standalone runs and tests).
//
// Calls happen only on the host's own command path, so implementations do not
// need to be safe for concurrent use, except that the onExit callback passed
// to Run fires from whatever context observes subordinate exit.
type Host interface {
	// Frames enumerates the current call stack, innermost first.
	Frames() ([]Frame, error)

	// Breakpoints enumerates breakpoints and watchpoints.
	Breakpoints() ([]Breakpoint, error)

	// Evaluate evaluates an expression in the current execution context and
	// returns its formatted value.
	Evaluate(expr string) (string, error)

	// SelectedContext returns an opaque identity for the selected
	// frame/thread. Watch values are recomputed only when this changes.
	SelectedContext() string

	// CurrentSource reports the source position of the selected frame.
	CurrentSource() (file string, line int, ok bool)

	// Execute forwards a raw command string to the host.
	Execute(command string) error

	// Run launches a subordinate process with its stdout redirected into the
	// given file (the capture channel's write end; nil to inherit the host's
	// stdout). onExit is invoked once when the subordinate terminates.
	Run(args []string, stdout *os.File, onExit func(error)) error
}

// NopHost is a Host with no debugger behind it. All introspection fails with
// ErrNotSupported and launches are rejected.
type NopHost struct{}

func (NopHost) Frames() ([]Frame, error)           { return nil, ErrNotSupported }
func (NopHost) Breakpoints() ([]Breakpoint, error) { return nil, ErrNotSupported }
func (NopHost) Evaluate(string) (string, error)    { return "", ErrNotSupported }
func (NopHost) SelectedContext() string            { return "" }
func (NopHost) CurrentSource() (string, int, bool) { return "", 0, false }
func (NopHost) Execute(string) error               { return ErrNotSupported }
func (NopHost) Run([]string, *os.File, func(error)) error {
	return ErrNotSupported
}
