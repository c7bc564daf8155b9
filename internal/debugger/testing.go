// pattern: Imperative Shell

package debugger

import "os"

// FakeHost is a scriptable Host for tests. Zero value behaves like a host
// with an empty program loaded.
type FakeHost struct {
	FramesVal      []Frame
	BreakpointsVal []Breakpoint
	Values         map[string]string // expression -> formatted value
	Context        string
	SourceFile     string
	SourceLine     int

	EvaluateCalls int
	Executed      []string
	RunArgs       []string
	RunStdout     *os.File
	RunOnExit     func(error)
}

func (f *FakeHost) Frames() ([]Frame, error)           { return f.FramesVal, nil }
func (f *FakeHost) Breakpoints() ([]Breakpoint, error) { return f.BreakpointsVal, nil }

func (f *FakeHost) Evaluate(expr string) (string, error) {
	f.EvaluateCalls++
	if v, ok := f.Values[expr]; ok {
		return v, nil
	}
	return "", ErrNotSupported
}

func (f *FakeHost) SelectedContext() string { return f.Context }

func (f *FakeHost) CurrentSource() (string, int, bool) {
	return f.SourceFile, f.SourceLine, f.SourceFile != ""
}

func (f *FakeHost) Execute(command string) error {
	f.Executed = append(f.Executed, command)
	return nil
}

func (f *FakeHost) Run(args []string, stdout *os.File, onExit func(error)) error {
	f.RunArgs = args
	f.RunStdout = stdout
	f.RunOnExit = onExit
	return nil
}
