// pattern: Imperative Shell

package pane

import "dbgpanel/internal/logging"

// diagnosticsKeep bounds how many engine log lines the pane retains.
const diagnosticsKeep = 200

// DiagnosticsPane shows the engine's own recent log entries (channel
// failures, layout rejections, capture warnings). It drains the logging
// channel sink on the render path, so no extra goroutine is involved.
type DiagnosticsPane struct {
	entries <-chan logging.LogEntry
	lines   []string
}

func NewDiagnosticsPane(entries <-chan logging.LogEntry) *DiagnosticsPane {
	return &DiagnosticsPane{entries: entries}
}

func (p *DiagnosticsPane) Name() string { return "Diagnostics" }

func (p *DiagnosticsPane) Content(height int) ([]string, error) {
	p.drain()

	if first := len(p.lines) - height; first > 0 {
		return p.lines[first:], nil
	}
	return p.lines, nil
}

func (p *DiagnosticsPane) drain() {
	for {
		select {
		case entry, ok := <-p.entries:
			if !ok {
				return
			}
			p.lines = append(p.lines, entry.String())
			if len(p.lines) > diagnosticsKeep {
				p.lines = p.lines[len(p.lines)-diagnosticsKeep:]
			}
		default:
			return
		}
	}
}
