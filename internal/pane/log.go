// pattern: Imperative Shell

package pane

import (
	"sync"

	"dbgpanel/internal/capture"
)

// LogPane shows the tail of the captured subordinate output. The backing
// buffer is created per subordinate launch and swapped in via SetBuffer; the
// pane itself persists for the session, so switching it between regions never
// loses captured lines.
type LogPane struct {
	styles *Styles

	mu  sync.Mutex
	buf *capture.Buffer
}

func NewLogPane(styles *Styles) *LogPane {
	return &LogPane{styles: styles}
}

func (p *LogPane) Name() string { return "Log" }

// SetBuffer installs the capture buffer for the current subordinate run.
// A nil buffer means capture is disabled.
func (p *LogPane) SetBuffer(buf *capture.Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buf = buf
}

func (p *LogPane) Content(height int) ([]string, error) {
	p.mu.Lock()
	buf := p.buf
	p.mu.Unlock()

	if buf == nil {
		return []string{p.styles.Muted().Render("Log capture is not enabled. Use `panel run` to launch with capture.")}, nil
	}
	return buf.Tail(height), nil
}
