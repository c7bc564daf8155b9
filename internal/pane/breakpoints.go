// pattern: Imperative Shell

package pane

import (
	"fmt"
	"strings"

	"dbgpanel/internal/debugger"
)

// BreakpointsPane lists the host's breakpoints and watchpoints with their
// hit state. Formatting happens on every render; the host already owns the
// breakpoint set, so there is nothing worth caching here.
type BreakpointsPane struct {
	host   debugger.Host
	styles *Styles
}

func NewBreakpointsPane(host debugger.Host, styles *Styles) *BreakpointsPane {
	return &BreakpointsPane{host: host, styles: styles}
}

func (p *BreakpointsPane) Name() string { return "Breakpoints" }

func (p *BreakpointsPane) Content(height int) ([]string, error) {
	bps, err := p.host.Breakpoints()
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(bps))
	for _, bp := range bps {
		if len(lines) == height {
			break
		}
		lines = append(lines, p.format(bp))
	}
	return lines, nil
}

func (p *BreakpointsPane) format(bp debugger.Breakpoint) string {
	marker := MarkerIdle
	if bp.Hit {
		marker = MarkerHit
	}

	var sb strings.Builder
	sb.WriteString(p.styles.BreakpointMarker().Render(marker))
	sb.WriteString(" ")

	var body string
	if bp.Watchpoint {
		body = fmt.Sprintf("%3d watch %q hit %d times", bp.Number, bp.Expression, bp.HitCount)
	} else {
		loc := fmt.Sprintf("%s:%d", shortPath(bp.File), bp.Line)
		body = fmt.Sprintf("%3d break %s in %s()", bp.Number,
			p.styles.Filename().Render(loc),
			p.styles.Function().Render(bp.Function))
		if bp.Condition != "" {
			body += fmt.Sprintf(" [if %s]", bp.Condition)
		}
		body += fmt.Sprintf(" hit %2d times", bp.HitCount)
	}

	if !bp.Enabled {
		body = p.styles.Disabled().Render(body)
	}
	sb.WriteString(body)
	return sb.String()
}
