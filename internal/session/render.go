// pattern: Imperative Shell

package session

import (
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"dbgpanel/internal/geometry"
)

// Render composes the active layout into one canvas and writes it in a
// single flush, so concurrent command output never tears through a
// half-drawn panel. Two terminal rows are reserved for the host's prompt;
// the last canvas row is a full-width border separating panel from prompt.
//
// A pane whose content production fails is replaced by an inline error
// marker; the rest of the canvas renders normally.
func (s *Session) Render() error {
	l := s.layouts[s.active]

	width, height := s.size()
	if width < geometry.GridUnits {
		width = geometry.GridUnits
	}
	canvasHeight := height - 2
	if canvasHeight < geometry.GridUnits {
		canvasHeight = geometry.GridUnits
	}

	rects := geometry.Scale(l.regions, width, canvasHeight)
	sort.Slice(rects, func(i, j int) bool { return rects[i].X < rects[j].X })

	rows := make([][]string, canvasHeight)
	for _, rect := range rects {
		block := s.renderRect(rect, width, canvasHeight)
		for i, row := range block {
			y := rect.Y + i
			rows[y] = append(rows[y], row)
		}
	}

	var b strings.Builder
	for _, segments := range rows {
		b.WriteString(strings.Join(segments, ""))
		b.WriteByte('\n')
	}
	b.WriteString(s.styles.Delimiter().Render(strings.Repeat("-", width)))
	b.WriteByte('\n')

	_, err := s.out.Write([]byte(b.String()))
	return err
}

// renderRect produces exactly rect.Height rows of rect.Width cells: the
// pane's clipped and padded content, a `|` delimiter column on rects not
// touching the canvas's right edge, and a `-` border row on rects not
// touching its bottom.
func (s *Session) renderRect(rect geometry.CellRect, canvasWidth, canvasHeight int) []string {
	rightmost := rect.X+rect.Width >= canvasWidth
	bottommost := rect.Y+rect.Height >= canvasHeight

	innerWidth := rect.Width
	if !rightmost {
		innerWidth--
	}
	innerHeight := rect.Height
	if !bottommost {
		innerHeight--
	}

	var lines []string
	if p, ok := s.registry.PaneAt(rect.ID); ok {
		var err error
		lines, err = p.Content(innerHeight)
		if err != nil {
			s.logger.Warn("pane content failed", "pane", p.Name(), "error", err)
			lines = []string{s.styles.ErrorMarker().Render("[" + p.Name() + ": " + err.Error() + "]")}
		}
	}
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}

	delim := ""
	if !rightmost {
		delim = s.styles.Delimiter().Render("|")
	}

	out := make([]string, 0, rect.Height)
	for i := 0; i < innerHeight; i++ {
		row := ""
		if i < len(lines) {
			row = ansi.Truncate(lines[i], innerWidth, "")
		}
		if pad := innerWidth - ansi.StringWidth(row); pad > 0 {
			row += strings.Repeat(" ", pad)
		}
		out = append(out, row+delim)
	}
	if !bottommost {
		out = append(out, s.styles.Delimiter().Render(strings.Repeat("-", rect.Width)))
	}
	return out
}
