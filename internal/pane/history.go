// pattern: Functional Core

package pane

import "fmt"

// HistoryPane records manually printed expression results in order, mixing
// command headers and (possibly multi-line) values like a transcript. It is
// append-only for the session; the newest entries win the window.
type HistoryPane struct {
	lines []string
	count int
}

func NewHistoryPane() *HistoryPane {
	return &HistoryPane{}
}

func (p *HistoryPane) Name() string { return "ValueHistory" }

// Record appends one evaluated print command and its shrunk value.
func (p *HistoryPane) Record(expr, value string) {
	p.count++
	p.lines = append(p.lines, fmt.Sprintf("%-3d print %s", p.count, expr))
	p.lines = append(p.lines, shrinkValue(value)...)
}

func (p *HistoryPane) Content(height int) ([]string, error) {
	if first := len(p.lines) - height; first > 0 {
		return p.lines[first:], nil
	}
	return p.lines, nil
}
