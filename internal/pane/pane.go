// pattern: Functional Core

package pane

import "strings"

// Pane is a named content provider. A pane produces a block of text lines on
// demand and owns whatever internal state it needs (ring buffers, caches,
// expression lists) independently of the region it is currently bound to, so
// hiding and re-showing a pane never loses its recorded state.
//
// Content receives the height of the region the pane is rendering into, so a
// pane can window its state instead of producing everything. It must not
// write to the terminal; the session owns composition and the single flush.
type Pane interface {
	Name() string
	Content(height int) ([]string, error)
}

// valueIndent prefixes formatted values under their expression header.
const valueIndent = "    "

// shrinkValue formats an evaluated value for a pane row: single-line values
// become one indented line; multi-line values (struct dumps and the like)
// keep their header plus at most three body lines, with a trailing ellipsis
// when truncated.
func shrinkValue(formatted string) []string {
	if !strings.Contains(formatted, "\n") {
		return []string{valueIndent + formatted}
	}

	lines := strings.Split(strings.TrimSpace(formatted), "\n")
	out := []string{valueIndent + strings.Replace(lines[0], " = {", " :", 1)}
	for _, line := range lines[1:] {
		if len(out) == 4 {
			break
		}
		if strings.TrimSpace(line) == "}" {
			continue
		}
		out = append(out, valueIndent+strings.TrimSpace(line))
	}
	if last := out[len(out)-1]; strings.HasSuffix(last, ",") {
		out[len(out)-1] = strings.TrimSuffix(last, ",") + " ..."
	}
	return out
}
