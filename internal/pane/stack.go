// pattern: Imperative Shell

package pane

import (
	"fmt"
	"path/filepath"

	"dbgpanel/internal/debugger"
)

// StackPane renders the current call stack, innermost frame first. Frames are
// refreshed with the same staleness discipline as Watch: only when the
// selected context identity changes.
type StackPane struct {
	host   debugger.Host
	styles *Styles

	cache       []string
	lastContext string
	primed      bool
}

func NewStackPane(host debugger.Host, styles *Styles) *StackPane {
	return &StackPane{host: host, styles: styles}
}

func (p *StackPane) Name() string { return "Stack" }

func (p *StackPane) Content(height int) ([]string, error) {
	ctx := p.host.SelectedContext()
	if !p.primed || ctx != p.lastContext {
		frames, err := p.host.Frames()
		if err != nil {
			return nil, err
		}
		p.cache = p.format(frames)
		p.lastContext = ctx
		p.primed = true
	}

	if len(p.cache) > height {
		return p.cache[:height], nil
	}
	return p.cache, nil
}

func (p *StackPane) format(frames []debugger.Frame) []string {
	lines := make([]string, 0, len(frames))
	for _, f := range frames {
		switch f.Kind {
		case debugger.DummyCallFrame:
			lines = append(lines, p.styles.AbnormalFrame().Render("<Debugger Function Call>"))
		case debugger.SignalHandlerFrame:
			lines = append(lines, p.styles.AbnormalFrame().Render("<OS Signal Handler>"))
		default:
			lines = append(lines, fmt.Sprintf("%2d %s:%d in %s",
				f.Level,
				p.styles.Filename().Render(shortPath(f.File)),
				f.Line,
				p.styles.Function().Render(f.Function)))
		}
	}
	return lines
}

// shortPath keeps the last two path elements, enough to disambiguate without
// eating the whole region width.
func shortPath(path string) string {
	dir, file := filepath.Split(path)
	if dir == "" {
		return file
	}
	return filepath.Join(filepath.Base(filepath.Clean(dir)), file)
}
