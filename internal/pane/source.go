// pattern: Imperative Shell

package pane

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fsnotify/fsnotify"

	"dbgpanel/internal/debugger"
	"dbgpanel/internal/logging"
)

// SourcePane shows syntax-highlighted source centered on the selected frame's
// line. Files are highlighted once and cached; a watcher invalidates the
// cache when a file changes on disk and flags it as edited after build, since
// line numbers may no longer match the debugged binary.
type SourcePane struct {
	host      debugger.Host
	styles    *Styles
	highlight string // chroma style name
	logger    *logging.ScopedLogger

	watcher *fsnotify.Watcher
	cache   map[string][]string
	edited  map[string]bool
}

func NewSourcePane(host debugger.Host, st *Styles, highlightStyle string, logger *logging.ScopedLogger) *SourcePane {
	if highlightStyle == "" {
		highlightStyle = "monokai"
	}
	// A failed watcher only costs the edited-after-build warning.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("source watcher unavailable", "error", err)
		watcher = nil
	}
	return &SourcePane{
		host:      host,
		styles:    st,
		highlight: highlightStyle,
		logger:    logger,
		watcher:   watcher,
		cache:     make(map[string][]string),
		edited:    make(map[string]bool),
	}
}

func (p *SourcePane) Name() string { return "Source" }

// Close releases the file watcher.
func (p *SourcePane) Close() error {
	if p.watcher == nil {
		return nil
	}
	return p.watcher.Close()
}

func (p *SourcePane) Content(height int) ([]string, error) {
	p.drainWatcher()

	file, line, ok := p.host.CurrentSource()
	if !ok {
		return []string{"No source file/line found in current frame."}, nil
	}

	lines, err := p.cached(file)
	if err != nil {
		return []string{fmt.Sprintf("Cannot open file: %s.", file)}, nil
	}

	var out []string
	if p.edited[file] {
		out = append(out, fmt.Sprintf("Warning: %s edited after build.", filepath.Base(file)))
		height--
	}

	center := line - 1
	if center < 0 {
		center = 0
	}
	if center >= len(lines) {
		center = len(lines) - 1
	}
	half := (height - 1) / 2
	first := center - half
	if first < 0 {
		first = 0
	}
	last := first + height
	if last > len(lines) {
		last = len(lines)
	}

	for i := first; i < last; i++ {
		if i == center {
			out = append(out, p.styles.CurrentLine().Render(lines[i]))
			continue
		}
		out = append(out, lines[i])
	}
	return out, nil
}

// cached returns the highlighted lines for the file, reading and
// highlighting it on first use.
func (p *SourcePane) cached(file string) ([]string, error) {
	if lines, ok := p.cache[file]; ok {
		return lines, nil
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.TrimRight(p.highlightSource(file, string(raw)), "\n"), "\n")
	numbered := make([]string, len(lines))
	for i, l := range lines {
		numbered[i] = fmt.Sprintf("%5d %s", i+1, strings.ReplaceAll(l, "\t", "    "))
	}
	p.cache[file] = numbered

	if p.watcher != nil {
		if err := p.watcher.Add(file); err != nil {
			p.logger.Debug("cannot watch source file", "file", file, "error", err)
		}
	}
	return numbered, nil
}

// highlightSource runs chroma over the file content. On any failure the
// plain text is returned; a pane without colors beats a pane with an error.
func (p *SourcePane) highlightSource(file, content string) string {
	lexer := lexers.Match(file)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	style := styles.Get(p.highlight)
	formatter := formatters.Get("terminal256")

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return content
	}
	return buf.String()
}

// drainWatcher applies pending file events without blocking. Running on the
// render path keeps the pane single-threaded; events just wait for the next
// render.
func (p *SourcePane) drainWatcher() {
	if p.watcher == nil {
		return
	}
	for {
		select {
		case ev, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				delete(p.cache, ev.Name)
				p.edited[ev.Name] = true
			}
		case _, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
