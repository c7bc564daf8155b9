// pattern: Imperative Shell

package pane

import (
	"fmt"
	"strconv"

	"dbgpanel/internal/debugger"
)

// WatchPane evaluates a list of watched expressions against the current
// execution context. Values are cached and recomputed only when the selected
// frame/thread identity changes or the expression list is edited; repeated
// renders with an unchanged context never re-evaluate.
type WatchPane struct {
	host debugger.Host

	expressions []string
	cache       []string
	lastContext string
	dirty       bool
}

func NewWatchPane(host debugger.Host) *WatchPane {
	return &WatchPane{host: host, dirty: true}
}

func (p *WatchPane) Name() string { return "Watch" }

// Watch appends an expression to the watch list.
func (p *WatchPane) Watch(expr string) {
	p.expressions = append(p.expressions, expr)
	p.dirty = true
}

// Unwatch removes an expression, addressed either by its list index or by
// the exact expression text.
func (p *WatchPane) Unwatch(arg string) error {
	if idx, err := strconv.Atoi(arg); err == nil {
		if idx < 0 || idx >= len(p.expressions) {
			return fmt.Errorf("%d out of watch list range", idx)
		}
		p.expressions = append(p.expressions[:idx], p.expressions[idx+1:]...)
		p.dirty = true
		return nil
	}
	for i, e := range p.expressions {
		if e == arg {
			p.expressions = append(p.expressions[:i], p.expressions[i+1:]...)
			p.dirty = true
			return nil
		}
	}
	return fmt.Errorf("%q is not in the watch list", arg)
}

// Expressions returns the current watch list.
func (p *WatchPane) Expressions() []string {
	return append([]string(nil), p.expressions...)
}

func (p *WatchPane) Content(height int) ([]string, error) {
	ctx := p.host.SelectedContext()
	if p.dirty || ctx != p.lastContext {
		p.recompute()
		p.lastContext = ctx
		p.dirty = false
	}

	if len(p.cache) > height {
		return p.cache[:height], nil
	}
	return p.cache, nil
}

func (p *WatchPane) recompute() {
	p.cache = p.cache[:0]
	for i, expr := range p.expressions {
		p.cache = append(p.cache, fmt.Sprintf("%-3d %s :", i, expr))
		val, err := p.host.Evaluate(expr)
		if err != nil {
			p.cache = append(p.cache, fmt.Sprintf("%sNo symbol %q in current context.", valueIndent, expr))
			continue
		}
		p.cache = append(p.cache, shrinkValue(val)...)
	}
}
