// pattern: Functional Core

package pane

import "fmt"

// Registry holds the set of registered panes and the live pane-to-region
// binding table. Panes live for the whole session; bindings are replaced
// wholesale on every layout switch and edited one at a time by view commands.
//
// Binding operations are pure table edits: they never invoke a pane's
// content production. The single-threaded command path is the only mutator.
type Registry struct {
	panes    map[string]Pane
	bindings map[string]int // pane name -> region id
}

func NewRegistry() *Registry {
	return &Registry{
		panes:    make(map[string]Pane),
		bindings: make(map[string]int),
	}
}

// Add registers a pane. Pane names are unique.
func (r *Registry) Add(p Pane) error {
	if _, exists := r.panes[p.Name()]; exists {
		return fmt.Errorf("pane %s already registered", p.Name())
	}
	r.panes[p.Name()] = p
	return nil
}

// Get returns the pane with the given name.
func (r *Registry) Get(name string) (Pane, bool) {
	p, ok := r.panes[name]
	return p, ok
}

// Names returns the registered pane names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.panes))
	for name := range r.panes {
		names = append(names, name)
	}
	return names
}

// Bind assigns the named pane to the given region.
//
// A region holds at most one pane, and visibility is a consequence of
// binding, so the occupant of the target region is never silently kept:
//   - pane bound, region occupied: the two bindings swap.
//   - pane hidden, region occupied: the occupant becomes hidden. It stays
//     hidden until bound again; there is no restoration queue.
//   - otherwise: a plain assignment.
func (r *Registry) Bind(name string, regionID int) error {
	if _, ok := r.panes[name]; !ok {
		return fmt.Errorf("unknown pane %s", name)
	}

	occupant, occupied := r.paneBoundTo(regionID)
	if occupied && occupant == name {
		return nil
	}

	prev, wasBound := r.bindings[name]
	r.bindings[name] = regionID
	if occupied {
		if wasBound {
			r.bindings[occupant] = prev
		} else {
			delete(r.bindings, occupant)
		}
	}
	return nil
}

// Unbind removes the pane's binding, hiding it. Unbinding a hidden pane is a
// no-op.
func (r *Registry) Unbind(name string) {
	delete(r.bindings, name)
}

// PaneAt returns the pane currently bound to the region.
func (r *Registry) PaneAt(regionID int) (Pane, bool) {
	name, ok := r.paneBoundTo(regionID)
	if !ok {
		return nil, false
	}
	p, ok := r.panes[name]
	return p, ok
}

// Bindings returns a copy of the binding table.
func (r *Registry) Bindings() map[string]int {
	out := make(map[string]int, len(r.bindings))
	for k, v := range r.bindings {
		out[k] = v
	}
	return out
}

// SetBindings replaces the binding table wholesale (layout switch). Unknown
// pane names and two panes sharing a region are rejected; on error the
// previous table is left intact.
func (r *Registry) SetBindings(bindings map[string]int) error {
	holder := make(map[int]string, len(bindings))
	for name, id := range bindings {
		if _, ok := r.panes[name]; !ok {
			return fmt.Errorf("unknown pane %s", name)
		}
		if other, taken := holder[id]; taken {
			return fmt.Errorf("panes %s and %s both bound to region %d", other, name, id)
		}
		holder[id] = name
	}
	next := make(map[string]int, len(bindings))
	for k, v := range bindings {
		next[k] = v
	}
	r.bindings = next
	return nil
}

func (r *Registry) paneBoundTo(regionID int) (string, bool) {
	for name, id := range r.bindings {
		if id == regionID {
			return name, true
		}
	}
	return "", false
}
