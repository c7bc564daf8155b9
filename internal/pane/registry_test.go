package pane

import (
	"reflect"
	"testing"
)

// stubPane is a minimal Pane for registry tests.
type stubPane struct {
	name string
}

func (s *stubPane) Name() string                  { return s.name }
func (s *stubPane) Content(int) ([]string, error) { return nil, nil }

func newTestRegistry(t *testing.T, names ...string) *Registry {
	t.Helper()
	r := NewRegistry()
	for _, n := range names {
		if err := r.Add(&stubPane{name: n}); err != nil {
			t.Fatalf("Add(%s): %v", n, err)
		}
	}
	return r
}

func TestRegistry_AddRejectsDuplicates(t *testing.T) {
	r := newTestRegistry(t, "Log")
	if err := r.Add(&stubPane{name: "Log"}); err == nil {
		t.Fatal("duplicate Add should fail")
	}
}

func TestRegistry_BindSwapsOccupiedRegions(t *testing.T) {
	r := newTestRegistry(t, "Source", "Watch", "Stack", "Breakpoints")
	if err := r.SetBindings(map[string]int{"Source": 0, "Watch": 1, "Stack": 2, "Breakpoints": 3}); err != nil {
		t.Fatal(err)
	}

	// Watch is at 1, region 3 holds Breakpoints: they must swap.
	if err := r.Bind("Watch", 3); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	want := map[string]int{"Source": 0, "Watch": 3, "Stack": 2, "Breakpoints": 1}
	if got := r.Bindings(); !reflect.DeepEqual(got, want) {
		t.Errorf("bindings = %v, want %v", got, want)
	}
}

func TestRegistry_DoubleSwapRestoresOriginal(t *testing.T) {
	r := newTestRegistry(t, "Source", "Watch", "Stack", "Breakpoints")
	original := map[string]int{"Source": 0, "Watch": 1, "Stack": 2, "Breakpoints": 3}
	if err := r.SetBindings(original); err != nil {
		t.Fatal(err)
	}

	if err := r.Bind("Watch", 3); err != nil {
		t.Fatal(err)
	}
	if err := r.Bind("Watch", 1); err != nil {
		t.Fatal(err)
	}

	if got := r.Bindings(); !reflect.DeepEqual(got, original) {
		t.Errorf("bindings after double swap = %v, want %v", got, original)
	}
}

func TestRegistry_BindingHiddenPaneEvictsOccupant(t *testing.T) {
	r := newTestRegistry(t, "Log", "Source")
	if err := r.SetBindings(map[string]int{"Source": 0}); err != nil {
		t.Fatal(err)
	}

	// Log is hidden; binding it into region 0 hides Source permanently.
	if err := r.Bind("Log", 0); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	want := map[string]int{"Log": 0}
	if got := r.Bindings(); !reflect.DeepEqual(got, want) {
		t.Errorf("bindings = %v, want %v", got, want)
	}
	if _, ok := r.PaneAt(0); !ok {
		t.Error("region 0 should hold Log")
	}
}

func TestRegistry_BindToEmptyRegionMoves(t *testing.T) {
	r := newTestRegistry(t, "Log")
	if err := r.SetBindings(map[string]int{"Log": 0}); err != nil {
		t.Fatal(err)
	}
	if err := r.Bind("Log", 2); err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"Log": 2}
	if got := r.Bindings(); !reflect.DeepEqual(got, want) {
		t.Errorf("bindings = %v, want %v", got, want)
	}
}

func TestRegistry_BindSameRegionIsNoop(t *testing.T) {
	r := newTestRegistry(t, "Log")
	if err := r.SetBindings(map[string]int{"Log": 1}); err != nil {
		t.Fatal(err)
	}
	if err := r.Bind("Log", 1); err != nil {
		t.Fatal(err)
	}
	if got := r.Bindings(); got["Log"] != 1 || len(got) != 1 {
		t.Errorf("bindings = %v", got)
	}
}

func TestRegistry_BindUnknownPane(t *testing.T) {
	r := newTestRegistry(t, "Log")
	if err := r.Bind("Nope", 0); err == nil {
		t.Fatal("binding an unknown pane should fail")
	}
}

func TestRegistry_Unbind(t *testing.T) {
	r := newTestRegistry(t, "Log")
	if err := r.SetBindings(map[string]int{"Log": 0}); err != nil {
		t.Fatal(err)
	}
	r.Unbind("Log")
	if len(r.Bindings()) != 0 {
		t.Errorf("bindings = %v, want empty", r.Bindings())
	}
	if _, ok := r.PaneAt(0); ok {
		t.Error("region 0 should be empty after Unbind")
	}
	// Unbinding a hidden pane is a no-op.
	r.Unbind("Log")
}

func TestRegistry_SetBindingsRejectsRegionCollision(t *testing.T) {
	r := newTestRegistry(t, "Watch", "Stack")
	if err := r.SetBindings(map[string]int{"Watch": 1}); err != nil {
		t.Fatal(err)
	}

	if err := r.SetBindings(map[string]int{"Watch": 0, "Stack": 0}); err == nil {
		t.Fatal("two panes on one region should fail")
	}
	if got := r.Bindings(); len(got) != 1 || got["Watch"] != 1 {
		t.Errorf("previous bindings lost: %v", got)
	}
}

func TestRegistry_SetBindingsRejectsUnknownPaneAndKeepsPrevious(t *testing.T) {
	r := newTestRegistry(t, "Log")
	if err := r.SetBindings(map[string]int{"Log": 0}); err != nil {
		t.Fatal(err)
	}
	if err := r.SetBindings(map[string]int{"Ghost": 1}); err == nil {
		t.Fatal("SetBindings with unknown pane should fail")
	}
	if got := r.Bindings(); got["Log"] != 0 {
		t.Errorf("previous bindings lost: %v", got)
	}
}
