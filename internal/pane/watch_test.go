package pane

import (
	"strings"
	"testing"

	"dbgpanel/internal/debugger"
)

func TestWatchPane_RecomputesOnlyWhenContextChanges(t *testing.T) {
	host := &debugger.FakeHost{
		Values:  map[string]string{"count": "42"},
		Context: "frame:0 thread:1",
	}
	p := NewWatchPane(host)
	p.Watch("count")

	if _, err := p.Content(10); err != nil {
		t.Fatal(err)
	}
	if host.EvaluateCalls != 1 {
		t.Fatalf("EvaluateCalls = %d, want 1", host.EvaluateCalls)
	}

	// Same context: repeated renders must reuse the cache.
	for i := 0; i < 5; i++ {
		if _, err := p.Content(10); err != nil {
			t.Fatal(err)
		}
	}
	if host.EvaluateCalls != 1 {
		t.Errorf("EvaluateCalls = %d after repeated renders, want 1", host.EvaluateCalls)
	}

	// Context change: exactly one recomputation.
	host.Context = "frame:2 thread:1"
	if _, err := p.Content(10); err != nil {
		t.Fatal(err)
	}
	if host.EvaluateCalls != 2 {
		t.Errorf("EvaluateCalls = %d after context change, want 2", host.EvaluateCalls)
	}
}

func TestWatchPane_ListMutationForcesRecompute(t *testing.T) {
	host := &debugger.FakeHost{Values: map[string]string{"a": "1", "b": "2"}}
	p := NewWatchPane(host)
	p.Watch("a")

	if _, err := p.Content(10); err != nil {
		t.Fatal(err)
	}
	calls := host.EvaluateCalls

	p.Watch("b")
	lines, err := p.Content(10)
	if err != nil {
		t.Fatal(err)
	}
	if host.EvaluateCalls != calls+2 {
		t.Errorf("EvaluateCalls = %d, want %d (full recompute)", host.EvaluateCalls, calls+2)
	}
	if len(lines) != 4 {
		t.Errorf("lines = %v, want 2 headers + 2 values", lines)
	}
}

func TestWatchPane_UnknownSymbol(t *testing.T) {
	host := &debugger.FakeHost{}
	p := NewWatchPane(host)
	p.Watch("ghost")

	lines, err := p.Content(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || !strings.Contains(lines[1], `No symbol "ghost"`) {
		t.Errorf("lines = %v", lines)
	}
}

func TestWatchPane_Unwatch(t *testing.T) {
	host := &debugger.FakeHost{Values: map[string]string{"a": "1", "b": "2"}}
	p := NewWatchPane(host)
	p.Watch("a")
	p.Watch("b")

	if err := p.Unwatch("0"); err != nil {
		t.Fatalf("Unwatch by index: %v", err)
	}
	if got := p.Expressions(); len(got) != 1 || got[0] != "b" {
		t.Errorf("Expressions = %v, want [b]", got)
	}

	if err := p.Unwatch("b"); err != nil {
		t.Fatalf("Unwatch by text: %v", err)
	}
	if got := p.Expressions(); len(got) != 0 {
		t.Errorf("Expressions = %v, want empty", got)
	}

	if err := p.Unwatch("5"); err == nil {
		t.Error("out-of-range index should fail")
	}
	if err := p.Unwatch("zzz"); err == nil {
		t.Error("unknown expression should fail")
	}
}

func TestWatchPane_ContentClippedToHeight(t *testing.T) {
	host := &debugger.FakeHost{Values: map[string]string{"a": "1", "b": "2", "c": "3"}}
	p := NewWatchPane(host)
	p.Watch("a")
	p.Watch("b")
	p.Watch("c")

	lines, err := p.Content(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Errorf("got %d lines, want 2", len(lines))
	}
}
