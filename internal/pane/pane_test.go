package pane

import (
	"reflect"
	"strings"
	"testing"

	"dbgpanel/internal/capture"
	"dbgpanel/internal/debugger"
	"dbgpanel/internal/logging"
)

func TestShrinkValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "single line",
			in:   "42",
			want: []string{"    42"},
		},
		{
			name: "struct keeps header and three lines",
			in:   "point = {\n  x = 1,\n  y = 2,\n  z = 3,\n  w = 4,\n}",
			want: []string{"    point :", "    x = 1,", "    y = 2,", "    z = 3 ..."},
		},
		{
			name: "short struct unabridged",
			in:   "pair = {\n  a = 1,\n  b = 2\n}",
			want: []string{"    pair :", "    a = 1,", "    b = 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shrinkValue(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("shrinkValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHistoryPane_RecordsAndWindows(t *testing.T) {
	p := NewHistoryPane()
	p.Record("x", "1")
	p.Record("y", "2")

	lines, err := p.Content(10)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"1   print x", "    1", "2   print y", "    2"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %q, want %q", lines, want)
	}

	// Window shows the newest lines.
	tail, err := p.Content(2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tail, want[2:]) {
		t.Errorf("tail = %q, want %q", tail, want[2:])
	}
}

func TestLogPane_WithoutBuffer(t *testing.T) {
	p := NewLogPane(NewStyles("mocha"))
	lines, err := p.Content(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || !strings.Contains(lines[0], "not enabled") {
		t.Errorf("lines = %v", lines)
	}
}

func TestLogPane_ShowsBufferTail(t *testing.T) {
	p := NewLogPane(NewStyles("mocha"))
	buf := capture.NewBuffer(10)
	for _, l := range []string{"one", "two", "three"} {
		buf.Append(l)
	}
	p.SetBuffer(buf)

	lines, err := p.Content(2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(lines, []string{"two", "three"}) {
		t.Errorf("lines = %v, want tail [two three]", lines)
	}
}

func TestStackPane_FormatsFrames(t *testing.T) {
	host := &debugger.FakeHost{
		FramesVal: []debugger.Frame{
			{Level: 0, File: "/src/app/main.c", Line: 10, Function: "main"},
			{Level: 1, Kind: debugger.SignalHandlerFrame},
		},
		Context: "c1",
	}
	p := NewStackPane(host, NewStyles("mocha"))

	lines, err := p.Content(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "app/main.c") || !strings.Contains(lines[0], ":10 in ") {
		t.Errorf("frame line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "<OS Signal Handler>") {
		t.Errorf("abnormal frame line = %q", lines[1])
	}
}

func TestBreakpointsPane_Format(t *testing.T) {
	host := &debugger.FakeHost{
		BreakpointsVal: []debugger.Breakpoint{
			{Number: 1, File: "/src/app/main.c", Line: 12, Function: "main", Enabled: true, Hit: true, HitCount: 3},
			{Number: 2, Watchpoint: true, Expression: "count", Enabled: true, HitCount: 1},
			{Number: 3, File: "/src/app/util.c", Line: 7, Function: "helper", Condition: "x > 0", Enabled: true},
		},
	}
	p := NewBreakpointsPane(host, NewStyles("mocha"))

	lines, err := p.Content(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], MarkerHit) {
		t.Errorf("hit breakpoint should carry %s: %q", MarkerHit, lines[0])
	}
	if !strings.Contains(lines[1], MarkerIdle) || !strings.Contains(lines[1], `watch "count"`) {
		t.Errorf("watchpoint line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "[if x > 0]") {
		t.Errorf("conditional line = %q", lines[2])
	}
}

func TestDiagnosticsPane_DrainsEntries(t *testing.T) {
	m := logging.NewTestLogManager(16)
	defer m.Close()

	m.For("capture").Warn("stale channel found")

	p := NewDiagnosticsPane(m.Entries())
	lines, err := p.Content(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || !strings.Contains(lines[0], "stale channel found") {
		t.Errorf("lines = %v", lines)
	}

	// Entries already drained stay visible on the next render.
	again, _ := p.Content(5)
	if len(again) != 1 {
		t.Errorf("entries lost between renders: %v", again)
	}
}
