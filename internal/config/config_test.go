package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if !cfg.AutoRender {
		t.Error("default config should auto-render")
	}
	if cfg.Capture.BufferLines != 500 {
		t.Errorf("Capture.BufferLines = %d, want 500", cfg.Capture.BufferLines)
	}
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Theme != "mocha" {
		t.Errorf("Theme = %q, want mocha", cfg.Theme)
	}
}

func TestLoadFrom_SlotTriplesAndNulls(t *testing.T) {
	raw := `
theme: latte
auto_render: false
active_layout: split
capture:
  mode: pty
  buffer_lines: 200
layouts:
  split:
    slots:
      - [0, 5, 10]
      - [1, 5, 10]
      - null
      - null
      - null
    panes:
      Log: 0
      Stack: 1
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Theme != "latte" {
		t.Errorf("Theme = %q, want latte", cfg.Theme)
	}
	if cfg.AutoRender {
		t.Error("AutoRender should be false")
	}
	if cfg.Capture.Mode != "pty" || cfg.Capture.BufferLines != 200 {
		t.Errorf("Capture = %+v", cfg.Capture)
	}

	lc, ok := cfg.Layouts["split"]
	if !ok {
		t.Fatal("layout split missing")
	}
	if len(lc.Slots) != 5 {
		t.Fatalf("got %d slot entries, want 5", len(lc.Slots))
	}
	if lc.Slots[0] == nil || lc.Slots[0].Width != 5 {
		t.Errorf("slot 0 = %+v", lc.Slots[0])
	}
	if lc.Slots[2] != nil {
		t.Errorf("slot entry 2 should be an absent-marker, got %+v", lc.Slots[2])
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "unknown active layout",
			mutate: func(c *Config) { c.ActiveLayout = "missing" },
		},
		{
			name: "pane on unknown slot",
			mutate: func(c *Config) {
				l := c.Layouts["main"]
				l.Panes = map[string]int{"Source": 99}
				c.Layouts["main"] = l
			},
		},
		{
			name: "two panes on one slot",
			mutate: func(c *Config) {
				l := c.Layouts["main"]
				l.Panes = map[string]int{"Source": 0, "Stack": 0}
				c.Layouts["main"] = l
			},
		},
		{
			name: "geometry gap",
			mutate: func(c *Config) {
				l := c.Layouts["main"]
				l.Slots = []*SlotSpec{{ID: 0, Width: 9, Height: 10}, nil, nil}
				c.Layouts["main"] = l
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted an invalid config")
			}
		})
	}
}
