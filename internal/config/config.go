package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dbgpanel/internal/geometry"
)

// Config is the versioned session configuration. It is loaded once at startup
// and passed into session construction; commands never mutate it in place.
type Config struct {
	Theme        string                  `yaml:"theme"`
	AutoRender   bool                    `yaml:"auto_render"`
	ActiveLayout string                  `yaml:"active_layout"`
	Layouts      map[string]LayoutConfig `yaml:"layouts"`
	Capture      CaptureConfig           `yaml:"capture"`
	Log          LogConfig               `yaml:"log"`
}

// LayoutConfig is one named layout: the encoded slot tree plus the
// pane-to-slot assignment. Panes not listed here start hidden.
type LayoutConfig struct {
	Slots []*SlotSpec    `yaml:"slots"`
	Panes map[string]int `yaml:"panes"`
}

// SlotSpec is one entry of the encoded slot tree, written in YAML as an
// [id, width, height] triple. Absent children are written as null and decode
// to nil entries in the slice.
type SlotSpec struct {
	ID     int
	Width  int
	Height int
}

// UnmarshalYAML decodes the [id, width, height] triple form.
func (s *SlotSpec) UnmarshalYAML(value *yaml.Node) error {
	var triple []int
	if err := value.Decode(&triple); err != nil {
		return fmt.Errorf("slot must be an [id, width, height] triple: %w", err)
	}
	if len(triple) != 3 {
		return fmt.Errorf("slot must have exactly 3 elements, got %d", len(triple))
	}
	s.ID, s.Width, s.Height = triple[0], triple[1], triple[2]
	return nil
}

// CaptureConfig controls subordinate output capture.
// Mode "fifo" redirects the subordinate's stdout into a named pipe; mode
// "pty" runs it on a pseudo-terminal first, which keeps libc line-buffering
// and so surfaces output without explicit flushes.
type CaptureConfig struct {
	Mode        string `yaml:"mode"`
	BufferLines int    `yaml:"buffer_lines"`
}

// LogConfig controls the engine's own diagnostic log file.
type LogConfig struct {
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func DefaultConfig() Config {
	return Config{
		Theme:        "mocha",
		AutoRender:   true,
		ActiveLayout: "main",
		Layouts: map[string]LayoutConfig{
			"main": {
				// -----------------
				// | Source   | Wch|
				// |          |----|
				// |----------|Stk |
				// | Brk      |    |
				// -----------------
				Slots: []*SlotSpec{
					{ID: 0, Width: 6, Height: 8}, {ID: 1, Width: 4, Height: 6}, nil,
					{ID: 2, Width: 4, Height: 4}, nil, nil,
					{ID: 3, Width: 6, Height: 2}, nil, nil,
				},
				Panes: map[string]int{"Source": 0, "Watch": 1, "Stack": 2, "Breakpoints": 3},
			},
			"logs": {
				Slots: []*SlotSpec{
					{ID: 0, Width: 10, Height: 7}, nil,
					{ID: 1, Width: 10, Height: 3}, nil, nil,
				},
				Panes: map[string]int{"Log": 0, "Diagnostics": 1},
			},
		},
		Capture: CaptureConfig{Mode: "fifo", BufferLines: 500},
		Log:     LogConfig{Level: "info"},
	}
}

func Load() (Config, error) {
	return LoadFrom(getConfigPath())
}

func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}

	if cfg.Theme == "" {
		cfg.Theme = "mocha"
	}
	if cfg.Capture.BufferLines <= 0 {
		cfg.Capture.BufferLines = 500
	}
	if cfg.Capture.Mode == "" {
		cfg.Capture.Mode = "fifo"
	}

	return cfg, nil
}

// Validate resolves every configured layout and checks pane assignments.
// A config that fails here must be rejected before any session is built,
// never patched up at render time.
func (c *Config) Validate() error {
	if len(c.Layouts) == 0 {
		return fmt.Errorf("no layouts configured")
	}
	if _, ok := c.Layouts[c.ActiveLayout]; !ok {
		return fmt.Errorf("active_layout %q is not a configured layout", c.ActiveLayout)
	}
	for key, lc := range c.Layouts {
		if err := lc.Validate(); err != nil {
			return fmt.Errorf("layout %q: %w", key, err)
		}
	}
	return nil
}

// Validate builds and resolves the layout's slot tree and checks that every
// pane assignment names an existing slot, with at most one pane per slot.
func (l LayoutConfig) Validate() error {
	root, err := geometry.BuildTree(l.SlotTree())
	if err != nil {
		return err
	}
	regions, err := geometry.Resolve(root)
	if err != nil {
		return err
	}

	ids := make(map[int]bool, len(regions))
	for _, r := range regions {
		ids[r.ID] = true
	}
	holder := make(map[int]string, len(l.Panes))
	for pane, id := range l.Panes {
		if !ids[id] {
			return fmt.Errorf("pane %s assigned to unknown slot %d", pane, id)
		}
		if other, taken := holder[id]; taken {
			return fmt.Errorf("panes %s and %s both assigned to slot %d", other, pane, id)
		}
		holder[id] = pane
	}
	return nil
}

// SlotTree converts the decoded YAML slot entries into the geometry form,
// preserving nil absent-markers.
func (l LayoutConfig) SlotTree() []*geometry.Slot {
	slots := make([]*geometry.Slot, len(l.Slots))
	for i, s := range l.Slots {
		if s == nil {
			continue
		}
		slots[i] = &geometry.Slot{ID: s.ID, Width: s.Width, Height: s.Height}
	}
	return slots
}

// DataDir returns the directory for runtime state: the instance lock and
// capture FIFOs live here.
func DataDir() string {
	if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
		return filepath.Join(xdgState, "dbgpanel")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "dbgpanel")
	}
	return filepath.Join(home, ".local", "state", "dbgpanel")
}

func getConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "dbgpanel", "config.yaml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "dbgpanel", "config.yaml")
	}

	return filepath.Join(home, ".config", "dbgpanel", "config.yaml")
}
