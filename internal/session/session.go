// pattern: Imperative Shell

package session

import (
	"fmt"
	"io"
	"os"

	"dbgpanel/internal/capture"
	"dbgpanel/internal/config"
	"dbgpanel/internal/debugger"
	"dbgpanel/internal/geometry"
	"dbgpanel/internal/logging"
	"dbgpanel/internal/pane"
)

// Options configures session construction. Config and Host are required;
// everything else has a usable default.
type Options struct {
	Config config.Config
	Host   debugger.Host

	// Logs provides scoped loggers for the session's components.
	Logs logging.LoggerProvider
	// Entries feeds the Diagnostics pane. Nil leaves the pane unregistered;
	// layouts that bind it are then rejected on switch.
	Entries <-chan logging.LogEntry

	// Out receives the composed canvas. Defaults to os.Stdout.
	Out io.Writer
	// Size reports the terminal dimensions before each render.
	Size func() (width, height int)
	// DataDir holds the capture FIFOs.
	DataDir string
}

// layout is one registered, pre-validated layout: its resolved regions
// (memoized, the tree never changes after registration) and pane assignment.
type layout struct {
	panes   map[string]int
	regions []geometry.Region
}

// Session owns the active layout, the pane registry and the capture channel,
// and orchestrates composition into a single terminal write. Every method
// runs on the host's synchronous command path; the capture reader is the only
// background activity, and it hands lines over through the locked buffer.
type Session struct {
	cfg    config.Config
	host   debugger.Host
	logs   logging.LoggerProvider
	logger *logging.ScopedLogger
	styles *pane.Styles
	out    io.Writer
	size   func() (int, int)

	dataDir string

	registry *pane.Registry
	layouts  map[string]*layout
	active   string

	watch   *pane.WatchPane
	history *pane.HistoryPane
	logPane *pane.LogPane
	source  *pane.SourcePane

	channel *capture.Channel
	exits   chan error

	autoRender     bool
	skipRenderOnce bool
}

type nopProvider struct{}

func (nopProvider) For(string) *logging.ScopedLogger { return logging.NopLogger() }

// New validates the configuration, resolves every named layout once, builds
// the pane set and activates the configured layout.
func New(opts Options) (*Session, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Host == nil {
		return nil, fmt.Errorf("session: nil debugger host")
	}
	if opts.Logs == nil {
		opts.Logs = nopProvider{}
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Size == nil {
		opts.Size = func() (int, int) { return 80, 24 }
	}

	st := pane.NewStyles(cfg.Theme)
	s := &Session{
		cfg:        cfg,
		host:       opts.Host,
		logs:       opts.Logs,
		logger:     opts.Logs.For("session"),
		styles:     st,
		out:        opts.Out,
		size:       opts.Size,
		dataDir:    opts.DataDir,
		registry:   pane.NewRegistry(),
		layouts:    make(map[string]*layout),
		exits:      make(chan error, 1),
		autoRender: cfg.AutoRender,
	}

	s.watch = pane.NewWatchPane(opts.Host)
	s.history = pane.NewHistoryPane()
	s.logPane = pane.NewLogPane(st)
	s.source = pane.NewSourcePane(opts.Host, st, "catppuccin-"+cfg.Theme, opts.Logs.For("pane.Source"))

	panes := []pane.Pane{
		s.source,
		s.watch,
		pane.NewStackPane(opts.Host, st),
		pane.NewBreakpointsPane(opts.Host, st),
		s.logPane,
		s.history,
	}
	if opts.Entries != nil {
		panes = append(panes, pane.NewDiagnosticsPane(opts.Entries))
	}
	for _, p := range panes {
		if err := s.registry.Add(p); err != nil {
			return nil, err
		}
	}

	for key, lc := range cfg.Layouts {
		if err := s.RegisterLayout(key, lc); err != nil {
			return nil, fmt.Errorf("layout %q: %w", key, err)
		}
	}
	if err := s.SwitchLayout(cfg.ActiveLayout); err != nil {
		return nil, err
	}
	return s, nil
}

// AddPane registers an extension pane. The pane set is open: anything
// producing a text block can participate in binding and layouts alongside
// the built-in panes.
func (s *Session) AddPane(p pane.Pane) error { return s.registry.Add(p) }

// RegisterLayout resolves and registers a named layout. An invalid layout is
// rejected without touching registered layouts or the active one.
func (s *Session) RegisterLayout(key string, lc config.LayoutConfig) error {
	root, err := geometry.BuildTree(lc.SlotTree())
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
	holder := make(map[int]string, len(lc.Panes))
	panes := make(map[string]int, len(lc.Panes))
	for name, id := range lc.Panes {
		if !ids[id] {
			return fmt.Errorf("pane %s assigned to unknown slot %d", name, id)
		}
		if other, taken := holder[id]; taken {
			return fmt.Errorf("panes %s and %s both assigned to slot %d", other, name, id)
		}
		holder[id] = name
		panes[name] = id
	}
	s.layouts[key] = &layout{panes: panes, regions: regions}
	return nil
}

// SwitchLayout activates a registered layout, replacing the binding table
// wholesale. On any failure the previously active layout and its bindings
// stay in effect.
func (s *Session) SwitchLayout(key string) error {
	l, ok := s.layouts[key]
	if !ok {
		return fmt.Errorf("unknown layout %q", key)
	}
	if err := s.registry.SetBindings(l.panes); err != nil {
		return err
	}
	s.active = key
	return nil
}

// ActiveLayout returns the key of the active layout.
func (s *Session) ActiveLayout() string { return s.active }

// View binds the named pane to a slot of the active layout, swapping or
// evicting the current occupant.
func (s *Session) View(name string, regionID int) error {
	l := s.layouts[s.active]
	known := false
	for _, r := range l.regions {
		if r.ID == regionID {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("no slot %d in layout %q", regionID, s.active)
	}
	return s.registry.Bind(name, regionID)
}

// Watch adds an expression to the watch list.
func (s *Session) Watch(expr string) { s.watch.Watch(expr) }

// Unwatch removes a watched expression by index or exact text.
func (s *Session) Unwatch(arg string) error { return s.watch.Unwatch(arg) }

// Print evaluates an expression and records the result in the value history.
func (s *Session) Print(expr string) error {
	val, err := s.host.Evaluate(expr)
	if err != nil {
		return fmt.Errorf("print %s: %w", expr, err)
	}
	s.history.Record(expr, val)
	return nil
}

// Run launches a subordinate with its stdout captured. A channel failure
// degrades to an uncaptured launch with a warning; it never blocks the run.
// The previous run's channel, if any, is torn down first; the fresh buffer
// replaces the old one, so the Log pane starts the run empty.
func (s *Session) Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("run: no command given")
	}
	s.teardownChannel()

	buf := capture.NewBuffer(s.cfg.Capture.BufferLines)
	ch, err := capture.NewChannel(s.dataDir, buf, s.logs.For("capture"))
	if err != nil {
		s.logger.Warn("capture disabled for this run", "error", err)
		s.logPane.SetBuffer(nil)
		return s.host.Run(args, nil, s.onExit)
	}
	w, err := ch.OpenWriter()
	if err != nil {
		_ = ch.Close()
		s.logger.Warn("capture disabled for this run", "error", err)
		s.logPane.SetBuffer(nil)
		return s.host.Run(args, nil, s.onExit)
	}
	ch.Start()

	if err := s.host.Run(args, w, s.onExit); err != nil {
		_ = w.Close()
		_ = ch.Close()
		return err
	}
	s.channel = ch
	s.logPane.SetBuffer(buf)
	return nil
}

// onExit fires from whatever context observes subordinate termination; it
// only posts the event, the command path consumes it via SubordinateExits.
func (s *Session) onExit(err error) {
	select {
	case s.exits <- err:
	default:
	}
}

// SubordinateExits delivers one event per subordinate termination. The
// consumer is expected to call NotifyExited with the received error.
func (s *Session) SubordinateExits() <-chan error { return s.exits }

// Flush drains whatever the capture channel currently holds, without
// blocking. A no-op when no capture is active.
func (s *Session) Flush() {
	if s.channel != nil {
		s.channel.Flush()
	}
}

// NotifyStopped is the auto-flush hook for subordinate pause events: control
// returned to the host, so make pending output visible in the next render.
func (s *Session) NotifyStopped() { s.Flush() }

// NotifyExited tears down the capture channel after subordinate exit. The
// buffer stays: the Log pane keeps showing the final output until the next
// launch replaces it.
func (s *Session) NotifyExited(err error) {
	if err != nil {
		s.logger.Info("subordinate exited", "error", err)
	} else {
		s.logger.Info("subordinate exited")
	}
	s.teardownChannel()
}

func (s *Session) teardownChannel() {
	if s.channel == nil {
		return
	}
	s.channel.Flush()
	if err := s.channel.Close(); err != nil {
		s.logger.Warn("capture teardown failed", "error", err)
	}
	s.channel = nil
}

// Close releases the capture channel and pane resources.
func (s *Session) Close() error {
	s.teardownChannel()
	return s.source.Close()
}
