// pattern: Imperative Shell
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"dbgpanel/internal/capture"
	"dbgpanel/internal/config"
	"dbgpanel/internal/debugger"
	"dbgpanel/internal/instance"
	"dbgpanel/internal/logging"
	"dbgpanel/internal/session"
)

var version = "dev"

func main() {
	configPath := flag.StringP("config", "c", "", "config file (default: ~/.config/dbgpanel/config.yaml)")
	dataDir := flag.String("data-dir", "", "runtime state directory (default: ~/.local/state/dbgpanel)")
	showVersion := flag.BoolP("version", "v", false, "print version")
	flag.Parse()

	if *showVersion {
		fmt.Println("dbgpanel " + version)
		return
	}

	if err := run(*configPath, *dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, dataDir string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if dataDir == "" {
		dataDir = config.DataDir()
	}

	fl, err := instance.Lock(dataDir)
	if err != nil {
		return err
	}
	defer instance.Unlock(fl)

	logManager, err := logging.NewManager(logging.Config{
		FilePath:   filepath.Join(dataDir, "dbgpanel.log"),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Level:      cfg.Log.Level,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logManager.Close() }()

	appLogger := logManager.For("app")
	appLogger.Info("panel starting", "version", version, "data_dir", dataDir)

	if stale := capture.StaleChannels(dataDir); len(stale) > 0 {
		appLogger.Warn("stale capture channels from a previous session", "paths", stale)
		fmt.Fprintf(os.Stderr, "Warning: %d stale capture channel(s) under %s\n", len(stale), dataDir)
	}

	host := debugger.NewExecHost(cfg.Capture.Mode == "pty", logManager.For("host"))
	defer host.Terminate()

	sess, err := session.New(session.Options{
		Config:  cfg,
		Host:    host,
		Logs:    logManager,
		Entries: logManager.Entries(),
		Size:    terminalSize,
		DataDir: dataDir,
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	return commandLoop(sess, appLogger)
}

func loadConfig(configPath string) (config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

func terminalSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

// commandLoop reads panel commands from stdin. Input arrives through a
// reader goroutine so subordinate-exit events are handled while the prompt
// is idle; the session itself is only ever touched from this loop.
func commandLoop(sess *session.Session, logger *logging.ScopedLogger) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		readErr <- scanner.Err()
	}()

	fmt.Print("(panel) ")
	for {
		select {
		case line := <-lines:
			if err := sess.Dispatch(line); err != nil {
				fmt.Fprintf(os.Stderr, "panel: %v\n", err)
				logger.Warn("command failed", "input", line, "error", err)
			}
			sess.AfterCommand()
			fmt.Print("(panel) ")

		case err := <-sess.SubordinateExits():
			sess.NotifyExited(err)
			sess.AfterCommand()
			fmt.Print("(panel) ")

		case err := <-readErr:
			fmt.Println()
			return err
		}
	}
}
