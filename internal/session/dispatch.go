// pattern: Imperative Shell

package session

import (
	"fmt"
	"strconv"
	"strings"
)

// Dispatch executes one panel command line. The leading "panel" word is
// optional; hosts that register "panel" as a command pass only the argument
// string. Failed commands report a single error and leave all state
// unchanged.
//
// Rendering is driven by AfterCommand, which the host calls once per
// executed command; Dispatch only sets the suppression flags. The bare
// command and "flush" render immediately and skip that cycle, "silent"
// skips it outright.
func (s *Session) Dispatch(line string) error {
	cmd, rest := splitWord(line)
	if cmd == "panel" {
		cmd, rest = splitWord(rest)
	}

	switch cmd {
	case "":
		s.skipRenderOnce = true
		return s.Render()

	case "view":
		name, slotArg := splitWord(rest)
		if name == "" || slotArg == "" {
			return fmt.Errorf("usage: panel view <pane> <slot>")
		}
		slot, err := strconv.Atoi(slotArg)
		if err != nil {
			return fmt.Errorf("slot must be a number, got %q", slotArg)
		}
		return s.View(name, slot)

	case "silent":
		s.skipRenderOnce = true
		if rest != "" {
			return s.host.Execute(rest)
		}
		return nil

	case "layout":
		if rest == "" {
			return fmt.Errorf("usage: panel layout <key>")
		}
		return s.SwitchLayout(rest)

	case "run":
		return s.Run(strings.Fields(rest))

	case "watch":
		if rest == "" {
			return fmt.Errorf("usage: panel watch <expr>")
		}
		s.Watch(rest)
		return nil

	case "unwatch":
		if rest == "" {
			return fmt.Errorf("usage: panel unwatch <expr|index>")
		}
		return s.Unwatch(rest)

	case "print":
		if rest == "" {
			return fmt.Errorf("usage: panel print <expr>")
		}
		return s.Print(rest)

	case "flush":
		s.Flush()
		s.skipRenderOnce = true
		return s.Render()

	default:
		return fmt.Errorf("unknown panel command %q", cmd)
	}
}

// AfterCommand is the render trigger that follows every host command
// execution. Honors the skip-once flag and the configured auto-render
// setting.
func (s *Session) AfterCommand() {
	if s.skipRenderOnce {
		s.skipRenderOnce = false
		return
	}
	if !s.autoRender {
		return
	}
	if err := s.Render(); err != nil {
		s.logger.Warn("render failed", "error", err)
	}
}

// splitWord splits off the first whitespace-delimited word, returning it and
// the trimmed remainder.
func splitWord(s string) (word, rest string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}
