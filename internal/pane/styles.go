package pane

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Markers for the Breakpoints pane.
const (
	MarkerHit  = "▶" // ▶
	MarkerIdle = "▷" // ▷
)

// Styles carries the themed lipgloss styles shared by panes and the canvas
// composer.
type Styles struct {
	flavor catppuccin.Flavor
}

func NewStyles(themeName string) *Styles {
	return &Styles{flavor: flavorFromName(themeName)}
}

func flavorFromName(name string) catppuccin.Flavor {
	switch name {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	case "mocha":
		return catppuccin.Mocha
	default:
		return catppuccin.Mocha
	}
}

// Delimiter styles the border characters between regions.
func (s *Styles) Delimiter() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.flavor.Yellow().Hex))
}

// Filename styles source locations in the Breakpoints and Stack panes.
func (s *Styles) Filename() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.flavor.Green().Hex))
}

// Function styles function names in the Breakpoints and Stack panes.
func (s *Styles) Function() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.flavor.Peach().Hex))
}

// AbnormalFrame styles frames with no source backing (debugger-injected
// calls, signal handlers).
func (s *Styles) AbnormalFrame() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.flavor.Blue().Hex))
}

// BreakpointMarker styles the hit/idle markers.
func (s *Styles) BreakpointMarker() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.flavor.Red().Hex))
}

// Disabled strikes through disabled breakpoints.
func (s *Styles) Disabled() lipgloss.Style {
	return lipgloss.NewStyle().Strikethrough(true)
}

// CurrentLine underlines the selected source line.
func (s *Styles) CurrentLine() lipgloss.Style {
	return lipgloss.NewStyle().Underline(true)
}

// ErrorMarker styles the inline marker substituted for a failed pane.
func (s *Styles) ErrorMarker() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.flavor.Red().Hex)).Bold(true)
}

// Muted styles secondary text such as placeholder messages.
func (s *Styles) Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.flavor.Overlay0().Hex))
}
