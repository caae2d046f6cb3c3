// Package ui holds the lipgloss styling for the interactive tuner: teal,
// gold and red for the three gains on a dark background.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Background = lipgloss.Color("#222222")
	Foreground = lipgloss.Color("#f2f2f2")
	Teal       = lipgloss.Color("#4ECDC4") // Kp
	Gold       = lipgloss.Color("#F5C518") // Ki
	Red        = lipgloss.Color("#FF6B6B") // Kd
	Blue       = lipgloss.Color("#1E90FF")
	Green      = lipgloss.Color("#28a745")
	Muted      = lipgloss.Color("#777777")
)

// Styles holds every styled component of the tuner.
type Styles struct {
	Title    lipgloss.Style
	KpLabel  lipgloss.Style
	KiLabel  lipgloss.Style
	KdLabel  lipgloss.Style
	Selector lipgloss.Style
	Focused  lipgloss.Style
	Panel    lipgloss.Style
	Axis     lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the dark panel look.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(Foreground).
			Bold(true).
			Padding(0, 1),

		KpLabel: lipgloss.NewStyle().Foreground(Teal).Bold(true),
		KiLabel: lipgloss.NewStyle().Foreground(Gold).Bold(true),
		KdLabel: lipgloss.NewStyle().Foreground(Red).Bold(true),

		Selector: lipgloss.NewStyle().Foreground(Blue).Bold(true),
		Focused:  lipgloss.NewStyle().Foreground(Foreground).Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(0, 1),

		Axis:   lipgloss.NewStyle().Foreground(Muted),
		Status: lipgloss.NewStyle().Foreground(Green),
		Error:  lipgloss.NewStyle().Foreground(Red).Bold(true),
		Help:   lipgloss.NewStyle().Foreground(Muted),
	}
}
