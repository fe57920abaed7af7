// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Defines colors and text styles used across components

package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	Info      = lipgloss.Color("#3B82F6") // Blue

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	// Node type styles in the hierarchy browser
	Chassis = lipgloss.NewStyle().
		Foreground(Info).
		Bold(true)

	LPAR = lipgloss.NewStyle().
		Foreground(Secondary)

	UnmatchedLPAR = lipgloss.NewStyle().
			Foreground(Danger)

	Group = lipgloss.NewStyle().
		Foreground(Warning)

	Component = lipgloss.NewStyle().
			Foreground(Text)

	Metadata = lipgloss.NewStyle().
			Foreground(Muted)

	Cursor = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted)
)
