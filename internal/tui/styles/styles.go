// Package styles defines shared lipgloss styles for the TUI and printer.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/agentsim/internal/plan"
)

var (
	// Colors
	primaryColor   = lipgloss.Color("#5FAFAF") // Teal accent
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	successColor   = lipgloss.Color("#87AF87") // Muted sage for success
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta for errors

	// Status badge colors
	pendingColor = lipgloss.Color("#9E9E9E")
	runningColor = lipgloss.Color("#FFA500")
	doneColor    = lipgloss.Color("#2E7D32")
	failedColor  = lipgloss.Color("#C62828")

	// TitleStyle for headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// SubtleStyle for hints/help text
	SubtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// SelectedStyle for the active subtask
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// StatusBarStyle for bottom status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// BoxStyle for panel borders
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)

	// SuccessStyle for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// ErrorStyle for error and warning messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)

// StatusColor returns the badge color for a subtask status.
func StatusColor(s plan.Status) lipgloss.Color {
	switch s {
	case plan.StatusRunning:
		return runningColor
	case plan.StatusDone:
		return doneColor
	case plan.StatusFailed:
		return failedColor
	default:
		return pendingColor
	}
}

// BadgeText returns the fixed-width label shown in a status badge.
func BadgeText(s plan.Status) string {
	return " " + padRight(strings.ToUpper(string(s)), 7) + " "
}

// Badge renders a colored status badge with the default renderer.
func Badge(s plan.Status) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(StatusColor(s)).
		Render(BadgeText(s))
}

func padRight(s string, width int) string {
	if n := len(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
