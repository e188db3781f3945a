package components

import (
	"strings"

	"github.com/pablasso/agentsim/internal/tui/styles"
)

// KeyHint is one entry in the status bar, e.g. {"enter", "submit"}.
type KeyHint struct {
	Key  string
	Help string
}

// StatusBar renders a bottom help bar showing contextual key hints.
type StatusBar struct{}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// Render returns the status bar for the given width and hints,
// joined with " • ".
func (s StatusBar) Render(width int, hints []KeyHint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, h.Key+" "+h.Help)
	}
	return styles.StatusBarStyle.Width(width).Render(strings.Join(parts, " • "))
}
