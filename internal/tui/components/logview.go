package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

const defaultMaxLines = 1000

// LogView is a scrollable log pane that follows new lines until the user
// scrolls up.
type LogView struct {
	viewport   viewport.Model
	autoScroll bool
	raw        []string
	maxLines   int
	width      int
	height     int
}

// NewLogView creates a LogView. maxLines bounds the buffer (0 uses 1000).
func NewLogView(width, height, maxLines int) LogView {
	if maxLines <= 0 {
		maxLines = defaultMaxLines
	}
	vp := viewport.New(width, height)
	vp.SetContent("")
	return LogView{
		viewport:   vp,
		autoScroll: true,
		maxLines:   maxLines,
		width:      width,
		height:     height,
	}
}

// AddLine appends one line.
func (l *LogView) AddLine(line string) {
	l.raw = append(l.raw, line)
	if over := len(l.raw) - l.maxLines; over > 0 {
		l.raw = l.raw[over:]
	}
	l.refresh()
}

// SetLines replaces the buffer.
func (l *LogView) SetLines(lines []string) {
	if over := len(lines) - l.maxLines; over > 0 {
		lines = lines[over:]
	}
	l.raw = append(l.raw[:0], lines...)
	l.refresh()
}

// Clear empties the buffer and resumes following.
func (l *LogView) Clear() {
	l.raw = l.raw[:0]
	l.autoScroll = true
	l.viewport.SetContent("")
	l.viewport.GotoTop()
}

// LineCount returns the number of buffered (unwrapped) lines.
func (l LogView) LineCount() int {
	return len(l.raw)
}

// AutoScroll reports whether the view follows new lines.
func (l LogView) AutoScroll() bool {
	return l.autoScroll
}

// Update handles scroll keys.
func (l LogView) Update(msg tea.Msg) (LogView, tea.Cmd) {
	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "up", "pgup", "ctrl+u", "home":
			l.autoScroll = false
		case "down", "pgdown", "ctrl+d":
			if l.viewport.AtBottom() {
				l.autoScroll = true
			}
		case "end":
			l.autoScroll = true
			l.viewport.GotoBottom()
		}
	}
	return l, cmd
}

// SetSize updates the pane dimensions and rewraps.
func (l *LogView) SetSize(width, height int) {
	if width == l.width && height == l.height {
		return
	}
	l.width = width
	l.height = height
	l.viewport.Width = width
	l.viewport.Height = height
	l.refresh()
}

// View renders the pane.
func (l LogView) View() string {
	return l.viewport.View()
}

func (l *LogView) refresh() {
	lines := make([]string, 0, len(l.raw))
	for _, raw := range l.raw {
		if l.width > 0 {
			raw = ansi.Wrap(raw, l.width, " /")
		}
		lines = append(lines, strings.Split(raw, "\n")...)
	}
	l.viewport.SetContent(strings.Join(lines, "\n"))
	if l.autoScroll {
		l.viewport.GotoBottom()
	}
}
