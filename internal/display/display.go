// Package display prints plan progress for non-interactive runs.
package display

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pablasso/agentsim/internal/executor"
	"github.com/pablasso/agentsim/internal/plan"
	"github.com/pablasso/agentsim/internal/tui/components"
	"github.com/pablasso/agentsim/internal/tui/styles"
)

const (
	statusBarWidth  = 8
	summaryBarWidth = 16
)

// State holds what the status line shows.
type State struct {
	SubtaskNum    int
	TotalSubtasks int
	Title         string
	Owner         string
	Done          int
	Failed        int
	Status        plan.Status
	StartTime     time.Time
}

// Display prints progress lines and, when live, a ticking status line
// below them. It implements executor.Events.
type Display struct {
	mu       sync.Mutex
	writer   io.Writer
	renderer *lipgloss.Renderer
	state    State
	live     bool
	ticker   *time.Ticker
	done     chan struct{}
	wg       sync.WaitGroup
	active   bool
	lastLine string
}

var _ executor.Events = (*Display)(nil)

// New creates a Display writing to w. Colors follow w's capabilities.
func New(w io.Writer) *Display {
	return &Display{
		writer:   w,
		renderer: lipgloss.NewRenderer(w),
		done:     make(chan struct{}),
	}
}

// WithLiveStatus enables the redrawn status line. Only use it on a terminal.
func (d *Display) WithLiveStatus(live bool) *Display {
	d.live = live
	return d
}

// OnPlanStart prints the plan and starts the status line.
func (d *Display) OnPlanStart(p *plan.Plan) {
	d.mu.Lock()
	d.state = State{TotalSubtasks: len(p.Subtasks), Status: plan.StatusPending}
	d.mu.Unlock()

	title := d.renderer.NewStyle().Bold(true)
	subtle := d.renderer.NewStyle().Faint(true)

	d.printAbove("%s %s", title.Render("Goal:"), p.Goal)
	d.printAbove("%s", subtle.Render(fmt.Sprintf("Plan %s (%s, %d subtasks)", p.ID, p.Source, len(p.Subtasks))))
	for _, st := range p.Subtasks {
		d.printAbove("  %d. %s %s", st.ID, st.Title, subtle.Render("· "+st.Owner))
	}
	d.printAbove("")

	d.start()
}

// OnSubtaskStart prints a header for the subtask.
func (d *Display) OnSubtaskStart(index, total int, st plan.Subtask) {
	d.mu.Lock()
	d.state.SubtaskNum = index
	d.state.TotalSubtasks = total
	d.state.Title = st.Title
	d.state.Owner = st.Owner
	d.state.Status = st.Status
	d.mu.Unlock()

	d.printAbove("%s [%d/%d] %s", d.badge(st.Status), index, total, st.Title)
}

// OnSnapshot prints the newest log line.
func (d *Display) OnSnapshot(st plan.Subtask) {
	if n := len(st.Log); n > 0 {
		d.printAbove("    %s", st.Log[n-1])
	}
}

// OnSubtaskDone prints the outcome line.
func (d *Display) OnSubtaskDone(st plan.Subtask) {
	d.mu.Lock()
	d.state.Status = st.Status
	switch st.Status {
	case plan.StatusDone:
		d.state.Done++
	case plan.StatusFailed:
		d.state.Failed++
	}
	d.mu.Unlock()

	if n := len(st.Log); n > 0 {
		color := d.renderer.NewStyle().Foreground(styles.StatusColor(st.Status))
		d.printAbove("    %s", color.Render(st.Log[n-1]))
	}
	d.printAbove("%s %s %s", d.badge(st.Status), st.Title,
		d.renderer.NewStyle().Faint(true).Render(fmt.Sprintf("(%.1fs)", st.Elapsed.Seconds())))
}

// OnPlanComplete stops the status line and prints the summary.
func (d *Display) OnPlanComplete(s plan.Summary) {
	d.Stop()

	bar := components.NewProgress(s.Completed, s.Failed, s.Total, summaryBarWidth)
	style := d.renderer.NewStyle().Bold(true).Foreground(styles.StatusColor(plan.StatusDone))
	if !s.AllSucceeded() {
		style = style.Foreground(styles.StatusColor(plan.StatusFailed))
	}

	fmt.Fprintln(d.writer)
	fmt.Fprintln(d.writer, bar.View())
	fmt.Fprintln(d.writer, style.Render("Summary: "+s.String()))
}

func (d *Display) badge(s plan.Status) string {
	return d.renderer.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.StatusColor(s)).
		Render(styles.BadgeText(s))
}

// start begins the status line update loop when live.
func (d *Display) start() {
	d.mu.Lock()
	if !d.live || d.active {
		d.mu.Unlock()
		return
	}
	d.active = true
	d.done = make(chan struct{})
	d.state.StartTime = time.Now()
	d.ticker = time.NewTicker(time.Second)
	d.wg.Add(1)
	d.mu.Unlock()

	go d.updateLoop()
}

// Stop halts the update loop and clears the status line.
// Blocks until the update goroutine has exited.
func (d *Display) Stop() {
	d.mu.Lock()
	if !d.active {
		d.mu.Unlock()
		return
	}
	d.active = false
	d.mu.Unlock()

	d.ticker.Stop()
	close(d.done)
	d.wg.Wait()
	d.clearLine()
}

func (d *Display) updateLoop() {
	defer d.wg.Done()
	d.render()
	for {
		select {
		case <-d.ticker.C:
			d.render()
		case <-d.done:
			return
		}
	}
}

func (d *Display) render() {
	d.mu.Lock()
	if !d.active {
		d.mu.Unlock()
		return
	}
	state := d.state
	lastLine := d.lastLine
	d.mu.Unlock()

	line := formatLine(state, time.Since(state.StartTime))

	// Only update if changed (reduces flicker)
	if line == lastLine {
		return
	}

	d.mu.Lock()
	d.lastLine = line
	d.mu.Unlock()

	fmt.Fprintf(d.writer, "\r\033[K%s", line)
}

func (d *Display) clearLine() {
	if d.live {
		fmt.Fprintf(d.writer, "\r\033[K")
	}
}

// printAbove prints a line above the status line and redraws it.
func (d *Display) printAbove(format string, args ...any) {
	d.clearLine()
	fmt.Fprintf(d.writer, format+"\n", args...)

	d.mu.Lock()
	d.lastLine = ""
	d.mu.Unlock()
	d.render()
}

// formatLine creates the status line string.
func formatLine(state State, elapsed time.Duration) string {
	if state.TotalSubtasks == 0 {
		return ""
	}

	title := ansi.Truncate(state.Title, 40, "...")

	bar := components.NewProgress(state.Done, state.Failed, state.TotalSubtasks, statusBarWidth)

	return fmt.Sprintf("Subtask %d/%d: %s │ %s │ %s │ ⏱ %s",
		state.SubtaskNum,
		state.TotalSubtasks,
		title,
		state.Owner,
		bar.View(),
		formatDuration(elapsed))
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
