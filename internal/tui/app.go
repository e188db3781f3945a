// Package tui is the interactive front end: type a goal, watch the plan run.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablasso/agentsim/internal/executor"
	"github.com/pablasso/agentsim/internal/logging"
	"github.com/pablasso/agentsim/internal/plan"
	"github.com/pablasso/agentsim/internal/session"
	"github.com/pablasso/agentsim/internal/tui/components"
	"github.com/pablasso/agentsim/internal/tui/msgs"
	"github.com/pablasso/agentsim/internal/tui/styles"
)

// Options configures the TUI.
type Options struct {
	Session   *session.Session
	Simulator *executor.Simulator
	Logger    *logging.Logger
}

// Minimum terminal dimensions for the run view.
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 15
)

type state int

const (
	stateInput state = iota
	statePlanning
	stateRunning
	stateDone
)

// Model is the Bubble Tea model for the goal runner.
type Model struct {
	opts  Options
	state state

	input     textinput.Model
	spinner   spinner.Model
	bar       progress.Model
	logs      components.LogView
	statusBar components.StatusBar

	run      *session.Run
	subtasks []plan.Subtask
	current  int
	summary  plan.Summary
	events   chan tea.Msg
	warning  string

	width  int
	height int
}

// Run starts the TUI application.
func Run(opts Options) error {
	p := tea.NewProgram(
		New(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	if opts.Session != nil {
		opts.Session.Cancel()
	}
	return err
}

// New creates the initial model.
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	if opts.Simulator == nil {
		opts.Simulator = executor.NewSimulator(0)
	}

	ti := textinput.New()
	ti.Placeholder = "Organize a robotics workshop"
	ti.Prompt = "Goal › "
	ti.CharLimit = 200
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	return Model{
		opts:      opts,
		state:     stateInput,
		input:     ti,
		spinner:   s,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		logs:      components.NewLogView(80, 10, 0),
		statusBar: components.NewStatusBar(),
		current:   -1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case msgs.GoalRejectedMsg:
		m.state = stateInput
		m.warning = warningFor(msg.Err)
		return m, nil

	case msgs.PlanReadyMsg:
		if !m.opts.Session.IsCurrent(msg.Run.ID) {
			return m, nil
		}
		cmd := m.start(msg.Run)
		return m, cmd

	case msgs.SubtaskStartedMsg:
		if !m.isCurrent(msg.RunID) {
			return m, nil
		}
		m.apply(msg.Subtask)
		m.current = msg.Index - 1
		m.logs.AddLine(styles.SelectedStyle.Render(
			fmt.Sprintf("▶ [%d/%d] %s (%s)", msg.Index, msg.Total, msg.Subtask.Title, msg.Subtask.Owner)))
		return m, listen(m.events)

	case msgs.SnapshotMsg:
		if !m.isCurrent(msg.RunID) {
			return m, nil
		}
		m.apply(msg.Subtask)
		m.addLastLine(msg.Subtask)
		return m, listen(m.events)

	case msgs.SubtaskDoneMsg:
		if !m.isCurrent(msg.RunID) {
			return m, nil
		}
		m.apply(msg.Subtask)
		m.addLastLine(msg.Subtask)
		return m, listen(m.events)

	case msgs.RunFinishedMsg:
		if !m.isCurrent(msg.RunID) {
			return m, nil
		}
		m.finish(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.opts.Session.Cancel()
		return m, tea.Quit

	case "esc":
		if m.state == stateRunning || m.state == statePlanning {
			m.opts.Session.Cancel()
			m.state = stateInput
			m.run = nil
			m.warning = "Run cancelled."
		}
		return m, nil

	case "ctrl+l":
		m.opts.Session.Reset()
		m.state = stateInput
		m.run = nil
		m.subtasks = nil
		m.current = -1
		m.summary = plan.Summary{}
		m.warning = ""
		m.logs.Clear()
		m.input.Reset()
		return m, nil

	case "enter":
		goal := m.input.Value()
		if _, err := plan.ValidateGoal(goal); err != nil {
			m.warning = warningFor(err)
			return m, nil
		}
		m.input.Reset()
		m.warning = ""
		m.run = nil
		m.state = statePlanning
		return m, m.submit(goal)

	case "up", "down", "pgup", "pgdown", "home", "end", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit plans goal off the UI goroutine.
func (m Model) submit(goal string) tea.Cmd {
	sess := m.opts.Session
	return func() tea.Msg {
		run, err := sess.Submit(context.Background(), goal)
		if errors.Is(err, session.ErrSuperseded) {
			return nil
		}
		if err != nil {
			return msgs.GoalRejectedMsg{Err: err}
		}
		return msgs.PlanReadyMsg{Run: run}
	}
}

// start launches the executor for run and returns the first listen command.
func (m *Model) start(run *session.Run) tea.Cmd {
	m.run = run
	m.state = stateRunning
	m.warning = ""
	m.current = -1
	m.summary = plan.Summary{}
	m.subtasks = run.Plan.Clone().Subtasks
	m.logs.Clear()
	m.logs.AddLine(styles.SubtleStyle.Render(
		fmt.Sprintf("Planned %d subtasks (%s) for %q", len(m.subtasks), run.Plan.Source, run.Goal)))

	ch := make(chan tea.Msg, eventBuffer)
	m.events = ch

	ex := executor.New(m.opts.Simulator).
		WithEvents(channelEvents{ctx: run.Context(), runID: run.ID, ch: ch}).
		WithLogger(m.opts.Logger.WithRun(run.ID))
	sess := m.opts.Session

	go func() {
		defer close(ch)
		summary, err := sess.Execute(run, ex)
		select {
		case ch <- msgs.RunFinishedMsg{RunID: run.ID, Summary: summary, Err: err}:
		case <-run.Context().Done():
		}
	}()

	return listen(ch)
}

func (m *Model) finish(msg msgs.RunFinishedMsg) {
	if msg.Err != nil {
		m.state = stateInput
		m.warning = "Run stopped: " + msg.Err.Error()
		return
	}
	m.state = stateDone
	m.summary = msg.Summary
	m.logs.AddLine(styles.TitleStyle.UnsetMarginBottom().Render("Summary: " + msg.Summary.String()))
}

func (m Model) isCurrent(runID string) bool {
	return m.run != nil && m.run.ID == runID
}

func (m *Model) apply(st plan.Subtask) {
	if i := st.ID - 1; i >= 0 && i < len(m.subtasks) {
		m.subtasks[i] = st
	}
}

func (m *Model) addLastLine(st plan.Subtask) {
	if n := len(st.Log); n > 0 {
		line := "  " + st.Log[n-1]
		switch st.Status {
		case plan.StatusDone:
			line = styles.SuccessStyle.Render(line)
		case plan.StatusFailed:
			line = styles.ErrorStyle.Render(line)
		}
		m.logs.AddLine(line)
	}
}

func (m *Model) resize() {
	w := max(m.width-4, 20)
	m.input.Width = max(w-len(m.input.Prompt), 10)
	m.bar.Width = min(w, 60)

	// title, goal, bar, blank, subtasks, blank, input, warning, history, status bar
	used := 10 + len(m.subtasks) + 3
	m.logs.SetSize(w, max(m.height-used, 3))
}

func warningFor(err error) string {
	if errors.Is(err, plan.ErrInvalidGoal) {
		return "Please enter a goal."
	}
	return err.Error()
}

// progressCounts returns done and failed counts for the current plan.
func (m Model) progressCounts() (done, failed int) {
	for _, st := range m.subtasks {
		switch st.Status {
		case plan.StatusDone:
			done++
		case plan.StatusFailed:
			failed++
		}
	}
	return done, failed
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width > 0 && (m.width < MinTerminalWidth || m.height < MinTerminalHeight) {
		return m.renderTerminalTooSmall()
	}

	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("agentsim"))
	b.WriteString("\n")

	if m.run != nil {
		b.WriteString(fmt.Sprintf("Goal: %s %s\n", m.run.Goal,
			styles.SubtleStyle.Render("["+string(m.run.Plan.Source)+"]")))

		done, failed := m.progressCounts()
		p := components.NewProgress(done, failed, len(m.subtasks), 0)
		b.WriteString(m.bar.ViewAs(p.Percent()))
		b.WriteString(fmt.Sprintf(" %d/%d", p.Finished(), p.Total))
		if failed > 0 {
			b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf(" (%d failed)", failed)))
		}
		b.WriteString("\n\n")

		for i, st := range m.subtasks {
			b.WriteString(m.renderSubtask(i, st))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.logs.View())
		b.WriteString("\n")
	} else if m.state == statePlanning {
		b.WriteString(m.spinner.View() + " Planning...\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.warning != "" {
		b.WriteString(styles.ErrorStyle.Render(m.warning))
		b.WriteString("\n")
	}
	b.WriteString(m.renderHistory())
	b.WriteString(m.statusBar.Render(m.width, m.hints()))
	return b.String()
}

func (m Model) renderTerminalTooSmall() string {
	return fmt.Sprintf("%s\n\nMinimum: %dx%d\nCurrent: %dx%d\n",
		styles.ErrorStyle.Render("Terminal too small"),
		MinTerminalWidth, MinTerminalHeight, m.width, m.height)
}

func (m Model) renderSubtask(i int, st plan.Subtask) string {
	line := fmt.Sprintf("%s %d. %s %s", styles.Badge(st.Status), st.ID, st.Title,
		styles.SubtleStyle.Render("· "+st.Owner))
	if st.Status == plan.StatusRunning && i == m.current {
		line += " " + m.spinner.View()
	}
	if st.Status.Terminal() && st.Elapsed > 0 {
		line += styles.SubtleStyle.Render(fmt.Sprintf(" %.1fs", st.Elapsed.Seconds()))
	}
	return line
}

func (m Model) renderHistory() string {
	history := m.opts.Session.History()
	if len(history) == 0 {
		return ""
	}

	const shown = 3
	start := max(len(history)-shown, 0)

	var b strings.Builder
	b.WriteString(styles.SubtleStyle.Render("Recent runs:"))
	b.WriteString("\n")
	for i := len(history) - 1; i >= start; i-- {
		r := history[i]
		b.WriteString(styles.SubtleStyle.Render(fmt.Sprintf("  %s · %s", r.Goal, r.Summary.String())))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) hints() []components.KeyHint {
	hints := []components.KeyHint{{Key: "enter", Help: "run goal"}}
	if m.state == stateRunning || m.state == statePlanning {
		hints = append(hints, components.KeyHint{Key: "esc", Help: "cancel"})
	}
	return append(hints,
		components.KeyHint{Key: "↑/↓", Help: "scroll"},
		components.KeyHint{Key: "ctrl+l", Help: "clear"},
		components.KeyHint{Key: "ctrl+c", Help: "quit"},
	)
}
