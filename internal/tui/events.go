package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablasso/agentsim/internal/executor"
	"github.com/pablasso/agentsim/internal/plan"
	"github.com/pablasso/agentsim/internal/tui/msgs"
)

// eventBuffer is the capacity of the executor to TUI channel.
const eventBuffer = 64

// channelEvents forwards executor callbacks as tea messages tagged with the
// run ID. Sends give up once the run context is done so a superseded run
// never blocks on a reader that has moved on.
type channelEvents struct {
	executor.NopEvents
	ctx   context.Context
	runID string
	ch    chan<- tea.Msg
}

func (e channelEvents) send(msg tea.Msg) {
	select {
	case e.ch <- msg:
	case <-e.ctx.Done():
	}
}

func (e channelEvents) OnSubtaskStart(index, total int, st plan.Subtask) {
	e.send(msgs.SubtaskStartedMsg{RunID: e.runID, Index: index, Total: total, Subtask: st})
}

func (e channelEvents) OnSnapshot(st plan.Subtask) {
	e.send(msgs.SnapshotMsg{RunID: e.runID, Subtask: st})
}

func (e channelEvents) OnSubtaskDone(st plan.Subtask) {
	e.send(msgs.SubtaskDoneMsg{RunID: e.runID, Subtask: st})
}

// listen returns a command that delivers the next message from ch.
// It yields nil once ch is closed.
func listen(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
