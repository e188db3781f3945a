// Package msgs defines the messages exchanged between the TUI and the
// running pipeline.
package msgs

import (
	"github.com/pablasso/agentsim/internal/plan"
	"github.com/pablasso/agentsim/internal/session"
)

// PlanReadyMsg is sent when a submitted goal has been planned.
type PlanReadyMsg struct {
	Run *session.Run
}

// GoalRejectedMsg is sent when a goal cannot be planned.
type GoalRejectedMsg struct {
	Err error
}

// SubtaskStartedMsg carries the running snapshot of a subtask.
type SubtaskStartedMsg struct {
	RunID   string
	Index   int
	Total   int
	Subtask plan.Subtask
}

// SnapshotMsg carries a snapshot after a progress line.
type SnapshotMsg struct {
	RunID   string
	Subtask plan.Subtask
}

// SubtaskDoneMsg carries the terminal snapshot of a subtask.
type SubtaskDoneMsg struct {
	RunID   string
	Subtask plan.Subtask
}

// RunFinishedMsg is sent once the executor returns.
type RunFinishedMsg struct {
	RunID   string
	Summary plan.Summary
	Err     error
}
