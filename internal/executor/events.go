package executor

import (
	"github.com/pablasso/agentsim/internal/plan"
)

// Events receives callbacks during plan simulation.
// Implement this interface in the TUI or a printer to receive updates.
type Events interface {
	// OnPlanStart is called once before the first subtask runs
	OnPlanStart(p *plan.Plan)

	// OnSubtaskStart is called with the running snapshot of a subtask
	OnSubtaskStart(index, total int, st plan.Subtask)

	// OnSnapshot is called after each progress line
	OnSnapshot(st plan.Subtask)

	// OnSubtaskDone is called with the terminal snapshot
	OnSubtaskDone(st plan.Subtask)

	// OnPlanComplete is called when every subtask is terminal
	OnPlanComplete(s plan.Summary)
}

// NopEvents ignores every callback. Embed it to implement a subset.
type NopEvents struct{}

func (NopEvents) OnPlanStart(*plan.Plan)                {}
func (NopEvents) OnSubtaskStart(int, int, plan.Subtask) {}
func (NopEvents) OnSnapshot(plan.Subtask)               {}
func (NopEvents) OnSubtaskDone(plan.Subtask)            {}
func (NopEvents) OnPlanComplete(plan.Summary)           {}

// MultiEvents fans callbacks out to each receiver in order.
type MultiEvents []Events

func (m MultiEvents) OnPlanStart(p *plan.Plan) {
	for _, e := range m {
		e.OnPlanStart(p)
	}
}

func (m MultiEvents) OnSubtaskStart(index, total int, st plan.Subtask) {
	for _, e := range m {
		e.OnSubtaskStart(index, total, st)
	}
}

func (m MultiEvents) OnSnapshot(st plan.Subtask) {
	for _, e := range m {
		e.OnSnapshot(st)
	}
}

func (m MultiEvents) OnSubtaskDone(st plan.Subtask) {
	for _, e := range m {
		e.OnSubtaskDone(st)
	}
}

func (m MultiEvents) OnPlanComplete(s plan.Summary) {
	for _, e := range m {
		e.OnPlanComplete(s)
	}
}

// ProgressEvents writes each callback to a JSONL progress logger.
// Write errors are dropped; the stream is best effort.
type ProgressEvents struct {
	logger *plan.ProgressLogger
}

// NewProgressEvents wraps a progress logger.
func NewProgressEvents(l *plan.ProgressLogger) *ProgressEvents {
	return &ProgressEvents{logger: l}
}

func (p *ProgressEvents) OnPlanStart(pl *plan.Plan) { _ = p.logger.PlanStarted(pl) }

func (p *ProgressEvents) OnSubtaskStart(_, _ int, st plan.Subtask) {
	_ = p.logger.SubtaskStarted(st)
}

func (p *ProgressEvents) OnSnapshot(st plan.Subtask) { _ = p.logger.SubtaskLog(st) }

func (p *ProgressEvents) OnSubtaskDone(st plan.Subtask) {
	_ = p.logger.SubtaskLog(st)
	_ = p.logger.SubtaskFinished(st)
}

func (p *ProgressEvents) OnPlanComplete(s plan.Summary) { _ = p.logger.PlanCompleted(s) }
