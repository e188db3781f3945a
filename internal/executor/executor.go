package executor

import (
	"context"
	"fmt"

	"github.com/pablasso/agentsim/internal/logging"
	"github.com/pablasso/agentsim/internal/plan"
)

// Executor simulates every subtask of a plan in order.
type Executor struct {
	sim    *Simulator
	events Events
	logger *logging.Logger
}

// New creates an Executor around sim.
func New(sim *Simulator) *Executor {
	return &Executor{
		sim:    sim,
		events: NopEvents{},
		logger: logging.NopLogger(),
	}
}

// WithEvents sets the callback receiver.
func (e *Executor) WithEvents(ev Events) *Executor {
	if ev == nil {
		ev = NopEvents{}
	}
	e.events = ev
	return e
}

// WithLogger sets the diagnostic logger.
func (e *Executor) WithLogger(l *logging.Logger) *Executor {
	if l == nil {
		l = logging.NopLogger()
	}
	e.logger = l
	return e
}

// Run simulates each pending subtask of p strictly in order, one fully
// before the next. A failed subtask does not stop the run.
//
// If ctx is cancelled, Run stops at the next step and returns ctx.Err()
// alongside the partial summary; p must then be discarded.
func (e *Executor) Run(ctx context.Context, p *plan.Plan) (plan.Summary, error) {
	log := e.logger.WithPhase("simulation").With("plan_id", p.ID)
	total := len(p.Subtasks)

	e.events.OnPlanStart(p)
	log.Info("simulation started", "subtasks", total, "delay", e.sim.Delay())

	for i := range p.Subtasks {
		st := &p.Subtasks[i]
		if st.Status != plan.StatusPending {
			log.Debug("skipping subtask", "subtask_id", st.ID, "status", st.Status)
			continue
		}

		for snap := range e.sim.Run(ctx, st) {
			switch {
			case snap.Status.Terminal():
				e.events.OnSubtaskDone(snap)
			case len(snap.Log) == 0:
				e.events.OnSubtaskStart(i+1, total, snap)
			default:
				e.events.OnSnapshot(snap)
			}
		}

		if err := ctx.Err(); err != nil {
			log.Warn("simulation cancelled", "subtask_id", st.ID)
			return plan.Summarize(p), err
		}
		if !st.Status.Terminal() {
			return plan.Summarize(p), fmt.Errorf("subtask %d stopped in %s", st.ID, st.Status)
		}
		log.Debug("subtask finished", "subtask_id", st.ID, "status", st.Status, "elapsed", st.Elapsed)
	}

	summary := plan.Summarize(p)
	e.events.OnPlanComplete(summary)
	log.Info("simulation completed", "completed", summary.Completed, "failed", summary.Failed)
	return summary, nil
}
