// Package session owns the lifecycle of goal runs for an interactive host.
//
// At most one run is current. Submitting a new goal cancels the previous
// run's context; anything that run produces afterwards is dropped.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pablasso/agentsim/internal/executor"
	"github.com/pablasso/agentsim/internal/logging"
	"github.com/pablasso/agentsim/internal/plan"
)

// DefaultHistorySize is the number of finished runs retained.
const DefaultHistorySize = 10

// ErrSuperseded is returned when a run was replaced or reset before it finished.
var ErrSuperseded = errors.New("run superseded")

// Planner builds a plan for a validated goal.
type Planner interface {
	Plan(ctx context.Context, goal string) *plan.Plan
}

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	RunPlanned   RunStatus = "planned"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunCancelled RunStatus = "cancelled"
)

// Run is one goal submission and its plan. The plan belongs to the
// executing goroutine while the run is running; read snapshots instead.
type Run struct {
	ID         string
	Goal       string
	Plan       *plan.Plan
	Status     RunStatus
	Summary    plan.Summary
	CreatedAt  time.Time
	FinishedAt time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// Context is cancelled when the run is superseded or reset.
func (r *Run) Context() context.Context { return r.ctx }

// Session tracks the current run and a bounded history of finished ones.
// It is safe for concurrent use.
type Session struct {
	mu          sync.Mutex
	planner     Planner
	logger      *logging.Logger
	current     *Run
	history     []*Run
	historySize int
}

// New creates a Session. A non-positive historySize uses DefaultHistorySize.
func New(p Planner, historySize int) *Session {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	return &Session{
		planner:     p,
		logger:      logging.NopLogger(),
		historySize: historySize,
	}
}

// WithLogger sets the session logger.
func (s *Session) WithLogger(l *logging.Logger) *Session {
	if l == nil {
		l = logging.NopLogger()
	}
	s.logger = l
	return s
}

// Submit validates goal, supersedes any current run and plans the new one.
// The goal is stored as given; trimming only decides whether it is empty.
// An empty goal returns plan.ErrInvalidGoal and leaves the current run alone.
func (s *Session) Submit(ctx context.Context, goal string) (*Run, error) {
	if _, err := plan.ValidateGoal(goal); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	run := &Run{
		ID:        uuid.NewString(),
		Goal:      goal,
		Status:    RunPlanned,
		CreatedAt: time.Now(),
		ctx:       runCtx,
		cancel:    cancel,
	}

	s.mu.Lock()
	s.supersedeLocked()
	s.current = run
	s.mu.Unlock()

	log := s.logger.WithRun(run.ID)
	log.Info("goal submitted", "goal", goal)

	p := s.planner.Plan(runCtx, goal)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != run {
		log.Debug("run superseded during planning")
		return nil, ErrSuperseded
	}
	run.Plan = p
	log.Info("plan ready", "plan_id", p.ID, "source", p.Source, "subtasks", len(p.Subtasks))
	return run, nil
}

// Execute simulates run with ex. It returns ErrSuperseded when the run was
// replaced or reset while executing; the partial plan is then discarded.
func (s *Session) Execute(run *Run, ex *executor.Executor) (plan.Summary, error) {
	s.mu.Lock()
	if s.current != run || run.Status != RunPlanned {
		s.mu.Unlock()
		return plan.Summary{}, ErrSuperseded
	}
	run.Status = RunRunning
	s.mu.Unlock()

	summary, err := ex.Run(run.ctx, run.Plan)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != run {
		return summary, ErrSuperseded
	}
	if err != nil {
		run.Status = RunCancelled
		run.FinishedAt = time.Now()
		s.current = nil
		run.cancel()
		return summary, err
	}

	run.Status = RunCompleted
	run.Summary = summary
	run.FinishedAt = time.Now()
	s.pushHistoryLocked(run)
	return summary, nil
}

// IsCurrent reports whether runID identifies the current run.
func (s *Session) IsCurrent(runID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.ID == runID
}

// Cancel stops the current run, if any. History is kept.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersedeLocked()
}

// Reset cancels the current run and clears history.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersedeLocked()
	s.history = nil
}

// History returns finished runs, oldest first. Plans are deep copies.
func (s *Session) History() []Run {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Run, len(s.history))
	for i, r := range s.history {
		out[i] = Run{
			ID:         r.ID,
			Goal:       r.Goal,
			Plan:       r.Plan.Clone(),
			Status:     r.Status,
			Summary:    r.Summary,
			CreatedAt:  r.CreatedAt,
			FinishedAt: r.FinishedAt,
		}
	}
	return out
}

func (s *Session) supersedeLocked() {
	if s.current == nil {
		return
	}
	prev := s.current
	prev.cancel()
	if prev.Status != RunCompleted {
		prev.Status = RunCancelled
		prev.FinishedAt = time.Now()
		s.logger.WithRun(prev.ID).Info("run superseded")
	}
	s.current = nil
}

func (s *Session) pushHistoryLocked(run *Run) {
	s.history = append(s.history, run)
	if over := len(s.history) - s.historySize; over > 0 {
		s.history = append([]*Run(nil), s.history[over:]...)
	}
}
