package executor

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/pablasso/agentsim/internal/demo"
	"github.com/pablasso/agentsim/internal/plan"
)

// Decider chooses the outcome and completion detail of a simulated subtask.
type Decider interface {
	ShouldFail(st plan.Subtask) bool
	DetailFor(title string) string
}

// Sleeper pauses between simulated steps. It returns early with an error
// when ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to Sleeper.
type SleeperFunc func(ctx context.Context, d time.Duration) error

func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error { return f(ctx, d) }

// TimerSleeper waits on a timer or ctx, whichever comes first.
var TimerSleeper Sleeper = SleeperFunc(func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
})

// Option configures a Simulator.
type Option func(*Simulator)

// WithDecider sets the outcome decider. Default is demo.Deterministic.
func WithDecider(d Decider) Option {
	return func(s *Simulator) { s.decider = d }
}

// WithSleeper sets how step delays are applied. Default is TimerSleeper.
func WithSleeper(sl Sleeper) Option {
	return func(s *Simulator) { s.sleeper = sl }
}

// WithLines sets the owner to progress-lines lookup. Default is demo.LinesFor.
func WithLines(lines func(owner string) []string) Option {
	return func(s *Simulator) { s.lines = lines }
}

// Simulator advances subtasks through their lifecycle with paced, canned
// progress lines.
type Simulator struct {
	delay   time.Duration
	decider Decider
	sleeper Sleeper
	lines   func(owner string) []string
}

// NewSimulator creates a Simulator that waits delay before each step.
// A zero delay never calls the sleeper.
func NewSimulator(delay time.Duration, opts ...Option) *Simulator {
	if delay < 0 {
		delay = 0
	}
	s := &Simulator{
		delay:   delay,
		decider: demo.Deterministic{},
		sleeper: TimerSleeper,
		lines:   demo.LinesFor,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Delay returns the per-step delay.
func (s *Simulator) Delay() time.Duration { return s.delay }

// Run returns the lazy sequence of snapshots for st.
//
// The first snapshot is the running state with an empty log, then one per
// progress line, then the terminal snapshot. st is mutated in place as the
// sequence is consumed. A subtask that is not pending yields nothing, so a
// second iteration produces no snapshots. Stopping early, or a cancelled
// ctx, leaves st running.
func (s *Simulator) Run(ctx context.Context, st *plan.Subtask) iter.Seq[plan.Subtask] {
	return func(yield func(plan.Subtask) bool) {
		if st.Status != plan.StatusPending {
			return
		}
		if err := st.Advance(plan.StatusRunning); err != nil {
			return
		}
		if !yield(st.Snapshot()) {
			return
		}

		for _, line := range s.lines(st.Owner) {
			if !s.pause(ctx, st) {
				return
			}
			if err := st.AppendLog(FormatLine(st.Owner, line)); err != nil {
				return
			}
			if !yield(st.Snapshot()) {
				return
			}
		}

		if !s.pause(ctx, st) {
			return
		}
		s.finish(st)
		yield(st.Snapshot())
	}
}

func (s *Simulator) pause(ctx context.Context, st *plan.Subtask) bool {
	if ctx.Err() != nil {
		return false
	}
	if s.delay == 0 {
		return true
	}
	if err := s.sleeper.Sleep(ctx, s.delay); err != nil {
		return false
	}
	st.Elapsed += s.delay
	return true
}

func (s *Simulator) finish(st *plan.Subtask) {
	if s.decider.ShouldFail(st.Snapshot()) {
		_ = st.AppendLog(FormatLine(st.Owner, fmt.Sprintf("❌ Failed: %s (%s)", st.Title, demo.FailureDetail)))
		_ = st.Advance(plan.StatusFailed)
		return
	}
	_ = st.AppendLog(FormatLine(st.Owner, fmt.Sprintf("✅ Completed: %s (%s)", st.Title, s.decider.DetailFor(st.Title))))
	_ = st.Advance(plan.StatusDone)
}

// FormatLine prefixes a progress line with its owner label.
func FormatLine(owner, line string) string {
	return fmt.Sprintf("[%s] %s", owner, line)
}

// Run simulates st with the given per-step delay.
func Run(ctx context.Context, st *plan.Subtask, delay time.Duration, opts ...Option) iter.Seq[plan.Subtask] {
	return NewSimulator(delay, opts...).Run(ctx, st)
}
