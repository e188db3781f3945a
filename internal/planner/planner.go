// Package planner maps a goal to an ordered plan of subtasks.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/pablasso/agentsim/internal/logging"
	"github.com/pablasso/agentsim/internal/plan"
)

// DefaultGenerateTimeout bounds a generator call when the caller's context
// has no deadline.
const DefaultGenerateTimeout = 20 * time.Second

// Generator produces a candidate plan for a goal, usually from a model.
type Generator interface {
	Generate(ctx context.Context, goal string) (*plan.GeneratedPlan, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, goal string) (*plan.GeneratedPlan, error)

func (f GeneratorFunc) Generate(ctx context.Context, goal string) (*plan.GeneratedPlan, error) {
	return f(ctx, goal)
}

// Planner builds plans from a rule table, optionally trying a generator first.
type Planner struct {
	rules     []Rule
	generator Generator
	logger    *logging.Logger
	timeout   time.Duration
}

// New creates a rule-only Planner using DefaultRules.
func New() *Planner {
	return &Planner{
		rules:   DefaultRules(),
		logger:  logging.NopLogger(),
		timeout: DefaultGenerateTimeout,
	}
}

// WithGenerator enables the generated path. A nil generator disables it.
func (p *Planner) WithGenerator(g Generator) *Planner {
	p.generator = g
	return p
}

// WithRules replaces the rule table.
func (p *Planner) WithRules(rules []Rule) *Planner {
	p.rules = rules
	return p
}

// WithLogger sets the logger used for degraded-planning warnings.
func (p *Planner) WithLogger(l *logging.Logger) *Planner {
	if l == nil {
		l = logging.NopLogger()
	}
	p.logger = l
	return p
}

// WithTimeout sets the generator bound applied when ctx has no deadline.
func (p *Planner) WithTimeout(d time.Duration) *Planner {
	if d > 0 {
		p.timeout = d
	}
	return p
}

// Plan returns a plan for goal. It never fails: any generator error,
// timeout, or invalid result is logged and the rule-based plan is used.
// The goal should already be validated with plan.ValidateGoal.
func (p *Planner) Plan(ctx context.Context, goal string) *plan.Plan {
	log := p.logger.WithPhase("planning")

	if p.generator != nil {
		generated, err := p.generate(ctx, goal)
		if err == nil {
			log.Info("plan generated", "subtasks", len(generated.Subtasks))
			return plan.New(goal, plan.SourceModel, generated.Subtasks)
		}
		log.Warn("falling back to rule-based plan",
			"error", fmt.Errorf("%w: %w", plan.ErrPlanningDegraded, err).Error())
	}

	rule := Match(p.rules, goal)
	log.Debug("rule matched", "rule", rule.Name, "subtasks", len(rule.Template))
	return plan.New(goal, plan.SourceRules, rule.Template)
}

func (p *Planner) generate(ctx context.Context, goal string) (*plan.GeneratedPlan, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	type outcome struct {
		result *plan.GeneratedPlan
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("generator panicked: %v", r)}
			}
		}()
		r, err := p.generator.Generate(ctx, goal)
		done <- outcome{r, err}
	}()

	var result *plan.GeneratedPlan
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("generator did not respond: %w", ctx.Err())
	case out := <-done:
		if out.err != nil {
			return nil, out.err
		}
		result = out.result
	}
	if result == nil {
		return nil, fmt.Errorf("generator returned no plan: %w", plan.ErrInvalidPlan)
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}
