package plan

import (
	"fmt"
	"strings"
	"time"
)

// ValidateGoal returns the trimmed goal, or ErrInvalidGoal if nothing is left.
func ValidateGoal(goal string) (string, error) {
	trimmed := strings.TrimSpace(goal)
	if trimmed == "" {
		return "", ErrInvalidGoal
	}
	return trimmed, nil
}

// Summary aggregates the outcome of a simulated plan.
type Summary struct {
	Completed int           `json:"completed" yaml:"completed"`
	Failed    int           `json:"failed" yaml:"failed"`
	Total     int           `json:"total" yaml:"total"`
	Elapsed   time.Duration `json:"elapsedNs" yaml:"elapsedNs"`
}

// Summarize counts terminal outcomes and sums the simulated delay applied
// to every subtask.
func Summarize(p *Plan) Summary {
	s := Summary{Total: len(p.Subtasks)}
	for i := range p.Subtasks {
		switch p.Subtasks[i].Status {
		case StatusDone:
			s.Completed++
		case StatusFailed:
			s.Failed++
		}
		s.Elapsed += p.Subtasks[i].Elapsed
	}
	return s
}

// AllSucceeded reports whether every subtask finished as done.
func (s Summary) AllSucceeded() bool {
	return s.Total > 0 && s.Completed == s.Total
}

// String renders the summary as "completed/total" with elapsed time.
func (s Summary) String() string {
	out := fmt.Sprintf("%d/%d completed", s.Completed, s.Total)
	if s.Failed > 0 {
		out += fmt.Sprintf(", %d failed", s.Failed)
	}
	return fmt.Sprintf("%s in %.1fs", out, s.Elapsed.Seconds())
}
