package plan

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGoal is returned when a goal is empty after trimming.
	ErrInvalidGoal = errors.New("goal must not be empty")

	// ErrPlanningDegraded marks a failed model planning attempt that was
	// replaced by the rule-based plan. It is logged, never returned to callers.
	ErrPlanningDegraded = errors.New("model planning degraded to rules")

	// ErrInvalidTransition is returned for a status change the lifecycle forbids.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidPlan wraps every generated-plan validation failure.
	ErrInvalidPlan = errors.New("invalid generated plan")
)

// ValidationError describes one problem with a generated plan.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidPlan.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidPlan
}
