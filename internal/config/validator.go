package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pablasso/agentsim/internal/demo"
	"github.com/pablasso/agentsim/internal/logging"
)

// ValidationError describes one invalid setting.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Validate checks every setting and returns all problems found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	s := c.Simulation
	if demo.CheckSpeed(s.SpeedSeconds) != nil {
		errs = append(errs, ValidationError{
			Field:   "simulation.speed_seconds",
			Value:   s.SpeedSeconds,
			Message: fmt.Sprintf("must be 0 or between %.1f and %.1f", demo.MinSpeedSeconds, demo.MaxSpeedSeconds),
		})
	}
	if s.FailureRate < 0 || s.FailureRate > 1 {
		errs = append(errs, ValidationError{
			Field:   "simulation.failure_rate",
			Value:   s.FailureRate,
			Message: "must be between 0 and 1",
		})
	}

	m := c.Model
	if m.TimeoutSeconds < 0 {
		errs = append(errs, ValidationError{
			Field:   "model.timeout_seconds",
			Value:   m.TimeoutSeconds,
			Message: "must not be negative",
		})
	}
	if m.Temperature < 0 || m.Temperature > 2 {
		errs = append(errs, ValidationError{
			Field:   "model.temperature",
			Value:   m.Temperature,
			Message: "must be between 0 and 2",
		})
	}
	if m.Name != "" && strings.TrimSpace(m.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "model.name",
			Value:   m.Name,
			Message: "must not be blank",
		})
	}

	if !slices.Contains(logging.ValidLevels(), strings.ToUpper(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of %s", strings.ToLower(strings.Join(logging.ValidLevels(), ", "))),
		})
	}

	if c.History.Size < 0 {
		errs = append(errs, ValidationError{
			Field:   "history.size",
			Value:   c.History.Size,
			Message: "must not be negative",
		})
	}

	return errs
}
