package plan

import (
	"fmt"
	"strings"
)

// GeneratedPlan is the structured response expected from a text-generation model.
type GeneratedPlan struct {
	Subtasks []Entry `json:"subtasks"`
}

// Validate checks that the generated plan has a usable shape.
func (g *GeneratedPlan) Validate() error {
	if len(g.Subtasks) < MinSubtasks {
		return &ValidationError{Field: "subtasks", Message: "no subtasks generated"}
	}
	if len(g.Subtasks) > MaxSubtasks {
		return &ValidationError{
			Field:   "subtasks",
			Message: fmt.Sprintf("%d subtasks exceeds limit of %d", len(g.Subtasks), MaxSubtasks),
		}
	}
	for i, st := range g.Subtasks {
		if strings.TrimSpace(st.Title) == "" {
			return &ValidationError{Field: fmt.Sprintf("subtasks[%d].title", i), Message: "missing title"}
		}
		if strings.TrimSpace(st.Owner) == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("subtasks[%d].owner", i),
				Message: fmt.Sprintf("subtask %q missing owner", st.Title),
			}
		}
	}
	return nil
}
