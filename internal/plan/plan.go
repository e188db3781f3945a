package plan

import (
	"time"

	"github.com/google/uuid"
)

// Bounds on the number of subtasks a plan may hold.
const (
	MinSubtasks = 1
	MaxSubtasks = 8
)

// Source records how a plan was produced.
type Source string

// Plan sources
const (
	SourceRules Source = "rules"
	SourceModel Source = "model"
)

// Entry is a (title, owner) pair used to instantiate a subtask.
type Entry struct {
	Title string `json:"title" yaml:"title"`
	Owner string `json:"owner" yaml:"owner"`
}

// Plan is the ordered set of subtasks derived from a goal.
// Its structure is fixed once created; only subtask status and logs change.
type Plan struct {
	ID        string    `json:"id" yaml:"id"`
	Goal      string    `json:"goal" yaml:"goal"`
	Source    Source    `json:"source" yaml:"source"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	Subtasks  []Subtask `json:"subtasks" yaml:"subtasks"`
}

// New builds a plan for goal from entries, assigning 1-based sequential IDs.
// The goal is stored as given; callers validate it beforehand.
func New(goal string, source Source, entries []Entry) *Plan {
	subtasks := make([]Subtask, 0, len(entries))
	for i, e := range entries {
		subtasks = append(subtasks, NewSubtask(i+1, e.Title, e.Owner))
	}
	return &Plan{
		ID:        uuid.NewString(),
		Goal:      goal,
		Source:    source,
		CreatedAt: time.Now(),
		Subtasks:  subtasks,
	}
}

// Entries returns the (title, owner) sequence of the plan.
func (p *Plan) Entries() []Entry {
	entries := make([]Entry, len(p.Subtasks))
	for i := range p.Subtasks {
		entries[i] = Entry{Title: p.Subtasks[i].Title, Owner: p.Subtasks[i].Owner}
	}
	return entries
}

// Clone returns a deep copy of the plan.
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}
	out := *p
	out.Subtasks = make([]Subtask, len(p.Subtasks))
	for i := range p.Subtasks {
		out.Subtasks[i] = p.Subtasks[i].Snapshot()
	}
	return &out
}
