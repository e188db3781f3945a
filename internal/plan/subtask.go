package plan

import (
	"fmt"
	"strings"
	"time"
)

// DefaultOwner is used when a subtask is created without an owner label.
const DefaultOwner = "Agent"

// Status is the lifecycle state of a subtask.
type Status string

// Subtask status constants
const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Terminal reports whether no further transition is possible from s.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusFailed
}

// Subtask is one unit of simulated work.
type Subtask struct {
	ID      int           `json:"id" yaml:"id"`
	Title   string        `json:"title" yaml:"title"`
	Owner   string        `json:"owner" yaml:"owner"`
	Status  Status        `json:"status" yaml:"status"`
	Log     []string      `json:"log" yaml:"log"`
	Elapsed time.Duration `json:"elapsedNs" yaml:"elapsedNs"`
}

// NewSubtask returns a pending subtask with an empty log.
func NewSubtask(id int, title, owner string) Subtask {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		owner = DefaultOwner
	}
	return Subtask{
		ID:     id,
		Title:  strings.TrimSpace(title),
		Owner:  owner,
		Status: StatusPending,
		Log:    []string{},
	}
}

// Advance moves the subtask to next. Only pending→running and
// running→done|failed are allowed.
func (s *Subtask) Advance(next Status) error {
	ok := false
	switch s.Status {
	case StatusPending:
		ok = next == StatusRunning
	case StatusRunning:
		ok = next == StatusDone || next == StatusFailed
	}
	if !ok {
		return fmt.Errorf("subtask %d: %s -> %s: %w", s.ID, s.Status, next, ErrInvalidTransition)
	}
	s.Status = next
	return nil
}

// AppendLog adds a line to the subtask log. Lines may only be added while
// the subtask is running.
func (s *Subtask) AppendLog(line string) error {
	if s.Status != StatusRunning {
		return fmt.Errorf("subtask %d: append log while %s: %w", s.ID, s.Status, ErrInvalidTransition)
	}
	s.Log = append(s.Log, line)
	return nil
}

// Snapshot returns a copy that shares no memory with s.
func (s *Subtask) Snapshot() Subtask {
	out := *s
	out.Log = make([]string, len(s.Log))
	copy(out.Log, s.Log)
	return out
}
