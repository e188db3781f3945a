package plan

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Event type constants for progress logging.
const (
	EventPlanStarted     = "plan_started"
	EventPlanCompleted   = "plan_completed"
	EventSubtaskStarted  = "subtask_started"
	EventSubtaskLog      = "subtask_log"
	EventSubtaskFinished = "subtask_finished"
)

// ProgressEvent represents a single progress log entry.
type ProgressEvent struct {
	Timestamp time.Time              `json:"timestamp"`
	Event     string                 `json:"event"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// ProgressLogger writes progress events as JSON Lines.
type ProgressLogger struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewProgressLogger creates a progress logger writing to w.
func NewProgressLogger(w io.Writer) *ProgressLogger {
	return &ProgressLogger{w: w, now: time.Now}
}

// Log writes a progress event line.
func (p *ProgressLogger) Log(event string, data map[string]interface{}) error {
	entry := ProgressEvent{
		Timestamp: p.now(),
		Event:     event,
		Data:      data,
	}

	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	jsonBytes = append(jsonBytes, '\n')

	p.mu.Lock()
	defer p.mu.Unlock()
	_, err = p.w.Write(jsonBytes)
	return err
}

// PlanStarted logs a plan_started event.
func (p *ProgressLogger) PlanStarted(pl *Plan) error {
	return p.Log(EventPlanStarted, map[string]interface{}{
		"plan_id":  pl.ID,
		"goal":     pl.Goal,
		"source":   string(pl.Source),
		"subtasks": len(pl.Subtasks),
	})
}

// SubtaskStarted logs a subtask_started event.
func (p *ProgressLogger) SubtaskStarted(st Subtask) error {
	return p.Log(EventSubtaskStarted, map[string]interface{}{
		"subtask_id": st.ID,
		"title":      st.Title,
		"owner":      st.Owner,
	})
}

// SubtaskLog logs the newest line of a subtask.
func (p *ProgressLogger) SubtaskLog(st Subtask) error {
	line := ""
	if n := len(st.Log); n > 0 {
		line = st.Log[n-1]
	}
	return p.Log(EventSubtaskLog, map[string]interface{}{
		"subtask_id": st.ID,
		"line":       line,
	})
}

// SubtaskFinished logs a subtask_finished event.
func (p *ProgressLogger) SubtaskFinished(st Subtask) error {
	return p.Log(EventSubtaskFinished, map[string]interface{}{
		"subtask_id": st.ID,
		"status":     string(st.Status),
		"elapsed_ms": st.Elapsed.Milliseconds(),
	})
}

// PlanCompleted logs a plan_completed event with summary statistics.
func (p *ProgressLogger) PlanCompleted(s Summary) error {
	return p.Log(EventPlanCompleted, map[string]interface{}{
		"total":      s.Total,
		"completed":  s.Completed,
		"failed":     s.Failed,
		"elapsed_ms": s.Elapsed.Milliseconds(),
	})
}
