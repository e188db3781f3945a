package plan

import (
	"errors"
	"testing"
	"time"
)

func TestValidateGoal(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Organize a robotics workshop", "Organize a robotics workshop", false},
		{"  Launch a new website \n", "Launch a new website", false},
		{"", "", true},
		{"   \t\n", "", true},
	}

	for _, tt := range tests {
		got, err := ValidateGoal(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidGoal) {
				t.Errorf("ValidateGoal(%q) error = %v, want ErrInvalidGoal", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ValidateGoal(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ValidateGoal(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	p := New("goal", SourceRules, []Entry{
		{Title: "a", Owner: "A"},
		{Title: "b", Owner: "B"},
		{Title: "c", Owner: "C"},
	})
	outcomes := []Status{StatusDone, StatusFailed, StatusDone}
	for i := range p.Subtasks {
		_ = p.Subtasks[i].Advance(StatusRunning)
		_ = p.Subtasks[i].Advance(outcomes[i])
		p.Subtasks[i].Elapsed = time.Duration(i+1) * 100 * time.Millisecond
	}

	s := Summarize(p)
	if s.Completed != 2 || s.Failed != 1 || s.Total != 3 {
		t.Errorf("Summarize() = %+v, want completed=2 failed=1 total=3", s)
	}
	if s.Completed+s.Failed != len(p.Subtasks) {
		t.Errorf("completed+failed = %d, want %d", s.Completed+s.Failed, len(p.Subtasks))
	}
	if s.Elapsed != 600*time.Millisecond {
		t.Errorf("Elapsed = %s, want 600ms", s.Elapsed)
	}
	if s.AllSucceeded() {
		t.Error("AllSucceeded() should be false with a failure")
	}
	if got, want := s.String(), "2/3 completed, 1 failed in 0.6s"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSummarize_PendingPlan(t *testing.T) {
	p := New("goal", SourceRules, []Entry{{Title: "a", Owner: "A"}})
	s := Summarize(p)
	if s.Completed != 0 || s.Failed != 0 || s.Total != 1 || s.Elapsed != 0 {
		t.Errorf("Summarize() = %+v, want zero counts with total=1", s)
	}
}
