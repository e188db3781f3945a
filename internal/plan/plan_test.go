package plan

import (
	"errors"
	"testing"
)

func sampleEntries() []Entry {
	return []Entry{
		{Title: "Book venue", Owner: "Venue Agent"},
		{Title: "Design poster", Owner: "Design Agent"},
		{Title: "Send invites", Owner: ""},
	}
}

func TestNew_AssignsSequentialIDs(t *testing.T) {
	p := New("Organize a meetup", SourceRules, sampleEntries())

	if p.Goal != "Organize a meetup" {
		t.Errorf("Goal = %q, want %q", p.Goal, "Organize a meetup")
	}
	if p.ID == "" {
		t.Error("expected plan ID to be set")
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if len(p.Subtasks) != 3 {
		t.Fatalf("len(Subtasks) = %d, want 3", len(p.Subtasks))
	}
	for i, st := range p.Subtasks {
		if st.ID != i+1 {
			t.Errorf("Subtasks[%d].ID = %d, want %d", i, st.ID, i+1)
		}
		if st.Status != StatusPending {
			t.Errorf("Subtasks[%d].Status = %q, want pending", i, st.Status)
		}
		if len(st.Log) != 0 {
			t.Errorf("Subtasks[%d].Log should be empty, got %v", i, st.Log)
		}
	}
	if p.Subtasks[2].Owner != DefaultOwner {
		t.Errorf("empty owner should default to %q, got %q", DefaultOwner, p.Subtasks[2].Owner)
	}
}

func TestPlan_EntriesRoundTrip(t *testing.T) {
	entries := sampleEntries()
	p := New("goal", SourceModel, entries)

	got := p.Entries()
	if len(got) != len(entries) {
		t.Fatalf("len(Entries) = %d, want %d", len(got), len(entries))
	}
	for i := range entries[:2] {
		if got[i] != entries[i] {
			t.Errorf("Entries[%d] = %+v, want %+v", i, got[i], entries[i])
		}
	}
}

func TestPlan_CloneIsDeep(t *testing.T) {
	p := New("goal", SourceRules, sampleEntries())
	st := &p.Subtasks[0]
	if err := st.Advance(StatusRunning); err != nil {
		t.Fatal(err)
	}
	if err := st.AppendLog("first"); err != nil {
		t.Fatal(err)
	}

	clone := p.Clone()
	if err := st.AppendLog("second"); err != nil {
		t.Fatal(err)
	}

	if len(clone.Subtasks[0].Log) != 1 {
		t.Errorf("clone log changed with original: %v", clone.Subtasks[0].Log)
	}
	clone.Subtasks[1].Title = "changed"
	if p.Subtasks[1].Title == "changed" {
		t.Error("original changed through clone")
	}
}

func TestSubtask_Advance(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		wantErr bool
	}{
		{"pending to running", StatusPending, StatusRunning, false},
		{"running to done", StatusRunning, StatusDone, false},
		{"running to failed", StatusRunning, StatusFailed, false},
		{"pending to done skips running", StatusPending, StatusDone, true},
		{"pending to pending", StatusPending, StatusPending, true},
		{"running to running", StatusRunning, StatusRunning, true},
		{"running back to pending", StatusRunning, StatusPending, true},
		{"done is terminal", StatusDone, StatusRunning, true},
		{"done to failed", StatusDone, StatusFailed, true},
		{"failed is terminal", StatusFailed, StatusDone, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Subtask{ID: 1, Status: tt.from}
			err := st.Advance(tt.to)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("Advance() error = %v, want ErrInvalidTransition", err)
				}
				if st.Status != tt.from {
					t.Errorf("status changed on rejected transition: %q", st.Status)
				}
				return
			}
			if err != nil {
				t.Fatalf("Advance() unexpected error: %v", err)
			}
			if st.Status != tt.to {
				t.Errorf("Status = %q, want %q", st.Status, tt.to)
			}
		})
	}
}

func TestSubtask_AppendLogOnlyWhileRunning(t *testing.T) {
	st := NewSubtask(1, "Book venue", "Venue Agent")
	if err := st.AppendLog("too early"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("AppendLog on pending: err = %v, want ErrInvalidTransition", err)
	}

	_ = st.Advance(StatusRunning)
	if err := st.AppendLog("working"); err != nil {
		t.Fatalf("AppendLog on running: %v", err)
	}
	_ = st.Advance(StatusDone)
	if err := st.AppendLog("too late"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("AppendLog on done: err = %v, want ErrInvalidTransition", err)
	}
	if len(st.Log) != 1 {
		t.Errorf("Log = %v, want one entry", st.Log)
	}
}

func TestStatus_Terminal(t *testing.T) {
	for _, s := range []Status{StatusDone, StatusFailed} {
		if !s.Terminal() {
			t.Errorf("%q should be terminal", s)
		}
	}
	for _, s := range []Status{StatusPending, StatusRunning} {
		if s.Terminal() {
			t.Errorf("%q should not be terminal", s)
		}
	}
}

func TestGeneratedPlanValidate(t *testing.T) {
	tooMany := make([]Entry, MaxSubtasks+1)
	for i := range tooMany {
		tooMany[i] = Entry{Title: "t", Owner: "o"}
	}

	tests := []struct {
		name    string
		result  GeneratedPlan
		wantErr string
	}{
		{
			name:   "valid result passes",
			result: GeneratedPlan{Subtasks: []Entry{{Title: "Book the venue", Owner: "Venue Agent"}}},
		},
		{
			name:    "empty subtasks returns error",
			result:  GeneratedPlan{Subtasks: []Entry{}},
			wantErr: "subtasks: no subtasks generated",
		},
		{
			name:    "nil subtasks returns error",
			result:  GeneratedPlan{},
			wantErr: "subtasks: no subtasks generated",
		},
		{
			name:    "too many subtasks",
			result:  GeneratedPlan{Subtasks: tooMany},
			wantErr: "subtasks: 9 subtasks exceeds limit of 8",
		},
		{
			name:    "blank title",
			result:  GeneratedPlan{Subtasks: []Entry{{Title: "  ", Owner: "Venue Agent"}}},
			wantErr: "subtasks[0].title: missing title",
		},
		{
			name: "second subtask missing owner has correct index",
			result: GeneratedPlan{Subtasks: []Entry{
				{Title: "Book the venue", Owner: "Venue Agent"},
				{Title: "Design poster", Owner: ""},
			}},
			wantErr: `subtasks[1].owner: subtask "Design poster" missing owner`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error %q, got nil", tt.wantErr)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidPlan) {
				t.Errorf("Validate() error should wrap ErrInvalidPlan")
			}
		})
	}
}
