package executor

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/pablasso/agentsim/internal/demo"
	"github.com/pablasso/agentsim/internal/plan"
)

type recordedEvent struct {
	kind   string
	id     int
	status plan.Status
}

type recordingEvents struct {
	events  []recordedEvent
	summary *plan.Summary
}

func (r *recordingEvents) OnPlanStart(*plan.Plan) {
	r.events = append(r.events, recordedEvent{kind: "plan_start"})
}

func (r *recordingEvents) OnSubtaskStart(index, total int, st plan.Subtask) {
	r.events = append(r.events, recordedEvent{kind: "start", id: st.ID, status: st.Status})
}

func (r *recordingEvents) OnSnapshot(st plan.Subtask) {
	r.events = append(r.events, recordedEvent{kind: "snapshot", id: st.ID, status: st.Status})
}

func (r *recordingEvents) OnSubtaskDone(st plan.Subtask) {
	r.events = append(r.events, recordedEvent{kind: "done", id: st.ID, status: st.Status})
}

func (r *recordingEvents) OnPlanComplete(s plan.Summary) {
	r.summary = &s
	r.events = append(r.events, recordedEvent{kind: "plan_complete"})
}

func testPlan() *plan.Plan {
	return plan.New("Organize a robotics workshop", plan.SourceRules, []plan.Entry{
		{Title: "Define objectives", Owner: demo.OwnerCoordinator},
		{Title: "Book venue", Owner: demo.OwnerVenue},
		{Title: "Invite speakers", Owner: demo.OwnerOutreach},
	})
}

// failSecond fails only subtask 2.
type failSecond struct{ demo.Deterministic }

func (failSecond) ShouldFail(st plan.Subtask) bool { return st.ID == 2 }

func TestExecutor_RunsSequentially(t *testing.T) {
	p := testPlan()
	rec := &recordingEvents{}

	summary, err := New(NewSimulator(0)).WithEvents(rec).Run(context.Background(), p)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Each subtask's events must be contiguous and in plan order.
	lastID := 0
	for _, ev := range rec.events {
		if ev.id == 0 {
			continue
		}
		if ev.id < lastID {
			t.Fatalf("subtask %d event after subtask %d", ev.id, lastID)
		}
		lastID = ev.id
	}

	if rec.events[0].kind != "plan_start" || rec.events[len(rec.events)-1].kind != "plan_complete" {
		t.Errorf("unexpected event bounds: %+v", rec.events)
	}
	// plan_start + 3 * (start + 3 snapshots + done) + plan_complete
	if len(rec.events) != 17 {
		t.Errorf("got %d events, want 17", len(rec.events))
	}
	if summary.Completed != 3 || summary.Total != 3 || summary.Failed != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if rec.summary == nil || *rec.summary != summary {
		t.Errorf("OnPlanComplete summary = %v, want %v", rec.summary, summary)
	}
	for _, st := range p.Subtasks {
		if !st.Status.Terminal() {
			t.Errorf("subtask %d is %s, want terminal", st.ID, st.Status)
		}
	}
}

func TestExecutor_FailureDoesNotHalt(t *testing.T) {
	p := testPlan()

	summary, err := New(NewSimulator(0, WithDecider(failSecond{}))).Run(context.Background(), p)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []plan.Status{plan.StatusDone, plan.StatusFailed, plan.StatusDone}
	for i, st := range p.Subtasks {
		if st.Status != want[i] {
			t.Errorf("subtask %d status = %s, want %s", st.ID, st.Status, want[i])
		}
	}
	if summary.Completed+summary.Failed != summary.Total {
		t.Errorf("summary does not add up: %+v", summary)
	}
	if summary.Failed != 1 {
		t.Errorf("failed = %d, want 1", summary.Failed)
	}
}

func TestExecutor_ElapsedSum(t *testing.T) {
	p := testPlan()
	sleeper := &recordingSleeper{}

	summary, err := New(NewSimulator(10*time.Millisecond, WithSleeper(sleeper))).Run(context.Background(), p)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var applied time.Duration
	for _, d := range sleeper.calls {
		applied += d
	}
	if summary.Elapsed != applied {
		t.Errorf("elapsed = %s, applied = %s", summary.Elapsed, applied)
	}
	if applied != 120*time.Millisecond {
		t.Errorf("applied = %s, want 120ms", applied)
	}
}

func TestExecutor_Cancelled(t *testing.T) {
	p := testPlan()
	ctx, cancel := context.WithCancel(context.Background())

	rec := &recordingEvents{}
	sleeper := SleeperFunc(func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	})

	_, err := New(NewSimulator(time.Millisecond, WithSleeper(sleeper))).WithEvents(rec).Run(ctx, p)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if p.Subtasks[0].Status != plan.StatusRunning {
		t.Errorf("first subtask status = %s, want running", p.Subtasks[0].Status)
	}
	if p.Subtasks[1].Status != plan.StatusPending {
		t.Errorf("second subtask status = %s, want pending", p.Subtasks[1].Status)
	}
	if rec.summary != nil {
		t.Error("OnPlanComplete called for a cancelled run")
	}
}

func TestExecutor_SkipsTerminalSubtasks(t *testing.T) {
	p := testPlan()
	ex := New(NewSimulator(0))

	if _, err := ex.Run(context.Background(), p); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	before := p.Clone()

	summary, err := ex.Run(context.Background(), p)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if summary.Completed != 3 {
		t.Errorf("completed = %d, want 3", summary.Completed)
	}
	for i := range p.Subtasks {
		if len(p.Subtasks[i].Log) != len(before.Subtasks[i].Log) {
			t.Errorf("subtask %d log changed on rerun", p.Subtasks[i].ID)
		}
	}
}

func TestProgressEvents_WritesJSONL(t *testing.T) {
	var buf bytes.Buffer
	p := testPlan()

	_, err := New(NewSimulator(0)).
		WithEvents(MultiEvents{NopEvents{}, NewProgressEvents(plan.NewProgressLogger(&buf))}).
		Run(context.Background(), p)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var kinds []string
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var ev plan.ProgressEvent
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("invalid JSON line %q: %v", scanner.Text(), err)
		}
		kinds = append(kinds, ev.Event)
	}

	if kinds[0] != plan.EventPlanStarted || kinds[len(kinds)-1] != plan.EventPlanCompleted {
		t.Errorf("unexpected bounds: %v", kinds)
	}
	counts := map[string]int{}
	for _, k := range kinds {
		counts[k]++
	}
	if counts[plan.EventSubtaskStarted] != 3 || counts[plan.EventSubtaskFinished] != 3 {
		t.Errorf("counts = %v", counts)
	}
	// 3 progress lines + final line per subtask
	if counts[plan.EventSubtaskLog] != 12 {
		t.Errorf("subtask_log count = %d, want 12", counts[plan.EventSubtaskLog])
	}
}
