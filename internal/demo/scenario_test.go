package demo

import (
	"testing"

	"github.com/pablasso/agentsim/internal/plan"
)

func TestParseScenario(t *testing.T) {
	tests := []struct {
		input   string
		want    Scenario
		wantErr bool
	}{
		{"success", ScenarioSuccess, false},
		{"FLAKY", ScenarioFlaky, false},
		{" fail ", ScenarioFail, false},
		{"explode", "", true},
	}
	for _, tt := range tests {
		got, err := ParseScenario(tt.input)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseScenario(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseScenario(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDeterministic(t *testing.T) {
	d := Deterministic{}
	st := plan.NewSubtask(1, "Book venue", OwnerVenue)
	for i := 0; i < 100; i++ {
		if d.ShouldFail(st) {
			t.Fatal("Deterministic.ShouldFail returned true")
		}
	}
	if got := d.DetailFor("Book venue"); got != "Reservation confirmed" {
		t.Errorf("DetailFor = %q", got)
	}
	if d.DetailFor("Book venue") != d.DetailFor("Book venue") {
		t.Error("DetailFor not stable")
	}
}

func TestAlwaysFail(t *testing.T) {
	d := AlwaysFail{}
	if !d.ShouldFail(plan.NewSubtask(1, "x", "")) {
		t.Error("AlwaysFail.ShouldFail returned false")
	}
	if d.DetailFor("x") != FailureDetail {
		t.Errorf("DetailFor = %q", d.DetailFor("x"))
	}
}

func TestRandom_SameSeedSameDraws(t *testing.T) {
	a := NewRandom(0.5, 42)
	b := NewRandom(0.5, 42)
	st := plan.NewSubtask(1, "Book venue", OwnerVenue)
	for i := 0; i < 50; i++ {
		if a.ShouldFail(st) != b.ShouldFail(st) {
			t.Fatalf("draw %d differs for identical seeds", i)
		}
		if a.DetailFor("Book venue") != b.DetailFor("Book venue") {
			t.Fatalf("detail %d differs for identical seeds", i)
		}
	}
}

func TestRandom_RateBounds(t *testing.T) {
	st := plan.NewSubtask(1, "x", "")

	never := NewRandom(0, 1)
	always := NewRandom(1, 1)
	clampedLow := NewRandom(-3, 1)
	clampedHigh := NewRandom(7, 1)
	for i := 0; i < 200; i++ {
		if never.ShouldFail(st) || clampedLow.ShouldFail(st) {
			t.Fatal("rate 0 produced a failure")
		}
		if !always.ShouldFail(st) || !clampedHigh.ShouldFail(st) {
			t.Fatal("rate 1 produced a success")
		}
	}
}

func TestRandom_DetailVariants(t *testing.T) {
	r := NewRandom(0, 7)
	variants := flavorDetails["Reservation confirmed"]
	for i := 0; i < 20; i++ {
		got := r.DetailFor("Book venue")
		found := false
		for _, v := range variants {
			if got == v {
				found = true
			}
		}
		if !found {
			t.Fatalf("DetailFor returned %q, not a reservation variant", got)
		}
	}
	if got := r.DetailFor("Conduct workshop"); got != defaultDetail {
		t.Errorf("DetailFor without variants = %q, want %q", got, defaultDetail)
	}
}
