package demo

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/pablasso/agentsim/internal/plan"
)

// DefaultFailureRate is the per-subtask failure probability used by Random.
const DefaultFailureRate = 0.05

// FailureDetail is the detail attached to an injected failure.
const FailureDetail = "external dependency issue"

// Scenario controls subtask outcomes during simulation.
type Scenario string

const (
	ScenarioSuccess Scenario = "success"
	ScenarioFlaky   Scenario = "flaky"
	ScenarioFail    Scenario = "fail"
)

func ParseScenario(value string) (Scenario, error) {
	switch Scenario(strings.ToLower(strings.TrimSpace(value))) {
	case ScenarioSuccess, ScenarioFlaky, ScenarioFail:
		return Scenario(strings.ToLower(strings.TrimSpace(value))), nil
	default:
		return "", fmt.Errorf("invalid scenario %q (valid: success, flaky, fail)", value)
	}
}

// Deterministic never fails and derives details from title keywords.
type Deterministic struct{}

// ShouldFail always returns false.
func (Deterministic) ShouldFail(plan.Subtask) bool { return false }

// DetailFor returns a fixed detail chosen by keywords in title.
func (Deterministic) DetailFor(title string) string { return detailForTitle(title) }

// AlwaysFail fails every subtask.
type AlwaysFail struct{}

// ShouldFail always returns true.
func (AlwaysFail) ShouldFail(plan.Subtask) bool { return true }

// DetailFor returns the fixed failure detail.
func (AlwaysFail) DetailFor(string) string { return FailureDetail }

var flavorDetails = map[string][]string{
	"Reservation confirmed": {
		"Booked Conference Room A",
		"Booked Main Auditorium",
		"Booked Workshop Lab 1",
		"Booked Innovation Hub",
	},
	"Findings summarized": {
		"Found 5 relevant resources",
		"Found 9 relevant resources",
		"Found 14 relevant resources",
	},
	"Cost breakdown prepared": {
		"Estimated cost: $650",
		"Estimated cost: $1200",
		"Estimated cost: $1850",
	},
}

// Random fails subtasks with a fixed probability and varies detail text.
// It is safe for concurrent use.
type Random struct {
	mu   sync.Mutex
	rng  *rand.Rand
	rate float64
}

// NewRandom creates a Random decider. The same seed yields the same draws.
func NewRandom(rate float64, seed uint64) *Random {
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	return &Random{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		rate: rate,
	}
}

// ShouldFail draws a failure with the configured probability.
func (r *Random) ShouldFail(plan.Subtask) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64() < r.rate
}

// DetailFor picks a flavor variant of the deterministic detail when one exists.
func (r *Random) DetailFor(title string) string {
	detail := detailForTitle(title)
	variants, ok := flavorDetails[detail]
	if !ok {
		return detail
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return variants[r.rng.IntN(len(variants))]
}
