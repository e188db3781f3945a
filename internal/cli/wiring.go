package cli

import (
	"fmt"
	"time"

	"github.com/pablasso/agentsim/internal/ai"
	"github.com/pablasso/agentsim/internal/config"
	"github.com/pablasso/agentsim/internal/demo"
	"github.com/pablasso/agentsim/internal/executor"
	"github.com/pablasso/agentsim/internal/logging"
	"github.com/pablasso/agentsim/internal/planner"
)

// newPlanner builds the rule planner, backed by the hosted model when one
// is configured. A model that cannot be constructed is logged and skipped.
func newPlanner(cfg *config.Config, logger *logging.Logger) *planner.Planner {
	p := planner.New().
		WithLogger(logger).
		WithTimeout(cfg.Model.ModelTimeout())

	if !cfg.Model.ModelAvailable() {
		logger.Debug("model planning disabled", "enabled", cfg.Model.Enabled)
		return p
	}

	client, err := ai.NewOpenAICompatible(ai.Options{
		APIKey:      cfg.Model.APIKey,
		Model:       cfg.Model.Name,
		BaseURL:     cfg.Model.BaseURL,
		Temperature: cfg.Model.Temperature,
	})
	if err != nil {
		logger.Warn("model unavailable, using rules", "error", err)
		return p
	}
	return p.WithGenerator(client)
}

// simulationFlags are per-invocation overrides of the simulation config.
// Zero values defer to the config.
type simulationFlags struct {
	preset   string
	speed    float64
	speedSet bool
	failRate float64
	rateSet  bool
	seed     uint64
	scenario string
}

// newSimulator resolves pacing and outcome injection into a Simulator.
func newSimulator(cfg config.SimulationConfig, f simulationFlags) (*executor.Simulator, error) {
	speed := cfg.SpeedSeconds
	if f.preset != "" {
		preset, err := demo.ParsePreset(f.preset)
		if err != nil {
			return nil, err
		}
		if speed, err = demo.SpeedForPreset(preset); err != nil {
			return nil, err
		}
	}
	if f.speedSet {
		speed = f.speed
	}
	if err := demo.CheckSpeed(speed); err != nil {
		return nil, err
	}
	cfg.SpeedSeconds = speed

	rate := cfg.FailureRate
	if f.rateSet {
		rate = f.failRate
	}
	if rate < 0 || rate > 1 {
		return nil, fmt.Errorf("fail rate must be between 0 and 1, got %v", rate)
	}

	seed := cfg.Seed
	if f.seed != 0 {
		seed = f.seed
	}

	decider, err := newDecider(f.scenario, rate, seed)
	if err != nil {
		return nil, err
	}
	return executor.NewSimulator(cfg.StepDelay(), executor.WithDecider(decider)), nil
}

// newDecider maps a scenario name and failure rate to outcome injection.
// "flaky" without an explicit rate uses demo.DefaultFailureRate.
func newDecider(scenario string, rate float64, seed uint64) (executor.Decider, error) {
	s := demo.ScenarioSuccess
	if scenario != "" {
		parsed, err := demo.ParseScenario(scenario)
		if err != nil {
			return nil, err
		}
		s = parsed
	}

	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	switch s {
	case demo.ScenarioFail:
		return demo.AlwaysFail{}, nil
	case demo.ScenarioFlaky:
		if rate == 0 {
			rate = demo.DefaultFailureRate
		}
		return demo.NewRandom(rate, seed), nil
	default:
		if rate > 0 {
			return demo.NewRandom(rate, seed), nil
		}
		return demo.Deterministic{}, nil
	}
}
