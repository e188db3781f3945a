package plan

import (
	"encoding/json"
	"fmt"
	"os"
)

// Report is the final output of a run: the plan with every subtask's log,
// plus its summary.
type Report struct {
	Plan    *Plan   `json:"plan"`
	Summary Summary `json:"summary"`
}

// WriteReport atomically writes a JSON report to path.
// Uses a temp file + rename so a partially written report is never observed.
func WriteReport(path string, p *Plan, s Summary) error {
	tmpPath := fmt.Sprintf("%s.tmp.%d", path, os.Getpid())

	data, err := json.MarshalIndent(Report{Plan: p, Summary: s}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// ReadReport loads a report previously written by WriteReport.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &r, nil
}
