package demo

import (
	"testing"
	"time"
)

func TestParsePreset(t *testing.T) {
	tests := []struct {
		input   string
		want    Preset
		wantErr bool
	}{
		{"quick", PresetQuick, false},
		{" Medium ", PresetMedium, false},
		{"SLOW", PresetSlow, false},
		{"turbo", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePreset(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePreset(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePreset(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSpeedForPreset(t *testing.T) {
	tests := []struct {
		preset Preset
		want   float64
	}{
		{PresetQuick, 0.1},
		{PresetMedium, 0.6},
		{PresetSlow, 1.5},
	}
	for _, tt := range tests {
		got, err := SpeedForPreset(tt.preset)
		if err != nil {
			t.Fatalf("SpeedForPreset(%q): %v", tt.preset, err)
		}
		if got != tt.want {
			t.Errorf("SpeedForPreset(%q) = %v, want %v", tt.preset, got, tt.want)
		}
	}

	if _, err := SpeedForPreset("nope"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestStepDelay(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    time.Duration
	}{
		{"zero disables pacing", 0, 0},
		{"negative disables pacing", -1, 0},
		{"below minimum clamps up", 0.01, 100 * time.Millisecond},
		{"in range", 0.5, 500 * time.Millisecond},
		{"above maximum clamps down", 10, 1500 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StepDelay(tt.seconds); got != tt.want {
				t.Errorf("StepDelay(%v) = %s, want %s", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestCheckSpeed(t *testing.T) {
	tests := []struct {
		seconds float64
		wantErr bool
	}{
		{0, false},
		{MinSpeedSeconds, false},
		{0.6, false},
		{MaxSpeedSeconds, false},
		{0.05, true},
		{-0.5, true},
		{2, true},
	}
	for _, tt := range tests {
		err := CheckSpeed(tt.seconds)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckSpeed(%v) error = %v, wantErr %v", tt.seconds, err, tt.wantErr)
		}
	}
}
