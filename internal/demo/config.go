package demo

import (
	"fmt"
	"strings"
	"time"
)

// Preset names a simulation pace.
type Preset string

const (
	PresetQuick  Preset = "quick"
	PresetMedium Preset = "medium"
	PresetSlow   Preset = "slow"
)

// Bounds on the per-step delay, in seconds.
const (
	MinSpeedSeconds     = 0.1
	MaxSpeedSeconds     = 1.5
	DefaultSpeedSeconds = 0.6
)

func ParsePreset(value string) (Preset, error) {
	switch Preset(strings.ToLower(strings.TrimSpace(value))) {
	case PresetQuick, PresetMedium, PresetSlow:
		return Preset(strings.ToLower(strings.TrimSpace(value))), nil
	default:
		return "", fmt.Errorf("invalid speed preset %q (valid: quick, medium, slow)", value)
	}
}

// SpeedForPreset returns the seconds-per-step value for a preset.
func SpeedForPreset(preset Preset) (float64, error) {
	switch preset {
	case PresetQuick:
		return MinSpeedSeconds, nil
	case PresetMedium:
		return DefaultSpeedSeconds, nil
	case PresetSlow:
		return MaxSpeedSeconds, nil
	default:
		return 0, fmt.Errorf("unknown speed preset %q", preset)
	}
}

// CheckSpeed rejects a seconds-per-step value outside 0 or the
// supported range.
func CheckSpeed(seconds float64) error {
	if seconds == 0 || (seconds >= MinSpeedSeconds && seconds <= MaxSpeedSeconds) {
		return nil
	}
	return fmt.Errorf("speed must be 0 or between %.1f and %.1f seconds, got %v", MinSpeedSeconds, MaxSpeedSeconds, seconds)
}

// StepDelay converts seconds per step into a delay.
// Zero means no pacing; positive values are clamped to the supported range.
func StepDelay(seconds float64) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(clampFloat(seconds, MinSpeedSeconds, MaxSpeedSeconds) * float64(time.Second))
}

func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
