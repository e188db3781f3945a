// Package config loads agentsim settings from defaults, a YAML file,
// .env and AGENTSIM_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pablasso/agentsim/internal/demo"
	"github.com/pablasso/agentsim/internal/logging"
)

// EnvPrefix is prepended to every environment override,
// e.g. AGENTSIM_SIMULATION_SPEED_SECONDS.
const EnvPrefix = "AGENTSIM"

// Config is the complete agentsim configuration
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Model      ModelConfig      `mapstructure:"model"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	History    HistoryConfig    `mapstructure:"history"`
}

// SimulationConfig controls pacing and failure injection
type SimulationConfig struct {
	// SpeedSeconds is the delay before each simulated step (0 disables pacing)
	SpeedSeconds float64 `mapstructure:"speed_seconds"`
	// FailureRate is the per-subtask failure probability; 0 never fails
	FailureRate float64 `mapstructure:"failure_rate"`
	// Seed fixes the failure draws; 0 picks a time-based seed
	Seed uint64 `mapstructure:"seed"`
}

// ModelConfig describes the optional plan-generation model. Empty and zero
// values defer to the model client and planner defaults.
type ModelConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	Name           string  `mapstructure:"name"`
	BaseURL        string  `mapstructure:"base_url"`
	APIKey         string  `mapstructure:"api_key"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	Temperature    float64 `mapstructure:"temperature"`
}

// LoggingConfig controls diagnostic logs
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	// File receives JSON logs; empty means stderr (or discard inside the TUI)
	File string `mapstructure:"file"`
}

// HistoryConfig bounds the in-memory run history
type HistoryConfig struct {
	// Size is the number of kept runs; 0 uses the session default
	Size int `mapstructure:"size"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			SpeedSeconds: demo.DefaultSpeedSeconds,
			FailureRate:  0,
			Seed:         0,
		},
		Model: ModelConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: strings.ToLower(logging.LevelInfo),
		},
	}
}

// SetDefaults registers every default with v so env overrides resolve.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("simulation.speed_seconds", defaults.Simulation.SpeedSeconds)
	v.SetDefault("simulation.failure_rate", defaults.Simulation.FailureRate)
	v.SetDefault("simulation.seed", defaults.Simulation.Seed)

	v.SetDefault("model.enabled", defaults.Model.Enabled)
	v.SetDefault("model.name", defaults.Model.Name)
	v.SetDefault("model.base_url", defaults.Model.BaseURL)
	v.SetDefault("model.api_key", defaults.Model.APIKey)
	v.SetDefault("model.timeout_seconds", defaults.Model.TimeoutSeconds)
	v.SetDefault("model.temperature", defaults.Model.Temperature)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.file", defaults.Logging.File)

	v.SetDefault("history.size", defaults.History.Size)
}

// Init prepares v: defaults, .env, environment and the config file.
// A missing config file is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	// .env is optional; existing environment wins.
	_ = godotenv.Load()

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("model.api_key", EnvPrefix+"_MODEL_API_KEY", "GROQ_API_KEY"); err != nil {
		return err
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return err
	}
	return nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// ModelTimeout returns the generation bound as a duration; zero leaves the
// planner's own bound in place.
func (c *ModelConfig) ModelTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ModelAvailable reports whether the model path can be used.
func (c *ModelConfig) ModelAvailable() bool {
	return c.Enabled && strings.TrimSpace(c.APIKey) != ""
}

// StepDelay returns the clamped per-step delay.
func (c *SimulationConfig) StepDelay() time.Duration {
	return demo.StepDelay(c.SpeedSeconds)
}

// ConfigDir returns the user's agentsim config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "agentsim")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".agentsim"
	}
	return filepath.Join(home, ".config", "agentsim")
}

// ConfigFile returns the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
