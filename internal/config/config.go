package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds runtime configuration for every qdb subcommand.
type Config struct {
	Env string `env:"APP_ENV" envDefault:"development"`

	// Anthropic API settings for the cleaning model.
	APIKey string `env:"ANTHROPIC_API_KEY"`
	Model  string `env:"ANTHROPIC_MODEL" envDefault:"claude-sonnet-4-5-20250929"`

	// Set USE_CLI_CLEANER=true to shell out to the claude CLI instead of
	// the API; MOCK_CLEANER=true replaces the model with canned replies.
	UseCLI  bool   `env:"USE_CLI_CLEANER" envDefault:"false"`
	CLIPath string `env:"CLAUDE_CLI_PATH" envDefault:"claude"`
	Mock    bool   `env:"MOCK_CLEANER" envDefault:"false"`

	// InputPath is the master question database snapshot.
	InputPath string `env:"INPUT_JSON_PATH" envDefault:"cognitive_assessment_db.json"`
	OutputDir string `env:"OUTPUT_DIR" envDefault:"cleaned_data"`

	// Cooperative throttle between model calls; RC passages are larger so
	// the RC pipeline waits longer.
	GeneralDelay time.Duration `env:"GENERAL_CLEAN_DELAY" envDefault:"1s"`
	RCDelay      time.Duration `env:"RC_CLEAN_DELAY" envDefault:"2s"`
	CallTimeout  time.Duration `env:"CLEAN_CALL_TIMEOUT" envDefault:"30s"`
}

// Load reads .env (when present) and parses the environment.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ValidateForCleaning checks the settings the cleaning pipelines need
// before any record is sent to the model.
func (c *Config) ValidateForCleaning() error {
	if !c.Mock && !c.UseCLI && c.APIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY not set")
	}
	if _, err := os.Stat(c.InputPath); err != nil {
		return fmt.Errorf("input file not found: %s", c.InputPath)
	}
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}
