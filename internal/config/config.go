// Package config collects the engine's process-level settings from
// environment variables. LLM provider settings live in the llm package;
// this package owns everything else.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/frontendschool-official/interview-engine/internal/store"
)

// Config is the engine's runtime configuration.
type Config struct {
	// DBPath is the SQLite database location.
	DBPath string

	// HTTPAddr is the listen address for the API server.
	HTTPAddr string

	// AttemptBudget is the per-slot generation attempt cap.
	AttemptBudget int

	// MaxParallel caps concurrent slot generation within a round.
	MaxParallel int

	// TemplateVersion pins the prompt template version. Empty means
	// latest.
	TemplateVersion string
}

// Default returns the configuration used when no environment overrides
// are present. The database path is resolved separately because it can
// come from a flag.
func Default() Config {
	return Config{
		HTTPAddr:      ":8088",
		AttemptBudget: 3,
		MaxParallel:   4,
	}
}

// Discover loads configuration from the environment on top of defaults.
func Discover() (Config, error) {
	cfg := Default()

	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return cfg, err
	}
	cfg.DBPath = dbPath

	if v := os.Getenv("INTENGINE_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("INTENGINE_ATTEMPT_BUDGET"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid INTENGINE_ATTEMPT_BUDGET %q: %w", v, err)
		}
		cfg.AttemptBudget = n
	}
	if v := os.Getenv("INTENGINE_MAX_PARALLEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid INTENGINE_MAX_PARALLEL %q: %w", v, err)
		}
		cfg.MaxParallel = n
	}
	if v := os.Getenv("INTENGINE_TEMPLATE_VERSION"); v != "" {
		cfg.TemplateVersion = v
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("http listen address must not be empty")
	}
	if c.AttemptBudget < 1 {
		return fmt.Errorf("attempt budget must be at least 1, got %d", c.AttemptBudget)
	}
	if c.MaxParallel < 1 {
		return fmt.Errorf("parallelism cap must be at least 1, got %d", c.MaxParallel)
	}
	return nil
}
