package llm

import (
	"strings"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "anthropic without key",
			mutate:  func(c *Config) { c.Provider = "anthropic" },
			wantErr: "INTENGINE_ANTHROPIC_API_KEY",
		},
		{
			name: "anthropic with key",
			mutate: func(c *Config) {
				c.Provider = "anthropic"
				c.Anthropic.APIKey = "sk-test"
			},
		},
		{
			name:    "openai without key",
			mutate:  func(c *Config) { c.Provider = "openai" },
			wantErr: "INTENGINE_OPENAI_API_KEY",
		},
		{
			name:    "gemini without key",
			mutate:  func(c *Config) { c.Provider = "gemini" },
			wantErr: "INTENGINE_GEMINI_API_KEY",
		},
		{
			name:    "openrouter without key",
			mutate:  func(c *Config) { c.Provider = "openrouter" },
			wantErr: "INTENGINE_OPENROUTER_API_KEY",
		},
		{
			name:   "mock needs no key",
			mutate: func(c *Config) { c.Provider = "mock" },
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Provider = "carrier-pigeon" },
			wantErr: "unknown generation provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("INTENGINE_LLM_PROVIDER", "anthropic")
	t.Setenv("INTENGINE_ANTHROPIC_API_KEY", "sk-env")
	t.Setenv("INTENGINE_ANTHROPIC_MODEL", "claude-custom")
	t.Setenv("INTENGINE_LLM_TIMEOUT", "45s")

	cfg := ConfigFromEnv()

	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.Anthropic.APIKey != "sk-env" || cfg.Anthropic.Model != "claude-custom" {
		t.Errorf("Anthropic config = %+v", cfg.Anthropic)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	// Unset values keep their defaults.
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("OpenAI.Model = %q", cfg.OpenAI.Model)
	}
}

func TestConfigFromEnv_InvalidTimeoutKeepsDefault(t *testing.T) {
	t.Setenv("INTENGINE_LLM_TIMEOUT", "shortly")

	cfg := ConfigFromEnv()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want the 30s default", cfg.Timeout)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, key := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(key, "")
	}

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("DiscoverConfig found a provider with no keys set")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-a")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "sk-a" {
		t.Fatalf("got %+v ok=%v", cfg, ok)
	}

	// Gemini outranks the others when several keys are present.
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "sk-o")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "gemini" || cfg.Gemini.APIKey != "g-key" {
		t.Fatalf("got %+v ok=%v", cfg, ok)
	}
}
