package llm

import (
	"context"
	"fmt"

	"github.com/frontendschool-official/interview-engine/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with timeout and logging middleware.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown generation provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller -> logging -> timeout -> base.
	// Timeout sits inside logging so the event append runs on the
	// caller's context, not the expired per-call one; a timed-out call
	// still lands in the event log. Retry policy deliberately lives
	// above this package, in the generation controller, so it can treat
	// extraction and schema failures uniformly with transport failures.
	timed := WithTimeout(base, cfg.Timeout)
	logged := WithLogging(timed, events)

	return logged, nil
}

// NewProviderFromEnv builds a Provider from INTENGINE_* variables, falling
// back to probing the standard vendor API key variables.
func NewProviderFromEnv(ctx context.Context, events store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, events)
}
