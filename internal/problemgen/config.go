package problemgen

// Config controls the generation client and the fallback controller.
type Config struct {
	// AttemptBudget is the number of generation attempts per slot before
	// the deterministic fallback fills it.
	AttemptBudget int

	// MaxTokens is the token budget for a single completion.
	MaxTokens int

	// Temperature controls model output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		AttemptBudget: 3,
		MaxTokens:     2048,
		Temperature:   0.7,
	}
}
