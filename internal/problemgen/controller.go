package problemgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/frontendschool-official/interview-engine/internal/llm"
	"github.com/frontendschool-official/interview-engine/internal/problem"
	"github.com/frontendschool-official/interview-engine/internal/prompt"
	"github.com/frontendschool-official/interview-engine/internal/store"
)

// Controller wraps the generation client with the retry-and-fallback policy.
// Its contract: for any kind the selector can resolve, GenerateWithFallback
// returns a schema-valid record. Generation failures are contained here,
// recorded for observability, and never surfaced to callers.
type Controller struct {
	selector *prompt.Selector
	client   *Client
	events   store.EventRepo
	logger   *slog.Logger
	cfg      Config
}

// NewController creates a Controller.
func NewController(selector *prompt.Selector, client *Client, events store.EventRepo, logger *slog.Logger, cfg Config) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if events == nil {
		events = store.NopEventRepo{}
	}
	if cfg.AttemptBudget < 1 {
		cfg.AttemptBudget = 1
	}
	return &Controller{
		selector: selector,
		client:   client,
		events:   events,
		logger:   logger,
		cfg:      cfg,
	}
}

// GenerateWithFallback fills one slot. It binds the kind's template against
// vars (leniently: prompts tolerate absent optional variables), attempts
// generation up to the attempt budget, and falls back to the deterministic
// factory on exhaustion. The returned error is non-nil only for caller or
// configuration failures (unknown kind, missing template pack); those are
// not retried.
func (c *Controller) GenerateWithFallback(ctx context.Context, kind problem.Kind, vars prompt.Variables, slot int) (problem.Record, error) {
	_, tmpl, err := c.selector.Select(kind, "")
	if err != nil {
		return nil, err
	}

	// Attempts reuse the identical bound prompt; binding is pure, so one
	// render outside the loop is equivalent to re-binding per attempt.
	promptText, err := prompt.Bind(tmpl.Body, vars, prompt.Lenient)
	if err != nil {
		return nil, fmt.Errorf("bind %s template: %w", tmpl.Name, err)
	}

	for attempt := 1; attempt <= c.cfg.AttemptBudget; attempt++ {
		if ctx.Err() != nil {
			// Caller abandoned the round. The fallback still honors the
			// never-empty contract for anyone consuming the result.
			break
		}

		rec, genErr := c.client.Generate(ctx, kind, promptText)
		if genErr == nil {
			return rec, nil
		}

		c.recordFailure(ctx, kind, slot, attempt, genErr)
	}

	return problem.Fallback(kind, slot), nil
}

// recordFailure logs a contained attempt failure. Recording failures must
// never fail the pipeline.
func (c *Controller) recordFailure(ctx context.Context, kind problem.Kind, slot, attempt int, genErr error) {
	class := errorClass(genErr)

	c.logger.Warn("generation attempt failed",
		"kind", kind,
		"slot", slot,
		"attempt", attempt,
		"budget", c.cfg.AttemptBudget,
		"class", class,
		"error", genErr,
	)

	if err := c.events.AppendGenerationAttempt(ctx, store.GenerationAttemptData{
		Kind:         string(kind),
		Slot:         slot,
		Attempt:      attempt,
		ErrorClass:   class,
		ErrorMessage: genErr.Error(),
	}); err != nil {
		c.logger.Warn("failed to record generation attempt", "error", err)
	}
}

// errorClass buckets a generation failure for the event log.
func errorClass(err error) string {
	var (
		unavail   *llm.ErrProviderUnavailable
		rateLimit *llm.ErrRateLimit
		maxTokens *llm.ErrMaxTokensExceeded
		empty     *llm.ErrEmptyCompletion
		malformed *MalformedJSONError
		violation *problem.SchemaViolationError
	)
	switch {
	case errors.Is(err, ErrNoJSONFound):
		return "no_json_found"
	case errors.As(err, &malformed):
		return "malformed_json"
	case errors.As(err, &violation):
		return "schema_violation"
	case errors.As(err, &rateLimit):
		return "rate_limited"
	case errors.As(err, &maxTokens):
		return "max_tokens"
	case errors.As(err, &empty):
		return "empty_completion"
	case errors.As(err, &unavail):
		return "upstream_unavailable"
	default:
		return "other"
	}
}
