package problemgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/frontendschool-official/interview-engine/internal/llm"
	"github.com/frontendschool-official/interview-engine/internal/problem"
)

// Client is the generation client: it sends a fully-bound prompt to the
// provider and coerces the free-text completion into a validated problem
// record. It performs no retries; retry policy lives in the Controller so
// call sites that want to vary the prompt between attempts can.
type Client struct {
	provider llm.Provider
	cfg      Config
}

// NewClient creates a generation client over the given provider.
func NewClient(provider llm.Provider, cfg Config) *Client {
	return &Client{provider: provider, cfg: cfg}
}

// Generate produces one validated problem record of the given kind from a
// bound prompt. Failure modes, in pipeline order: provider errors
// (llm.ErrProviderUnavailable and friends), ErrNoJSONFound,
// *MalformedJSONError, *problem.SchemaViolationError.
func (c *Client) Generate(ctx context.Context, kind problem.Kind, promptText string) (problem.Record, error) {
	ctx = llm.WithPurpose(ctx, "problem-gen:"+string(kind))

	resp, err := c.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: promptText},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return nil, err
	}

	span, err := ExtractJSON(resp.Text)
	if err != nil {
		return nil, err
	}

	raw := json.RawMessage(span)
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, &MalformedJSONError{Fragment: span, Err: err}
	}

	if err := problem.Validate(kind, raw); err != nil {
		return nil, err
	}

	rec, err := problem.UnmarshalRecord(raw)
	if err != nil {
		// Validation passed, so the discriminator is the requested kind;
		// a decode failure here is a programming error, not model noise.
		return nil, fmt.Errorf("decode validated %s problem: %w", kind, err)
	}

	if rec.RecordID() == "" {
		rec.SetID(uuid.NewString())
	}
	return rec, nil
}
