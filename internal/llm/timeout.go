package llm

import (
	"context"
	"errors"
	"time"
)

// TimeoutProvider is a decorator that bounds every call with a deadline.
// Expiry surfaces as ErrProviderUnavailable so callers treat a hung
// upstream the same as a down one.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps a Provider with a per-call timeout.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	return &TimeoutProvider{inner: p, timeout: timeout}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	resp, err := t.inner.Generate(ctx, req)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return nil, &ErrProviderUnavailable{Err: err}
	}
	return resp, err
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
