package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

// blockingProvider waits for context cancellation before returning.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestTimeoutProvider_DeadlineBecomesUnavailable(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 10*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})

	var unavailable *ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("got %v, want ErrProviderUnavailable", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("deadline cause not preserved in chain: %v", err)
	}
}

func TestTimeoutProvider_FastCallPassesThrough(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "hello"})
	p := WithTimeout(mock, time.Second)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Text != "hello" {
		t.Errorf("Text = %q", resp.Text)
	}
}

func TestTimeoutProvider_OtherErrorsUnchanged(t *testing.T) {
	inner := errors.New("boom")
	mock := NewMockProvider(MockResponse{Err: inner})
	p := WithTimeout(mock, time.Second)

	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, inner) {
		t.Errorf("got %v, want the provider's own error", err)
	}
	var unavailable *ErrProviderUnavailable
	if errors.As(err, &unavailable) {
		t.Error("non-deadline error wrongly reclassified as unavailable")
	}
}

func TestTimeoutProvider_ZeroTimeoutDisablesDeadline(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok"})
	p := WithTimeout(mock, 0)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Text != "ok" {
		t.Errorf("Text = %q", resp.Text)
	}
}

func TestTimeoutProvider_ModelIDDelegates(t *testing.T) {
	p := WithTimeout(blockingProvider{}, time.Second)
	if p.ModelID() != "blocking" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}
