// Package store provides the document store the session manager persists
// into, plus the append-only generation event log used for observability.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Collection names used by this service.
const (
	CollectionSessions = "round_sessions"
	CollectionProgress = "simulation_progress"
)

// Store is a key-value document store with query-by-filter semantics.
// Documents are JSON objects. Set is an atomic upsert of the whole document;
// SetIfAbsent is the conditional variant that serializes session creation.
type Store interface {
	// Get returns the document at (collection, key). The second return is
	// false when the document is absent.
	Get(ctx context.Context, collection, key string) (json.RawMessage, bool, error)

	// Set upserts the document at (collection, key) as a single atomic
	// write. doc is marshaled to JSON.
	Set(ctx context.Context, collection, key string, doc any) error

	// SetIfAbsent writes the document only when no document exists at the
	// key. Returns true when this call created the document.
	SetIfAbsent(ctx context.Context, collection, key string, doc any) (bool, error)

	// Query returns all documents in the collection whose top-level fields
	// equal every entry in filter, ordered by creation time (earliest
	// first). A nil filter returns the whole collection.
	Query(ctx context.Context, collection string, filter map[string]any) ([]json.RawMessage, error)

	// Delete removes the document at (collection, key). Deleting an absent
	// document is not an error.
	Delete(ctx context.Context, collection, key string) error

	Close() error
}

// LLMRequestEventData captures the data for a single generation API call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// GenerationAttemptData captures one failed attempt inside the
// retry-and-fallback loop.
type GenerationAttemptData struct {
	Kind         string
	Slot         int
	Attempt      int
	ErrorClass   string
	ErrorMessage string
}

// EventRepo provides append access to observability events. Implementations
// must be safe for concurrent use; append failures are logged and swallowed
// by callers, never propagated into the generation pipeline.
type EventRepo interface {
	// AppendLLMRequest records a generation API call.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendGenerationAttempt records a contained generation failure.
	AppendGenerationAttempt(ctx context.Context, data GenerationAttemptData) error
}

// NopEventRepo discards all events. Used when no database is configured.
type NopEventRepo struct{}

func (NopEventRepo) AppendLLMRequest(context.Context, LLMRequestEventData) error {
	return nil
}

func (NopEventRepo) AppendGenerationAttempt(context.Context, GenerationAttemptData) error {
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. INTENGINE_DB environment variable
// 2. $XDG_DATA_HOME/interview-engine/engine.db
// 3. ~/.local/share/interview-engine/engine.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("INTENGINE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "interview-engine", "engine.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
