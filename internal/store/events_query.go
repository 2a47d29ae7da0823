package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LLMEvent is a persisted generative-text request record.
type LLMEvent struct {
	ID           int
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// AttemptEvent is a persisted failed generation attempt.
type AttemptEvent struct {
	ID           int
	Timestamp    time.Time
	Kind         string
	Slot         int
	Attempt      int
	ErrorClass   string
	ErrorMessage string
}

// QueryLLMEvents returns the most recent LLM events, newest first.
func (s *SQLiteStore) QueryLLMEvents(ctx context.Context, limit int) ([]LLMEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, provider, model, purpose, input_tokens, output_tokens,
			latency_ms, success, error_message, request_body, response_body
		 FROM llm_request_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		var e LLMEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
			&e.ErrorMessage, &e.RequestBody, &e.ResponseBody); err != nil {
			return nil, fmt.Errorf("scan llm event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetLLMEvent returns one event by id, or nil when absent.
func (s *SQLiteStore) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	var e LLMEvent
	err := s.db.QueryRowContext(ctx,
		`SELECT id, timestamp, provider, model, purpose, input_tokens, output_tokens,
			latency_ms, success, error_message, request_body, response_body
		 FROM llm_request_events WHERE id = ?`, id).
		Scan(&e.ID, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
			&e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get llm event %d: %w", id, err)
	}
	return &e, nil
}

// QueryGenerationAttempts returns the most recent failed generation
// attempts, newest first.
func (s *SQLiteStore) QueryGenerationAttempts(ctx context.Context, limit int) ([]AttemptEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, kind, slot, attempt, error_class, error_message
		 FROM generation_attempt_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query generation attempts: %w", err)
	}
	defer rows.Close()

	var events []AttemptEvent
	for rows.Next() {
		var e AttemptEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Kind, &e.Slot, &e.Attempt,
			&e.ErrorClass, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan generation attempt: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// PurgeCollection removes every document in a collection and returns the
// number of documents removed.
func (s *SQLiteStore) PurgeCollection(ctx context.Context, collection string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ?`, collection)
	if err != nil {
		return 0, fmt.Errorf("purge %s: %w", collection, err)
	}
	return res.RowsAffected()
}
