package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store and EventRepo on a single SQLite file.
// Documents live in one table keyed by (collection, key); every write is a
// single statement, so a document is either fully committed or absent.
type SQLiteStore struct {
	db *sql.DB
}

// Open creates a SQLiteStore at dsn, applying recommended pragmas and
// creating the schema if needed.
func Open(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-writer service use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func createSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			key        TEXT NOT NULL,
			document   TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (collection, key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_collection_created
			ON documents (collection, created_at)`,
		`CREATE TABLE IF NOT EXISTS llm_request_events (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			provider      TEXT NOT NULL,
			model         TEXT NOT NULL,
			purpose       TEXT NOT NULL,
			input_tokens  INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			latency_ms    INTEGER NOT NULL DEFAULT 0,
			success       INTEGER NOT NULL,
			error_message TEXT NOT NULL DEFAULT '',
			request_body  TEXT NOT NULL DEFAULT '',
			response_body TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS generation_attempt_events (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			kind          TEXT NOT NULL,
			slot          INTEGER NOT NULL,
			attempt       INTEGER NOT NULL,
			error_class   TEXT NOT NULL,
			error_message TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, collection, key string) (json.RawMessage, bool, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM documents WHERE collection = ? AND key = ?`,
		collection, key,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s/%s: %w", collection, key, err)
	}
	return json.RawMessage(doc), true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, collection, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, key, document, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (collection, key) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at`,
		collection, key, string(data), time.Now().UTC(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *SQLiteStore) SetIfAbsent(ctx context.Context, collection, key string, doc any) (bool, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("marshal document: %w", err)
	}

	// A single conditional insert: either the whole document commits or
	// nothing does, which is what makes start-round retries safe.
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, key, document, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (collection, key) DO NOTHING`,
		collection, key, string(data), time.Now().UTC(), time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("create %s/%s: %w", collection, key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create %s/%s: %w", collection, key, err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) Query(ctx context.Context, collection string, filter map[string]any) ([]json.RawMessage, error) {
	query := `SELECT document FROM documents WHERE collection = ?`
	args := []any{collection}

	// Deterministic clause order keeps query plans stable.
	fields := make([]string, 0, len(filter))
	for f := range filter {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		if !validFieldName(f) {
			return nil, fmt.Errorf("query %s: invalid filter field %q", collection, f)
		}
		query += fmt.Sprintf(` AND json_extract(document, '$.%s') = ?`, f)
		args = append(args, filter[f])
	}
	query += ` ORDER BY created_at ASC, key ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("query %s: %w", collection, err)
		}
		docs = append(docs, json.RawMessage(doc))
	}
	return docs, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, collection, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND key = ?`,
		collection, key,
	)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, key, err)
	}
	return nil
}

// validFieldName restricts filter fields to identifier characters; filter
// names are interpolated into the json_extract path.
func validFieldName(f string) bool {
	if f == "" {
		return false
	}
	for _, r := range f {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}

func (s *SQLiteStore) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO llm_request_events
			(provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
		data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("append llm request event: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AppendGenerationAttempt(ctx context.Context, data GenerationAttemptData) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generation_attempt_events (kind, slot, attempt, error_class, error_message)
		 VALUES (?, ?, ?, ?, ?)`,
		data.Kind, data.Slot, data.Attempt, data.ErrorClass, data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("append generation attempt event: %w", err)
	}
	return nil
}

// Interface checks.
var (
	_ Store     = (*SQLiteStore)(nil)
	_ EventRepo = (*SQLiteStore)(nil)
)
