// ============================================================================
// teacup - grammar-driven language engine
// ============================================================================
//
// Package:     history
// Description: SQLite store for evaluation history
// Author:      msto63
// Created:     2025-06-23
// License:     MIT
// ============================================================================

package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	"github.com/msto63/teacup/foundation/engine"
	"github.com/msto63/teacup/foundation/engine/interp"
)

// DefaultListLimit applies when List is called without a positive limit
const DefaultListLimit = 50

// Evaluation is one recorded run of the engine
type Evaluation struct {
	ID        string        `json:"id"`
	SessionID string        `json:"session_id,omitempty"`
	Source    string        `json:"source"`
	Digest    string        `json:"digest"`
	Result    string        `json:"result,omitempty"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// Failed reports whether the evaluation ended with an error
func (e *Evaluation) Failed() bool {
	return e.Error != ""
}

// FromResult converts an engine result and its error into a record
func FromResult(sessionID string, res *engine.Result, err error) *Evaluation {
	ev := &Evaluation{SessionID: sessionID}
	if res != nil {
		ev.ID = res.ID
		ev.Source = res.Source
		ev.Digest = res.Digest
		ev.Duration = res.Duration
		if err == nil {
			ev.Result = interp.Format(res.Value)
		}
	}
	if err != nil {
		ev.Error = err.Error()
	}
	return ev
}

// Store defines the interface for evaluation history persistence
type Store interface {
	Record(ctx context.Context, ev *Evaluation) error
	Get(ctx context.Context, id string) (*Evaluation, error)
	List(ctx context.Context, limit int) ([]*Evaluation, error)
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/history.db",
	}
}

// NewSQLiteStore opens or creates the history database
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, dbError(err, "failed to create directory", "history.Open")
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, dbError(err, "failed to open database", "history.Open")
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema", "history.Open")
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL,
		digest TEXT NOT NULL,
		result TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		duration_ms REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_evaluations_created ON evaluations(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_evaluations_digest ON evaluations(digest);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores an evaluation. Missing ids, digests and timestamps are filled in.
func (s *SQLiteStore) Record(ctx context.Context, ev *Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.Digest == "" {
		ev.Digest = engine.Digest(ev.Source)
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, session_id, source, digest, result, error, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, ev.ID, ev.SessionID, ev.Source, ev.Digest, ev.Result, ev.Error,
		float64(ev.Duration)/float64(time.Millisecond), ev.CreatedAt)
	if err != nil {
		return dbError(err, "failed to record evaluation", "history.Record").WithDetail("id", ev.ID)
	}

	return nil
}

// Get retrieves an evaluation by ID; nil when absent
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, source, digest, result, error, duration_ms, created_at
		FROM evaluations WHERE id = ?
	`, id)

	ev, err := scan(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, dbError(err, "failed to get evaluation", "history.Get").WithDetail("id", id)
	}
	return ev, nil
}

// List returns the most recent evaluations, newest first
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, source, digest, result, error, duration_ms, created_at
		FROM evaluations
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, dbError(err, "failed to list evaluations", "history.List")
	}
	defer rows.Close()

	var out []*Evaluation
	for rows.Next() {
		ev, err := scan(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan evaluation", "history.List")
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to list evaluations", "history.List")
	}

	return out, nil
}

// Clear deletes all evaluations
func (s *SQLiteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM evaluations`); err != nil {
		return dbError(err, "failed to clear history", "history.Clear")
	}
	return nil
}

// Ping checks the database connection
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return dbError(err, "history database unreachable", "history.Ping")
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scan(row scanner) (*Evaluation, error) {
	var ev Evaluation
	var ms float64
	if err := row.Scan(&ev.ID, &ev.SessionID, &ev.Source, &ev.Digest, &ev.Result, &ev.Error, &ms, &ev.CreatedAt); err != nil {
		return nil, err
	}
	ev.Duration = time.Duration(ms * float64(time.Millisecond))
	return &ev, nil
}

func dbError(err error, msg, op string) *mdwerror.Error {
	return mdwerror.Wrap(err, msg).
		WithCode(mdwerror.CodeDatabaseError).
		WithOperation(op)
}
