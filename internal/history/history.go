// Package history keeps a local log of datapoint submissions in sqlite.
//
// DESIGN: One row per attempt, successful or not. The log is write-mostly and
// read only by the "history" command, so a single connection is enough.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS datapoints (
	id         TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	user_name  TEXT NOT NULL,
	goal_name  TEXT NOT NULL,
	scope      TEXT NOT NULL,
	value      INTEGER NOT NULL,
	comment    TEXT NOT NULL,
	success    INTEGER NOT NULL,
	status     INTEGER NOT NULL,
	body       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS datapoints_created_at ON datapoints(created_at);
`

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Attempt is one recorded submission.
type Attempt struct {
	ID         string
	CreatedAt  time.Time
	UserName   string
	GoalName   string
	Scope      string
	Value      int
	Comment    string
	Success    bool
	StatusCode int // 0 when no response was received
	Body       string
}

// Recorder stores attempts. The submitter depends on this, not on Store.
type Recorder interface {
	Record(ctx context.Context, a Attempt) (Attempt, error)
}

// Store is a sqlite-backed attempt log.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if needed) the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("history path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history '%s': %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// Record inserts an attempt, assigning ID and CreatedAt when unset.
func (s *Store) Record(ctx context.Context, a Attempt) (Attempt, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	a.CreatedAt = a.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx, `INSERT INTO datapoints
		(id, created_at, user_name, goal_name, scope, value, comment, success, status, body)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		a.ID, a.CreatedAt.Format(timeLayout), a.UserName, a.GoalName, a.Scope,
		a.Value, a.Comment, boolToInt(a.Success), a.StatusCode, a.Body,
	)
	if err != nil {
		return a, fmt.Errorf("failed to record attempt: %w", err)
	}
	return a, nil
}

// Recent returns up to limit attempts, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, created_at, user_name, goal_name, scope, value, comment, success, status, body
		FROM datapoints ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a       Attempt
			created string
			success int
		)
		if err := rows.Scan(&a.ID, &created, &a.UserName, &a.GoalName, &a.Scope, &a.Value, &a.Comment, &success, &a.StatusCode, &a.Body); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		a.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("invalid created_at %q: %w", created, err)
		}
		a.Success = success != 0
		out = append(out, a)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ Recorder = (*Store)(nil)
