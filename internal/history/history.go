// Package history provides SQLite-backed storage for completed runs.
//
// The store is append-only: the batch driver records one row per run after
// its pipeline finishes, and the history command lists them most recent
// first. SQLite runs in WAL mode with a single-writer connection pool,
// which is all a strictly sequential batch needs.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Run statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Run is one recorded pipeline run.
type Run struct {
	ID         string    `json:"id"`
	BatchToken string    `json:"batch_token"`
	Name       string    `json:"name"`
	Sites      int       `json:"sites"`
	Taxa       int       `json:"taxa"`
	Partitions int       `json:"partitions"`
	Patterns   int       `json:"patterns"`
	Sequences  int       `json:"sequences"`
	TreeCount  int       `json:"tree_count"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	ResultsDir string    `json:"results_dir,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Store wraps the runs database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at path and applies the schema.
// Idempotent: safe to call against an existing database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect history database: %w", err)
	}

	// SQLite allows one writer at a time; keep a single connection to
	// avoid SQLITE_BUSY instead of retrying around it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts a finished run. A missing ID is filled with a fresh uuid.
func (s *Store) Record(ctx context.Context, run Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, batch_token, name, sites, taxa, partitions, patterns, sequences, tree_count, status, error, results_dir, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.BatchToken,
		run.Name,
		run.Sites,
		run.Taxa,
		run.Partitions,
		run.Patterns,
		run.Sequences,
		run.TreeCount,
		run.Status,
		run.Error,
		run.ResultsDir,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// List returns up to limit runs, most recently finished first. A limit of
// zero or less means no limit. Returns an empty slice, not nil, when the
// store holds no runs.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, batch_token, name, sites, taxa, partitions, patterns, sequences, tree_count, status, error, results_dir, started_at, finished_at
		FROM runs
		ORDER BY finished_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var (
			run                  Run
			startedAt, finishedAt string
		)
		if err := rows.Scan(
			&run.ID, &run.BatchToken, &run.Name,
			&run.Sites, &run.Taxa, &run.Partitions,
			&run.Patterns, &run.Sequences, &run.TreeCount,
			&run.Status, &run.Error, &run.ResultsDir,
			&startedAt, &finishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}
