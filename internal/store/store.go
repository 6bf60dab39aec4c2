// Package store persists extraction runs and their per-section text in an
// embedded SQLite database. This is the backing store the HTTP API republishes
// from.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mkravec/cennik/internal/section"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	provider         TEXT NOT NULL,
	document_path    TEXT NOT NULL,
	layout_mode      TEXT NOT NULL,
	method           TEXT NOT NULL,
	toc_sections     INTEGER NOT NULL,
	total_sections   INTEGER NOT NULL,
	successful       INTEGER NOT NULL,
	failed           INTEGER NOT NULL,
	total_characters INTEGER NOT NULL,
	created_at       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sections (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	key        TEXT NOT NULL,
	title      TEXT NOT NULL,
	found      INTEGER NOT NULL,
	content    TEXT NOT NULL DEFAULT '',
	char_count INTEGER NOT NULL,
	reason     TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_sections_run ON sections(run_id, position);
CREATE INDEX IF NOT EXISTS idx_runs_provider ON runs(provider, created_at);
`

// Run is one persisted extraction run.
type Run struct {
	ID           string          `json:"id"`
	Provider     string          `json:"provider"`
	DocumentPath string          `json:"document_path"`
	LayoutMode   string          `json:"layout_mode"`
	Method       string          `json:"method"`
	TocSections  int             `json:"toc_sections"`
	Summary      section.Summary `json:"summary"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun persists a run and its outcomes in one transaction and returns the
// run ID (generated when the caller left it empty).
func (s *Store) SaveRun(ctx context.Context, run *Run, outcomes []section.Outcome) (string, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, provider, document_path, layout_mode, method,
			toc_sections, total_sections, successful, failed, total_characters, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Provider, run.DocumentPath, run.LayoutMode, run.Method,
		run.TocSections, run.Summary.TotalSections, run.Summary.Successful,
		run.Summary.Failed, run.Summary.TotalCharacters,
		run.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for i, o := range outcomes {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sections (run_id, position, key, title, found, content, char_count, reason)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, o.Key, o.Title, boolToInt(o.Found), o.Text, o.CharCount, o.Reason)
		if err != nil {
			return "", fmt.Errorf("inserting section %q: %w", o.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return run.ID, nil
}

// GetRun loads a single run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, provider, document_path, layout_mode, method,
			toc_sections, total_sections, successful, failed, total_characters, created_at
		FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// LatestRun returns the most recent run for a provider.
func (s *Store) LatestRun(ctx context.Context, provider string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, provider, document_path, layout_mode, method,
			toc_sections, total_sections, successful, failed, total_characters, created_at
		FROM runs WHERE provider = ? ORDER BY created_at DESC, id DESC LIMIT 1`, provider)
	return scanRun(row)
}

// ListRuns returns up to limit runs, newest first. A limit of 0 means all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, provider, document_path, layout_mode, method,
			toc_sections, total_sections, successful, failed, total_characters, created_at
		FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// Sections returns the outcomes of a run in configuration order.
func (s *Store) Sections(ctx context.Context, runID string) ([]section.Outcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, title, found, content, char_count, reason
		FROM sections WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	defer rows.Close()

	var outcomes []section.Outcome
	for rows.Next() {
		var o section.Outcome
		var found int
		if err := rows.Scan(&o.Key, &o.Title, &found, &o.Text, &o.CharCount, &o.Reason); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		o.Found = found != 0
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var r Run
	var createdAt string
	err := row.Scan(&r.ID, &r.Provider, &r.DocumentPath, &r.LayoutMode, &r.Method,
		&r.TocSections, &r.Summary.TotalSections, &r.Summary.Successful,
		&r.Summary.Failed, &r.Summary.TotalCharacters, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
		r.CreatedAt = t
	}
	return &r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
