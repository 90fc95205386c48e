// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists digest runs and their trend reports in SQLite
// so later runs can report trend changes.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rotisserie/eris"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// DefaultDBPath is used when the configuration leaves the path empty.
const DefaultDBPath = ".paper-digest/history.db"

// Store manages the run-history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and its schema.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultDBPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, eris.Wrapf(err, "history: create directory %s", dir)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, eris.Wrap(err, "history: open database")
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			fetched INTEGER NOT NULL,
			tier INTEGER NOT NULL,
			threshold REAL NOT NULL,
			report TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
		`CREATE TABLE IF NOT EXISTS selections (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			rank INTEGER NOT NULL,
			paper_id TEXT NOT NULL,
			title TEXT,
			score REAL NOT NULL,
			PRIMARY KEY (run_id, rank)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return eris.Wrap(err, "history: create schema")
		}
	}
	return nil
}

// Record stores rec and its selections in one transaction. An empty
// rec.ID is replaced with a new UUID.
func (s *Store) Record(ctx context.Context, rec types.RunRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	var report sql.NullString
	if rec.Report != nil {
		data, err := json.Marshal(rec.Report)
		if err != nil {
			return eris.Wrap(err, "history: marshal report")
		}
		report = sql.NullString{String: string(data), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "history: begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, status, error, fetched, tier, threshold, report)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, formatTime(rec.StartedAt), formatTime(rec.FinishedAt), string(rec.Status),
		rec.Error, rec.Fetched, rec.Tier, rec.Threshold, report)
	if err != nil {
		return eris.Wrapf(err, "history: insert run %s", rec.ID)
	}

	for _, sel := range rec.Selections {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO selections (run_id, rank, paper_id, title, score) VALUES (?, ?, ?, ?, ?)`,
			rec.ID, sel.Rank, sel.PaperID, sel.Title, sel.Score)
		if err != nil {
			return eris.Wrapf(err, "history: insert selection %s", sel.PaperID)
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "history: commit")
	}
	return nil
}

// Latest returns the trend report of the most recent successful run that
// stored one, or nil when there is none. Reports of failed runs were never
// posted and are skipped.
func (s *Store) Latest(ctx context.Context) (*types.TrendReport, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM runs WHERE report IS NOT NULL AND status = ? ORDER BY started_at DESC LIMIT 1`,
		string(types.RunOK),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "history: query latest report")
	}

	var r types.TrendReport
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, eris.Wrap(err, "history: decode report")
	}
	return &r, nil
}

// List returns up to limit runs, newest first, with their selections.
// Reports are not loaded.
func (s *Store) List(ctx context.Context, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, status, error, fetched, tier, threshold
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "history: query runs")
	}
	defer rows.Close()

	var runs []types.RunRecord
	for rows.Next() {
		var (
			rec              types.RunRecord
			started, finished string
			status           string
			errText          sql.NullString
		)
		if err := rows.Scan(&rec.ID, &started, &finished, &status, &errText,
			&rec.Fetched, &rec.Tier, &rec.Threshold); err != nil {
			return nil, eris.Wrap(err, "history: scan run")
		}
		rec.StartedAt = parseTime(started)
		rec.FinishedAt = parseTime(finished)
		rec.Status = types.RunStatus(status)
		rec.Error = errText.String
		runs = append(runs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "history: iterate runs")
	}

	for i := range runs {
		sels, err := s.selections(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Selections = sels
	}
	return runs, nil
}

func (s *Store) selections(ctx context.Context, runID string) ([]types.Selection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rank, paper_id, title, score FROM selections WHERE run_id = ? ORDER BY rank`, runID)
	if err != nil {
		return nil, eris.Wrapf(err, "history: query selections for %s", runID)
	}
	defer rows.Close()

	var out []types.Selection
	for rows.Next() {
		var sel types.Selection
		var title sql.NullString
		if err := rows.Scan(&sel.Rank, &sel.PaperID, &title, &sel.Score); err != nil {
			return nil, eris.Wrap(err, "history: scan selection")
		}
		sel.Title = title.String
		out = append(out, sel)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "history: iterate selections")
	}
	return out, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
