// Package db archives completed runs so delivered briefs can be
// browsed later. The acquisition layer itself never reads this store.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/user/aibrief/internal/content"
)

type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_date TIMESTAMP NOT NULL,
		title TEXT NOT NULL,
		markdown TEXT NOT NULL,
		items INTEGER DEFAULT 0,
		diagnostics TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_run_date ON runs(run_date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Run is one archived pipeline run.
type Run struct {
	ID          int64                     `json:"id"`
	Date        time.Time                 `json:"run_date"`
	Title       string                    `json:"title"`
	Markdown    string                    `json:"markdown"`
	Items       int                       `json:"items"`
	Diagnostics []content.DiagnosticEntry `json:"diagnostics,omitempty"`
}

func (s *Store) SaveRun(r *Run) error {
	diags, err := json.Marshal(r.Diagnostics)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(
		`INSERT INTO runs (run_date, title, markdown, items, diagnostics) VALUES (?, ?, ?, ?, ?)`,
		r.Date.UTC(), r.Title, r.Markdown, r.Items, string(diags),
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	r.ID, _ = res.LastInsertId()
	return nil
}

// ListRuns returns archived runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, run_date, title, markdown, items, diagnostics FROM runs ORDER BY run_date DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *Store) GetRun(id int64) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, run_date, title, markdown, items, diagnostics FROM runs WHERE id = ?`, id,
	)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var diags sql.NullString
	if err := row.Scan(&r.ID, &r.Date, &r.Title, &r.Markdown, &r.Items, &diags); err != nil {
		return Run{}, err
	}
	if diags.Valid && diags.String != "" {
		_ = json.Unmarshal([]byte(diags.String), &r.Diagnostics)
	}
	return r, nil
}
