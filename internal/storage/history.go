package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/klocke7-ford/pesterun/internal/domain"
)

// History records completed runs in an embedded SQLite database so past
// invocations can be inspected without keeping every result file around.
type History struct {
	db *sql.DB
}

const historySchema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at TEXT NOT NULL,
	path TEXT NOT NULL,
	version_used TEXT NOT NULL,
	total_tests INTEGER NOT NULL,
	passed_tests INTEGER NOT NULL,
	failed_tests INTEGER NOT NULL,
	skipped_tests INTEGER NOT NULL,
	duration_seconds REAL NOT NULL,
	result_file TEXT NOT NULL
)`

// OpenHistory opens or creates the history database at the given path.
func OpenHistory(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(context.Background(), historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Close closes the database connection.
func (h *History) Close() error {
	return h.db.Close()
}

// Record inserts a completed run.
func (h *History) Record(ctx context.Context, meta domain.RunMeta, resultFile string) error {
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO runs (started_at, path, version_used, total_tests, passed_tests,
			failed_tests, skipped_tests, duration_seconds, result_file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.Timestamp, meta.Path, meta.VersionUsed, meta.TotalTests, meta.PassedTests,
		meta.FailedTests, meta.SkippedTests, meta.DurationSeconds, resultFile)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (h *History) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, started_at, path, version_used, total_tests, passed_tests,
			failed_tests, skipped_tests, duration_seconds, result_file
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []domain.RunRecord
	for rows.Next() {
		var r domain.RunRecord
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Path, &r.VersionUsed, &r.TotalTests,
			&r.PassedTests, &r.FailedTests, &r.SkippedTests, &r.DurationSeconds, &r.ResultFile); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return records, nil
}

// Clear removes all recorded runs.
func (h *History) Clear(ctx context.Context) error {
	if _, err := h.db.ExecContext(ctx, `DELETE FROM runs`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
