package results

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

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS answers (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id     TEXT    NOT NULL,
	day        INTEGER NOT NULL,
	part       INTEGER NOT NULL,
	answer     INTEGER NOT NULL,
	error      TEXT    NOT NULL DEFAULT '',
	elapsed_ns INTEGER NOT NULL,
	input_hash TEXT    NOT NULL,
	solved_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_answers_day ON answers(day, solved_at);
`

// SQLite records answers in a local database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path. ":memory:" keeps it in memory.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Record(ctx context.Context, records ...Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO answers
		(run_id, day, part, answer, error, elapsed_ns, input_hash, solved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.RunID.String(), r.Day, r.Part, r.Answer, r.Error,
			int64(r.Elapsed), r.InputHash, r.SolvedAt.UnixNano(),
		); err != nil {
			return fmt.Errorf("insert day %d part %d: %w", r.Day, r.Part, err)
		}
	}
	return tx.Commit()
}

func (s *SQLite) History(ctx context.Context, day, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT run_id, day, part, answer, error, elapsed_ns, input_hash, solved_at
		FROM answers
		WHERE ? = 0 OR day = ?
		ORDER BY solved_at DESC, id DESC
		LIMIT ?`, day, day, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r        Record
			runID    string
			elapsed  int64
			solvedAt int64
		)
		if err := rows.Scan(&runID, &r.Day, &r.Part, &r.Answer, &r.Error, &elapsed, &r.InputHash, &solvedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if r.RunID, err = uuid.Parse(runID); err != nil {
			return nil, fmt.Errorf("bad run id %q: %w", runID, err)
		}
		r.Elapsed = time.Duration(elapsed)
		r.SolvedAt = time.Unix(0, solvedAt).UTC()
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
