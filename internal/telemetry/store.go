// Package telemetry records accepted suggestions in a local SQLite ledger so
// `comet stats` can report how the tool is being used: how often AI drafts
// win over rule-based fallbacks, which commit types dominate, and how often
// splits are taken.
package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS suggestions (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    source      TEXT NOT NULL,
    type        TEXT NOT NULL,
    scope       TEXT NOT NULL DEFAULT '',
    subject_len INTEGER NOT NULL DEFAULT 0,
    files       INTEGER NOT NULL DEFAULT 0,
    split       INTEGER NOT NULL DEFAULT 0,
    accepted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Suggestion is one accepted candidate.
type Suggestion struct {
	// Source is the generator that produced the accepted candidate:
	// "claude" or "rules".
	Source     string
	Type       string
	Scope      string
	SubjectLen int
	Files      int
	Split      bool
	AcceptedAt time.Time
}

// Summary aggregates the ledger for display.
type Summary struct {
	Total    int
	BySource map[string]int
	ByType   map[string]int
	Splits   int
}

// Store is a SQLite-backed suggestion ledger.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the ledger at dbPath, enables WAL mode and a busy
// timeout, and creates the schema if needed. Parent directories are created
// as needed.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("telemetry: create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open database: %w", err)
	}

	// One connection: SQLite has a single writer, and a lone pooled
	// connection keeps PRAGMA state consistent.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("telemetry: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("telemetry: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("telemetry: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record appends one accepted suggestion to the ledger.
func (s *Store) Record(ctx context.Context, rec Suggestion) error {
	if rec.AcceptedAt.IsZero() {
		rec.AcceptedAt = time.Now()
	}
	const q = `
		INSERT INTO suggestions (source, type, scope, subject_len, files, split, accepted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		rec.Source, rec.Type, rec.Scope, rec.SubjectLen, rec.Files, boolToInt(rec.Split), rec.AcceptedAt)
	if err != nil {
		return fmt.Errorf("telemetry: record suggestion: %w", err)
	}
	return nil
}

// Summarize aggregates the whole ledger.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	sum := Summary{
		BySource: map[string]int{},
		ByType:   map[string]int{},
	}

	rows, err := s.db.QueryContext(ctx, `SELECT source, type, split FROM suggestions`)
	if err != nil {
		return Summary{}, fmt.Errorf("telemetry: query suggestions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source, typ string
		var split int
		if err := rows.Scan(&source, &typ, &split); err != nil {
			return Summary{}, fmt.Errorf("telemetry: scan row: %w", err)
		}
		sum.Total++
		sum.BySource[source]++
		sum.ByType[typ]++
		if split != 0 {
			sum.Splits++
		}
	}
	if err := rows.Err(); err != nil {
		return Summary{}, fmt.Errorf("telemetry: iterate rows: %w", err)
	}
	return sum, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
