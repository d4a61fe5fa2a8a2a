package trace

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store provides durable storage for recorded traces.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
}

// RunInfo describes one persisted run.
type RunInfo struct {
	Token     string `json:"run_token"`
	Scenario  string `json:"scenario,omitempty"`
	CreatedAt string `json:"created_at"`
	Events    int    `json:"events"`
}

// Open creates or opens a SQLite trace database at the given path.
// Applies required pragmas and the schema automatically; safe to call
// on an existing database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time; a single connection
	// avoids SQLITE_BUSY errors.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
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

// WriteRun persists a run and its events in a single transaction.
// Writing the same run token twice is an error; run tokens are unique
// per engine construction.
func (s *Store) WriteRun(ctx context.Context, token, scenario string, events []Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_token, scenario) VALUES (?, ?)`,
		token, scenario,
	); err != nil {
		return fmt.Errorf("insert run %s: %w", token, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (run_token, seq, op, state, depth) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare event insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.ExecContext(ctx, token, ev.Seq, ev.Op, ev.State, ev.Depth); err != nil {
			return fmt.Errorf("insert event seq %d: %w", ev.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", token, err)
	}
	return nil
}

// ReadRun returns the events of a run in seq order.
// Returns an error if the run token is unknown.
func (s *Store) ReadRun(ctx context.Context, token string) ([]Event, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM runs WHERE run_token = ?`, token,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("lookup run %s: %w", token, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("run not found: %s", token)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, op, state, depth FROM events WHERE run_token = ? ORDER BY seq`,
		token,
	)
	if err != nil {
		return nil, fmt.Errorf("read events for run %s: %w", token, err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.Seq, &ev.Op, &ev.State, &ev.Depth); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// ListRuns returns all persisted runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.run_token, r.scenario, r.created_at, COUNT(e.seq)
		FROM runs r
		LEFT JOIN events e ON e.run_token = r.run_token
		GROUP BY r.run_token
		ORDER BY r.created_at DESC, r.run_token DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var info RunInfo
		if err := rows.Scan(&info.Token, &info.Scenario, &info.CreatedAt, &info.Events); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}
