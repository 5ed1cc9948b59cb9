// Package store persists the history of fixture verification runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"javafixtures/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Run is one recorded verification of a program.
type Run struct {
	ID         string
	Program    string
	Start      int
	End        int
	Mode       string
	Status     string
	Digest     string // hex SHA-256 of the produced output
	Detail     string
	Duration   time.Duration
	RecordedAt time.Time
}

// HistoryStore manages the run history database.
type HistoryStore struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// Open creates or opens the history database at path.
func Open(path string) (*HistoryStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps :memory: databases coherent.
	db.SetMaxOpenConns(1)

	s := &HistoryStore{db: db, dbPath: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Get(logging.CategoryStore).Debug("history store opened", zap.String("path", path))
	return s, nil
}

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *HistoryStore) Path() string {
	return s.dbPath
}

func (s *HistoryStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		program TEXT NOT NULL,
		range_start INTEGER NOT NULL,
		range_end INTEGER NOT NULL,
		mode TEXT NOT NULL,
		status TEXT NOT NULL,
		digest TEXT NOT NULL,
		detail TEXT,
		duration_us INTEGER NOT NULL,
		recorded_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_program ON runs(program);
	CREATE INDEX IF NOT EXISTS idx_runs_recorded ON runs(recorded_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordRun inserts r, filling in ID and RecordedAt when empty. It returns
// the stored run.
func (s *HistoryStore) RecordRun(ctx context.Context, r Run) (Run, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, program, range_start, range_end, mode, status, digest, detail, duration_us, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Program, r.Start, r.End, r.Mode, r.Status, r.Digest, r.Detail,
		r.Duration.Microseconds(), r.RecordedAt.UnixNano(),
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to record run: %w", err)
	}

	logging.Get(logging.CategoryStore).Debug("run recorded",
		zap.String("id", r.ID),
		zap.String("program", r.Program),
		zap.String("status", r.Status),
	)
	return r, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *HistoryStore) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	return s.query(ctx, `SELECT id, program, range_start, range_end, mode, status, digest, detail, duration_us, recorded_at
		FROM runs ORDER BY recorded_at DESC, rowid DESC LIMIT ?`, limit)
}

// RunsForProgram returns up to limit runs of one program, newest first.
func (s *HistoryStore) RunsForProgram(ctx context.Context, program string, limit int) ([]Run, error) {
	return s.query(ctx, `SELECT id, program, range_start, range_end, mode, status, digest, detail, duration_us, recorded_at
		FROM runs WHERE program = ? COLLATE NOCASE ORDER BY recorded_at DESC, rowid DESC LIMIT ?`, program, limit)
}

func (s *HistoryStore) query(ctx context.Context, q string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			detail     sql.NullString
			durationUS int64
			recordedNS int64
		)
		if err := rows.Scan(&r.ID, &r.Program, &r.Start, &r.End, &r.Mode, &r.Status, &r.Digest, &detail, &durationUS, &recordedNS); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Detail = detail.String
		r.Duration = time.Duration(durationUS) * time.Microsecond
		r.RecordedAt = time.Unix(0, recordedNS)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
