package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/claude/liftrank/internal/ingest"
	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/session"
)

// LocalUserID is the user every local record belongs to.
const LocalUserID = 1

// ErrNotFound is returned when a lookup by ID matches nothing.
var ErrNotFound = errors.New("not found")

var schema = []string{
	`CREATE TABLE IF NOT EXISTS profile (
		id               INTEGER PRIMARY KEY CHECK (id = 1),
		display_name     TEXT NOT NULL DEFAULT '',
		body_weight      REAL NOT NULL,
		body_weight_unit TEXT NOT NULL,
		gender           TEXT NOT NULL,
		age              INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS workout_templates (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		primary_muscles TEXT NOT NULL,
		exercises       TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_progress (
		workout_id         TEXT PRIMARY KEY,
		personal_record    REAL NOT NULL,
		percentile_ranking REAL NOT NULL,
		strength_level     TEXT NOT NULL,
		featured           INTEGER NOT NULL DEFAULT 0,
		last_updated       TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS workouts (
		id               TEXT PRIMARY KEY,
		template_id      TEXT NOT NULL,
		title            TEXT NOT NULL,
		start_time       TEXT NOT NULL,
		end_time         TEXT NOT NULL,
		duration_sec     REAL NOT NULL,
		total_sets       INTEGER NOT NULL,
		total_volume     REAL NOT NULL,
		unit             TEXT NOT NULL,
		progress_updates INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS workout_sets (
		workout_id      TEXT NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
		exercise_number INTEGER NOT NULL,
		exercise_id     TEXT NOT NULL,
		exercise_name   TEXT NOT NULL,
		target_sets     INTEGER NOT NULL,
		target_reps     TEXT NOT NULL,
		set_number      INTEGER NOT NULL,
		weight          REAL NOT NULL,
		unit            TEXT NOT NULL,
		reps            INTEGER NOT NULL,
		completed       INTEGER NOT NULL,
		PRIMARY KEY (workout_id, exercise_number, set_number)
	)`,
	`CREATE TABLE IF NOT EXISTS active_session (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		state      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}

// Store is a single-user SQLite database for the offline CLI. It serves
// as the session's catalog and progress store and keeps the in-progress
// session so it can be resumed.
type Store struct {
	db *sql.DB
}

var (
	_ session.Catalog       = (*Store)(nil)
	_ session.ProgressStore = (*Store)(nil)
	_ ingest.Sink           = (*Store)(nil)
)

// Open opens (or creates) the database at dir/liftrank.db and seeds the
// built-in workout templates.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "liftrank.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening local db: %w", err)
	}
	// One connection keeps writes serialized.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating local schema: %w", err)
		}
	}

	s := &Store{db: db}
	for _, t := range models.DefaultTemplates() {
		if err := s.insertTemplate(context.Background(), t, false); err != nil {
			db.Close()
			return nil, fmt.Errorf("seeding templates: %w", err)
		}
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// SaveActive stores the in-progress session, replacing any previous one.
func (s *Store) SaveActive(ctx context.Context, st session.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO active_session (id, state, updated_at) VALUES (1, ?, ?)`,
		string(data), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("saving active session: %w", err)
	}
	return nil
}

// LoadActive returns the stored in-progress session, or nil if there is none.
func (s *Store) LoadActive(ctx context.Context) (*session.State, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM active_session WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading active session: %w", err)
	}
	var st session.State
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return nil, fmt.Errorf("decoding active session: %w", err)
	}
	return &st, nil
}

// ClearActive removes the stored in-progress session.
func (s *Store) ClearActive(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM active_session`); err != nil {
		return fmt.Errorf("clearing active session: %w", err)
	}
	return nil
}
