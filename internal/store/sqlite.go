package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure-Go sqlite driver
)

// settingsRowID pins the table to a single active record.
const settingsRowID = 1

// SQLite persists the settings record as a JSON blob in a single-row
// table in a local database file. The in-process mutex serializes
// read-modify-write sequences; sqlite itself guards against other
// processes.
type SQLite struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLite opens (creating if needed) the settings database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// A single writer keeps the serialization story simple.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			record     TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create settings table: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Load(ctx context.Context) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *SQLite) Save(ctx context.Context, settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, settings)
}

func (s *SQLite) Update(ctx context.Context, fn func(*Settings) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	if err := fn(&settings); err != nil {
		return err
	}
	return s.saveLocked(ctx, settings)
}

func (s *SQLite) loadLocked(ctx context.Context) (Settings, error) {
	var record string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM settings WHERE id = ?`, settingsRowID,
	).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		settings := DefaultSettings()
		if saveErr := s.saveLocked(ctx, settings); saveErr != nil {
			return Settings{}, saveErr
		}
		return settings, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal([]byte(record), &settings); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings record: %w", err)
	}
	settings.Preferences.Normalize()
	return settings, nil
}

func (s *SQLite) saveLocked(ctx context.Context, settings Settings) error {
	settings.UpdatedAt = time.Now().UTC()
	record, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (id, record, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at
	`, settingsRowID, string(record), settings.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
