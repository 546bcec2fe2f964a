// Package savestore keeps one saved game per user in a SQLite database.
package savestore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

// ErrNotFound is returned when a user has no save.
var ErrNotFound = errors.New("save not found")

//go:embed schema.sql
var schema string

// Slot describes a stored save without its data.
type Slot struct {
	User      string
	Level     string
	Turns     int
	UpdatedAt time.Time
}

// Store is a SQLite-backed save store.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens the store at path, creating the schema if needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Put stores data as the save of user, replacing any previous one.
func (s *Store) Put(ctx context.Context, slot Slot, data []byte) error {
	if strings.TrimSpace(slot.User) == "" {
		return fmt.Errorf("user is required")
	}
	if slot.UpdatedAt.IsZero() {
		slot.UpdatedAt = s.now().UTC()
	}
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO saves (user_name, level, turns, data, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_name) DO UPDATE SET
			level = excluded.level,
			turns = excluded.turns,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		slot.User, slot.Level, slot.Turns, data, slot.UpdatedAt.Format(timeFormat))
	if err != nil {
		return fmt.Errorf("put save %s: %w", slot.User, err)
	}
	return nil
}

// Get returns the save data of user.
func (s *Store) Get(ctx context.Context, user string) ([]byte, error) {
	var data []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT data FROM saves WHERE user_name = ?`, user).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get save %s: %w", user, err)
	}
	return data, nil
}

// Delete removes the save of user. Deleting a missing save is not an error.
func (s *Store) Delete(ctx context.Context, user string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM saves WHERE user_name = ?`, user); err != nil {
		return fmt.Errorf("delete save %s: %w", user, err)
	}
	return nil
}

// List returns every slot, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Slot, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT user_name, level, turns, updated_at FROM saves ORDER BY updated_at DESC, user_name`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		var (
			slot    Slot
			updated string
		)
		if err := rows.Scan(&slot.User, &slot.Level, &slot.Turns, &updated); err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		if slot.UpdatedAt, err = time.Parse(timeFormat, updated); err != nil {
			return nil, fmt.Errorf("parse updated_at: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}
