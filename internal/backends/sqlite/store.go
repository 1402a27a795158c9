// Package sqlite keeps the cache and device settings in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"islandtracker/internal/types"

	_ "modernc.org/sqlite"
)

const (
	settingHasRegistered = "has_registered"

	schema = `
CREATE TABLE IF NOT EXISTS cache_entries (
  cache_key  TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  compressed INTEGER NOT NULL DEFAULT 0,
  expires_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
  name  TEXT PRIMARY KEY,
  value TEXT NOT NULL
);`
)

// Store persists cache entries and settings in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (or creates) the database file and ensures the schema exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// one writer at a time; the cache store serializes access anyway
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Load(ctx context.Context, key string) (*types.CacheEntry, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT value, compressed, expires_at FROM cache_entries WHERE cache_key = ?`, key)
	var (
		value      []byte
		compressed int
		expiresAt  int64
	)
	if err := row.Scan(&value, &compressed, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return &types.CacheEntry{
		Key:        key,
		Value:      value,
		Compressed: compressed != 0,
		ExpiresAt:  fromMillis(expiresAt),
	}, nil
}

func (s *Store) Save(ctx context.Context, entry types.CacheEntry) error {
	compressed := 0
	if entry.Compressed {
		compressed = 1
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO cache_entries (cache_key, value, compressed, expires_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
		   value = excluded.value,
		   compressed = excluded.compressed,
		   expires_at = excluded.expires_at`,
		entry.Key, entry.Value, compressed, toMillis(entry.ExpiresAt))
	if err != nil {
		return fmt.Errorf("save %s: %w", entry.Key, err)
	}
	return nil
}

func (s *Store) ClearAll(ctx context.Context) error {
	_, err := s.sqlDB.ExecContext(ctx, `DELETE FROM cache_entries`)
	return err
}

func (s *Store) HasRegistered(ctx context.Context) (bool, error) {
	var v string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE name = ?`, settingHasRegistered).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("read settings: %w", err)
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", settingHasRegistered, err)
	}
	return b, nil
}

func (s *Store) SetRegistered(ctx context.Context) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO settings (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		settingHasRegistered, strconv.FormatBool(true))
	return err
}
