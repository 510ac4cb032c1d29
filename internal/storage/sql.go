package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQL persists keys in a single kv table, created on Init. The statements run
// unchanged on Postgres (pgx) and SQLite (modernc): both accept $1
// placeholders and ON CONFLICT upserts.
type SQL struct {
	db *sql.DB
}

// NewSQL sets up a SQL store using the provided database handle.
func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

// Init creates the kv table if it does not exist.
func (s *SQL) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value
		FROM kv
		WHERE key = $1
	`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select value: %w", err)
	}
	return []byte(value), nil
}

func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, version)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, version = EXCLUDED.version
	`, key, string(value), SchemaVersion)
	if err != nil {
		return fmt.Errorf("upsert value: %w", err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM kv
		WHERE key = $1
	`, key)
	if err != nil {
		return fmt.Errorf("delete value: %w", err)
	}
	return nil
}
