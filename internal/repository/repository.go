package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository persists raw ephemeris answers so restarts do not refetch them.
// It implements ephemeris.Store.
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the sample table when missing
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE SCHEMA IF NOT EXISTS kundli;
		CREATE TABLE IF NOT EXISTS kundli.ephemeris_samples (
			cache_key  TEXT PRIMARY KEY,
			payload    JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create ephemeris schema: %w", err)
	}
	return nil
}

// GetSample retrieves a cached provider answer by key
func (r *Repository) GetSample(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	query := `
		SELECT payload
		FROM kundli.ephemeris_samples
		WHERE cache_key = $1`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to find ephemeris sample: %w", err)
	}
	return payload, true, nil
}

// PutSample stores a provider answer. Answers for a key never change, so an
// existing row is kept.
func (r *Repository) PutSample(ctx context.Context, key string, payload []byte) error {
	query := `
		INSERT INTO kundli.ephemeris_samples (cache_key, payload, created_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (cache_key) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, key, string(payload)); err != nil {
		return fmt.Errorf("failed to store ephemeris sample: %w", err)
	}
	return nil
}

// Ping checks the database connection
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
