package database

import (
	"context"
	"fmt"

	"github.com/yourusername/futurologia/internal/config"
)

const analysesSchema = `
CREATE TABLE IF NOT EXISTS analyses (
	id            UUID PRIMARY KEY,
	league        TEXT NOT NULL,
	home_team     TEXT NOT NULL,
	away_team     TEXT NOT NULL,
	home_win_prob INTEGER NOT NULL,
	draw_prob     INTEGER NOT NULL,
	away_win_prob INTEGER NOT NULL,
	winner        TEXT NOT NULL,
	confidence    INTEGER NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS analyses_created_at_idx ON analyses (created_at DESC);
`

// Initialize creates the connection pool and makes sure the history table exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the analyses table and its index when missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, analysesSchema); err != nil {
		return fmt.Errorf("failed to create analyses schema: %w", err)
	}
	return nil
}
