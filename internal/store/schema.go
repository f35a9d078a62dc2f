package store

import (
	"context"
	"fmt"
)

// Schema statements, applied in order. Uniqueness constraints carry the
// natural keys the idempotent inserts rely on.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS items (
		name           TEXT PRIMARY KEY,
		total_count    BIGINT,
		base_star_cost DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS price_observations (
		item_name    TEXT NOT NULL,
		date         TIMESTAMPTZ NOT NULL,
		delta_ton    DOUBLE PRECISION NOT NULL,
		floor_ton    DOUBLE PRECISION,
		floor_usd    DOUBLE PRECISION,
		floor_star   DOUBLE PRECISION,
		floor_rub    DOUBLE PRECISION,
		average_ton  DOUBLE PRECISION,
		average_usd  DOUBLE PRECISION,
		average_star DOUBLE PRECISION,
		average_rub  DOUBLE PRECISION,
		PRIMARY KEY (item_name, date)
	)`,
	`CREATE TABLE IF NOT EXISTS sale_observations (
		message_id BIGINT PRIMARY KEY,
		item_name  TEXT NOT NULL,
		price_ton  DOUBLE PRECISION NOT NULL,
		date       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_observations_item_date
		ON sale_observations (item_name, date)`,
}

// EnsureSchema creates the tables and indexes if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
