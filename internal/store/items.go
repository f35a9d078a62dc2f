package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/prezix/telegram-gifts-parser/internal/model"
)

// UpsertItem creates the item if absent; a no-op otherwise. A blank or
// whitespace-only name is rejected without touching the database.
func (s *Store) UpsertItem(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBlankName
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO items (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
		name,
	)
	if err != nil {
		return fmt.Errorf("upsert item %q: %w", name, err)
	}
	return nil
}

// GetItem returns one item by name, or ErrNotFound.
func (s *Store) GetItem(ctx context.Context, name string) (model.Item, error) {
	var item model.Item
	err := s.pool.QueryRow(ctx,
		`SELECT name, total_count, base_star_cost FROM items WHERE name = $1`,
		name,
	).Scan(&item.Name, &item.TotalCount, &item.BaseStarCost)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Item{}, ErrNotFound
	}
	if err != nil {
		return model.Item{}, fmt.Errorf("get item %q: %w", name, err)
	}
	return item, nil
}

// ListItems returns all item names in alphabetical order.
func (s *Store) ListItems(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT name FROM items ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan item name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return names, nil
}

// DeltaStats summarizes the signed floor-price changes recorded for an item.
type DeltaStats struct {
	Count     int64
	MeanDelta float64
}

// Trend classifies the mean delta direction.
func (d DeltaStats) Trend() string {
	switch {
	case d.MeanDelta > 0:
		return "rising"
	case d.MeanDelta < 0:
		return "falling"
	default:
		return "stable"
	}
}

// ItemDeltaStats computes delta statistics over an item's price observations.
func (s *Store) ItemDeltaStats(ctx context.Context, name string) (DeltaStats, error) {
	var stats DeltaStats
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(delta_ton), 0)
		 FROM price_observations WHERE item_name = $1`,
		name,
	).Scan(&stats.Count, &stats.MeanDelta)
	if err != nil {
		return DeltaStats{}, fmt.Errorf("delta stats for %q: %w", name, err)
	}
	return stats, nil
}
