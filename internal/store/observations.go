package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/prezix/telegram-gifts-parser/internal/model"
)

// InsertPriceObservation inserts one price observation, creating the item row
// first if absent. Both writes happen in one transaction. Returns
// (false, nil) when an observation with the same (item, date) key already
// exists; callers should treat that as success.
func (s *Store) InsertPriceObservation(ctx context.Context, obs model.PriceObservation) (bool, error) {
	name := strings.TrimSpace(obs.ItemName)
	if name == "" {
		return false, ErrBlankName
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO items (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
		name,
	); err != nil {
		return false, fmt.Errorf("upsert item %q: %w", name, err)
	}

	floor := splitQuad(obs.Floor)
	avg := splitQuad(obs.Average)

	ct, err := tx.Exec(ctx,
		`INSERT INTO price_observations (
			item_name, date, delta_ton,
			floor_ton, floor_usd, floor_star, floor_rub,
			average_ton, average_usd, average_star, average_rub
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (item_name, date) DO NOTHING`,
		name, obs.Date, obs.DeltaTON,
		floor[0], floor[1], floor[2], floor[3],
		avg[0], avg[1], avg[2], avg[3],
	)
	if err != nil {
		return false, fmt.Errorf("insert price observation %q@%s: %w",
			name, model.FormatDate(obs.Date), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}

	return ct.RowsAffected() > 0, nil
}

// InsertSaleObservation inserts one sale, creating the item row first if
// absent. Returns (false, nil) when the message id is already recorded.
func (s *Store) InsertSaleObservation(ctx context.Context, obs model.SaleObservation) (bool, error) {
	name := strings.TrimSpace(obs.ItemName)
	if name == "" {
		return false, ErrBlankName
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Sales carry the minted serial ("Item #1234"); register the bare item
	// name so the relational row matches the floor stream's naming.
	if _, err := tx.Exec(ctx,
		`INSERT INTO items (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
		baseItemName(name),
	); err != nil {
		return false, fmt.Errorf("upsert item %q: %w", name, err)
	}

	ct, err := tx.Exec(ctx,
		`INSERT INTO sale_observations (message_id, item_name, price_ton, date)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (message_id) DO NOTHING`,
		obs.MessageID, name, obs.PriceTON, obs.Date,
	)
	if err != nil {
		return false, fmt.Errorf("insert sale observation %d: %w", obs.MessageID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}

	return ct.RowsAffected() > 0, nil
}

// splitQuad expands an optional price section into four nullable columns.
func splitQuad(q *model.QuotedPrice) [4]*float64 {
	if q == nil {
		return [4]*float64{}
	}
	return [4]*float64{&q.TON, &q.USD, &q.Star, &q.RUB}
}

// baseItemName strips a minted-serial suffix: "Magic Potion #42" -> "Magic Potion".
func baseItemName(name string) string {
	if i := strings.Index(name, " #"); i > 0 {
		return name[:i]
	}
	return name
}
