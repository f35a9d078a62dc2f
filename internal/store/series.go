package store

import (
	"context"
	"fmt"

	"github.com/prezix/telegram-gifts-parser/internal/model"
)

// PriceSeries returns all price observations for an item ordered by
// ascending date.
func (s *Store) PriceSeries(ctx context.Context, name string) ([]model.PriceObservation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT item_name, date, delta_ton,
			floor_ton, floor_usd, floor_star, floor_rub,
			average_ton, average_usd, average_star, average_rub
		 FROM price_observations
		 WHERE item_name = $1
		 ORDER BY date ASC`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("price series for %q: %w", name, err)
	}
	defer rows.Close()

	var series []model.PriceObservation
	for rows.Next() {
		var (
			obs   model.PriceObservation
			floor [4]*float64
			avg   [4]*float64
		)
		if err := rows.Scan(
			&obs.ItemName, &obs.Date, &obs.DeltaTON,
			&floor[0], &floor[1], &floor[2], &floor[3],
			&avg[0], &avg[1], &avg[2], &avg[3],
		); err != nil {
			return nil, fmt.Errorf("scan price observation: %w", err)
		}
		obs.Floor = joinQuad(floor)
		obs.Average = joinQuad(avg)
		series = append(series, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("price series for %q: %w", name, err)
	}
	return series, nil
}

// SaleSeries returns all sales whose item name is the given name or has it
// as a prefix (sales carry the minted serial, e.g. "Item #1234"), ordered by
// ascending date.
func (s *Store) SaleSeries(ctx context.Context, name string) ([]model.SaleObservation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT message_id, item_name, price_ton, date
		 FROM sale_observations
		 WHERE item_name LIKE $1 || '%'
		 ORDER BY date ASC`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("sale series for %q: %w", name, err)
	}
	defer rows.Close()

	var series []model.SaleObservation
	for rows.Next() {
		var obs model.SaleObservation
		if err := rows.Scan(&obs.MessageID, &obs.ItemName, &obs.PriceTON, &obs.Date); err != nil {
			return nil, fmt.Errorf("scan sale observation: %w", err)
		}
		series = append(series, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sale series for %q: %w", name, err)
	}
	return series, nil
}

// joinQuad rebuilds an optional price section from its nullable columns.
// Sections are written all-or-nothing, so the TON column decides presence.
func joinQuad(cols [4]*float64) *model.QuotedPrice {
	if cols[0] == nil {
		return nil
	}
	q := &model.QuotedPrice{TON: *cols[0]}
	if cols[1] != nil {
		q.USD = *cols[1]
	}
	if cols[2] != nil {
		q.Star = *cols[2]
	}
	if cols[3] != nil {
		q.RUB = *cols[3]
	}
	return q
}
