// Package model defines shared data types used across the gift data platform.
//
// All types mirror the database schema: items (relational), price_observations
// and sale_observations (time-series).
//
// Conventions:
//   - Prices: float64 in the denomination named by the field (TON primary)
//   - Timestamps: time.Time, wire format "YYYY.MM.DD - HH:MM:SS"
//   - Nullable attributes: pointers, nil = never observed
package model
