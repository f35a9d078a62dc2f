package model

import "time"

// -----------------------------------------------------------------------------
// Relational Types
// -----------------------------------------------------------------------------

// Item represents a collectible gift type tracked for pricing.
type Item struct {
	Name         string   // Primary key (e.g., "Magic Potion")
	TotalCount   *int64   // Total minted count, nil until observed
	BaseStarCost *float64 // Base cost in stars, nil until observed
}

// QuotedPrice holds one price expressed in the four broadcast denominations.
type QuotedPrice struct {
	TON  float64 // Primary unit, all forecasts are TON-denominated
	USD  float64
	Star float64
	RUB  float64
}

// -----------------------------------------------------------------------------
// Time-Series Types
// -----------------------------------------------------------------------------

// PriceObservation is a floor/average price snapshot for one item at one
// timestamp, sourced from a floor-update broadcast.
//
// Natural key: (ItemName, Date). A second broadcast for the same item at the
// same timestamp is a duplicate.
type PriceObservation struct {
	ItemName string       // Foreign key to Item
	Date     time.Time    // Broadcast timestamp
	DeltaTON float64      // Signed change since previous broadcast, in TON
	Floor    *QuotedPrice // Floor section, nil if the broadcast omitted it
	Average  *QuotedPrice // Average section, nil if the broadcast omitted it
}

// SaleObservation is one completed trade.
//
// Natural key: MessageID (globally unique per source). A redelivered message
// with the same identifier is a duplicate.
type SaleObservation struct {
	MessageID int64     // Primary key, platform-assigned message identifier
	ItemName  string    // Item name, minted serial may be suffixed ("Item #1234")
	PriceTON  float64   // Realized sale price in TON
	Date      time.Time // Broadcast timestamp
}
