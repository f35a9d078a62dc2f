// Package store implements the gift ingestion store on PostgreSQL.
//
// Three collections: items (relational), price_observations and
// sale_observations (time-series). All inserts are idempotent by natural key
// via ON CONFLICT DO NOTHING:
//   - items: name
//   - price_observations: (item_name, date)
//   - sale_observations: message_id
//
// A duplicate key is a benign no-op, reported to the caller as inserted=false
// with a nil error. Every observation insert upserts the referenced item
// first inside the same transaction, so dependent rows never fail for a
// missing parent.
package store
