// Package writer implements the store writers.
//
// Writers:
//   - Sale writer (sale_observations)
//   - Price writer (price_observations)
//
// Both writers use insert-or-ignore semantics: a replayed broadcast never
// updates an existing row, it only bumps the duplicate counter.
package writer
