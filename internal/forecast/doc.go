// Package forecast produces one-step-ahead TON price forecasts for an item.
//
// The input series merges floor-price observations with realized sale prices.
// Three predictors are fitted independently:
//   - a RANSAC-style robust line fit, resistant to outlier spikes
//   - a weighted least-squares line fit biased toward recent points
//   - damped additive exponential smoothing on the raw series
//
// Recency weights follow exp(-alpha * age_in_days). Negative predictions are
// clamped to zero and the final forecast is the arithmetic mean of the three.
// The blend is deterministic: the same series always yields the same result.
package forecast
