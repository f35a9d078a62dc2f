// Package api exposes the analyzer's HTTP JSON endpoints: item listing,
// item detail with delta trend, blended forecasts, and descriptive
// analysis. Failures surface as JSON error payloads, never stack traces.
package api
