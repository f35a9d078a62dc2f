// Package router decodes raw gateway events and routes parsed
// observations to the store writers.
//
// The router:
//   - Decodes the gateway event envelope
//   - Drops non-message events and empty broadcasts
//   - Strips markdown markers before parsing
//   - Routes sale notices and floor updates into growable buffers
package router
