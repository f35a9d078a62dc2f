// Package gateway implements the broadcast gateway listener.
//
// The listener:
//   - Maintains a single WebSocket connection to the broadcast gateway
//   - Subscribes to the sale and floor channels
//   - Handles reconnection with exponential backoff
//   - Forwards raw events to the message router
package gateway
