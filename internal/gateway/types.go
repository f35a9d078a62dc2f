package gateway

import (
	"errors"
	"time"
)

// Errors
var (
	ErrNotConnected    = errors.New("not connected")
	ErrStaleConnection = errors.New("connection stale (no ping)")
	ErrAlreadyClosed   = errors.New("already closed")
)

// RawEvent wraps raw event data with a receive timestamp.
type RawEvent struct {
	Data       []byte    // Raw event bytes from WebSocket
	ReceivedAt time.Time // Local timestamp when ReadMessage() returned
}

// Command is a WebSocket command to send to the gateway.
type Command struct {
	Cmd      string   `json:"cmd"`
	Channels []string `json:"channels,omitempty"`
}

// ClientConfig holds settings for a single WebSocket client.
type ClientConfig struct {
	URL          string
	PingTimeout  time.Duration // stale if no ping/pong within this window
	WriteTimeout time.Duration
	BufferSize   int // event channel capacity
}
