package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prezix/telegram-gifts-parser/internal/config"
)

// Listener supervises the gateway connection and its subscriptions.
type Listener interface {
	// Start connects to the gateway and begins forwarding events.
	Start(ctx context.Context) error

	// Stop gracefully shuts the connection down.
	Stop(ctx context.Context) error

	// Events returns the channel of raw events for the message router.
	Events() <-chan RawEvent

	// Stats returns current listener statistics.
	Stats() ListenerStats
}

// ListenerStats provides statistics about the listener.
type ListenerStats struct {
	Connected  bool
	Reconnects int64
	Events     int64
}

// listener implements the Listener interface.
type listener struct {
	cfg    config.GatewayConfig
	logger *slog.Logger

	out chan RawEvent

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	client     Client
	reconnects int64
	events     int64
}

// NewListener creates a gateway listener.
func NewListener(cfg config.GatewayConfig, logger *slog.Logger) Listener {
	if logger == nil {
		logger = slog.Default()
	}

	return &listener{
		cfg:    cfg,
		logger: logger,
		out:    make(chan RawEvent, cfg.BufferSize),
	}
}

// Start connects and begins the supervision loop.
func (l *listener) Start(ctx context.Context) error {
	l.ctx, l.cancel = context.WithCancel(ctx)

	client, err := l.dial()
	if err != nil {
		return fmt.Errorf("connect gateway: %w", err)
	}

	l.mu.Lock()
	l.client = client
	l.mu.Unlock()

	l.wg.Add(1)
	go l.supervise(client)

	l.logger.Info("gateway listener started",
		"url", l.cfg.WSURL,
		"channels", []string{l.cfg.SaleChannel, l.cfg.FloorChannel},
	)

	return nil
}

// Stop gracefully shuts down.
func (l *listener) Stop(ctx context.Context) error {
	if l.cancel != nil {
		l.cancel()
	}

	l.mu.Lock()
	if l.client != nil {
		l.client.Close()
	}
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		l.logger.Warn("shutdown timeout, forcing close")
	}

	close(l.out)
	l.logger.Info("gateway listener stopped")
	return nil
}

// Events returns the output channel for the message router.
func (l *listener) Events() <-chan RawEvent {
	return l.out
}

// Stats returns current statistics.
func (l *listener) Stats() ListenerStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := ListenerStats{
		Reconnects: l.reconnects,
		Events:     l.events,
	}
	if l.client != nil {
		stats.Connected = l.client.IsConnected()
	}
	return stats
}

// dial establishes a connection and subscribes to both channels.
func (l *listener) dial() (Client, error) {
	client := NewClient(ClientConfig{
		URL:          l.cfg.WSURL,
		PingTimeout:  l.cfg.PingTimeout,
		WriteTimeout: 5 * time.Second,
		BufferSize:   l.cfg.BufferSize,
	}, l.logger)

	if err := client.Connect(l.ctx); err != nil {
		return nil, err
	}

	cmd := Command{
		Cmd:      "subscribe",
		Channels: []string{l.cfg.SaleChannel, l.cfg.FloorChannel},
	}
	data, err := json.Marshal(cmd)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("marshal subscribe: %w", err)
	}
	if err := client.Send(data); err != nil {
		client.Close()
		return nil, fmt.Errorf("send subscribe: %w", err)
	}

	return client, nil
}

// supervise forwards events and triggers reconnection on errors.
func (l *listener) supervise(client Client) {
	defer l.wg.Done()

	for {
		select {
		case <-l.ctx.Done():
			return

		case err := <-client.Errors():
			l.logger.Warn("gateway connection error", "error", err)
			client.Close()

			client = l.reconnect()
			if client == nil {
				return
			}

		case ev, ok := <-client.Events():
			if !ok {
				// Read loop exited without an error signal; treat as lost.
				client = l.reconnect()
				if client == nil {
					return
				}
				continue
			}

			l.mu.Lock()
			l.events++
			l.mu.Unlock()

			select {
			case l.out <- ev:
			case <-l.ctx.Done():
				return
			default:
				l.logger.Warn("router buffer full, dropping event")
			}
		}
	}
}

// reconnect retries with exponential backoff until connected or canceled.
func (l *listener) reconnect() Client {
	wait := l.cfg.ReconnectBaseDelay
	maxWait := l.cfg.ReconnectMaxDelay

	for {
		select {
		case <-l.ctx.Done():
			return nil
		case <-time.After(wait):
		}

		l.logger.Info("attempting reconnection", "url", l.cfg.WSURL)

		client, err := l.dial()
		if err != nil {
			l.logger.Warn("reconnection failed", "error", err)

			wait *= 2
			if wait > maxWait {
				wait = maxWait
			}
			continue
		}

		l.mu.Lock()
		l.client = client
		l.reconnects++
		l.mu.Unlock()

		l.logger.Info("reconnected", "url", l.cfg.WSURL)
		return client
	}
}
