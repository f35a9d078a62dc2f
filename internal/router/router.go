package router

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/prezix/telegram-gifts-parser/internal/gateway"
	"github.com/prezix/telegram-gifts-parser/internal/model"
	"github.com/prezix/telegram-gifts-parser/internal/parse"
)

// Config holds configuration for the event router.
type Config struct {
	SaleChannel  string // channel id carrying sale notices
	FloorChannel string // channel id carrying floor updates

	SaleBufferSize  int
	FloorBufferSize int
}

// DefaultConfig returns default buffer sizes.
func DefaultConfig() Config {
	return Config{
		SaleBufferSize:  1000,
		FloorBufferSize: 1000,
	}
}

// Buffers provides access to output buffers for the writers.
type Buffers struct {
	Sales  *GrowableBuffer[model.SaleObservation]
	Floors *GrowableBuffer[model.PriceObservation]
}

// Stats contains runtime statistics.
type Stats struct {
	EventsReceived int64
	EventsRouted   int64
	Dropped        int64 // non-message events, empty or unparseable text
	ParseErrors    int64 // malformed envelopes and bad dates
	SaleBuffer     BufferStats
	FloorBuffer    BufferStats
}

// eventEnvelope is the gateway wire format for a broadcast message.
type eventEnvelope struct {
	Type    string `json:"type"`
	ID      int64  `json:"id"`
	Channel string `json:"channel"`
	Date    string `json:"date"`
	Text    string `json:"text"`
}

// Router parses raw gateway events and routes observations to the writers.
type Router interface {
	// Start begins routing events from the input channel.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the router.
	Stop(ctx context.Context) error

	// Buffers returns output buffers for the writers to consume.
	Buffers() Buffers

	// Stats returns current routing statistics.
	Stats() Stats
}

type router struct {
	cfg    Config
	logger *slog.Logger

	input <-chan gateway.RawEvent

	saleBuf  *GrowableBuffer[model.SaleObservation]
	floorBuf *GrowableBuffer[model.PriceObservation]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.RWMutex
	received    int64
	routed      int64
	dropped     int64
	parseErrors int64
}

// New creates an event router reading from input.
func New(cfg Config, input <-chan gateway.RawEvent, logger *slog.Logger) Router {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SaleBufferSize < 1 {
		cfg.SaleBufferSize = DefaultConfig().SaleBufferSize
	}
	if cfg.FloorBufferSize < 1 {
		cfg.FloorBufferSize = DefaultConfig().FloorBufferSize
	}

	return &router{
		cfg:      cfg,
		logger:   logger,
		input:    input,
		saleBuf:  NewGrowableBuffer[model.SaleObservation](cfg.SaleBufferSize),
		floorBuf: NewGrowableBuffer[model.PriceObservation](cfg.FloorBufferSize),
	}
}

// Start begins routing events.
func (r *router) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.routeLoop()

	r.logger.Info("event router started",
		"sale_channel", r.cfg.SaleChannel,
		"floor_channel", r.cfg.FloorChannel,
	)

	return nil
}

// Stop gracefully shuts down the router.
func (r *router) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("event router stopped")
	case <-ctx.Done():
		r.logger.Warn("event router stop timed out")
	}

	r.saleBuf.Close()
	r.floorBuf.Close()

	return nil
}

// Buffers returns the output buffers.
func (r *router) Buffers() Buffers {
	return Buffers{
		Sales:  r.saleBuf,
		Floors: r.floorBuf,
	}
}

// Stats returns current statistics.
func (r *router) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Stats{
		EventsReceived: r.received,
		EventsRouted:   r.routed,
		Dropped:        r.dropped,
		ParseErrors:    r.parseErrors,
		SaleBuffer:     r.saleBuf.Stats(),
		FloorBuffer:    r.floorBuf.Stats(),
	}
}

func (r *router) routeLoop() {
	defer r.wg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		case raw, ok := <-r.input:
			if !ok {
				r.logger.Info("input channel closed")
				return
			}
			r.route(raw)
		}
	}
}

// route decodes and routes a single event.
func (r *router) route(raw gateway.RawEvent) {
	r.count(&r.received)

	var env eventEnvelope
	if err := json.Unmarshal(raw.Data, &env); err != nil {
		r.logger.Warn("failed to decode event envelope", "error", err)
		r.count(&r.parseErrors)
		return
	}

	if env.Type != "message" || env.Text == "" {
		r.count(&r.dropped)
		return
	}

	date, err := model.ParseDate(env.Date)
	if err != nil {
		r.logger.Warn("bad event date", "date", env.Date, "error", err)
		r.count(&r.parseErrors)
		return
	}

	text := parse.Normalize(env.Text)

	switch env.Channel {
	case r.cfg.SaleChannel:
		sale, ok := parse.Sale(text, env.ID, date)
		if !ok {
			r.count(&r.dropped)
			return
		}
		if r.saleBuf.Send(sale) {
			r.count(&r.routed)
		}

	case r.cfg.FloorChannel:
		floor, ok := parse.Floor(text, date)
		if !ok {
			r.count(&r.dropped)
			return
		}
		if r.floorBuf.Send(floor) {
			r.count(&r.routed)
		}

	default:
		r.logger.Debug("event from unknown channel", "channel", env.Channel)
		r.count(&r.dropped)
	}
}

func (r *router) count(field *int64) {
	r.mu.Lock()
	*field++
	r.mu.Unlock()
}
