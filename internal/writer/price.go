package writer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prezix/telegram-gifts-parser/internal/model"
	"github.com/prezix/telegram-gifts-parser/internal/router"
)

// PriceStore is the slice of the gift store a PriceWriter needs.
type PriceStore interface {
	InsertPriceObservation(ctx context.Context, obs model.PriceObservation) (bool, error)
}

// PriceWriter consumes floor-price observations from the router buffer
// and writes them to the price_observations table.
type PriceWriter struct {
	logger *slog.Logger

	input *router.GrowableBuffer[model.PriceObservation]
	store PriceStore

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	metrics WriterMetrics
}

// NewPriceWriter creates a new PriceWriter.
func NewPriceWriter(input *router.GrowableBuffer[model.PriceObservation], store PriceStore, logger *slog.Logger) *PriceWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PriceWriter{
		logger: logger,
		input:  input,
		store:  store,
	}
}

// Start begins consuming observations.
func (w *PriceWriter) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go w.consumeLoop()

	w.logger.Info("price writer started")
	return nil
}

// Stop gracefully shuts down the writer, draining the buffer first.
func (w *PriceWriter) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.cancel()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		w.logger.Warn("price writer stop timed out")
		return ctx.Err()
	}

	w.drain(ctx)
	w.logger.Info("price writer stopped", "metrics", w.Stats())
	return nil
}

// Stats returns current metrics.
func (w *PriceWriter) Stats() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

func (w *PriceWriter) consumeLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		default:
		}

		obs, ok := w.input.TryReceive()
		if !ok {
			select {
			case <-w.ctx.Done():
				return
			case <-time.After(pollInterval):
			}
			continue
		}

		w.write(w.ctx, obs)
	}
}

func (w *PriceWriter) drain(ctx context.Context) {
	for {
		obs, ok := w.input.TryReceive()
		if !ok {
			return
		}
		w.write(ctx, obs)
	}
}

func (w *PriceWriter) write(ctx context.Context, obs model.PriceObservation) {
	inserted, err := w.store.InsertPriceObservation(ctx, obs)

	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case err != nil:
		w.metrics.Errors++
		w.logger.Error("price insert failed",
			"item", obs.ItemName,
			"date", model.FormatDate(obs.Date),
			"error", err,
		)
	case inserted:
		w.metrics.Inserts++
	default:
		w.metrics.Duplicates++
		w.logger.Debug("duplicate price observation skipped",
			"item", obs.ItemName,
			"date", model.FormatDate(obs.Date),
		)
	}
}
