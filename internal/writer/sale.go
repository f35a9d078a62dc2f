package writer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prezix/telegram-gifts-parser/internal/model"
	"github.com/prezix/telegram-gifts-parser/internal/router"
)

// SaleStore is the slice of the gift store a SaleWriter needs.
type SaleStore interface {
	InsertSaleObservation(ctx context.Context, obs model.SaleObservation) (bool, error)
}

// SaleWriter consumes sale observations from the router buffer and
// writes them to the sale_observations table.
type SaleWriter struct {
	logger *slog.Logger

	input *router.GrowableBuffer[model.SaleObservation]
	store SaleStore

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	metrics WriterMetrics
}

// NewSaleWriter creates a new SaleWriter.
func NewSaleWriter(input *router.GrowableBuffer[model.SaleObservation], store SaleStore, logger *slog.Logger) *SaleWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SaleWriter{
		logger: logger,
		input:  input,
		store:  store,
	}
}

// Start begins consuming observations.
func (w *SaleWriter) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go w.consumeLoop()

	w.logger.Info("sale writer started")
	return nil
}

// Stop gracefully shuts down the writer. Buffered observations are
// drained before returning so a shutdown never loses parsed sales.
func (w *SaleWriter) Stop(ctx context.Context) error {
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
		w.logger.Warn("sale writer stop timed out")
		return ctx.Err()
	}

	w.drain(ctx)
	w.logger.Info("sale writer stopped", "metrics", w.Stats())
	return nil
}

// Stats returns current metrics.
func (w *SaleWriter) Stats() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

func (w *SaleWriter) consumeLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		default:
		}

		obs, ok := w.input.TryReceive()
		if !ok {
			// Buffer empty, wait a bit before trying again
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

// drain flushes whatever is left in the buffer after the consume loop exits.
func (w *SaleWriter) drain(ctx context.Context) {
	for {
		obs, ok := w.input.TryReceive()
		if !ok {
			return
		}
		w.write(ctx, obs)
	}
}

func (w *SaleWriter) write(ctx context.Context, obs model.SaleObservation) {
	inserted, err := w.store.InsertSaleObservation(ctx, obs)

	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case err != nil:
		w.metrics.Errors++
		w.logger.Error("sale insert failed",
			"message_id", obs.MessageID,
			"item", obs.ItemName,
			"error", err,
		)
	case inserted:
		w.metrics.Inserts++
	default:
		w.metrics.Duplicates++
		w.logger.Debug("duplicate sale skipped", "message_id", obs.MessageID)
	}
}
