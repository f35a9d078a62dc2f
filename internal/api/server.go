package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/prezix/telegram-gifts-parser/internal/forecast"
	"github.com/prezix/telegram-gifts-parser/internal/model"
	"github.com/prezix/telegram-gifts-parser/internal/store"
)

// GiftStore is the slice of the gift store the API reads from.
type GiftStore interface {
	Ping(ctx context.Context) error
	ListItems(ctx context.Context) ([]string, error)
	GetItem(ctx context.Context, name string) (model.Item, error)
	ItemDeltaStats(ctx context.Context, name string) (store.DeltaStats, error)
	PriceSeries(ctx context.Context, name string) ([]model.PriceObservation, error)
	SaleSeries(ctx context.Context, name string) ([]model.SaleObservation, error)
}

// Server serves the analyzer endpoints.
type Server struct {
	store  GiftStore
	engine *forecast.Engine
	logger *slog.Logger
}

// NewServer creates an API server over the given store and engine.
func NewServer(st GiftStore, engine *forecast.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:  st,
		engine: engine,
		logger: logger,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /items", s.handleItems)
	mux.HandleFunc("GET /items/{name}", s.handleItem)
	mux.HandleFunc("GET /items/{name}/forecast", s.handleForecast)
	mux.HandleFunc("GET /items/{name}/analysis", s.handleAnalysis)

	return s.withRequestID(mux)
}

// withRequestID tags every request with a uuid and logs the access line.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)

		s.logger.Debug("request served",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
