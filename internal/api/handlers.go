package api

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/prezix/telegram-gifts-parser/internal/forecast"
	"github.com/prezix/telegram-gifts-parser/internal/store"
)

const healthTimeout = 5 * time.Second

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	health := struct {
		Status     string         `json:"status"`
		Components map[string]any `json:"components"`
	}{
		Status:     "healthy",
		Components: make(map[string]any),
	}

	status := http.StatusOK
	if err := s.store.Ping(ctx); err != nil {
		health.Status = "unhealthy"
		health.Components["postgres"] = map[string]string{
			"status": "disconnected",
			"error":  err.Error(),
		}
		status = http.StatusServiceUnavailable
	} else {
		health.Components["postgres"] = "connected"
	}

	s.writeJSON(w, status, health)
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.ListItems(r.Context())
	if err != nil {
		s.logger.Error("failed to list items", "error", err)
		s.writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	if names == nil {
		names = []string{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"items": names,
		"count": len(names),
	})
}

type itemResponse struct {
	Name         string   `json:"name"`
	TotalCount   *int64   `json:"total_count,omitempty"`
	BaseStarCost *float64 `json:"base_star_cost,omitempty"`
	DeltaCount   int64    `json:"delta_count"`
	MeanDelta    float64  `json:"mean_delta"`
	Trend        string   `json:"trend"`
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	item, err := s.store.GetItem(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to get item", "item", name, "error", err)
		s.writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}

	stats, err := s.store.ItemDeltaStats(r.Context(), name)
	if err != nil {
		s.logger.Error("failed to get delta stats", "item", name, "error", err)
		s.writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}

	s.writeJSON(w, http.StatusOK, itemResponse{
		Name:         item.Name,
		TotalCount:   item.TotalCount,
		BaseStarCost: item.BaseStarCost,
		DeltaCount:   stats.Count,
		MeanDelta:    round2(stats.MeanDelta),
		Trend:        stats.Trend(),
	})
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	points, ok := s.mergedSeries(w, r, name)
	if !ok {
		return
	}

	res, err := s.engine.Forecast(name, points)
	if errors.Is(err, forecast.ErrInsufficientData) {
		s.writeError(w, http.StatusOK, "insufficient data for forecast")
		return
	}
	if err != nil {
		s.logger.Error("forecast failed", "item", name, "error", err)
		s.writeError(w, http.StatusInternalServerError, "forecast failed")
		return
	}

	rounded := *res
	rounded.RANSAC = round2(res.RANSAC)
	rounded.Linear = round2(res.Linear)
	rounded.Holt = round2(res.Holt)
	rounded.Final = round2(res.Final)

	s.writeJSON(w, http.StatusOK, rounded)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	points, ok := s.mergedSeries(w, r, name)
	if !ok {
		return
	}

	res, err := s.engine.Analyze(name, points)
	if errors.Is(err, forecast.ErrInsufficientData) {
		s.writeError(w, http.StatusOK, "insufficient data for analysis")
		return
	}
	if err != nil {
		s.logger.Error("analysis failed", "item", name, "error", err)
		s.writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	rounded := *res
	rounded.Mean = round2(res.Mean)
	rounded.StdDev = round2(res.StdDev)
	rounded.Linear = round2(res.Linear)

	s.writeJSON(w, http.StatusOK, rounded)
}

// mergedSeries loads and merges the floor and sale history for an item.
// It writes the error response itself and reports success via ok.
func (s *Server) mergedSeries(w http.ResponseWriter, r *http.Request, name string) ([]forecast.Point, bool) {
	if _, err := s.store.GetItem(r.Context(), name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "item not found")
		} else {
			s.logger.Error("failed to get item", "item", name, "error", err)
			s.writeError(w, http.StatusInternalServerError, "store unavailable")
		}
		return nil, false
	}

	prices, err := s.store.PriceSeries(r.Context(), name)
	if err != nil {
		s.logger.Error("failed to load price series", "item", name, "error", err)
		s.writeError(w, http.StatusInternalServerError, "store unavailable")
		return nil, false
	}

	sales, err := s.store.SaleSeries(r.Context(), name)
	if err != nil {
		s.logger.Error("failed to load sale series", "item", name, "error", err)
		s.writeError(w, http.StatusInternalServerError, "store unavailable")
		return nil, false
	}

	return forecast.MergeSeries(prices, sales), true
}

// round2 rounds a price to two decimals for presentation.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
