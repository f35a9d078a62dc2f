package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prezix/telegram-gifts-parser/internal/forecast"
	"github.com/prezix/telegram-gifts-parser/internal/model"
	"github.com/prezix/telegram-gifts-parser/internal/store"
)

// fakeGiftStore serves canned data for handler tests.
type fakeGiftStore struct {
	items    map[string]model.Item
	prices   map[string][]model.PriceObservation
	sales    map[string][]model.SaleObservation
	stats    map[string]store.DeltaStats
	pingErr  error
	queryErr error
}

func newFakeGiftStore() *fakeGiftStore {
	return &fakeGiftStore{
		items:  make(map[string]model.Item),
		prices: make(map[string][]model.PriceObservation),
		sales:  make(map[string][]model.SaleObservation),
		stats:  make(map[string]store.DeltaStats),
	}
}

func (f *fakeGiftStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeGiftStore) ListItems(context.Context) ([]string, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var names []string
	for name := range f.items {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeGiftStore) GetItem(_ context.Context, name string) (model.Item, error) {
	if f.queryErr != nil {
		return model.Item{}, f.queryErr
	}
	item, ok := f.items[name]
	if !ok {
		return model.Item{}, store.ErrNotFound
	}
	return item, nil
}

func (f *fakeGiftStore) ItemDeltaStats(_ context.Context, name string) (store.DeltaStats, error) {
	return f.stats[name], nil
}

func (f *fakeGiftStore) PriceSeries(_ context.Context, name string) ([]model.PriceObservation, error) {
	return f.prices[name], nil
}

func (f *fakeGiftStore) SaleSeries(_ context.Context, name string) ([]model.SaleObservation, error) {
	return f.sales[name], nil
}

func newTestServer(st GiftStore) *httptest.Server {
	srv := NewServer(st, forecast.New(forecast.DefaultConfig(), nil), nil)
	return httptest.NewServer(srv.Handler())
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHandleHealth(t *testing.T) {
	st := newFakeGiftStore()
	ts := newTestServer(st)
	defer ts.Close()

	var health struct {
		Status string `json:"status"`
	}
	if code := getJSON(t, ts.URL+"/health", &health); code != http.StatusOK {
		t.Errorf("status = %d, want 200", code)
	}
	if health.Status != "healthy" {
		t.Errorf("Status = %q, want %q", health.Status, "healthy")
	}

	st.pingErr = errors.New("connection refused")
	if code := getJSON(t, ts.URL+"/health", &health); code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", code)
	}
	if health.Status != "unhealthy" {
		t.Errorf("Status = %q, want %q", health.Status, "unhealthy")
	}
}

func TestHandleItems(t *testing.T) {
	st := newFakeGiftStore()
	st.items["Flying Broom"] = model.Item{Name: "Flying Broom"}
	ts := newTestServer(st)
	defer ts.Close()

	var body struct {
		Items []string `json:"items"`
		Count int      `json:"count"`
	}
	if code := getJSON(t, ts.URL+"/items", &body); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if body.Count != 1 || len(body.Items) != 1 || body.Items[0] != "Flying Broom" {
		t.Errorf("body = %+v, want one item Flying Broom", body)
	}
}

func TestHandleItem(t *testing.T) {
	st := newFakeGiftStore()
	count := int64(31000)
	st.items["Flying Broom"] = model.Item{Name: "Flying Broom", TotalCount: &count}
	st.stats["Flying Broom"] = store.DeltaStats{Count: 3, MeanDelta: 0.02}
	ts := newTestServer(st)
	defer ts.Close()

	var body itemResponse
	if code := getJSON(t, ts.URL+"/items/Flying%20Broom", &body); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if body.Name != "Flying Broom" {
		t.Errorf("Name = %q, want %q", body.Name, "Flying Broom")
	}
	if body.TotalCount == nil || *body.TotalCount != 31000 {
		t.Errorf("TotalCount = %v, want 31000", body.TotalCount)
	}
	if body.Trend != "rising" {
		t.Errorf("Trend = %q, want %q", body.Trend, "rising")
	}
}

func TestHandleItem_NotFound(t *testing.T) {
	ts := newTestServer(newFakeGiftStore())
	defer ts.Close()

	var body struct {
		Error string `json:"error"`
	}
	if code := getJSON(t, ts.URL+"/items/Unknown", &body); code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
	if body.Error != "item not found" {
		t.Errorf("Error = %q, want %q", body.Error, "item not found")
	}
}

func TestHandleForecast(t *testing.T) {
	st := newFakeGiftStore()
	st.items["Flying Broom"] = model.Item{Name: "Flying Broom"}

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		st.prices["Flying Broom"] = append(st.prices["Flying Broom"], model.PriceObservation{
			ItemName: "Flying Broom",
			Date:     base.AddDate(0, 0, i),
			Floor:    &model.QuotedPrice{TON: 10 + float64(i)},
		})
	}

	ts := newTestServer(st)
	defer ts.Close()

	var body forecast.Result
	if code := getJSON(t, ts.URL+"/items/Flying%20Broom/forecast", &body); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if body.Item != "Flying Broom" {
		t.Errorf("Item = %q, want %q", body.Item, "Flying Broom")
	}
	// Rising 10..15 series, next value continues the trend.
	if body.Final < 10 || body.Final > 20 {
		t.Errorf("Final = %v, want within [10, 20]", body.Final)
	}
	if body.ForecastDate != "2025-03-07" {
		t.Errorf("ForecastDate = %q, want %q", body.ForecastDate, "2025-03-07")
	}
}

func TestHandleForecast_SingleDaySeries(t *testing.T) {
	st := newFakeGiftStore()
	st.items["Flying Broom"] = model.Item{Name: "Flying Broom"}

	// All observations inside one calendar day; the response must still be
	// valid JSON with finite predictions.
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, p := range []float64{10, 11, 12} {
		st.prices["Flying Broom"] = append(st.prices["Flying Broom"], model.PriceObservation{
			ItemName: "Flying Broom",
			Date:     base.Add(time.Duration(i) * time.Hour),
			Floor:    &model.QuotedPrice{TON: p},
		})
	}

	ts := newTestServer(st)
	defer ts.Close()

	var body forecast.Result
	if code := getJSON(t, ts.URL+"/items/Flying%20Broom/forecast", &body); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if body.Final < 0 || body.Final > 20 {
		t.Errorf("Final = %v, want a finite value within [0, 20]", body.Final)
	}
	if body.Linear != 11 {
		t.Errorf("Linear = %v, want the mean 11", body.Linear)
	}
}

func TestHandleForecast_InsufficientData(t *testing.T) {
	st := newFakeGiftStore()
	st.items["Lonely Gift"] = model.Item{Name: "Lonely Gift"}
	st.sales["Lonely Gift"] = []model.SaleObservation{{
		MessageID: 1,
		ItemName:  "Lonely Gift",
		PriceTON:  2,
		Date:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}}

	ts := newTestServer(st)
	defer ts.Close()

	var body struct {
		Error string `json:"error"`
	}
	if code := getJSON(t, ts.URL+"/items/Lonely%20Gift/forecast", &body); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if body.Error != "insufficient data for forecast" {
		t.Errorf("Error = %q", body.Error)
	}
}

func TestHandleForecast_UnknownItem(t *testing.T) {
	ts := newTestServer(newFakeGiftStore())
	defer ts.Close()

	if code := getJSON(t, ts.URL+"/items/Unknown/forecast", nil); code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}

func TestHandleAnalysis(t *testing.T) {
	st := newFakeGiftStore()
	st.items["Flying Broom"] = model.Item{Name: "Flying Broom"}

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, p := range []float64{2, 4, 6} {
		st.prices["Flying Broom"] = append(st.prices["Flying Broom"], model.PriceObservation{
			ItemName: "Flying Broom",
			Date:     base.AddDate(0, 0, i),
			Floor:    &model.QuotedPrice{TON: p},
		})
	}

	ts := newTestServer(st)
	defer ts.Close()

	var body forecast.Analysis
	if code := getJSON(t, ts.URL+"/items/Flying%20Broom/analysis", &body); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if body.Mean != 4 {
		t.Errorf("Mean = %v, want 4", body.Mean)
	}
	if body.Min != 2 || body.Max != 6 {
		t.Errorf("Min, Max = %v, %v, want 2, 6", body.Min, body.Max)
	}
	if body.StdDev != 2 {
		t.Errorf("StdDev = %v, want 2", body.StdDev)
	}
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(newFakeGiftStore())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header to be set")
	}
}
