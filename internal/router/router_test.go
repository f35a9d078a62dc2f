package router

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prezix/telegram-gifts-parser/internal/gateway"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SaleChannel = "gift_sales"
	cfg.FloorChannel = "floor_updates"
	return cfg
}

func rawEvent(t *testing.T, fields map[string]any) gateway.RawEvent {
	t.Helper()
	data, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return gateway.RawEvent{Data: data, ReceivedAt: time.Now()}
}

func startRouter(t *testing.T) (Router, chan gateway.RawEvent) {
	t.Helper()
	input := make(chan gateway.RawEvent, 16)
	r := New(testConfig(), input, nil)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		r.Stop(ctx)
	})
	return r, input
}

func TestRouter_SaleNotice(t *testing.T) {
	r, input := startRouter(t)

	input <- rawEvent(t, map[string]any{
		"type":    "message",
		"id":      91233,
		"channel": "gift_sales",
		"date":    "2025.03.15 - 18:02:11",
		"text":    "**Gift Sold**\n\nVintage Cigar #17369 (https://t.me/nft/VintageCigar-17369)\n\nPrice: 5.5 TON",
	})

	sale, ok := r.Buffers().Sales.Receive()
	if !ok {
		t.Fatal("sale buffer closed")
	}
	if sale.ItemName != "Vintage Cigar #17369" {
		t.Errorf("ItemName = %q, want %q", sale.ItemName, "Vintage Cigar #17369")
	}
	if sale.PriceTON != 5.5 {
		t.Errorf("PriceTON = %v, want 5.5", sale.PriceTON)
	}
	if sale.MessageID != 91233 {
		t.Errorf("MessageID = %d, want 91233", sale.MessageID)
	}
}

func TestRouter_FloorUpdate(t *testing.T) {
	r, input := startRouter(t)

	input <- rawEvent(t, map[string]any{
		"type":    "message",
		"id":      91234,
		"channel": "floor_updates",
		"date":    "2025.03.15 - 18:05:00",
		"text":    "__Flying Broom__ +0.01 TON 📈\nFloor Tonnel: 0,69 TON ≈ 2,58 USD ≈ 172 ⭐️ ≈ 235 ₽\nAverage Tonnel: 0,71 TON ≈ 2,64 USD ≈ 176 ⭐️ ≈ 241 ₽",
	})

	floor, ok := r.Buffers().Floors.Receive()
	if !ok {
		t.Fatal("floor buffer closed")
	}
	if floor.ItemName != "Flying Broom" {
		t.Errorf("ItemName = %q, want %q", floor.ItemName, "Flying Broom")
	}
	if floor.DeltaTON != 0.01 {
		t.Errorf("DeltaTON = %v, want 0.01", floor.DeltaTON)
	}
	if floor.Floor == nil || floor.Floor.TON != 0.69 {
		t.Errorf("Floor = %+v, want TON 0.69", floor.Floor)
	}
	if floor.Average == nil || floor.Average.RUB != 241 {
		t.Errorf("Average = %+v, want RUB 241", floor.Average)
	}
}

func TestRouter_DropsNonMessageEvents(t *testing.T) {
	r, input := startRouter(t)

	input <- rawEvent(t, map[string]any{
		"type":    "subscribed",
		"channel": "gift_sales",
	})
	input <- rawEvent(t, map[string]any{
		"type":    "message",
		"channel": "gift_sales",
		"date":    "2025.03.15 - 18:02:11",
		"text":    "",
	})

	waitForStat(t, r, func(s Stats) bool { return s.Dropped == 2 })

	if s := r.Stats(); s.EventsRouted != 0 {
		t.Errorf("EventsRouted = %d, want 0", s.EventsRouted)
	}
}

func TestRouter_DropsUnparseableText(t *testing.T) {
	r, input := startRouter(t)

	input <- rawEvent(t, map[string]any{
		"type":    "message",
		"channel": "gift_sales",
		"date":    "2025.03.15 - 18:02:11",
		"text":    "channel housekeeping announcement",
	})

	waitForStat(t, r, func(s Stats) bool { return s.Dropped == 1 })
}

func TestRouter_CountsParseErrors(t *testing.T) {
	r, input := startRouter(t)

	input <- gateway.RawEvent{Data: []byte("{not json"), ReceivedAt: time.Now()}
	input <- rawEvent(t, map[string]any{
		"type":    "message",
		"channel": "gift_sales",
		"date":    "yesterday",
		"text":    "Gift Sold\nX (u)\nPrice: 1 TON",
	})

	waitForStat(t, r, func(s Stats) bool { return s.ParseErrors == 2 })
}

func TestRouter_UnknownChannelDropped(t *testing.T) {
	r, input := startRouter(t)

	input <- rawEvent(t, map[string]any{
		"type":    "message",
		"channel": "memes",
		"date":    "2025.03.15 - 18:02:11",
		"text":    "Gift Sold\nX (u)\nPrice: 1 TON",
	})

	waitForStat(t, r, func(s Stats) bool { return s.Dropped == 1 })
}

func waitForStat(t *testing.T, r Router, pred func(Stats) bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if pred(r.Stats()) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("stats condition not reached, last: %+v", r.Stats())
}
