package parse

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prezix/telegram-gifts-parser/internal/model"
)

// ExportMessage is one message object from a bulk historical export.
type ExportMessage struct {
	ID   int64       `json:"id"`
	Type string      `json:"type"`
	Date string      `json:"date"`
	Text SegmentList `json:"text"`
}

// exportDateLayout is the timestamp format bulk exports carry.
const exportDateLayout = "2006-01-02T15:04:05"

// parseExportDate accepts the canonical broadcast format or the export's
// ISO-like format. An unparsable date invalidates the whole record.
func parseExportDate(s string) (time.Time, bool) {
	if t, err := model.ParseDate(s); err == nil {
		return t, true
	}
	t, err := time.Parse(exportDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ExportDocument decodes a bulk export: either a top-level message array or
// an object with a "messages" list.
func ExportDocument(data []byte) ([]ExportMessage, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var msgs []ExportMessage
		if err := json.Unmarshal(data, &msgs); err != nil {
			return nil, fmt.Errorf("decode export array: %w", err)
		}
		return msgs, nil
	}

	var doc struct {
		Messages []ExportMessage `json:"messages"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode export document: %w", err)
	}
	return doc.Messages, nil
}

// ExportSale parses a sale notice from a bulk export. Unlike the live
// variant, the item name is segment 1 verbatim (no parenthesis rule) and the
// price is located by scanning all segments for the "Price:" pattern.
func ExportSale(msg ExportMessage) (model.SaleObservation, bool) {
	if msg.Type != "message" || len(msg.Text) == 0 {
		return model.SaleObservation{}, false
	}
	if len(msg.Text) < 2 {
		return model.SaleObservation{}, false
	}
	if !strings.Contains(msg.Text[0].Text(), saleMarker) {
		return model.SaleObservation{}, false
	}

	name := msg.Text[1].Text()
	if name == "" {
		return model.SaleObservation{}, false
	}

	price, ok := findSegmentPrice(msg.Text)
	if !ok {
		return model.SaleObservation{}, false
	}

	date, ok := parseExportDate(msg.Date)
	if !ok {
		return model.SaleObservation{}, false
	}

	return model.SaleObservation{
		MessageID: msg.ID,
		ItemName:  name,
		PriceTON:  price,
		Date:      date,
	}, true
}

// ExportFloor parses a floor update from a bulk export. The layout is
// positional: the item name is segment 0, the delta is the first whitespace
// token of segment 2, the floor quad is the first four number-bearing
// segments before the "Average" marker, and the average quad sits at fixed
// offsets +3, +5, +7, +9 after the marker.
//
// The fixed offsets are kept exactly for compatibility with historical
// exports; replace this variant, not the callers, if the export layout
// changes.
func ExportFloor(msg ExportMessage) (model.PriceObservation, bool) {
	if msg.Type != "message" || len(msg.Text) == 0 {
		return model.PriceObservation{}, false
	}
	if len(msg.Text) < 10 {
		return model.PriceObservation{}, false
	}

	name := msg.Text[0].Text()
	if name == "" {
		return model.PriceObservation{}, false
	}

	deltaTokens := strings.Fields(msg.Text[2].Text())
	if len(deltaTokens) == 0 {
		return model.PriceObservation{}, false
	}
	delta, err := parseDecimal(deltaTokens[0])
	if err != nil {
		return model.PriceObservation{}, false
	}

	marker := -1
	for i, seg := range msg.Text {
		if strings.Contains(seg.Text(), "Average") {
			marker = i
			break
		}
	}
	if marker < 0 {
		return model.PriceObservation{}, false
	}

	// The first four numbers appearing before the marker are taken as the
	// floor quad in (TON, USD, Star, RUB) order.
	var floorVals []float64
	for i := 0; i < marker && len(floorVals) < 4; i++ {
		m := numberRE.FindString(msg.Text[i].Text())
		if m == "" {
			continue
		}
		v, err := parseDecimal(m)
		if err != nil {
			continue
		}
		floorVals = append(floorVals, v)
	}
	if len(floorVals) < 4 {
		return model.PriceObservation{}, false
	}

	if len(msg.Text) < marker+10 {
		return model.PriceObservation{}, false
	}
	var avgVals [4]float64
	for i, off := range [4]int{3, 5, 7, 9} {
		v, err := parseDecimal(msg.Text[marker+off].Text())
		if err != nil {
			return model.PriceObservation{}, false
		}
		avgVals[i] = v
	}

	date, ok := parseExportDate(msg.Date)
	if !ok {
		return model.PriceObservation{}, false
	}

	return model.PriceObservation{
		ItemName: name,
		Date:     date,
		DeltaTON: delta,
		Floor:    &model.QuotedPrice{TON: floorVals[0], USD: floorVals[1], Star: floorVals[2], RUB: floorVals[3]},
		Average:  &model.QuotedPrice{TON: avgVals[0], USD: avgVals[1], Star: avgVals[2], RUB: avgVals[3]},
	}, true
}

// findSegmentPrice scans segments for the first "Price: <number>" match.
func findSegmentPrice(segs SegmentList) (float64, bool) {
	for _, seg := range segs {
		m := priceRE.FindStringSubmatch(seg.Text())
		if m == nil {
			continue
		}
		price, err := parseDecimal(m[1])
		if err != nil {
			continue
		}
		return price, true
	}
	return 0, false
}
