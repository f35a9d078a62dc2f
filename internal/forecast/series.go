package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/prezix/telegram-gifts-parser/internal/model"
)

// Point is one observed TON price at one timestamp.
type Point struct {
	Date     time.Time `json:"date"`
	PriceTON float64   `json:"price_ton"`
}

// MergeSeries unions floor-price observations (floor TON where present) with
// sale prices into one series sorted by ascending timestamp.
func MergeSeries(prices []model.PriceObservation, sales []model.SaleObservation) []Point {
	points := make([]Point, 0, len(prices)+len(sales))
	for _, obs := range prices {
		if obs.Floor == nil {
			continue
		}
		points = append(points, Point{Date: obs.Date, PriceTON: obs.Floor.TON})
	}
	for _, obs := range sales {
		points = append(points, Point{Date: obs.Date, PriceTON: obs.PriceTON})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// dayOrdinal converts a timestamp to a whole-day number, the regression
// x-axis unit.
func dayOrdinal(t time.Time) float64 {
	return math.Floor(float64(t.Unix()) / 86400)
}

// recencyWeights assigns exp(-alpha * (lastDay - day)) to each point: the
// most recent point gets weight 1, older points decay exponentially.
func recencyWeights(days []float64, alpha float64) []float64 {
	if len(days) == 0 {
		return nil
	}
	last := days[len(days)-1]
	weights := make([]float64, len(days))
	for i, d := range days {
		weights[i] = math.Exp(-alpha * (last - d))
	}
	return weights
}
