package forecast

import (
	"errors"
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientData is returned when fewer than two usable points exist.
// It is an expected business outcome, not a system failure.
var ErrInsufficientData = errors.New("insufficient data")

// forecastDateLayout is the target-date format for presentation.
const forecastDateLayout = "2006-01-02"

// Config holds forecast engine tuning.
type Config struct {
	Alpha             float64 // recency decay rate per day
	RANSACTrials      int     // max robust-fit sampling trials
	MinInlierFraction float64 // robust-fit consensus threshold
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		Alpha:             0.1,
		RANSACTrials:      100,
		MinInlierFraction: 0.6,
	}
}

// Engine fits the three predictors and blends them.
type Engine struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a forecast engine.
func New(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cfg: cfg, logger: logger}
}

// Result is a blended one-step-ahead forecast with per-model diagnostics.
type Result struct {
	Item         string  `json:"item"`
	ForecastDate string  `json:"forecast_date"` // YYYY-MM-DD, day after the last observation
	RANSAC       float64 `json:"ransac"`
	Linear       float64 `json:"linear"`
	Holt         float64 `json:"holt"`
	Final        float64 `json:"final"`
	HoltFellBack bool    `json:"holt_fell_back,omitempty"` // smoothing failed, linear value substituted
	Series       []Point `json:"series"`                   // the merged series, for charting
}

// Forecast predicts the item's TON price for the day after the last
// observation. Returns ErrInsufficientData below two points.
func (e *Engine) Forecast(item string, points []Point) (*Result, error) {
	if len(points) < 2 {
		return nil, ErrInsufficientData
	}

	sorted := append([]Point(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	xs := make([]float64, len(sorted))
	ys := make([]float64, len(sorted))
	for i, p := range sorted {
		xs[i] = dayOrdinal(p.Date)
		ys[i] = p.PriceTON
	}
	weights := recencyWeights(xs, e.cfg.Alpha)

	lastDate := sorted[len(sorted)-1].Date
	futureDay := xs[len(xs)-1] + 1

	linear := fitWeightedLine(xs, ys, weights)
	linearPred := clamp(linear.at(futureDay))

	robust, ok := fitRANSAC(xs, ys, weights, e.cfg.RANSACTrials, e.cfg.MinInlierFraction)
	if !ok {
		// No consensus set: the weighted line is the best remaining estimate.
		robust = linear
	}
	robustPred := clamp(robust.at(futureDay))

	holtPred := linearPred
	holtFellBack := true
	if fit, err := fitHolt(ys); err == nil {
		holtPred = clamp(fit.forecast(1))
		holtFellBack = false
	} else {
		e.logger.Warn("holt fit failed, substituting linear forecast",
			"item", item, "error", err)
	}

	return &Result{
		Item:         item,
		ForecastDate: lastDate.AddDate(0, 0, 1).Format(forecastDateLayout),
		RANSAC:       robustPred,
		Linear:       linearPred,
		Holt:         holtPred,
		Final:        (robustPred + linearPred + holtPred) / 3,
		HoltFellBack: holtFellBack,
		Series:       sorted,
	}, nil
}

// Analysis carries descriptive statistics over the merged series plus a
// single weighted-regression forecast; the lighter-weight presentation mode.
type Analysis struct {
	Item         string  `json:"item"`
	ForecastDate string  `json:"forecast_date"`
	Mean         float64 `json:"mean"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	StdDev       float64 `json:"std_dev"`
	Linear       float64 `json:"linear"`
	Series       []Point `json:"series"`
}

// Analyze computes descriptive statistics and a linear forecast over the
// same merged series. Returns ErrInsufficientData below two points.
func (e *Engine) Analyze(item string, points []Point) (*Analysis, error) {
	if len(points) < 2 {
		return nil, ErrInsufficientData
	}

	sorted := append([]Point(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	xs := make([]float64, len(sorted))
	ys := make([]float64, len(sorted))
	for i, p := range sorted {
		xs[i] = dayOrdinal(p.Date)
		ys[i] = p.PriceTON
	}
	weights := recencyWeights(xs, e.cfg.Alpha)

	minY, maxY := ys[0], ys[0]
	for _, y := range ys[1:] {
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	lastDate := sorted[len(sorted)-1].Date
	linear := fitWeightedLine(xs, ys, weights)

	return &Analysis{
		Item:         item,
		ForecastDate: lastDate.AddDate(0, 0, 1).Format(forecastDateLayout),
		Mean:         stat.Mean(ys, nil),
		Min:          minY,
		Max:          maxY,
		StdDev:       stat.StdDev(ys, nil),
		Linear:       linear.at(xs[len(xs)-1] + 1),
		Series:       sorted,
	}, nil
}

// clamp floors a prediction at zero: a price cannot be negative.
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
